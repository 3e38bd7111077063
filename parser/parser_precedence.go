/*
File    : monkey/parser/parser_precedence.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/akashmaji946/monkey/lexer"

// Operator precedence constants, lowest to highest. Higher means the
// operator binds tighter. This is the ladder from spec.md §4.2:
//
//	Lowest < Equals < LessGreater < Sum < Product < Prefix < Call < Index
const (
	_ int = iota
	LOWEST
	EQUALS      // == !=
	LESSGREATER // < >
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x or !x
	CALL        // myFunction(x)
	INDEX       // myArray[x]
)

// precedences maps an infix-position token to its precedence. Tokens
// absent from this table (and from infixParseFns) never trigger infix
// parsing and simply end the current expression.
var precedences = map[lexer.TokenType]int{
	lexer.EQ:       EQUALS,
	lexer.NOT_EQ:   EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.SLASH:    PRODUCT,
	lexer.ASTERISK: PRODUCT,
	lexer.LPAREN:   CALL,
	lexer.LBRACKET: INDEX,
}

// peekPrecedence returns the precedence bound to the peek token, or
// LOWEST if it is not a recognized infix operator.
func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// curPrecedence returns the precedence bound to the current token, or
// LOWEST if it is not a recognized infix operator.
func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}
