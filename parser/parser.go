/*
File    : monkey/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

/*
Package parser implements a Pratt parser (top-down operator precedence
parser) for the Monkey programming language.

The parser converts the token stream produced by the lexer into an
Abstract Syntax Tree (a Program). It handles:
  - let/return/expression statements
  - prefix and infix expressions with operator precedence
  - if expressions, function literals, and calls
  - array, index, and hash literals

Key design points, mirrored from the rest of this codebase's style:
  - Two-token lookahead (curToken/peekToken), advanced with nextToken.
  - A table of prefix and infix parse functions keyed by token type,
    registered once in New.
  - Errors are collected rather than panicking, so a single parse can
    surface more than one diagnostic.
*/
package parser

import (
	"fmt"
	"strconv"

	"github.com/akashmaji946/monkey/lexer"
)

// prefixParseFn parses an expression that starts with the current token
// (literals, identifiers, unary operators, grouping, `if`, `fn`).
type prefixParseFn func() Expression

// infixParseFn parses an expression that continues from an
// already-parsed left-hand expression (binary operators, call, index).
type infixParseFn func(left Expression) Expression

// Parser holds all state needed to turn a token stream into a Program.
type Parser struct {
	lex *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token

	errors []string

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser over the token stream produced by lex, registers
// every prefix/infix parse function, and primes curToken/peekToken.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{
		lex:    lex,
		errors: []string{},
	}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.TRUE, p.parseBoolean)
	p.registerPrefix(lexer.FALSE, p.parseBoolean)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(lexer.IF, p.parseIfExpression)
	p.registerPrefix(lexer.FUNCTION, p.parseFunctionLiteral)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseHashLiteral)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	p.registerInfix(lexer.PLUS, p.parseInfixExpression)
	p.registerInfix(lexer.MINUS, p.parseInfixExpression)
	p.registerInfix(lexer.SLASH, p.parseInfixExpression)
	p.registerInfix(lexer.ASTERISK, p.parseInfixExpression)
	p.registerInfix(lexer.EQ, p.parseInfixExpression)
	p.registerInfix(lexer.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(lexer.LT, p.parseInfixExpression)
	p.registerInfix(lexer.GT, p.parseInfixExpression)
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpression)

	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// Errors returns every diagnostic collected during parsing, in the
// order they were encountered.
func (p *Parser) Errors() []string {
	return p.errors
}

// nextToken shifts the two-token lookahead window forward by one.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.NextToken()
}

// ParseProgram is the parser's entry point: it consumes tokens until
// EOF, parsing one statement per iteration, and returns the resulting
// Program. Statements that fail to parse are skipped (the parser
// advances past them) so later statements can still be tried, per
// spec.md §4.2's "collect and continue" error policy.
func (p *Parser) ParseProgram() *Program {
	program := &Program{Statements: []Statement{}}

	for p.curToken.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

// parseStatement dispatches to the let/return statement parsers, or
// falls back to an expression statement for everything else.
func (p *Parser) parseStatement() Statement {
	switch p.curToken.Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// curTokenIs reports whether the current token has type t.
func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

// peekTokenIs reports whether the next token has type t.
func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances past the peek token if it has type t, otherwise
// it records a diagnostic and leaves the token stream unchanged so
// callers can attempt to recover.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

// peekError records an "expected X, found Y" diagnostic.
func (p *Parser) peekError(t lexer.TokenType) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	p.errors = append(p.errors, msg)
}

// noPrefixParseFnError records that curToken cannot start an
// expression.
func (p *Parser) noPrefixParseFnError(t lexer.TokenType) {
	msg := fmt.Sprintf("no prefix parse function for %s found", t)
	p.errors = append(p.errors, msg)
}

// parseIdentifier parses a bare identifier reference.
func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

// parseIntegerLiteral converts the current INT token's literal text to
// an int64. The lexer already rejects overflowing literals as ILLEGAL
// before they ever reach the parser, so ParseInt failing here would
// mean the lexer produced a non-digit INT token, which never happens;
// the error path exists only as a defensive fallback.
func (p *Parser) parseIntegerLiteral() Expression {
	lit := &IntegerLiteral{Token: p.curToken}

	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		msg := fmt.Sprintf("could not parse %q as integer", p.curToken.Literal)
		p.errors = append(p.errors, msg)
		return nil
	}

	lit.Value = value
	return lit
}

// parseStringLiteral wraps the current token's literal text.
func (p *Parser) parseStringLiteral() Expression {
	return &StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

// parseBoolean wraps a `true`/`false` token.
func (p *Parser) parseBoolean() Expression {
	return &Boolean{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}
