/*
File    : monkey/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"fmt"
	"testing"

	"github.com/akashmaji946/monkey/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, input string) *Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	checkParserErrors(t, p)
	return program
}

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errs := p.Errors()
	if len(errs) == 0 {
		return
	}
	t.Errorf("parser had %d errors", len(errs))
	for _, msg := range errs {
		t.Errorf("parser error: %s", msg)
	}
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input              string
		expectedIdentifier string
		expectedValue      interface{}
	}{
		{"let x = 5;", "x", int64(5)},
		{"let y = true;", "y", true},
		{"let foobar = y;", "foobar", "y"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		require.Len(t, program.Statements, 1)

		stmt := program.Statements[0]
		letStmt, ok := stmt.(*LetStatement)
		require.True(t, ok)
		assert.Equal(t, "let", letStmt.TokenLiteral())
		assert.Equal(t, tt.expectedIdentifier, letStmt.Name.Value)
		testLiteralExpression(t, letStmt.Value, tt.expectedValue)
	}
}

func TestReturnStatements(t *testing.T) {
	program := parseProgram(t, `return 5; return true; return foobar;`)
	require.Len(t, program.Statements, 3)

	for _, stmt := range program.Statements {
		returnStmt, ok := stmt.(*ReturnStatement)
		require.True(t, ok)
		assert.Equal(t, "return", returnStmt.TokenLiteral())
	}
}

func TestIdentifierExpression(t *testing.T) {
	program := parseProgram(t, "foobar;")
	require.Len(t, program.Statements, 1)

	stmt := program.Statements[0].(*ExpressionStatement)
	ident, ok := stmt.Expression.(*Identifier)
	require.True(t, ok)
	assert.Equal(t, "foobar", ident.Value)
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5", "(3 + 4)((-5) * 5)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{
			"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))",
			"add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))",
		},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * ([1, 2, 3, 4][(b * c)])) * d)"},
		{
			"add(a * b[2], b[1], 2 * [1, 2][1])",
			"add((a * (b[2])), (b[1]), (2 * ([1, 2][1])))",
		},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		assert.Equal(t, tt.expected, program.String(), "input %q", tt.input)
	}
}

func TestIfExpression(t *testing.T) {
	program := parseProgram(t, `if (x < y) { x }`)
	require.Len(t, program.Statements, 1)

	stmt := program.Statements[0].(*ExpressionStatement)
	exp, ok := stmt.Expression.(*IfExpression)
	require.True(t, ok)

	testInfixExpression(t, exp.Condition, "x", "<", "y")
	require.Len(t, exp.Consequence.Statements, 1)

	consequence := exp.Consequence.Statements[0].(*ExpressionStatement)
	testIdentifier(t, consequence.Expression, "x")
	assert.Nil(t, exp.Alternative)
}

func TestIfElseExpression(t *testing.T) {
	program := parseProgram(t, `if (x < y) { x } else { y }`)
	stmt := program.Statements[0].(*ExpressionStatement)
	exp := stmt.Expression.(*IfExpression)

	require.NotNil(t, exp.Alternative)
	alt := exp.Alternative.Statements[0].(*ExpressionStatement)
	testIdentifier(t, alt.Expression, "y")
}

func TestFunctionLiteralParsing(t *testing.T) {
	program := parseProgram(t, `fn(x, y) { x + y; }`)
	stmt := program.Statements[0].(*ExpressionStatement)
	function, ok := stmt.Expression.(*FunctionLiteral)
	require.True(t, ok)
	require.Len(t, function.Parameters, 2)

	testLiteralExpression(t, function.Parameters[0], "x")
	testLiteralExpression(t, function.Parameters[1], "y")

	require.Len(t, function.Body.Statements, 1)
	bodyStmt := function.Body.Statements[0].(*ExpressionStatement)
	testInfixExpression(t, bodyStmt.Expression, "x", "+", "y")
}

func TestFunctionParameterParsing(t *testing.T) {
	tests := []struct {
		input          string
		expectedParams []string
	}{
		{"fn() {};", []string{}},
		{"fn(x) {};", []string{"x"}},
		{"fn(x, y, z) {};", []string{"x", "y", "z"}},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		stmt := program.Statements[0].(*ExpressionStatement)
		function := stmt.Expression.(*FunctionLiteral)

		require.Len(t, function.Parameters, len(tt.expectedParams))
		for i, ident := range tt.expectedParams {
			testLiteralExpression(t, function.Parameters[i], ident)
		}
	}
}

func TestCallExpressionParsing(t *testing.T) {
	program := parseProgram(t, `add(1, 2 * 3, 4 + 5);`)
	stmt := program.Statements[0].(*ExpressionStatement)
	exp, ok := stmt.Expression.(*CallExpression)
	require.True(t, ok)

	testIdentifier(t, exp.Function, "add")
	require.Len(t, exp.Arguments, 3)
	testLiteralExpression(t, exp.Arguments[0], int64(1))
	testInfixExpression(t, exp.Arguments[1], int64(2), "*", int64(3))
	testInfixExpression(t, exp.Arguments[2], int64(4), "+", int64(5))
}

func TestStringLiteralExpression(t *testing.T) {
	program := parseProgram(t, `"hello world";`)
	stmt := program.Statements[0].(*ExpressionStatement)
	literal, ok := stmt.Expression.(*StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "hello world", literal.Value)
}

func TestParsingArrayLiterals(t *testing.T) {
	program := parseProgram(t, `[1, 2 * 2, 3 + 3]`)
	stmt := program.Statements[0].(*ExpressionStatement)
	array, ok := stmt.Expression.(*ArrayLiteral)
	require.True(t, ok)
	require.Len(t, array.Elements, 3)

	testIntegerLiteral(t, array.Elements[0], 1)
	testInfixExpression(t, array.Elements[1], int64(2), "*", int64(2))
	testInfixExpression(t, array.Elements[2], int64(3), "+", int64(3))
}

func TestParsingIndexExpressions(t *testing.T) {
	program := parseProgram(t, `myArray[1 + 1]`)
	stmt := program.Statements[0].(*ExpressionStatement)
	indexExp, ok := stmt.Expression.(*IndexExpression)
	require.True(t, ok)

	testIdentifier(t, indexExp.Left, "myArray")
	testInfixExpression(t, indexExp.Index, int64(1), "+", int64(1))
}

func TestParsingHashLiteralsStringKeys(t *testing.T) {
	program := parseProgram(t, `{"one": 1, "two": 2, "three": 3}`)
	stmt := program.Statements[0].(*ExpressionStatement)
	hash, ok := stmt.Expression.(*HashLiteral)
	require.True(t, ok)
	require.Len(t, hash.Pairs, 3)

	expected := map[string]int64{"one": 1, "two": 2, "three": 3}
	for _, pair := range hash.Pairs {
		literal, ok := pair.Key.(*StringLiteral)
		require.True(t, ok)
		want := expected[literal.Value]
		testIntegerLiteral(t, pair.Value, want)
	}
}

func TestParsingEmptyHashLiteral(t *testing.T) {
	program := parseProgram(t, `{}`)
	stmt := program.Statements[0].(*ExpressionStatement)
	hash, ok := stmt.Expression.(*HashLiteral)
	require.True(t, ok)
	assert.Empty(t, hash.Pairs)
}

func TestParserErrorRecoveryCollectsMultipleErrors(t *testing.T) {
	p := New(lexer.New("let = 5; let y 10;"))
	p.ParseProgram()
	assert.GreaterOrEqual(t, len(p.Errors()), 2)
}

// --- shared literal/infix assertion helpers, mirroring the teacher's style ---

func testIntegerLiteral(t *testing.T, exp Expression, value int64) {
	t.Helper()
	integ, ok := exp.(*IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, value, integ.Value)
	assert.Equal(t, fmt.Sprintf("%d", value), integ.TokenLiteral())
}

func testIdentifier(t *testing.T, exp Expression, value string) {
	t.Helper()
	ident, ok := exp.(*Identifier)
	require.True(t, ok)
	assert.Equal(t, value, ident.Value)
	assert.Equal(t, value, ident.TokenLiteral())
}

func testBooleanLiteral(t *testing.T, exp Expression, value bool) {
	t.Helper()
	b, ok := exp.(*Boolean)
	require.True(t, ok)
	assert.Equal(t, value, b.Value)
}

func testLiteralExpression(t *testing.T, exp Expression, expected interface{}) {
	t.Helper()
	switch v := expected.(type) {
	case int:
		testIntegerLiteral(t, exp, int64(v))
	case int64:
		testIntegerLiteral(t, exp, v)
	case string:
		testIdentifier(t, exp, v)
	case bool:
		testBooleanLiteral(t, exp, v)
	default:
		t.Fatalf("type of exp not handled: %T", exp)
	}
}

func testInfixExpression(t *testing.T, exp Expression, left interface{}, operator string, right interface{}) {
	t.Helper()
	opExp, ok := exp.(*InfixExpression)
	require.True(t, ok)
	testLiteralExpression(t, opExp.Left, left)
	assert.Equal(t, operator, opExp.Operator)
	testLiteralExpression(t, opExp.Right, right)
}
