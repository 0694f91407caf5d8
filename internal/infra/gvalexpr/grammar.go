package gvalexpr

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/PaesslerAG/gval"
)

// Grammar, loosest first:
//
//	sum     = product { ("+" | "-") product }
//	product = unary { ("*" | "/" | "%") unary | power }
//	unary   = ("-" | "+") unary | power
//	power   = primary [ ("^" | "**") unary ]
//	primary = number | name | name "(" sum ")" | "(" sum ")"
//
// A product followed directly by a number, a name or "(" multiplies, so 2x and
// 2(x+1) are accepted. Exponents recurse through unary, which makes ^ group
// right to left and lets -x^2 mean -(x^2).

var functions = map[string]func(float64) float64{
	"sin":    math.Sin,
	"cos":    math.Cos,
	"tan":    math.Tan,
	"asin":   math.Asin,
	"acos":   math.Acos,
	"atan":   math.Atan,
	"sinh":   math.Sinh,
	"cosh":   math.Cosh,
	"tanh":   math.Tanh,
	"exp":    math.Exp,
	"ln":     math.Log,
	"log":    math.Log,
	"log10":  math.Log10,
	"log2":   math.Log2,
	"sqrt":   math.Sqrt,
	"cbrt":   math.Cbrt,
	"abs":    math.Abs,
	"floor":  math.Floor,
	"ceil":   math.Ceil,
	"signum": signum,
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func parseExpression(_ context.Context, p *gval.Parser) (gval.Evaluable, error) {
	eval, err := parseSum(p)
	if err != nil {
		return nil, err
	}
	if tok := p.Scan(); tok != scanner.EOF {
		return nil, unexpected(p, tok)
	}
	return eval, nil
}

func parseSum(p *gval.Parser) (gval.Evaluable, error) {
	left, err := parseProduct(p)
	if err != nil {
		return nil, err
	}
	for {
		var op func(a, b float64) float64
		switch p.Scan() {
		case '+':
			op = func(a, b float64) float64 { return a + b }
		case '-':
			op = func(a, b float64) float64 { return a - b }
		default:
			p.Camouflage("operator")
			return left, nil
		}
		right, err := parseProduct(p)
		if err != nil {
			return nil, err
		}
		left = binary(p, left, right, op)
	}
}

func parseProduct(p *gval.Parser) (gval.Evaluable, error) {
	left, err := parseUnary(p)
	if err != nil {
		return nil, err
	}
	for {
		var (
			op    func(a, b float64) float64
			right gval.Evaluable
		)
		switch p.Scan() {
		case '*':
			op = func(a, b float64) float64 { return a * b }
			right, err = parseUnary(p)
		case '/':
			op = func(a, b float64) float64 { return a / b }
			right, err = parseUnary(p)
		case '%':
			op = math.Mod
			right, err = parseUnary(p)
		case scanner.Int, scanner.Float, scanner.Ident, '(':
			p.Camouflage("operator")
			op = func(a, b float64) float64 { return a * b }
			right, err = parsePower(p)
		default:
			p.Camouflage("operator")
			return left, nil
		}
		if err != nil {
			return nil, err
		}
		left = binary(p, left, right, op)
	}
}

func parseUnary(p *gval.Parser) (gval.Evaluable, error) {
	switch p.Scan() {
	case '-':
		operand, err := parseUnary(p)
		if err != nil {
			return nil, err
		}
		return apply(p, operand, func(v float64) float64 { return -v }), nil
	case '+':
		return parseUnary(p)
	default:
		p.Camouflage("operand")
		return parsePower(p)
	}
}

func parsePower(p *gval.Parser) (gval.Evaluable, error) {
	base, err := parsePrimary(p)
	if err != nil {
		return nil, err
	}
	switch p.Scan() {
	case '^':
	case '*':
		if p.Peek() != '*' {
			p.Camouflage("operator")
			return base, nil
		}
		p.Next()
	default:
		p.Camouflage("operator")
		return base, nil
	}
	exponent, err := parseUnary(p)
	if err != nil {
		return nil, err
	}
	return binary(p, base, exponent, math.Pow), nil
}

func parsePrimary(p *gval.Parser) (gval.Evaluable, error) {
	switch tok := p.Scan(); tok {
	case scanner.Int, scanner.Float:
		return parseNumber(p, p.TokenText())
	case scanner.Ident:
		return parseName(p, p.TokenText())
	case '(':
		inner, err := parseSum(p)
		if err != nil {
			return nil, err
		}
		if tok := p.Scan(); tok != ')' {
			return nil, fmt.Errorf("expected ')' but got %s", describe(p, tok))
		}
		return inner, nil
	default:
		return nil, unexpected(p, tok)
	}
}

// parseNumber also accepts a number run into the constant e, which the scanner
// reads as an exponent without digits: 2e is 2*e.
func parseNumber(p *gval.Parser, text string) (gval.Evaluable, error) {
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return p.Const(v), nil
	}
	if mantissa, ok := strings.CutSuffix(text, "e"); ok {
		if v, err := strconv.ParseFloat(mantissa, 64); err == nil {
			return p.Const(v * math.E), nil
		}
	}
	return nil, fmt.Errorf("invalid number %q", text)
}

func parseName(p *gval.Parser, name string) (gval.Evaluable, error) {
	if fn, ok := functions[name]; ok {
		if tok := p.Scan(); tok != '(' {
			return nil, fmt.Errorf("function %s expects '(' but got %s", name, describe(p, tok))
		}
		arg, err := parseSum(p)
		if err != nil {
			return nil, err
		}
		switch tok := p.Scan(); tok {
		case ')':
		case ',':
			return nil, fmt.Errorf("function %s takes exactly one argument", name)
		default:
			return nil, fmt.Errorf("expected ')' after argument of %s but got %s", name, describe(p, tok))
		}
		return apply(p, arg, fn), nil
	}

	if v, ok := constants[name]; ok {
		return p.Const(v), nil
	}
	if name == Variable {
		return p.Var(p.Const(Variable)), nil
	}

	if p.Scan() == '(' {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	return nil, fmt.Errorf("unknown variable %q (only %s is bound)", name, Variable)
}

// binary folds constant operands at parse time.
func binary(p *gval.Parser, a, b gval.Evaluable, op func(a, b float64) float64) gval.Evaluable {
	eval := func(c context.Context, v interface{}) (interface{}, error) {
		x, err := a.EvalFloat64(c, v)
		if err != nil {
			return nil, err
		}
		y, err := b.EvalFloat64(c, v)
		if err != nil {
			return nil, err
		}
		return op(x, y), nil
	}
	if a.IsConst() && b.IsConst() {
		return fold(p, eval)
	}
	return eval
}

func apply(p *gval.Parser, a gval.Evaluable, fn func(float64) float64) gval.Evaluable {
	eval := func(c context.Context, v interface{}) (interface{}, error) {
		x, err := a.EvalFloat64(c, v)
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}
	if a.IsConst() {
		return fold(p, eval)
	}
	return eval
}

func fold(p *gval.Parser, eval gval.Evaluable) gval.Evaluable {
	v, err := eval(context.Background(), nil)
	if err != nil {
		return eval
	}
	return p.Const(v)
}

func unexpected(p *gval.Parser, tok rune) error {
	return fmt.Errorf("unexpected %s", describe(p, tok))
}

func describe(p *gval.Parser, tok rune) string {
	if tok == scanner.EOF {
		return "end of expression"
	}
	return strconv.Quote(p.TokenText())
}

func signum(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return v
	}
}
