package ui

import (
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrSyntax is the cause of every error returned for malformed expressions.
var ErrSyntax = errors.New("invalid expression")

var exprConstants = map[string]float64{
	"pi":  math.Pi,
	"tau": 2 * math.Pi,
	"e":   math.E,
}

var exprFuncs = map[string]func(args []float64) (float64, error){
	"abs":   unary(math.Abs),
	"sqrt":  unary(math.Sqrt),
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.Round),
	"rad":   unary(func(x float64) float64 { return x * math.Pi / 180 }),
	"deg":   unary(func(x float64) float64 { return x * 180 / math.Pi }),
	"min":   binary(math.Min),
	"max":   binary(math.Max),
	"pow":   binary(math.Pow),
}

func unary(f func(float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, errors.Wrapf(ErrSyntax, "want 1 argument, got %d", len(args))
		}
		return f(args[0]), nil
	}
}

func binary(f func(a, b float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		if len(args) != 2 {
			return 0, errors.Wrapf(ErrSyntax, "want 2 arguments, got %d", len(args))
		}
		return f(args[0], args[1]), nil
	}
}

// ParseExpression evaluates an arithmetic expression such as "2*(3+4)" or
// "cos(pi/3) * 10". Numbers, + - * / %, parentheses, the constants pi, tau
// and e and a few math functions are supported. A comma is accepted as the
// decimal separator when the text holds no function call.
func ParseExpression(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errors.Wrap(ErrSyntax, "empty expression")
	}
	if !strings.Contains(text, "(") {
		text = strings.ReplaceAll(text, ",", ".")
	}
	node, err := parser.ParseExpr(text)
	if err != nil {
		return 0, errors.Wrapf(ErrSyntax, "%q: %v", text, err)
	}
	v, err := evalExpr(node)
	if err != nil {
		return 0, errors.WithMessagef(err, "%q", text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrSyntax, "%q is not a finite number", text)
	}
	return v, nil
}

func evalExpr(n ast.Expr) (float64, error) {
	switch n := n.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return 0, errors.Wrapf(ErrSyntax, "unexpected literal %s", n.Value)
		}
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrSyntax, "bad number %s", n.Value)
		}
		return v, nil
	case *ast.ParenExpr:
		return evalExpr(n.X)
	case *ast.Ident:
		if v, ok := exprConstants[strings.ToLower(n.Name)]; ok {
			return v, nil
		}
		return 0, errors.Wrapf(ErrSyntax, "unknown name %s", n.Name)
	case *ast.UnaryExpr:
		x, err := evalExpr(n.X)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.ADD:
			return x, nil
		case token.SUB:
			return -x, nil
		}
		return 0, errors.Wrapf(ErrSyntax, "unexpected operator %s", n.Op)
	case *ast.BinaryExpr:
		x, err := evalExpr(n.X)
		if err != nil {
			return 0, err
		}
		y, err := evalExpr(n.Y)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.ADD:
			return x + y, nil
		case token.SUB:
			return x - y, nil
		case token.MUL:
			return x * y, nil
		case token.QUO:
			if y == 0 {
				return 0, errors.Wrap(ErrSyntax, "division by zero")
			}
			return x / y, nil
		case token.REM:
			if y == 0 {
				return 0, errors.Wrap(ErrSyntax, "division by zero")
			}
			return math.Mod(x, y), nil
		}
		return 0, errors.Wrapf(ErrSyntax, "unexpected operator %s", n.Op)
	case *ast.CallExpr:
		id, ok := n.Fun.(*ast.Ident)
		if !ok {
			return 0, errors.Wrap(ErrSyntax, "unexpected call")
		}
		fn, ok := exprFuncs[strings.ToLower(id.Name)]
		if !ok {
			return 0, errors.Wrapf(ErrSyntax, "unknown function %s", id.Name)
		}
		args := make([]float64, len(n.Args))
		for i, a := range n.Args {
			v, err := evalExpr(a)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return fn(args)
	}
	return 0, errors.Wrap(ErrSyntax, "unsupported syntax")
}
