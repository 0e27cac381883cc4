package tool

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
	ai "github.com/spetersoncode/scout"
)

// CalculatorToolName is the name the calculator tool is bound under.
const CalculatorToolName = "calculator"

// calcCostLimit bounds evaluation work for a single expression.
const calcCostLimit = 10000

type calculatorArgs struct {
	Expression string `json:"expression" desc:"Arithmetic expression, e.g. (37.5 - 12) * 4 / 3" required:"true"`
}

// NewCalculatorTool creates a tool that evaluates arithmetic expressions.
//
// Expressions are compiled as CEL with no variables or host functions, so a
// model can only ask for arithmetic and comparisons. Integer literals are
// treated as doubles, which lets 7 / 2 evaluate to 3.5 instead of failing
// on mixed int and double operands.
func NewCalculatorTool() (ai.Tool, Handler) {
	env, envErr := cel.NewEnv()

	t := ai.Tool{
		Name:        CalculatorToolName,
		Description: "Evaluate an arithmetic expression. Supports + - * / parentheses and comparisons.",
		Parameters:  ai.SchemaFor[calculatorArgs](),
	}

	handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
		if envErr != nil {
			return "", envErr
		}
		var args calculatorArgs
		if err := decodeArgs(call, &args); err != nil {
			return "", err
		}
		return evaluate(env, args.Expression)
	}

	return t, handler
}

func evaluate(env *cel.Env, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", errors.New("expression is required")
	}

	ast, iss := env.Compile(promoteIntLiterals(expr))
	if iss != nil && iss.Err() != nil {
		return "", fmt.Errorf("invalid expression: %w", iss.Err())
	}

	prg, err := env.Program(ast, cel.CostLimit(calcCostLimit))
	if err != nil {
		return "", err
	}

	out, _, err := prg.Eval(map[string]any{})
	if err != nil {
		return "", err
	}

	switch v := out.Value().(type) {
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return "", errors.New("result is not a finite number")
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("unsupported result type %T", v)
	}
}

// promoteIntLiterals rewrites bare integer literals as double literals.
// Literals that already carry a fraction, exponent or suffix are kept, as
// are digits that belong to an identifier or a quoted string.
func promoteIntLiterals(expr string) string {
	var b strings.Builder
	b.Grow(len(expr) + 8)

	var quote byte
	for i := 0; i < len(expr); {
		c := expr[i]

		if quote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(expr) {
				b.WriteByte(expr[i+1])
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		if c == '"' || c == '\'' {
			quote = c
			b.WriteByte(c)
			i++
			continue
		}

		if !isDigit(c) || (i > 0 && isIdentByte(expr[i-1])) {
			b.WriteByte(c)
			i++
			continue
		}

		j := i
		for j < len(expr) && isDigit(expr[j]) {
			j++
		}
		bare := true
		if j < len(expr) && expr[j] == '.' {
			bare = false
			j++
			for j < len(expr) && isDigit(expr[j]) {
				j++
			}
		}
		if j < len(expr) && (expr[j] == 'e' || expr[j] == 'E') {
			bare = false
			j++
			if j < len(expr) && (expr[j] == '+' || expr[j] == '-') {
				j++
			}
			for j < len(expr) && isDigit(expr[j]) {
				j++
			}
		}
		for j < len(expr) && isIdentByte(expr[j]) {
			bare = false
			j++
		}

		b.WriteString(expr[i:j])
		if bare {
			b.WriteString(".0")
		}
		i = j
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentByte(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
