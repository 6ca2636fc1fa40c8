package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// calcWhitelist is the first-pass rejection filter: anything outside this set
// fails before the expression is even tokenized.
const calcWhitelist = "0123456789+-*/().% "

// NewCalculatorTool creates the arithmetic expression tool. Evaluation uses a
// small recursive-descent parser over + - * / % and parentheses; there is no
// dynamic evaluation of any kind.
func NewCalculatorTool() *Tool {
	return &Tool{
		Spec: ToolSpec{
			Name:        "calculator",
			Description: "Perform basic mathematical calculations",
			Params: []ParameterSpec{
				{
					Name:        "expression",
					Type:        ParamString,
					Description: "Mathematical expression to evaluate (e.g., '2 + 3 * 4')",
					Required:    true,
				},
			},
		},
		Run: func(_ context.Context, args map[string]any) (string, error) {
			expression := ArgString(args, "expression")
			if expression == "" {
				return "", fmt.Errorf("No expression provided")
			}
			for _, c := range expression {
				if !strings.ContainsRune(calcWhitelist, c) {
					return "", &InvalidExpressionError{Expression: expression}
				}
			}
			value, err := evalExpression(expression)
			if err != nil {
				return "", fmt.Errorf("calculating '%s': %w", expression, err)
			}
			return fmt.Sprintf("Result: %s = %s", expression, formatNumber(value)), nil
		},
	}
}

// formatNumber renders integral results without a decimal point.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// exprParser is a recursive-descent parser with the grammar:
//
//	expr   = term   { ("+" | "-") term }
//	term   = factor { ("*" | "/" | "%") factor }
//	factor = "-" factor | number | "(" expr ")"
type exprParser struct {
	input []rune
	pos   int
}

func evalExpression(s string) (float64, error) {
	p := &exprParser{input: []rune(s)}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) peek() rune {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case '%':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("modulo by zero")
			}
			left = math.Mod(left, right)
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	switch c := p.peek(); {
	case c == '-':
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case c == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()
	case c == 0:
		return 0, fmt.Errorf("unexpected end of expression")
	default:
		return 0, fmt.Errorf("unexpected character %q at position %d", c, p.pos)
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
		p.pos++
	}
	lit := string(p.input[start:p.pos])
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", lit)
	}
	return v, nil
}
