package lang

import (
	"slices"
	"strconv"
	"strings"
)

// Operator is an arithmetic operator of a [Binary] or [Unary] node.
type Operator int

const (
	OpAdd Operator = iota // +
	OpSub                 // -
	OpMul                 // *
	OpDiv                 // /
	OpNeg                 // neg
)

// Production is a node of an expression tree. The concrete types are
// [Number], [Operand], [Binary], and [Unary].
type Production interface {
	String() string
	production()
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Operand is a reference to the value of another definition.
type Operand struct {
	Name string
}

// Binary applies Op to the values of Left and Right.
type Binary struct {
	Op    Operator
	Left  Production
	Right Production
}

// Unary applies Op to the value of Arg.
// The parser does not produce Unary nodes.
type Unary struct {
	Op  Operator
	Arg Production
}

func (Number) production()  {}
func (Operand) production() {}
func (Binary) production()  {}
func (Unary) production()   {}

func (n Number) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (o Operand) String() string { return o.Name }

func (b Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " +
		b.Right.String() + ")"
}

func (u Unary) String() string {
	return "(" + u.Op.String() + " " + u.Arg.String() + ")"
}

// precedence of the binary operator tokens.
var precedence = map[TokenKind]int{
	TokenPlus:  10,
	TokenMinus: 10,
	TokenMul:   20,
	TokenDiv:   20,
}

var binaryOperator = map[TokenKind]Operator{
	TokenPlus:  OpAdd,
	TokenMinus: OpSub,
	TokenMul:   OpMul,
	TokenDiv:   OpDiv,
}

// Parse converts a definition body into an expression tree using
// operator-precedence parsing with an operand stack and an operator stack.
//
// It fails with a [*TokenError] if the body cannot be tokenized, and with an
// [*ExpressionError] if the tokens do not reduce to exactly one tree.
func Parse(body string) (Production, error) {
	tokens, err := Tokenize(body)
	if err != nil {
		return nil, err
	}

	var (
		operands  []Production
		operators []TokenKind // TokenLParen marks an open group
	)

	reduce := func(kind TokenKind) error {
		if len(operands) < 2 {
			return &ExpressionError{
				Reason: "missing operand for " + strconv.Quote(kind.String()),
			}
		}

		left, right := operands[len(operands)-2], operands[len(operands)-1]
		operands = append(operands[:len(operands)-2], Binary{
			Op:    binaryOperator[kind],
			Left:  left,
			Right: right,
		})

		return nil
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNumber:
			value, err := strconv.ParseFloat(tok.Lexeme, 64)
			if err != nil {
				return nil, &TokenError{Offset: tok.Offset}
			}

			operands = append(operands, Number{Value: value})

		case TokenName:
			operands = append(operands, Operand{Name: tok.Lexeme})

		case TokenLParen:
			operators = append(operators, TokenLParen)

		case TokenRParen:
			closed := false

			for len(operators) > 0 {
				top := operators[len(operators)-1]
				operators = operators[:len(operators)-1]

				if top == TokenLParen {
					closed = true

					break
				}

				if err := reduce(top); err != nil {
					return nil, err
				}
			}

			if !closed {
				return nil, &ExpressionError{Reason: "unmatched right parenthesis"}
			}

		case TokenPlus, TokenMinus, TokenMul, TokenDiv:
			for len(operators) > 0 {
				top := operators[len(operators)-1]
				if top == TokenLParen || precedence[top] < precedence[tok.Kind] {
					break
				}

				operators = operators[:len(operators)-1]

				if err := reduce(top); err != nil {
					return nil, err
				}
			}

			operators = append(operators, tok.Kind)
		}
	}

	for len(operators) > 0 {
		top := operators[len(operators)-1]
		operators = operators[:len(operators)-1]

		if top == TokenLParen {
			return nil, &ExpressionError{Reason: "unmatched left parenthesis"}
		}

		if err := reduce(top); err != nil {
			return nil, err
		}
	}

	switch len(operands) {
	case 1:
		return operands[0], nil
	case 0:
		return nil, &ExpressionError{Reason: "empty expression"}
	default:
		return nil, &ExpressionError{Reason: "missing operator"}
	}
}

// Evaluate folds an expression tree into a value, looking up operands in ns.
// Division by zero yields an IEEE-754 infinity or NaN.
func Evaluate(p Production, ns Namespace) (float64, error) {
	switch p := p.(type) {
	case Number:
		return p.Value, nil

	case Operand:
		value, ok := ns[p.Name]
		if !ok {
			return 0, &UndefinedNameError{Name: p.Name}
		}

		return value, nil

	case Binary:
		left, err := Evaluate(p.Left, ns)
		if err != nil {
			return 0, err
		}

		right, err := Evaluate(p.Right, ns)
		if err != nil {
			return 0, err
		}

		return p.Op.apply(left, right), nil

	case Unary:
		arg, err := Evaluate(p.Arg, ns)
		if err != nil {
			return 0, err
		}

		if p.Op == OpNeg {
			return -arg, nil
		}

		return p.Op.apply(0, arg), nil

	default:
		return 0, &ExpressionError{Reason: "unknown production"}
	}
}

func (op Operator) apply(left, right float64) float64 {
	switch op {
	case OpAdd:
		return left + right
	case OpSub:
		return left - right
	case OpMul:
		return left * right
	case OpDiv:
		return left / right
	case OpNeg:
		return -right
	default:
		panic("lang: invalid operator " + op.String())
	}
}

// Dependencies returns the sorted, distinct operand names in p.
func Dependencies(p Production) []string {
	var names []string

	var walk func(Production)

	walk = func(p Production) {
		switch p := p.(type) {
		case Operand:
			names = append(names, p.Name)
		case Binary:
			walk(p.Left)
			walk(p.Right)
		case Unary:
			walk(p.Arg)
		}
	}

	walk(p)
	slices.Sort(names)

	return slices.Compact(names)
}

// FormatValue renders a value the way definitions appear in compiled text:
// fixed-point with exactly two fractional digits.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatName renders a definition name the way references appear in
// compiled text.
func FormatName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
