package calc

import (
	"strconv"
	"strings"
)

// Node is a node in the syntax tree of an expression. The only
// implementations are *Number, *UnaryOp, and *BinaryOp.
type Node interface {
	// String formats the subtree with every term bracketed.
	String() string

	fmt(b *strings.Builder, square bool)
}

// Number is a numeric literal.
type Number struct {
	Value float64
	// Pos is the byte offset of the literal.
	Pos int
}

// UnaryOp is a sign applied to an operand.
type UnaryOp struct {
	Op      Sign
	Operand Node
	// Pos is the byte offset of the sign.
	Pos int
}

// BinaryOp is an arithmetic operation on two operands.
type BinaryOp struct {
	Op          ArithOp
	Left, Right Node
	// Pos is the byte offset of the operator.
	Pos int
}

// Sign is a unary prefix operator.
type Sign int8

const (
	signNone Sign = iota
	SignPlus
	SignMinus
)

func (s Sign) String() string {
	switch s {
	case SignPlus:
		return "+"
	case SignMinus:
		return "-"
	default:
		return "Sign(" + strconv.Itoa(int(s)) + ")"
	}
}

// ArithOp is a binary arithmetic operator.
type ArithOp int8

const (
	opNone ArithOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "ArithOp(" + strconv.Itoa(int(op)) + ")"
	}
}

func (n *Number) String() string   { return format(n) }
func (n *UnaryOp) String() string  { return format(n) }
func (n *BinaryOp) String() string { return format(n) }

func format(n Node) string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *Number) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	b.WriteByte(r)
}

func (n *UnaryOp) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(n.Op.String())
	n.Operand.fmt(b, !square)
	b.WriteByte(r)
}

func (n *BinaryOp) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	n.Left.fmt(b, !square)
	b.WriteString(" " + n.Op.String() + " ")
	n.Right.fmt(b, !square)
	b.WriteByte(r)
}

func brackets(square bool) (byte, byte) {
	if square {
		return '[', ']'
	}
	return '(', ')'
}
