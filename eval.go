package calc

// Eval computes the value of a syntax tree. The only possible error is an
// *EvalError for division by zero; other overflows produce infinities as
// usual for float64.
func Eval(n Node) (float64, error) {
	switch n := n.(type) {
	case *Number:
		return n.Value, nil
	case *UnaryOp:
		x, err := Eval(n.Operand)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case SignPlus:
			return x, nil
		case SignMinus:
			return -x, nil
		default:
			panic("calc: invalid sign " + n.Op.String())
		}
	case *BinaryOp:
		l, err := Eval(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := Eval(n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case OpAdd:
			return l + r, nil
		case OpSub:
			return l - r, nil
		case OpMul:
			return l * r, nil
		case OpDiv:
			// Only exact zero. Negative zero compares equal.
			if r == 0 {
				return 0, &EvalError{Col: n.Pos, Reason: "division by zero"}
			}
			return l / r, nil
		default:
			panic("calc: invalid operator " + n.Op.String())
		}
	default:
		panic("calc: invalid AST node")
	}
}
