package ops

import "math"

// Forward computes the value of op applied to args.
//
// args must hold exactly op.Arity() values; for Inp the single value is the
// raw input already fetched by the caller. Forward panics on an arity
// mismatch, callers validate nodes before evaluating them.
func Forward(op Op, args []float64) float64 {
	if len(args) != op.Arity() {
		panic("ops: " + op.String() + ": wrong number of arguments")
	}

	switch op {
	case Inp:
		return args[0]
	case Add:
		return args[0] + args[1]
	case Sub:
		return args[0] - args[1]
	case Mul:
		return args[0] * args[1]
	case Div:
		return args[0] / args[1]
	case Pow:
		return math.Pow(args[0], args[1])
	default:
		return Unary(op, args[0])
	}
}

// Unary computes the value of a single-argument operation at x.
func Unary(op Op, x float64) float64 {
	switch op {
	case Inp:
		return x
	case Sin:
		return math.Sin(x)
	case Cos:
		return math.Cos(x)
	case Tan:
		return math.Tan(x)
	case Exp:
		return math.Exp(x)
	case Ln:
		return math.Log(x)
	case Sqrt:
		return math.Sqrt(x)
	case Abs:
		return math.Abs(x)
	case Neg:
		return -x
	default:
		panic("ops: " + op.String() + " is not a unary operation")
	}
}
