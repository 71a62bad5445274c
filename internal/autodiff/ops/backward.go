package ops

import "math"

// Partials writes the local derivative of op with respect to each argument
// into dst and returns dst[:op.Arity()].
//
// args are the forward argument values and out is the forward result for
// those arguments. dst must have room for op.Arity() values; a nil dst
// allocates.
//
// Backward pass per operation:
//   - inp:  identity, d/dx = 1
//   - add:  d/da = 1, d/db = 1
//   - sub:  d/da = 1, d/db = -1
//   - mul:  d/da = b, d/db = a
//   - div:  d/da = 1/b, d/db = -a/b²
//   - pow:  d/da = b·a^(b-1), d/db = a^b·ln(a)
//
// Unary operations are listed on Derivative.
func Partials(op Op, args []float64, out float64, dst []float64) []float64 {
	arity := op.Arity()
	if len(args) != arity {
		panic("ops: " + op.String() + ": wrong number of arguments")
	}
	if cap(dst) < arity {
		dst = make([]float64, arity)
	}
	dst = dst[:arity]

	switch op {
	case Add:
		dst[0], dst[1] = 1, 1
	case Sub:
		dst[0], dst[1] = 1, -1
	case Mul:
		dst[0], dst[1] = args[1], args[0]
	case Div:
		a, b := args[0], args[1]
		dst[0] = 1 / b
		dst[1] = -a / (b * b)
	case Pow:
		a, b := args[0], args[1]
		dst[0] = b * math.Pow(a, b-1)
		// ln(a) is NaN for a < 0; it propagates.
		dst[1] = out * math.Log(a)
	default:
		dst[0] = Derivative(op, args[0], out)
	}
	return dst
}

// Derivative returns d op(x)/dx for a unary operation, where y = op(x).
//
// Backward pass per operation:
//   - sin:  cos(x)
//   - cos:  -sin(x)
//   - tan:  1/cos²(x)
//   - exp:  e^x, reusing y
//   - ln:   1/x
//   - sqrt: 1/(2√x)
//   - abs:  sign(x), with abs'(0) = 0
//   - neg:  -1
func Derivative(op Op, x, y float64) float64 {
	switch op {
	case Inp:
		return 1
	case Sin:
		return math.Cos(x)
	case Cos:
		return -math.Sin(x)
	case Tan:
		c := math.Cos(x)
		return 1 / (c * c)
	case Exp:
		return y
	case Ln:
		return 1 / x
	case Sqrt:
		return 1 / (2 * math.Sqrt(x))
	case Abs:
		return sign(x)
	case Neg:
		return -1
	default:
		panic("ops: " + op.String() + " is not a unary operation")
	}
}

// sign returns 1, -1 or 0 by the sign of x, and NaN for NaN.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	case x == 0:
		return 0
	default:
		return math.NaN()
	}
}
