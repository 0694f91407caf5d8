package ports

// ExpressionEvaluator evaluates a single-variable expression at x.
// Implementations must be safe for concurrent use and must not cache sample values.
type ExpressionEvaluator interface {
	Evaluate(expr string, x float64) (float64, error)
}
