package ledger

// Movement is one debit/credit pair in chronological order.
type Movement struct {
	Debit  float64
	Credit float64
}

// RunningBalances returns the cumulative balance after each movement,
// starting from zero: balance[i] = balance[i-1] + debit[i] - credit[i].
func RunningBalances(moves []Movement) []float64 {
	out := make([]float64, len(moves))
	bal := 0.0
	for i, m := range moves {
		bal += m.Debit - m.Credit
		out[i] = bal
	}
	return out
}
