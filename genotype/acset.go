package genotype

// ACset is one allele-count configuration: Counts[i] chromosome copies
// carry allele i, and the counts sum to the pool's copy number 2N.
// Log10Likelihood is the configuration's single output slot, filled in
// by Evaluator.EvaluateConfiguration.
type ACset struct {
	Counts          []int
	Log10Likelihood float64
}

// NewACset wraps a count vector in an ACset.  The counts are not
// copied.
func NewACset(counts []int) *ACset {
	return &ACset{Counts: counts}
}

// Sum returns the total number of chromosome copies in the
// configuration.
func (ac *ACset) Sum() int {
	n := 0
	for _, c := range ac.Counts {
		n += c
	}
	return n
}

// EnumerateConfigurations calls fn once for every vector of nAlleles
// non-negative counts summing to copyNumber, in descending
// lexicographic order of the leading counts.  The slice passed to fn
// is reused between calls; copy it to retain it.
func EnumerateConfigurations(nAlleles, copyNumber int, fn func(counts []int)) {
	if nAlleles == 0 {
		return
	}
	counts := make([]int, nAlleles)
	var rec func(idx, left int)
	rec = func(idx, left int) {
		if idx == nAlleles-1 {
			counts[idx] = left
			fn(counts)
			return
		}
		for c := left; c >= 0; c-- {
			counts[idx] = c
			rec(idx+1, left-c)
		}
	}
	rec(0, copyNumber)
}
