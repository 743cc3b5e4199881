// Package logmath provides log10-space numeric primitives shared by the
// genotype likelihood calculators.  Everything operates on log10
// probabilities: variant-calling likelihoods routinely underflow float64
// in linear space, so values only leave log space inside max-shifted
// summations.
package logmath

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// log10 of integer allele counts is needed once per (read, allele) pair
// in the inner evaluation loops, so small values are precomputed.
// Index 0 holds -Inf: a zero-count allele carries probability 0.
const log10CacheSize = 1024

var log10Cache [log10CacheSize]float64

func init() {
	log10Cache[0] = math.Inf(-1)
	for i := 1; i < log10CacheSize; i++ {
		log10Cache[i] = math.Log10(float64(i))
	}
}

// Log10 returns log10(n) for a non-negative integer n.  Log10(0) is
// -Inf.
func Log10(n int) float64 {
	if n < 0 {
		panic("logmath.Log10: negative argument")
	}
	if n < log10CacheSize {
		return log10Cache[n]
	}
	return math.Log10(float64(n))
}

// Log10SumLog10 returns log10(sum_i 10^v[i]) without leaving log space
// for the full sum.  The max element is factored out first so that the
// remaining exponentials stay in [0, 1].  An empty or all--Inf input
// (total probability 0) yields -Inf.
func Log10SumLog10(v []float64) float64 {
	if len(v) == 0 {
		return math.Inf(-1)
	}
	max := floats.Max(v)
	if math.IsInf(max, -1) {
		return max
	}
	sum := 0.0
	for _, x := range v {
		sum += math.Pow(10, x-max)
	}
	return max + math.Log10(sum)
}

// LogDotProduct combines two equal-length log10 probability vectors
// into log10(sum_i 10^(a[i]+b[i])), i.e. the log of the dot product of
// the underlying linear-space vectors.
func LogDotProduct(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("logmath.LogDotProduct: length mismatch")
	}
	if len(a) == 0 {
		return math.Inf(-1)
	}
	max := a[0] + b[0]
	for i := 1; i < len(a); i++ {
		if s := a[i] + b[i]; s > max {
			max = s
		}
	}
	if math.IsInf(max, -1) {
		return max
	}
	sum := 0.0
	for i := range a {
		sum += math.Pow(10, a[i]+b[i]-max)
	}
	return max + math.Log10(sum)
}
