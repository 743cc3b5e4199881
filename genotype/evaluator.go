package genotype

import (
	"fmt"
	"math"

	"github.com/grailbio/ploidy/errormodel"
	"github.com/grailbio/ploidy/logmath"
)

// Evaluator scores allele-count configurations against aggregated
// evidence for one (sample, locus) pair.  Instances hold per-locus
// state (the cached mismatch table) and must not be shared across
// goroutines; score each locus with its own Evaluator.
type Evaluator struct {
	alleles         AlleleList
	copyNumber      int
	log10CopyNumber float64

	// Q(count, q) = log10((count/2N)(1-e(q)) + (e(q)/3)((2N-count)/2N)):
	// the log10 probability of observing a base matching an allele
	// carried by `count` of the 2N chromosome copies, under error rate
	// e(q).  Built once per error model and reused across
	// configurations; lanes with different models trigger a rebuild.
	mismatch      [][]float64
	mismatchModel errormodel.Model
}

// NewEvaluator builds an Evaluator over a fixed allele list and copy
// number 2N.  The reference-allele invariant is verified up front so
// that evaluation can never start on a malformed allele list.
func NewEvaluator(alleles AlleleList, copyNumber int) (*Evaluator, error) {
	if _, err := alleles.Reference(); err != nil {
		return nil, err
	}
	if copyNumber <= 0 {
		return nil, fmt.Errorf("genotype.NewEvaluator: copy number must be positive, got %d", copyNumber)
	}
	return &Evaluator{
		alleles:         alleles,
		copyNumber:      copyNumber,
		log10CopyNumber: math.Log10(float64(copyNumber)),
	}, nil
}

// Alleles returns the evaluator's allele list.
func (e *Evaluator) Alleles() AlleleList { return e.alleles }

// CopyNumber returns the pool's total chromosome copy number 2N.
func (e *Evaluator) CopyNumber() int { return e.copyNumber }

// EvaluateConfiguration computes the log10 likelihood of the
// configuration ac given the evidence ev, stores it in
// ac.Log10Likelihood, and returns it.
//
// With ReadLikelihoods evidence, each read contributes
// log-sum-exp_k(matrix[r][k] + log10(counts[k]) - log10(2N)); the
// per-read values add up in log space.  A zero-count allele enters as
// log10(0) = -Inf and so drops out of the per-read log-sum-exp.
//
// With AlleleCounts evidence, each quality score q accumulates
// sum_k counts_observed[k] * Q(counts_hypothesis[k], q); the resulting
// per-quality vector is folded against the error model's quality
// distribution with a log-space dot product.
//
// Zero evidence (no matrix rows, or all-zero observation counts) gives
// a log10 likelihood of 0: no evidence, no penalty.
func (e *Evaluator) EvaluateConfiguration(ac *ACset, ev *Evidence) (float64, error) {
	if len(ac.Counts) != len(e.alleles) {
		return 0, fmt.Errorf("genotype.EvaluateConfiguration: %d counts for %d alleles", len(ac.Counts), len(e.alleles))
	}
	for i, c := range ac.Counts {
		if c < 0 {
			return 0, fmt.Errorf("genotype.EvaluateConfiguration: negative count %d for allele %d", c, i)
		}
	}
	if got := ac.Sum(); got != e.copyNumber {
		return 0, fmt.Errorf("genotype.EvaluateConfiguration: configuration sums to %d, want copy number %d", got, e.copyNumber)
	}
	var p1 float64
	switch ev.Kind {
	case ReadLikelihoods:
		acc := make([]float64, len(e.alleles))
		for r, row := range ev.Matrix {
			if len(row) != len(e.alleles) {
				return 0, fmt.Errorf("genotype.EvaluateConfiguration: matrix row %d has %d columns for %d alleles", r, len(row), len(e.alleles))
			}
			for k := range acc {
				acc[k] = row[k] + logmath.Log10(ac.Counts[k]) - e.log10CopyNumber
			}
			p1 += logmath.Log10SumLog10(acc)
		}
	case AlleleCounts:
		if len(ev.Counts) != len(e.alleles) {
			return 0, fmt.Errorf("genotype.EvaluateConfiguration: %d observation counts for %d alleles", len(ev.Counts), len(e.alleles))
		}
		minQ, maxQ := ev.Model.MinQual(), ev.Model.MaxQual()
		table := e.mismatchTable(ev.Model)
		acVec := make([]float64, maxQ-minQ+1)
		for q := minQ; q <= maxQ; q++ {
			for i, n := range ev.Counts {
				acVec[q-minQ] += float64(n) * table[ac.Counts[i]][q-minQ]
			}
		}
		p1 = logmath.LogDotProduct(ev.Model.Log10QualDist(minQ, maxQ), acVec)
	default:
		return 0, fmt.Errorf("genotype.EvaluateConfiguration: unknown evidence kind %d", ev.Kind)
	}
	ac.Log10Likelihood = p1
	return p1, nil
}

// mismatchTable returns the Q table for model, rebuilding only when
// the model changes.
func (e *Evaluator) mismatchTable(model errormodel.Model) [][]float64 {
	if model == e.mismatchModel {
		return e.mismatch
	}
	minQ, maxQ := model.MinQual(), model.MaxQual()
	n2 := float64(e.copyNumber)
	t := make([][]float64, e.copyNumber+1)
	for count := range t {
		row := make([]float64, maxQ-minQ+1)
		f := float64(count) / n2
		for q := minQ; q <= maxQ; q++ {
			eq := model.ErrorProb(q)
			row[q-minQ] = math.Log10(f*(1-eq) + eq/3*(1-f))
		}
		t[count] = row
	}
	e.mismatch = t
	e.mismatchModel = model
	return t
}
