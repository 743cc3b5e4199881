package genotype

import "github.com/grailbio/ploidy/errormodel"

// Kind discriminates the two evidence regimes.
type Kind int

const (
	// ReadLikelihoods evidence is a read-by-allele log10 likelihood
	// matrix from probabilistic read-haplotype alignment, used when no
	// reference-sample error model is available.
	ReadLikelihoods Kind = iota
	// AlleleCounts evidence is a per-allele observation count vector
	// paired with the lane's site error model (pooled sequencing with
	// a reference sample).
	AlleleCounts
)

// Evidence is one lane's aggregated observations, handed from an
// aggregator to the Evaluator.  It is an explicit value rather than
// hidden aggregator state, so one aggregation call cannot silently
// clobber another's results.
type Evidence struct {
	Kind Kind

	// Matrix rows are reads and columns follow the allele list.  Set
	// in ReadLikelihoods mode.
	Matrix [][]float64

	// Counts has one entry per allele and Model is the lane's error
	// model.  Set in AlleleCounts mode.
	Counts []int
	Model  errormodel.Model
}
