// Package genotype computes log10 likelihoods of allele-count
// configurations over a general-ploidy pool: the total copy number 2N
// may cover one diploid sample or many pooled samples.  Evidence comes
// in two regimes, a read-by-allele alignment likelihood matrix or
// per-allele observation counts paired with a site error model;
// Evaluator scores one configuration at a time against either.
//
// Variant-type-specific aggregation (how a pileup turns into
// Evidence) lives in subpackages; see genotype/indel.
package genotype

import (
	"bytes"

	"github.com/grailbio/base/errors"
)

// Allele is one candidate allele at a locus.  Indel alleles include
// the anchor base shared with the reference, so a deletion allele is
// shorter than the reference allele and an insertion allele longer.
type Allele struct {
	Bases []byte
	IsRef bool
}

// Equal reports whether two alleles have the same bases and reference
// status.
func (a Allele) Equal(b Allele) bool {
	return a.IsRef == b.IsRef && bytes.Equal(a.Bases, b.Bases)
}

// AlleleList is the ordered allele universe for one locus.  Order is
// significant: it defines the index space for every count vector and
// likelihood matrix in this package.
type AlleleList []Allele

// Reference returns the index of the reference allele.  A list without
// one is a construction bug in the caller, not bad input data; it is
// reported as an errors.Precondition error and evaluation must not
// proceed.
func (al AlleleList) Reference() (int, error) {
	for i, a := range al {
		if a.IsRef {
			return i, nil
		}
	}
	return -1, errors.E(errors.Precondition, "allele list contains no reference allele")
}
