// Package indel implements the indel-variant evaluation strategy for
// general-ploidy genotype likelihoods.  It aggregates a locus pileup
// into genotype.Evidence, either by counting allele-supporting
// elements against a lane error model or, absent error models, by
// delegating to a probabilistic read-haplotype aligner.
package indel

import "github.com/grailbio/ploidy/pileup"

// Haplotype is a candidate sequence used as a probabilistic-alignment
// target, one per allele in allele-list order.
type Haplotype struct {
	Bases []byte
}

// RefContext carries the reference sequence around the locus.
type RefContext struct {
	// Base is the reference base at the locus.
	Base byte
	// Window is the surrounding reference sequence handed to the
	// aligner.
	Window []byte
}

// ReadLikelihoodSink optionally collects per-read, per-allele log10
// likelihoods as the aligner produces them, for downstream per-read
// annotation.
type ReadLikelihoodSink interface {
	Add(readIndex, alleleIndex int, log10Lik float64)
}

// Aligner produces a read-by-haplotype log10 likelihood matrix for a
// pileup.  Row order must follow pileup order and column order the
// haplotype (allele-list) order; every row must have one column per
// haplotype.  The pair-HMM scoring engine implements this.
type Aligner interface {
	ReadHaplotypeLikelihoods(p pileup.Pileup, haplotypes []Haplotype, ref RefContext, eventLength int, sink ReadLikelihoodSink) [][]float64
}
