package genotype

import "github.com/grailbio/ploidy/pileup"

// EvidenceSink receives each lane's aggregated evidence.  The
// configuration orchestrator implements this to drive
// EvaluateConfiguration over the allele-count space as lanes finish
// aggregating.
type EvidenceSink func(ev *Evidence) error

// PoolModel is the per-variant-type evaluation strategy: indel today,
// with SNP as a natural sibling.  Implementations aggregate a locus
// pileup into Evidence and expose the Evaluator bound to their allele
// list and copy number.  One instance per (sample, locus), used by at
// most one goroutine at a time.
type PoolModel interface {
	// Aggregate ingests one locus pileup, hands each lane's Evidence
	// to sink, and returns the total number of evidence units (reads
	// or pileup elements) processed.
	Aggregate(p pileup.Pileup, sink EvidenceSink) (int, error)
	// Evaluator returns the configuration evaluator for this model.
	Evaluator() *Evaluator
}
