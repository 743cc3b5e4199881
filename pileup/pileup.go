// Package pileup represents the per-read observations aligned over a
// single genomic position, annotated with everything the indel
// genotype likelihood calculators need: the observed base and quality,
// the sequencing lane, and whether an indel starts immediately after
// the base.
package pileup

// Elem is a single aligned-read observation at a locus.
type Elem struct {
	// Base is the read base aligned to the locus (ASCII).
	Base byte
	// Qual is the base quality.
	Qual byte
	// Lane identifies the sequencing lane (read group) the read came
	// from.  Empty when unknown.
	Lane string

	// BeforeDeletion is set when a deletion starts immediately after
	// this base in the read's alignment.
	BeforeDeletion bool
	// BeforeInsertion is set when an insertion follows immediately
	// after this base.
	BeforeInsertion bool
	// Inserted holds the inserted bases when BeforeInsertion is set.
	Inserted []byte
	// IndelLen is the length of the immediately following indel, 0
	// when there is none.
	IndelLen int
}

// Pileup is an ordered sequence of per-read observations over one
// genomic position.  Order is significant: it fixes the floating-point
// summation order downstream, and with it bit-level reproducibility.
type Pileup []Elem

// Empty reports whether the pileup contains no observations.
func (p Pileup) Empty() bool { return len(p) == 0 }

// Lanes returns the distinct lane IDs present in the pileup, in
// first-appearance order.
func (p Pileup) Lanes() []string {
	var lanes []string
	seen := make(map[string]bool)
	for _, e := range p {
		if !seen[e.Lane] {
			seen[e.Lane] = true
			lanes = append(lanes, e.Lane)
		}
	}
	return lanes
}

// ForLane returns the sub-pileup of observations from one lane,
// preserving order.
func (p Pileup) ForLane(lane string) Pileup {
	var sub Pileup
	for _, e := range p {
		if e.Lane == lane {
			sub = append(sub, e)
		}
	}
	return sub
}
