package indel

import (
	"fmt"

	"github.com/grailbio/ploidy/errormodel"
	"github.com/grailbio/ploidy/genotype"
	"github.com/grailbio/ploidy/pileup"
)

// Model evaluates indel genotype likelihoods over a general-ploidy
// pool at one locus.  Construct one per (sample, locus) and discard it
// after the locus is processed; instances are not safe for concurrent
// use.
type Model struct {
	eval *genotype.Evaluator

	perLaneModels map[string]errormodel.Model
	laneOrder     []string
	ignoreLanes   bool

	aligner     Aligner
	haplotypes  []Haplotype
	refCtx      RefContext
	eventLength int
	readSink    ReadLikelihoodSink
}

var _ genotype.PoolModel = (*Model)(nil)

// NewModel builds an indel Model.
//
// laneOrder fixes the per-lane processing order and must list exactly
// the keys of perLaneModels: determinism of lane iteration is part of
// the contract, not a property of map iteration.  When perLaneModels
// is empty the model runs in alignment mode and aligner must be
// non-nil with one haplotype per allele.  readSink may be nil.
func NewModel(alleles genotype.AlleleList, copyNumber int,
	perLaneModels map[string]errormodel.Model, laneOrder []string,
	ignoreLaneInformation bool,
	aligner Aligner, haplotypes []Haplotype, refCtx RefContext,
	readSink ReadLikelihoodSink) (*Model, error) {

	eval, err := genotype.NewEvaluator(alleles, copyNumber)
	if err != nil {
		return nil, err
	}
	if len(laneOrder) != len(perLaneModels) {
		return nil, fmt.Errorf("indel.NewModel: lane order lists %d lanes, error models cover %d", len(laneOrder), len(perLaneModels))
	}
	for _, lane := range laneOrder {
		if _, ok := perLaneModels[lane]; !ok {
			return nil, fmt.Errorf("indel.NewModel: lane %q has no error model", lane)
		}
	}
	if len(perLaneModels) == 0 {
		if aligner == nil {
			return nil, fmt.Errorf("indel.NewModel: no error models and no aligner")
		}
		if len(haplotypes) != len(alleles) {
			return nil, fmt.Errorf("indel.NewModel: %d haplotypes for %d alleles", len(haplotypes), len(alleles))
		}
	}
	return &Model{
		eval:          eval,
		perLaneModels: perLaneModels,
		laneOrder:     laneOrder,
		ignoreLanes:   ignoreLaneInformation,
		aligner:       aligner,
		haplotypes:    haplotypes,
		refCtx:        refCtx,
		eventLength:   EventLength(alleles),
		readSink:      readSink,
	}, nil
}

// EventLength returns the length of the indel event implied by the
// allele list: the signed length difference between the first
// alternate allele and the reference allele (negative for deletions).
func EventLength(alleles genotype.AlleleList) int {
	refIdx := -1
	for i, a := range alleles {
		if a.IsRef {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		return 0
	}
	for i, a := range alleles {
		if i != refIdx {
			return len(a.Bases) - len(alleles[refIdx].Bases)
		}
	}
	return 0
}

// Evaluator implements genotype.PoolModel.
func (m *Model) Evaluator() *genotype.Evaluator { return m.eval }

// Aggregate implements genotype.PoolModel.  With no lane error models
// the whole pileup goes through the alignment path once.  Otherwise
// lanes are processed in laneOrder: each lane's sub-pileup (or the
// whole pileup when lane information is ignored) is counted against
// that lane's error model, empty sub-pileups are skipped, and when
// lane information is ignored only the first qualifying lane runs.
// Each lane's Evidence is handed to sink before the next lane starts.
// Returns the total number of evidence units processed.
func (m *Model) Aggregate(p pileup.Pileup, sink genotype.EvidenceSink) (int, error) {
	if len(m.perLaneModels) == 0 {
		return m.aggregateLane(p, nil, sink)
	}
	n := 0
	for _, lane := range m.laneOrder {
		sub := p
		if !m.ignoreLanes {
			sub = p.ForLane(lane)
		}
		if sub.Empty() {
			continue
		}
		nLane, err := m.aggregateLane(sub, m.perLaneModels[lane], sink)
		if err != nil {
			return n, err
		}
		n += nLane
		if m.ignoreLanes {
			break
		}
	}
	return n, nil
}

// aggregateLane aggregates one lane's sub-pileup.  A nil model selects
// the alignment path.
func (m *Model) aggregateLane(p pileup.Pileup, model errormodel.Model, sink genotype.EvidenceSink) (int, error) {
	alleles := m.eval.Alleles()
	var ev genotype.Evidence
	var n int
	if model == nil {
		matrix := m.aligner.ReadHaplotypeLikelihoods(p, m.haplotypes, m.refCtx, m.eventLength, m.readSink)
		for r, row := range matrix {
			if len(row) != len(alleles) {
				return 0, fmt.Errorf("indel.Aggregate: aligner row %d has %d columns for %d alleles", r, len(row), len(alleles))
			}
		}
		ev = genotype.Evidence{Kind: genotype.ReadLikelihoods, Matrix: matrix}
		n = len(matrix)
	} else {
		refIdx, err := alleles.Reference()
		if err != nil {
			return 0, err
		}
		refAllele := alleles[refIdx]
		counts := make([]int, len(alleles))
		for _, elt := range p {
			for i, allele := range alleles {
				if ElementMatches(elt, allele, refAllele, m.refCtx.Base) {
					counts[i]++
				}
			}
			n++
		}
		ev = genotype.Evidence{Kind: genotype.AlleleCounts, Counts: counts, Model: model}
	}
	if sink != nil {
		if err := sink(&ev); err != nil {
			return n, err
		}
	}
	return n, nil
}
