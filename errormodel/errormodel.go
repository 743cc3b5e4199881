// Package errormodel defines the per-lane, per-site sequencing error
// model contract consumed by the pooled genotype likelihood
// calculators.  A model answers two questions about one genomic site:
// which base-quality scores matter there, and how likely each of them
// is to be observed.
//
// Building a model from reference-sample data is a pipeline concern
// and lives elsewhere; SiteModel below is a direct parameterization
// used when the quality distribution is already known.
package errormodel

import (
	"fmt"
	"math"
)

// Model is the per-lane error model for one site.
type Model interface {
	// MinQual and MaxQual bound the inclusive quality-score range
	// considered significant at this site.
	MinQual() int
	MaxQual() int
	// ErrorProb returns the sequencing error probability at quality q.
	ErrorProb(q int) float64
	// Log10QualDist returns the log10 probabilities of observing each
	// quality score in [minQ, maxQ] at this site, in ascending quality
	// order.
	//
	// REQUIRES: MinQual() <= minQ <= maxQ <= MaxQual().
	Log10QualDist(minQ, maxQ int) []float64
}

// SiteModel is a Model backed by an explicit quality-score histogram,
// with phred-scale error rates (e(q) = 10^(-q/10)).
type SiteModel struct {
	minQual, maxQual int
	log10Dist        []float64 // indexed by q - minQual
}

// NewSiteModel builds a SiteModel over the inclusive quality range
// [minQual, maxQual].  qualDist holds one probability per quality
// score in that range, in ascending order; entries may be zero but the
// vector must not be: an empty significant-quality range has no
// meaning here.
func NewSiteModel(minQual, maxQual int, qualDist []float64) (*SiteModel, error) {
	if minQual < 0 || maxQual < minQual {
		return nil, fmt.Errorf("errormodel.NewSiteModel: invalid quality range [%d, %d]", minQual, maxQual)
	}
	if len(qualDist) != maxQual-minQual+1 {
		return nil, fmt.Errorf("errormodel.NewSiteModel: %d probabilities for quality range [%d, %d]", len(qualDist), minQual, maxQual)
	}
	m := &SiteModel{
		minQual:   minQual,
		maxQual:   maxQual,
		log10Dist: make([]float64, len(qualDist)),
	}
	for i, p := range qualDist {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("errormodel.NewSiteModel: probability %v for quality %d out of [0, 1]", p, minQual+i)
		}
		m.log10Dist[i] = math.Log10(p) // log10(0) = -Inf: quality never observed
	}
	return m, nil
}

// NewSingleQualModel returns a SiteModel concentrated on one quality
// score, mostly useful in tests and in tools that assume uniform base
// quality.
func NewSingleQualModel(q int) (*SiteModel, error) {
	return NewSiteModel(q, q, []float64{1.0})
}

// MinQual implements Model.
func (m *SiteModel) MinQual() int { return m.minQual }

// MaxQual implements Model.
func (m *SiteModel) MaxQual() int { return m.maxQual }

// ErrorProb implements Model with the phred scale.
func (m *SiteModel) ErrorProb(q int) float64 {
	return math.Pow(10, -float64(q)/10)
}

// Log10QualDist implements Model.
func (m *SiteModel) Log10QualDist(minQ, maxQ int) []float64 {
	if minQ < m.minQual || maxQ > m.maxQual || minQ > maxQ {
		panic(fmt.Sprintf("errormodel.Log10QualDist: range [%d, %d] outside model range [%d, %d]", minQ, maxQ, m.minQual, m.maxQual))
	}
	return m.log10Dist[minQ-m.minQual : maxQ-m.minQual+1]
}
