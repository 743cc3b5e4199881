package indel

import (
	"bytes"

	"github.com/grailbio/ploidy/genotype"
	"github.com/grailbio/ploidy/pileup"
)

// ElementMatches reports whether a pileup element's evidence supports
// allele.  refAllele anchors the indel length and base comparisons;
// refBase is the reference base at the locus.
//
// The reference allele is supported by a plain base call equal to the
// reference base with no adjacent indel.  A deletion allele (shorter
// than the reference allele) is supported by an element immediately
// before a deletion of the matching length.  An insertion allele
// (longer than the reference allele) is supported by an element
// immediately before an insertion whose bases equal the allele's bases
// past the shared anchor.
func ElementMatches(elt pileup.Elem, allele, refAllele genotype.Allele, refBase byte) bool {
	switch {
	case elt.BeforeInsertion:
		if allele.IsRef || len(allele.Bases) <= len(refAllele.Bases) {
			return false
		}
		if len(elt.Inserted) == 0 {
			return false
		}
		return bytes.Equal(elt.Inserted, allele.Bases[len(refAllele.Bases):])
	case elt.BeforeDeletion:
		if allele.IsRef || len(allele.Bases) >= len(refAllele.Bases) {
			return false
		}
		return elt.IndelLen == len(refAllele.Bases)-len(allele.Bases)
	default:
		return allele.IsRef && elt.Base == refBase
	}
}
