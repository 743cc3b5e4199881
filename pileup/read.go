package pileup

import (
	"fmt"

	"github.com/grailbio/hts/sam"
)

var rgTag = sam.Tag{'R', 'G'}

// laneOf returns the read's lane: its RG aux tag when present.
func laneOf(r *sam.Record) string {
	if aux := r.AuxFields.Get(rgTag); aux != nil {
		if s, ok := aux.Value().(string); ok {
			return s
		}
	}
	return ""
}

// FromRecords builds the pileup over the 0-based reference position
// pos from the given alignments.  Reads without an aligned base at pos
// (including reads whose deletions span pos) are skipped.  Element
// order follows record order.
func FromRecords(records []*sam.Record, pos int) (Pileup, error) {
	var p Pileup
	for _, r := range records {
		elem, ok, err := elemAt(r, pos)
		if err != nil {
			return nil, err
		}
		if ok {
			p = append(p, elem)
		}
	}
	return p, nil
}

// elemAt walks the read's CIGAR to locate pos and extracts the
// observation there.  The indel-adjacency annotations belong to the
// last aligned base before the indel, matching the usual pileup
// convention for indels.
func elemAt(r *sam.Record, pos int) (Elem, bool, error) {
	cigar := r.Cigar
	seq := r.Seq.Expand()
	posInRef := r.Pos
	posInRead := 0
	for i, co := range cigar {
		cLen := co.Len()
		switch co.Type() {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
			if pos >= posInRef && pos < posInRef+cLen {
				off := pos - posInRef
				readIdx := posInRead + off
				if readIdx >= len(seq) {
					return Elem{}, false, fmt.Errorf("pileup.FromRecords: read %s: CIGAR walks past sequence end", r.Name)
				}
				elem := Elem{
					Base: seq[readIdx],
					Lane: laneOf(r),
				}
				if readIdx < len(r.Qual) {
					elem.Qual = r.Qual[readIdx]
				}
				if off == cLen-1 && i+1 < len(cigar) {
					switch next := cigar[i+1]; next.Type() {
					case sam.CigarInsertion:
						if readIdx+1+next.Len() > len(seq) {
							return Elem{}, false, fmt.Errorf("pileup.FromRecords: read %s: insertion walks past sequence end", r.Name)
						}
						elem.BeforeInsertion = true
						elem.IndelLen = next.Len()
						elem.Inserted = seq[readIdx+1 : readIdx+1+next.Len()]
					case sam.CigarDeletion:
						elem.BeforeDeletion = true
						elem.IndelLen = next.Len()
					}
				}
				return elem, true, nil
			}
			posInRef += cLen
			posInRead += cLen
		case sam.CigarInsertion, sam.CigarSoftClipped:
			posInRead += cLen
		case sam.CigarDeletion, sam.CigarSkipped:
			posInRef += cLen
		case sam.CigarHardClipped, sam.CigarPadded:
			// No bases consumed on either side.
		default:
			return Elem{}, false, fmt.Errorf("pileup.FromRecords: read %s: unexpected CIGAR code %v", r.Name, co)
		}
		if posInRef > pos {
			// Deletions/skips past pos: the read has no base there.
			break
		}
	}
	return Elem{}, false, nil
}
