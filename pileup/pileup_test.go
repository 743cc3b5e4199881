package pileup_test

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/ploidy/pileup"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/testutil/h"
)

func mustAux(t *testing.T, tag sam.Tag, value interface{}) sam.Aux {
	aux, err := sam.NewAux(tag, value)
	assert.NoError(t, err)
	return aux
}

func TestLanesAndForLane(t *testing.T) {
	p := pileup.Pileup{
		{Base: 'A', Lane: "L1"},
		{Base: 'C', Lane: "L2"},
		{Base: 'G', Lane: "L1"},
		{Base: 'T', Lane: "L3"},
	}
	expect.That(t, p.Lanes(), h.ElementsAre("L1", "L2", "L3"))
	expect.EQ(t, p.ForLane("L1"), pileup.Pileup{
		{Base: 'A', Lane: "L1"},
		{Base: 'G', Lane: "L1"},
	})
	expect.True(t, p.ForLane("nosuch").Empty())
	expect.False(t, p.Empty())
	expect.True(t, pileup.Pileup{}.Empty())
}

func TestFromRecords(t *testing.T) {
	ref, err := sam.NewReference("chr1", "", "", 10000, nil, nil)
	assert.NoError(t, err)

	tests := []struct {
		name string
		rec  sam.Record
		pos  int
		want pileup.Elem
		skip bool
	}{
		{
			name: "plain_match",
			rec: sam.Record{
				Name:  "r1",
				Ref:   ref,
				Pos:   100,
				Cigar: []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, 5)},
				Seq:   sam.NewSeq([]byte("ACGTA")),
				Qual:  []byte{30, 31, 32, 33, 34},
			},
			pos:  102,
			want: pileup.Elem{Base: 'G', Qual: 32},
		},
		{
			name: "before_deletion",
			rec: sam.Record{
				Name: "r2",
				Ref:  ref,
				Pos:  100,
				Cigar: []sam.CigarOp{
					sam.NewCigarOp(sam.CigarMatch, 3),
					sam.NewCigarOp(sam.CigarDeletion, 2),
					sam.NewCigarOp(sam.CigarMatch, 2),
				},
				Seq:  sam.NewSeq([]byte("ACGTA")),
				Qual: []byte{30, 30, 30, 30, 30},
			},
			pos:  102,
			want: pileup.Elem{Base: 'G', Qual: 30, BeforeDeletion: true, IndelLen: 2},
		},
		{
			name: "before_insertion",
			rec: sam.Record{
				Name: "r3",
				Ref:  ref,
				Pos:  100,
				Cigar: []sam.CigarOp{
					sam.NewCigarOp(sam.CigarMatch, 2),
					sam.NewCigarOp(sam.CigarInsertion, 2),
					sam.NewCigarOp(sam.CigarMatch, 3),
				},
				Seq:  sam.NewSeq([]byte("ACTTGTA")),
				Qual: []byte{30, 30, 30, 30, 30, 30, 30},
			},
			pos:  101,
			want: pileup.Elem{Base: 'C', Qual: 30, BeforeInsertion: true, IndelLen: 2, Inserted: []byte("TT")},
		},
		{
			name: "soft_clip_offset",
			rec: sam.Record{
				Name: "r4",
				Ref:  ref,
				Pos:  100,
				Cigar: []sam.CigarOp{
					sam.NewCigarOp(sam.CigarSoftClipped, 2),
					sam.NewCigarOp(sam.CigarMatch, 3),
				},
				Seq:  sam.NewSeq([]byte("NNACG")),
				Qual: []byte{2, 2, 30, 30, 30},
			},
			pos:  101,
			want: pileup.Elem{Base: 'C', Qual: 30},
		},
		{
			name: "deletion_spans_pos",
			rec: sam.Record{
				Name: "r5",
				Ref:  ref,
				Pos:  100,
				Cigar: []sam.CigarOp{
					sam.NewCigarOp(sam.CigarMatch, 2),
					sam.NewCigarOp(sam.CigarDeletion, 3),
					sam.NewCigarOp(sam.CigarMatch, 3),
				},
				Seq:  sam.NewSeq([]byte("ACGTA")),
				Qual: []byte{30, 30, 30, 30, 30},
			},
			pos:  103,
			skip: true,
		},
		{
			name: "read_ends_before_pos",
			rec: sam.Record{
				Name:  "r6",
				Ref:   ref,
				Pos:   100,
				Cigar: []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, 3)},
				Seq:   sam.NewSeq([]byte("ACG")),
				Qual:  []byte{30, 30, 30},
			},
			pos:  200,
			skip: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pileup.FromRecords([]*sam.Record{&tt.rec}, tt.pos)
			assert.NoError(t, err)
			if tt.skip {
				expect.True(t, p.Empty(), "expected no element for %s", tt.name)
				return
			}
			assert.EQ(t, len(p), 1)
			expect.EQ(t, p[0], tt.want)
		})
	}
}

func TestFromRecordsLane(t *testing.T) {
	ref, err := sam.NewReference("chr1", "", "", 10000, nil, nil)
	assert.NoError(t, err)
	rec := &sam.Record{
		Name:  "r1",
		Ref:   ref,
		Pos:   100,
		Cigar: []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, 3)},
		Seq:   sam.NewSeq([]byte("ACG")),
		Qual:  []byte{30, 30, 30},
	}
	rec.AuxFields = sam.AuxFields{mustAux(t, sam.Tag{'R', 'G'}, "lane7")}

	p, err := pileup.FromRecords([]*sam.Record{rec}, 101)
	assert.NoError(t, err)
	assert.EQ(t, len(p), 1)
	expect.EQ(t, p[0].Lane, "lane7")
}
