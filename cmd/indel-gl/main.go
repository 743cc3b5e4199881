package main

/*
indel-gl computes pooled indel genotype likelihoods at a single locus.
Given a sorted, indexed BAM/PAM, a locus, and the candidate indel
alleles, it builds the locus pileup, counts allele-supporting reads per
lane against a phred error model, and reports the log10 likelihood of
every allele-count configuration over the pool's copy number.
*/

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	gbam "github.com/grailbio/bio/encoding/bam"
	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/ploidy/errormodel"
	"github.com/grailbio/ploidy/genotype"
	"github.com/grailbio/ploidy/genotype/indel"
	"github.com/grailbio/ploidy/pileup"
)

var (
	region      = flag.String("region", "", "Locus as <contig>:<1-based pos>; required")
	refAllele   = flag.String("ref", "", "Reference allele bases (anchor base included); required")
	altAlleles  = flag.String("alt", "", "Comma-separated alternate allele bases; required")
	copyNumber  = flag.Int("copy-number", 2, "Total chromosome copies in the pool (ploidy x samples)")
	qual        = flag.Int("qual", 30, "Quality score the site error model is concentrated on")
	bamIndex    = flag.String("index", "", "Input BAM index path. Defaults to bampath + .bai")
	ignoreLanes = flag.Bool("ignore-lanes", false, "Treat all lanes as one")
	maxReadSpan = flag.Int("max-read-span", 511, "Upper bound on size of reference-genome region a read maps to")
)

func usage() {
	fmt.Printf("Usage: %s [OPTIONS] {b,p}ampath\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func parseRegion(s string) (contig string, pos int, err error) {
	colon := strings.LastIndexByte(s, ':')
	if colon < 0 {
		return "", 0, fmt.Errorf("region %q not in <contig>:<pos> form", s)
	}
	contig = s[:colon]
	pos1, err := strconv.Atoi(s[colon+1:])
	if err != nil || pos1 < 1 {
		return "", 0, fmt.Errorf("bad position in region %q", s)
	}
	return contig, pos1 - 1, nil
}

func findRef(header *sam.Header, name string) (*sam.Reference, error) {
	for _, r := range header.Refs() {
		if r.Name() == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("reference %q not found in header", name)
}

// readLocus returns all records whose alignment can overlap the
// 0-based position pos on contig.
func readLocus(provider bamprovider.Provider, contig string, pos, maxSpan int) ([]*sam.Record, error) {
	header, err := provider.GetHeader()
	if err != nil {
		return nil, err
	}
	ref, err := findRef(header, contig)
	if err != nil {
		return nil, err
	}
	start := pos - maxSpan
	if start < 0 {
		start = 0
	}
	shard := gbam.Shard{
		StartRef: ref,
		EndRef:   ref,
		Start:    start,
		End:      pos + 1,
	}
	iter := provider.NewIterator(shard)
	var records []*sam.Record
	for iter.Scan() {
		r := iter.Record()
		if r.Flags&(sam.Unmapped|sam.Secondary|sam.Supplementary|sam.Duplicate|sam.QCFail) != 0 {
			continue
		}
		records = append(records, r)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return records, nil
}

func run(bampath string) (err error) {
	contig, pos, err := parseRegion(*region)
	if err != nil {
		return err
	}
	if *refAllele == "" || *altAlleles == "" {
		return fmt.Errorf("-ref and -alt are required")
	}
	alleles := genotype.AlleleList{{Bases: []byte(*refAllele), IsRef: true}}
	for _, alt := range strings.Split(*altAlleles, ",") {
		if alt == "" {
			return fmt.Errorf("empty alternate allele in %q", *altAlleles)
		}
		alleles = append(alleles, genotype.Allele{Bases: []byte(alt)})
	}

	provider := bamprovider.NewProvider(bampath, bamprovider.ProviderOpts{Index: *bamIndex})
	defer func() {
		if e := provider.Close(); e != nil && err == nil {
			err = e
		}
	}()
	records, err := readLocus(provider, contig, pos, *maxReadSpan)
	if err != nil {
		return err
	}
	p, err := pileup.FromRecords(records, pos)
	if err != nil {
		return err
	}
	log.Printf("%s: %d reads piled up at %s:%d", bampath, len(p), contig, pos+1)

	siteModel, err := errormodel.NewSingleQualModel(*qual)
	if err != nil {
		return err
	}
	laneOrder := p.Lanes()
	if len(laneOrder) == 0 {
		laneOrder = []string{""}
	}
	perLane := make(map[string]errormodel.Model, len(laneOrder))
	for _, lane := range laneOrder {
		perLane[lane] = siteModel
	}
	model, err := indel.NewModel(alleles, *copyNumber, perLane, laneOrder,
		*ignoreLanes, nil, nil, indel.RefContext{Base: []byte(*refAllele)[0]}, nil)
	if err != nil {
		return err
	}

	w := tsv.NewWriter(os.Stdout)
	w.WriteString("LANE")
	w.WriteString("CONFIGURATION")
	w.WriteString("LOG10_LIK")
	if err = w.EndLine(); err != nil {
		return err
	}

	// laneOrder came from the pileup itself, so no lane is empty and
	// the sink fires once per laneOrder entry (once total when lanes
	// are ignored).
	laneIdx := 0
	n, err := model.Aggregate(p, func(ev *genotype.Evidence) error {
		lane := laneOrder[laneIdx]
		if *ignoreLanes {
			lane = "*"
		}
		laneIdx++
		var evalErr error
		genotype.EnumerateConfigurations(len(alleles), *copyNumber, func(counts []int) {
			if evalErr != nil {
				return
			}
			ac := genotype.NewACset(append([]int(nil), counts...))
			lik, e := model.Evaluator().EvaluateConfiguration(ac, ev)
			if e != nil {
				evalErr = e
				return
			}
			parts := make([]string, len(counts))
			for i, c := range counts {
				parts[i] = strconv.Itoa(c)
			}
			w.WriteString(lane)
			w.WriteString(strings.Join(parts, ","))
			w.WriteString(strconv.FormatFloat(lik, 'g', -1, 64))
			evalErr = w.EndLine()
		})
		return evalErr
	})
	if err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	log.Printf("%d evidence units processed", n)
	return nil
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one positional argument ({b,p}ampath) expected; please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
	}
	if err := run(flag.Arg(0)); err != nil {
		log.Fatalf("%v", err)
	}
}
