package annotate

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-hgvs/internal/cache"
	"github.com/inodb/vibe-hgvs/internal/hgvs"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// DefaultSpliceThreshold is the number of bases on each side of an
// exon/intron boundary that form the splice window.
const DefaultSpliceThreshold = 2

// Classification is the outcome of a splice boundary test.
type Classification int

const (
	NotSplice Classification = iota
	Splice
)

func (c Classification) String() string {
	if c == Splice {
		return "splice"
	}
	return "none"
}

// SpliceKind distinguishes the annotation forms of a splice hit.
type SpliceKind int

const (
	SpliceComplicated SpliceKind = iota
	SpliceDonor
	SpliceAcceptor
)

func (k SpliceKind) String() string {
	switch k {
	case SpliceDonor:
		return "donor"
	case SpliceAcceptor:
		return "acceptor"
	default:
		return "complicated"
	}
}

// Consequence returns the SO term for the splice hit.
func (k SpliceKind) Consequence() string {
	switch k {
	case SpliceDonor:
		return ConsequenceSpliceDonor
	case SpliceAcceptor:
		return ConsequenceSpliceAcceptor
	default:
		return ConsequenceSpliceRegion
	}
}

// SpliceAnnotation describes a variant that hit a splice window.
type SpliceAnnotation struct {
	Kind       SpliceKind
	Gene       string
	Transcript string
	ExonNumber int
	// Location, Ref and Alt are only set for donor and acceptor hits.
	Location hgvs.NucleotidePointLocation
	Ref      string
	Alt      string
}

// Change returns the coding substitution of a donor or acceptor hit, or
// nil for a complicated one.
func (a *SpliceAnnotation) Change() hgvs.NucleotideChange {
	if a.Kind == SpliceComplicated {
		return nil
	}
	return hgvs.NewNucleotideSubstitution(a.Location, a.Ref, a.Alt)
}

// String renders "GENE:TRANSCRIPT:exonN:c.100+1G>A", or
// "GENE:TRANSCRIPT:exonN:complicated splice mutation".
func (a *SpliceAnnotation) String() string {
	prefix := fmt.Sprintf("%s:%s:exon%d:", a.Gene, a.Transcript, a.ExonNumber)
	if c := a.Change(); c != nil {
		return prefix + hgvs.CodingDNA.Prefix() + hgvs.SerializeChange(c, hgvs.ThreeLetter)
	}
	return prefix + "complicated splice mutation"
}

// ParseSpliceAnnotation parses the text form produced by
// SpliceAnnotation.String.
func ParseSpliceAnnotation(s string) (*SpliceAnnotation, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) != 4 || !strings.HasPrefix(parts[2], "exon") {
		return nil, fmt.Errorf("invalid splice annotation %q", s)
	}
	exon, err := strconv.Atoi(strings.TrimPrefix(parts[2], "exon"))
	if err != nil || exon < 1 {
		return nil, fmt.Errorf("invalid exon number in splice annotation %q", s)
	}
	ann := &SpliceAnnotation{
		Kind:       SpliceComplicated,
		Gene:       parts[0],
		Transcript: parts[1],
		ExonNumber: exon,
	}
	if parts[3] == "complicated splice mutation" {
		return ann, nil
	}

	body, ok := strings.CutPrefix(parts[3], hgvs.CodingDNA.Prefix())
	if !ok {
		return nil, fmt.Errorf("invalid splice annotation %q", s)
	}
	change, err := hgvs.ParseNucleotideChange(body)
	if err != nil {
		return nil, fmt.Errorf("splice annotation %q: %w", s, err)
	}
	sub, ok := change.(hgvs.NucleotideSubstitution)
	if !ok || sub.Position.Offset == 0 {
		return nil, fmt.Errorf("splice annotation %q is not an intronic substitution", s)
	}
	ann.Kind = SpliceDonor
	if sub.Position.Offset < 0 {
		ann.Kind = SpliceAcceptor
	}
	ann.Location = sub.Position
	ann.Ref = sub.FromNT
	ann.Alt = sub.ToNT
	return ann, nil
}

// SpliceClassifier decides whether a variant falls within the threshold
// window around an exon/intron boundary of a transcript.
//
// For exon k of N (zero-based), with 1-based inclusive exon coordinates:
//   - donor window  [End-T+1, End+T]   applies when k < N-1
//   - acceptor window [Start-T, Start+T-1] applies when k > 0
//
// A variant also counts when it spans an applicable boundary. Only
// forward-strand transcripts are classified.
type SpliceClassifier struct {
	threshold int64
	logger    *zap.Logger
}

// NewSpliceClassifier creates a classifier. A non-positive threshold
// selects DefaultSpliceThreshold.
func NewSpliceClassifier(threshold int) *SpliceClassifier {
	if threshold <= 0 {
		threshold = DefaultSpliceThreshold
	}
	return &SpliceClassifier{threshold: int64(threshold), logger: zap.NewNop()}
}

// SetLogger sets the logger used for unsupported-strand diagnostics.
func (c *SpliceClassifier) SetLogger(logger *zap.Logger) {
	c.logger = logger
}

// Threshold returns the window size in bases.
func (c *SpliceClassifier) Threshold() int {
	return int(c.threshold)
}

// Classify tests the variant interval [start, end] against the windows of
// exon k. Positions of either convention are accepted.
func (c *SpliceClassifier) Classify(t *cache.Transcript, k int, start, end hgvs.GenomePosition) Classification {
	if t.IsReverseStrand() {
		c.logger.Warn("splice classification not implemented for reverse strand",
			zap.String("transcript", t.ID),
			zap.Int("exon", k+1))
		return NotSplice
	}

	n := len(t.Exons)
	if n < 2 || k < 0 || k >= n {
		return NotSplice
	}

	s := start.Normalized().Pos
	e := end.Normalized().Pos
	if s > e {
		s, e = e, s
	}

	exon := t.Exons[k]
	hasDonor := k < n-1
	hasAcceptor := k > 0
	inWindow := func(p int64) bool {
		if hasDonor && p >= exon.End-c.threshold+1 && p <= exon.End+c.threshold {
			return true
		}
		return hasAcceptor && p >= exon.Start-c.threshold && p <= exon.Start+c.threshold-1
	}

	if inWindow(s) || inWindow(e) {
		return Splice
	}
	if hasDonor && s <= exon.End && e >= exon.End {
		return Splice
	}
	if hasAcceptor && s <= exon.Start && e >= exon.Start {
		return Splice
	}
	return NotSplice
}

// Annotate classifies a locus against exon k and describes the hit. It
// returns nil when the locus is not splice.
//
// A single-base change downstream of the CDS start in the intronic part of
// a window is reported as donor ("c.100+1G>A") or acceptor ("c.101-1C>T");
// every other hit is a complicated splice mutation.
func (c *SpliceClassifier) Annotate(t *cache.Transcript, k int, l vcf.Locus) (*SpliceAnnotation, error) {
	if t.IsReverseStrand() {
		return nil, &hgvs.UnsupportedStrandError{TranscriptID: t.ID, Strand: t.Strand}
	}
	if c.Classify(t, k, l.GenomeStart(), l.GenomeEnd()) != Splice {
		return nil, nil
	}

	exon := t.Exons[k]
	ann := &SpliceAnnotation{
		Kind:       SpliceComplicated,
		Gene:       t.GeneName,
		Transcript: t.ID,
		ExonNumber: exonNumber(t, k),
	}
	if !l.IsSingleBase() || !t.IsProteinCoding() || l.Start < t.CDSStart {
		return ann, nil
	}

	var anchor int64
	switch {
	case k > 0 && l.Start >= exon.Start-c.threshold && l.Start < exon.Start:
		ann.Kind = SpliceAcceptor
		anchor = exon.Start
	case k < len(t.Exons)-1 && l.Start > exon.End && l.Start <= exon.End+c.threshold:
		ann.Kind = SpliceDonor
		anchor = exon.End
	default:
		return ann, nil
	}

	loc, err := CDSLocation(hgvs.NewGenomePosition(l.Chrom, anchor, hgvs.OneBased), t)
	if err != nil {
		return nil, err
	}
	ann.Location = loc.WithOffset(l.Start - anchor)
	ann.Ref = l.Ref
	ann.Alt = l.Alt
	return ann, nil
}

// exonNumber returns the 1-based transcript-order number of exon k.
func exonNumber(t *cache.Transcript, k int) int {
	if n := t.Exons[k].Number; n > 0 {
		return n
	}
	return k + 1
}
