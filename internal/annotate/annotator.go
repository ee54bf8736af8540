package annotate

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-hgvs/internal/cache"
	"github.com/inodb/vibe-hgvs/internal/hgvs"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// ErrUnsupportedAllele is returned for symbolic or non-nucleotide alleles.
var ErrUnsupportedAllele = errors.New("unsupported allele")

// TranscriptLookup defines the interface for finding transcripts over an interval.
type TranscriptLookup interface {
	FindTranscriptsInRange(chrom string, start, end int64) []*cache.Transcript
}

// Annotator annotates variants with splice classification and HGVSc.
type Annotator struct {
	cache   TranscriptLookup
	splice  *SpliceClassifier
	workers int
	logger  *zap.Logger
}

// NewAnnotator creates a new annotator with the given cache.
func NewAnnotator(c TranscriptLookup) *Annotator {
	return &Annotator{
		cache:  c,
		splice: NewSpliceClassifier(DefaultSpliceThreshold),
		logger: zap.NewNop(),
	}
}

// SetSpliceThreshold sets the splice window size in bases.
func (a *Annotator) SetSpliceThreshold(threshold int) {
	a.splice = NewSpliceClassifier(threshold)
	a.splice.SetLogger(a.logger)
}

// SetWorkers sets the number of AnnotateAll workers. Zero uses runtime.NumCPU().
func (a *Annotator) SetWorkers(n int) {
	a.workers = n
}

// SetLogger sets the logger for warning and info messages.
func (a *Annotator) SetLogger(l *zap.Logger) {
	a.logger = l
	a.splice.SetLogger(l)
}

// Annotate annotates a single variant and returns one annotation per
// overlapping transcript, or a single intergenic annotation.
func (a *Annotator) Annotate(v *vcf.Variant) ([]*Annotation, error) {
	if !isNucleotides(v.Ref) || !isNucleotides(v.Alt) {
		return nil, fmt.Errorf("%w: %s>%s", ErrUnsupportedAllele, v.Ref, v.Alt)
	}
	l := v.Locus()
	if l.Ref == "" && l.Alt == "" {
		return nil, ErrNoChange
	}

	variantID := FormatVariantID(v.Chrom, v.Pos, v.Ref, v.Alt)
	transcripts := a.cache.FindTranscriptsInRange(l.Chrom, l.Start, l.End)
	if len(transcripts) == 0 {
		ann := &Annotation{
			VariantID:   variantID,
			Consequence: ConsequenceIntergenicVariant,
			Impact:      GetImpact(ConsequenceIntergenicVariant),
			Allele:      v.Alt,
		}
		return []*Annotation{ann}, nil
	}

	annotations := make([]*Annotation, 0, len(transcripts))
	for _, t := range transcripts {
		annotations = append(annotations, a.annotateTranscript(variantID, v, l, t))
	}
	return annotations, nil
}

func (a *Annotator) annotateTranscript(variantID string, v *vcf.Variant, l vcf.Locus, t *cache.Transcript) *Annotation {
	ann := &Annotation{
		VariantID:    variantID,
		TranscriptID: t.ID,
		GeneName:     t.GeneName,
		Allele:       v.Alt,
	}

	// The first exon whose windows are hit wins.
	for k := range t.Exons {
		sa, err := a.splice.Annotate(t, k, l)
		if err != nil {
			a.logTranscriptError("splice annotation skipped", t, err)
			break
		}
		if sa != nil {
			ann.Splice = sa
			ann.Classification = Splice
			break
		}
	}

	hgvsc, err := FormatHGVSc(l, t)
	if err != nil {
		a.logTranscriptError("HGVSc skipped", t, err)
	}
	ann.HGVSc = hgvsc

	if ann.Splice != nil {
		ann.Consequence = ann.Splice.Kind.Consequence()
	} else {
		ann.Consequence = locusConsequence(l, t)
	}
	ann.Impact = GetImpact(ann.Consequence)
	ann.ExonNumber, ann.IntronNumber = exonIntronNumbers(l, t)
	return ann
}

// logTranscriptError reports a per-transcript failure. Reverse-strand
// transcripts are expected and logged at debug level.
func (a *Annotator) logTranscriptError(msg string, t *cache.Transcript, err error) {
	var strandErr *hgvs.UnsupportedStrandError
	if errors.As(err, &strandErr) {
		a.logger.Debug(msg, zap.String("transcript", t.ID), zap.Error(err))
		return
	}
	a.logger.Warn(msg, zap.String("transcript", t.ID), zap.Error(err))
}

func isNucleotides(s string) bool {
	if s == "-" {
		return true
	}
	return strings.Trim(s, "ACGTN") == ""
}

// AnnotateAll annotates all variants from a parser.
// Variants that cannot be annotated are logged and skipped. Cancelling ctx
// stops reading and returns ctx.Err() without flushing the writer.
func (a *Annotator) AnnotateAll(ctx context.Context, parser vcf.VariantParser, writer AnnotationWriter) error {
	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := a.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	items := make(chan WorkItem, 2*workers)
	var parseErr error
	variantCount := 0

	go func() {
		defer close(items)
		for seq := 0; ; seq++ {
			v, err := parser.Next()
			if err != nil {
				parseErr = fmt.Errorf("read variant: %w", err)
				return
			}
			if v == nil {
				return
			}
			select {
			case items <- WorkItem{Seq: seq, Variant: v}:
				variantCount++
			case <-ctx.Done():
				return
			}
		}
	}()

	results := a.ParallelAnnotate(ctx, items, workers)

	spliceCount := 0
	err := OrderedCollect(ctx, results, func(r WorkResult) error {
		if r.Err != nil {
			a.logger.Warn("failed to annotate variant",
				zap.String("chrom", r.Variant.Chrom),
				zap.Int64("pos", r.Variant.Pos),
				zap.Error(r.Err))
			return nil
		}
		for _, ann := range r.Anns {
			if ann.Classification == Splice {
				spliceCount++
			}
			if err := writer.Write(r.Variant, ann); err != nil {
				cancel()
				return fmt.Errorf("write annotation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if parseErr != nil {
		return parseErr
	}

	a.logger.Info("annotation complete",
		zap.Int("variants", variantCount),
		zap.Int("splice", spliceCount))

	return writer.Flush()
}

// AnnotationWriter defines the interface for writing annotations.
type AnnotationWriter interface {
	WriteHeader() error
	Write(v *vcf.Variant, ann *Annotation) error
	Flush() error
}
