package vcf

// VariantParser is the interface for sources that yield variants one at a time.
type VariantParser interface {
	// Next reads the next variant.
	// Returns nil, nil when there are no more variants.
	Next() (*Variant, error)

	// Close closes the parser and releases resources.
	Close() error

	// LineNumber returns the current line number being processed.
	LineNumber() int
}

// SliceParser serves variants from memory, e.g. loci given on the command line.
type SliceParser struct {
	variants []*Variant
	next     int
}

// NewSliceParser creates a parser over the given variants.
func NewSliceParser(variants []*Variant) *SliceParser {
	return &SliceParser{variants: variants}
}

// Next returns the next variant or nil, nil when exhausted.
func (p *SliceParser) Next() (*Variant, error) {
	if p.next >= len(p.variants) {
		return nil, nil
	}
	v := p.variants[p.next]
	p.next++
	return v, nil
}

// Close is a no-op.
func (p *SliceParser) Close() error { return nil }

// LineNumber returns the 1-based index of the last variant returned.
func (p *SliceParser) LineNumber() int { return p.next }
