package cache

import "sort"

// Cache provides access to transcript models for variant annotation.
// Add all transcripts first; the per-chromosome index is rebuilt lazily on
// the first lookup after a change. A Cache is safe for concurrent lookups
// once Build has been called.
type Cache struct {
	transcripts map[string][]*Transcript
	trees       map[string]*IntervalTree
	byID        map[string]*Transcript
	byGene      map[string][]*Transcript
}

// New creates a new empty cache.
func New() *Cache {
	return &Cache{
		transcripts: make(map[string][]*Transcript),
		trees:       make(map[string]*IntervalTree),
		byID:        make(map[string]*Transcript),
		byGene:      make(map[string][]*Transcript),
	}
}

// AddTranscript adds a transcript to the cache.
func (c *Cache) AddTranscript(t *Transcript) {
	chrom := t.Chrom
	c.transcripts[chrom] = append(c.transcripts[chrom], t)
	c.byID[t.ID] = t
	if t.GeneName != "" {
		c.byGene[t.GeneName] = append(c.byGene[t.GeneName], t)
	}
	delete(c.trees, chrom)
}

// Build indexes every chromosome. Call it before sharing the cache
// between goroutines.
func (c *Cache) Build() {
	for chrom := range c.transcripts {
		c.tree(chrom)
	}
}

func (c *Cache) tree(chrom string) *IntervalTree {
	tree, ok := c.trees[chrom]
	if !ok {
		tree = BuildIntervalTree(c.transcripts[chrom])
		c.trees[chrom] = tree
	}
	return tree
}

// FindTranscripts returns all transcripts that overlap a given genomic position.
func (c *Cache) FindTranscripts(chrom string, pos int64) []*Transcript {
	if _, ok := c.transcripts[chrom]; !ok {
		return nil
	}
	return c.tree(chrom).FindOverlaps(pos)
}

// FindTranscriptsInRange returns all transcripts overlapping [start, end].
func (c *Cache) FindTranscriptsInRange(chrom string, start, end int64) []*Transcript {
	if _, ok := c.transcripts[chrom]; !ok {
		return nil
	}
	return c.tree(chrom).FindRangeOverlaps(start, end)
}

// GetTranscript returns a specific transcript by ID, or nil if not found.
func (c *Cache) GetTranscript(id string) *Transcript {
	return c.byID[id]
}

// FindTranscriptsByGene returns all transcripts of a gene, in load order.
func (c *Cache) FindTranscriptsByGene(gene string) []*Transcript {
	return c.byGene[gene]
}

// TranscriptCount returns the total number of transcripts in the cache.
func (c *Cache) TranscriptCount() int {
	count := 0
	for _, transcripts := range c.transcripts {
		count += len(transcripts)
	}
	return count
}

// Chromosomes returns a sorted list of chromosomes in the cache.
func (c *Cache) Chromosomes() []string {
	chroms := make([]string, 0, len(c.transcripts))
	for chrom := range c.transcripts {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}

// FindTranscriptsByChrom returns all transcripts for a chromosome.
func (c *Cache) FindTranscriptsByChrom(chrom string) []*Transcript {
	return c.transcripts[chrom]
}
