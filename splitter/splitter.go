// Package splitter tokenizes input text against boundary constraints before
// lattice parsing. It has two modes: splitting on a regular-expression
// pattern, and splitting on an ordered list of (morpheme, feature) pairs.
//
// Both modes guarantee that concatenating the chunks in order reproduces
// the input text exactly, so that byte-offset accounting downstream stays
// aligned with the encoded sentence.
package splitter

import (
	"fmt"
	"regexp"
)

// Chunk is one span of the input text. Matched marks spans that hit the
// constraint pattern (or one of the feature-list morphemes); Feature is set
// only in feature-list mode, for matched chunks.
type Chunk struct {
	Text    string
	Matched bool
	Feature string
}

// FeaturePair forces occurrences of Morpheme to be treated as a single
// token carrying Feature.
type FeaturePair struct {
	Morpheme string
	Feature  string
}

// SplitPattern scans text left to right with pattern. Every non-overlapping
// match becomes a matched chunk; the gaps before, between and after matches
// become unmatched chunks. Empty text yields no chunks. Zero-length matches
// are skipped.
func SplitPattern(text string, pattern *regexp.Regexp) []Chunk {
	if text == "" {
		return nil
	}
	var chunks []Chunk
	mark := 0
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		if mark < loc[0] {
			chunks = append(chunks, Chunk{Text: text[mark:loc[0]]})
		}
		chunks = append(chunks, Chunk{Text: text[loc[0]:loc[1]], Matched: true})
		mark = loc[1]
	}
	if mark < len(text) {
		chunks = append(chunks, Chunk{Text: text[mark:]})
	}
	return chunks
}

// SplitFeatures applies pairs in order. Each pair subdivides only the spans
// still unmatched; once a span is matched by an earlier pair, later pairs
// never re-split it (first match wins, not longest). Morphemes are matched
// literally, not as regular expressions.
func SplitFeatures(text string, pairs []FeaturePair) ([]Chunk, error) {
	if text == "" {
		return nil, nil
	}
	acc := []Chunk{{Text: text}}
	for _, p := range pairs {
		if p.Morpheme == "" {
			return nil, fmt.Errorf("splitter: empty morpheme in feature pair")
		}
		re, err := regexp.Compile(regexp.QuoteMeta(p.Morpheme))
		if err != nil {
			return nil, fmt.Errorf("splitter: bad morpheme %q: %w", p.Morpheme, err)
		}
		var next []Chunk
		for _, c := range acc {
			if c.Matched {
				next = append(next, c)
				continue
			}
			for _, sub := range SplitPattern(c.Text, re) {
				if sub.Matched {
					sub.Feature = p.Feature
				}
				next = append(next, sub)
			}
		}
		acc = next
	}
	return acc, nil
}
