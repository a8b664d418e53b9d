package match

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
)

var termPattern = regexp.MustCompile(`[a-z0-9]+(?:[+#.-][a-z0-9]+)*`)

// tfidfVectorizer is the term-weighting fallback used when no semantic
// encoder capability is available. The vector space is built jointly over the
// candidate and all posting texts so inverse document frequencies reflect the
// actual corpus; this is why the strategy cannot be swapped mid-run.
type tfidfVectorizer struct {
	vocab   map[string]int
	vectors [][]float64
}

func newTfidfVectorizer() *tfidfVectorizer {
	return &tfidfVectorizer{}
}

func (v *tfidfVectorizer) Name() string { return StrategyFallback }

func (v *tfidfVectorizer) Weights() Weights {
	return Weights{Similarity: 0.6, Coverage: 0.4}
}

func (v *tfidfVectorizer) Fit(_ context.Context, docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("at least the candidate document is required")
	}

	tokenized := make([][]string, len(docs))
	v.vocab = make(map[string]int)
	for i, doc := range docs {
		terms := tokenize(doc)
		tokenized[i] = terms
		for _, term := range terms {
			if _, ok := v.vocab[term]; !ok {
				v.vocab[term] = len(v.vocab)
			}
		}
	}

	if len(v.vocab) == 0 {
		return fmt.Errorf("no indexable terms in any document")
	}

	// Smoothed IDF so terms present in every document still carry a small
	// positive weight instead of zeroing out short corpora.
	df := make([]int, len(v.vocab))
	for _, terms := range tokenized {
		seen := make(map[string]bool, len(terms))
		for _, term := range terms {
			if seen[term] {
				continue
			}
			seen[term] = true
			df[v.vocab[term]]++
		}
	}

	total := float64(len(docs))
	idf := make([]float64, len(df))
	for i, d := range df {
		idf[i] = math.Log((1+total)/(1+float64(d))) + 1
	}

	v.vectors = make([][]float64, len(docs))
	for i, terms := range tokenized {
		vec := make([]float64, len(v.vocab))
		for _, term := range terms {
			vec[v.vocab[term]]++
		}
		for j := range vec {
			vec[j] *= idf[j]
		}
		v.vectors[i] = vec
	}

	return nil
}

func (v *tfidfVectorizer) Vector(_ context.Context, i int) ([]float64, error) {
	if v.vectors == nil {
		return nil, fmt.Errorf("vectorizer is not fitted")
	}
	if i < 0 || i >= len(v.vectors) {
		return nil, fmt.Errorf("document index %d out of range", i)
	}
	return v.vectors[i], nil
}

func tokenize(doc string) []string {
	terms := termPattern.FindAllString(strings.ToLower(doc), -1)
	out := terms[:0]
	for _, term := range terms {
		if len(term) <= 1 {
			continue
		}
		out = append(out, term)
	}
	return out
}
