package documents

import (
	"math"
	"regexp"
	"strings"
)

// termIndex is a TF-IDF term-weight matrix over the current document set:
// one l2-normalized row per document, columns = vocabulary learned from the
// corpus. Derived state, rebuilt from scratch on every mutation and never
// persisted independently.
type termIndex struct {
	vocab map[string]int // term -> column
	idf   []float64      // per-column inverse document frequency
	rows  [][]float64    // one normalized weight vector per document, in collection order
}

// tokenPattern matches word tokens of two or more letters/digits, including
// Vietnamese letters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}]+`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// buildTermIndex learns the vocabulary from the corpus and computes one
// TF-IDF row per document. Returns nil for an empty corpus: the index is
// undefined and all searches return empty.
func buildTermIndex(contents []string) *termIndex {
	if len(contents) == 0 {
		return nil
	}

	docTokens := make([][]string, len(contents))
	vocab := make(map[string]int)
	df := []int{}

	for i, content := range contents {
		tokens := tokenize(content)
		docTokens[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			col, ok := vocab[tok]
			if !ok {
				col = len(vocab)
				vocab[tok] = col
				df = append(df, 0)
			}
			df[col]++
		}
	}

	// Smoothed idf: ln((1+n)/(1+df)) + 1. The smoothing keeps terms that
	// appear in every document from being zeroed out entirely.
	n := float64(len(contents))
	idf := make([]float64, len(df))
	for col, count := range df {
		idf[col] = math.Log((1+n)/(1+float64(count))) + 1
	}

	ix := &termIndex{
		vocab: vocab,
		idf:   idf,
		rows:  make([][]float64, len(contents)),
	}
	for i, tokens := range docTokens {
		ix.rows[i] = ix.weightVector(tokens)
	}
	return ix
}

// weightVector computes the l2-normalized TF-IDF vector for a token sequence
// against the learned vocabulary. Out-of-vocabulary tokens are ignored.
func (ix *termIndex) weightVector(tokens []string) []float64 {
	vec := make([]float64, len(ix.vocab))
	for _, tok := range tokens {
		if col, ok := ix.vocab[tok]; ok {
			vec[col] += ix.idf[col]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for col := range vec {
			vec[col] /= norm
		}
	}
	return vec
}

// queryVector computes the query's term-weight vector against the existing
// vocabulary. No vocabulary update happens at query time.
func (ix *termIndex) queryVector(query string) []float64 {
	return ix.weightVector(tokenize(query))
}

// similarities returns the cosine similarity of the query vector against
// every row. Rows are normalized, so cosine reduces to a dot product.
func (ix *termIndex) similarities(queryVec []float64) []float64 {
	scores := make([]float64, len(ix.rows))
	for i, row := range ix.rows {
		var dot float64
		for col, w := range row {
			dot += w * queryVec[col]
		}
		scores[i] = dot
	}
	return scores
}
