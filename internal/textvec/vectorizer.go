// Package textvec implements the TF-IDF text vectorizer used for recipe search.
//
// Tokens are lowercased runs of two or more word characters. The vocabulary keeps
// the MaxFeatures terms with the highest corpus term frequency and is indexed in
// alphabetical order. Weights are raw counts scaled by the smoothed inverse document
// frequency ln((1+n)/(1+df)) + 1, and every output vector is L2-normalised.
package textvec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 5000

// ErrEmptyVocabulary is returned by Fit when the corpus has no usable term.
var ErrEmptyVocabulary = errors.New("empty vocabulary; documents may only contain stop words")

var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// Config controls fitting.
type Config struct {
	MaxFeatures int  // 0 means unlimited
	StopWords   bool // exclude the English stop-word list
}

// DefaultConfig returns the configuration used by the trainer.
func DefaultConfig() Config {
	return Config{MaxFeatures: DefaultMaxFeatures, StopWords: true}
}

// Vectorizer is a fitted TF-IDF model. It is immutable and safe for concurrent use.
type Vectorizer struct {
	terms     []string
	vocab     map[string]int
	idf       []float64
	stopWords bool
}

// Fit learns the vocabulary and IDF weights from docs.
func Fit(docs []string, cfg Config) (*Vectorizer, error) {
	termFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		counts := countTerms(doc, cfg.StopWords, nil)
		for term, c := range counts {
			termFreq[term] += c
			docFreq[term]++
		}
	}
	if len(termFreq) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(termFreq))
	for term := range termFreq {
		terms = append(terms, term)
	}

	if cfg.MaxFeatures > 0 && len(terms) > cfg.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			fi, fj := termFreq[terms[i]], termFreq[terms[j]]
			if fi != fj {
				return fi > fj
			}
			return terms[i] < terms[j]
		})
		terms = terms[:cfg.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return newVectorizer(terms, idf, cfg.StopWords), nil
}

func newVectorizer(terms []string, idf []float64, stopWords bool) *Vectorizer {
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return &Vectorizer{terms: terms, vocab: vocab, idf: idf, stopWords: stopWords}
}

// Transform converts text into a normalised TF-IDF vector.
// Unknown terms are dropped; text without known terms yields the zero vector.
func (v *Vectorizer) Transform(text string) Vector {
	counts := countTerms(text, v.stopWords, v.vocab)

	indices := make([]int, 0, len(counts))
	for term := range counts {
		indices = append(indices, v.vocab[term])
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = float64(counts[v.terms[idx]]) * v.idf[idx]
	}

	vec := Vector{Indices: indices, Values: values}
	vec.normalize()
	return vec
}

// Len returns the vocabulary size, which is also the vector dimensionality.
func (v *Vectorizer) Len() int { return len(v.terms) }

// Terms returns the vocabulary in index order.
func (v *Vectorizer) Terms() []string { return v.terms }

// IDF returns the weight of term, and false for unknown terms.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	i, ok := v.vocab[term]
	if !ok {
		return 0, false
	}
	return v.idf[i], true
}

// countTerms tokenises text. When vocab is non-nil, only its terms are counted.
func countTerms(text string, stopWords bool, vocab map[string]int) map[string]int {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		if stopWords && IsStopWord(tok) {
			continue
		}
		if vocab != nil {
			if _, ok := vocab[tok]; !ok {
				continue
			}
		}
		counts[tok]++
	}
	return counts
}

// Tokenize lowercases text and splits it into tokens of two or more word characters.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

type vectorizerJSON struct {
	Terms     []string  `json:"terms"`
	IDF       []float64 `json:"idf"`
	StopWords bool      `json:"stop_words"`
}

// MarshalJSON implements json.Marshaler.
func (v *Vectorizer) MarshalJSON() ([]byte, error) {
	return json.Marshal(vectorizerJSON{Terms: v.terms, IDF: v.idf, StopWords: v.stopWords})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Vectorizer) UnmarshalJSON(data []byte) error {
	var dto vectorizerJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("decode vectorizer: %w", err)
	}
	if len(dto.Terms) != len(dto.IDF) {
		return fmt.Errorf("decode vectorizer: %d terms but %d idf weights", len(dto.Terms), len(dto.IDF))
	}
	*v = *newVectorizer(dto.Terms, dto.IDF, dto.StopWords)
	return nil
}
