// Package tailor - keywords.go extracts ranked keywords from job text
// locally, used to seed prompts and as the degraded-result fallback.
package tailor

import (
	"regexp"
	"sort"
	"strings"
)

const defaultTopKeywords = 10

var rxToken = regexp.MustCompile(`[A-Za-z][A-Za-z0-9\-\+\.#]{1,}`)

// stopWords are filler terms that carry no signal in a job description.
var stopWords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`a an and or the is are was were to for of in on at with by from
		using use used built implemented developed software engineer developer internship intern summer
		systems backend frontend fullstack team`) {
		stopWords[w] = true
	}
}

// techTerms get ranking priority over plain frequency.
var techTerms = map[string]bool{
	"python": true, "java": true, "c++": true, "typescript": true, "react": true,
	"next.js": true, "aws": true, "kubernetes": true, "docker": true, "sql": true,
	"postgres": true, "redis": true, "go": true,
}

// Tokenize lowercases and splits text into candidate keyword tokens,
// dropping stop words and very short tokens.
func Tokenize(text string) []string {
	words := rxToken.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !stopWords[w] && len(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}

// ExtractKeywords returns the topK keywords from job text, preferring
// known technology terms, then frequency, then lexical order for
// deterministic output.
func ExtractKeywords(jobText string, topK int) []string {
	if topK <= 0 {
		topK = defaultTopKeywords
	}
	freq := make(map[string]int)
	for _, tok := range Tokenize(jobText) {
		freq[tok]++
	}

	ranked := make([]string, 0, len(freq))
	for w := range freq {
		ranked = append(ranked, w)
	}
	sort.Slice(ranked, func(i, j int) bool {
		wi, wj := ranked[i], ranked[j]
		if techTerms[wi] != techTerms[wj] {
			return techTerms[wi]
		}
		if freq[wi] != freq[wj] {
			return freq[wi] > freq[wj]
		}
		return wi < wj
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
