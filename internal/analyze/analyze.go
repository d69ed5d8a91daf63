// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze computes derived text signals for papers: keywords,
// one-line summaries, popularity scores, read-time estimates, and
// research-type labels. All functions are pure given the fixed lexicons.
package analyze

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/arxiv-tracker/pkg/types"
)

// wordsPerMinute is the assumed reading speed for abstracts.
const wordsPerMinute = 200

// ExtractKeywords tokenizes text and returns the topK most frequent terms
// by simple term frequency. Tokens are lowercased and stripped of
// non-alphabetic characters; tokens of three characters or fewer and stop
// words are dropped. Ties keep first-encountered order (stable sort on
// count only).
func ExtractKeywords(text string, topK int) []types.Keyword {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	counts := make(map[string]int)
	var order []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// Stable sort by descending count so that equal-count words retain
	// their scan order.
	keywords := make([]types.Keyword, 0, len(order))
	for _, w := range order {
		keywords = append(keywords, types.Keyword{Word: w, Count: counts[w]})
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})

	if topK >= 0 && len(keywords) > topK {
		keywords = keywords[:topK]
	}
	return keywords
}

// OneLiner extracts a single-sentence summary from an abstract. It splits
// on sentence-terminating punctuation, discards fragments of 20 characters
// or fewer, and returns the first survivor. When no fragment qualifies it
// falls back to the first 150 characters of the raw abstract; sentences
// over 200 characters are truncated. Truncations carry an ellipsis.
func OneLiner(summary string) string {
	const (
		minSentence = 20
		maxSentence = 200
		fallbackLen = 150
	)

	var first string
	for _, frag := range strings.FieldsFunc(summary, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		frag = strings.TrimSpace(frag)
		if len(frag) > minSentence {
			first = frag
			break
		}
	}

	if first == "" {
		return truncate(summary, fallbackLen) + "..."
	}
	if utf8.RuneCountInString(first) > maxSentence {
		return truncate(first, maxSentence) + "..."
	}
	return first
}

// truncate shortens s to at most n runes, never splitting a rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// PopularityScore counts trending-phrase occurrences in the concatenated
// title and abstract, weighting multi-word phrases double, and clamps the
// sum to [0,100].
func PopularityScore(title, summary string) int {
	text := strings.ToLower(title + " " + summary)

	score := 0
	for _, phrase := range trendingPhrases {
		n := strings.Count(text, phrase)
		if n == 0 {
			continue
		}
		weight := 1
		if strings.Contains(phrase, " ") {
			weight = 2
		}
		score += n * weight
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// ReadMinutes estimates abstract reading time in whole minutes, rounding
// up and never returning less than 1.
func ReadMinutes(summary string) int {
	words := len(strings.Fields(summary))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ResearchTypes classifies a paper by matching fixed patterns against the
// lowercased title and abstract. Labels can co-occur; when nothing matches
// the single default label is returned.
func ResearchTypes(title, summary string) []string {
	text := strings.ToLower(title + " " + summary)

	var labels []string
	for _, rt := range researchTypePatterns {
		if rt.Pattern.MatchString(text) {
			labels = append(labels, rt.Label)
		}
	}
	if len(labels) == 0 {
		labels = []string{defaultResearchType}
	}
	return labels
}

// Annotate runs the full analysis pass over a paper's title and abstract.
func Annotate(title, summary string, topK int) types.Annotation {
	return types.Annotation{
		Keywords:        ExtractKeywords(title+" "+summary, topK),
		OneLiner:        OneLiner(summary),
		PopularityScore: PopularityScore(title, summary),
		ReadMinutes:     ReadMinutes(summary),
		ResearchTypes:   ResearchTypes(title, summary),
		AnalyzedAt:      time.Now().UTC(),
	}
}
