// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import "regexp"

// stopWords are excluded from keyword extraction: English function words
// plus filler terms that appear in nearly every abstract.
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		"the", "a", "an", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "do", "does", "did", "will", "would", "could",
		"should", "may", "might", "must", "shall", "can", "need", "dare",
		"ought", "used", "to", "of", "in", "for", "on", "with", "at", "by",
		"from", "as", "into", "through", "during", "before", "after", "above",
		"below", "between", "under", "and", "but", "or", "yet", "so", "if",
		"because", "although", "though", "while", "where", "when", "that",
		"which", "who", "whom", "whose", "what", "this", "these", "those",
		"i", "you", "he", "she", "it", "we", "they", "me", "him", "her",
		"us", "them", "my", "your", "his", "its", "our", "their", "mine",
		"yours", "hers", "ours", "theirs", "myself", "yourself", "himself",
		"herself", "itself", "ourselves", "yourselves", "themselves",
		"paper", "propose", "proposed", "method", "approach", "based",
		"using", "show", "results", "experimental", "experiments",
		"demonstrate", "novel", "new",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}

// trendingPhrases feed the popularity score. Multi-word phrases count
// double per occurrence.
var trendingPhrases = []string{
	"llm", "gpt", "transformer", "attention", "diffusion", "generative",
	"multimodal", "large language", "foundation model", "chatgpt",
	"clip", "stable diffusion", "gpt-4", "rag", "retrieval augmented",
	"agent", "autonomous", "reinforcement learning", "deep learning",
	"neural", "ai", "artificial intelligence", "machine learning",
}

// researchTypePatterns map a label to the pattern that assigns it. A paper
// can carry several labels; defaultResearchType applies when none match.
var researchTypePatterns = []struct {
	Label   string
	Pattern *regexp.Regexp
}{
	{"survey", regexp.MustCompile(`survey|review|overview|taxonomy`)},
	{"dataset", regexp.MustCompile(`dataset|benchmark|corpus`)},
	{"method", regexp.MustCompile(`method|approach|algorithm|model|architecture`)},
	{"theory", regexp.MustCompile(`theory|analysis|proof|theorem`)},
	{"application", regexp.MustCompile(`application|system|framework|tool`)},
	{"experiment", regexp.MustCompile(`experiment|empirical|evaluation`)},
}

const defaultResearchType = "uncategorized research"
