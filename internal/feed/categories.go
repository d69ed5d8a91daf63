// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

// Lexicon maps arXiv category codes to human-readable names. It is static
// configuration: built once, consulted read-only.
type Lexicon map[string]string

// Resolve returns the display name for a code, or the code itself when it
// is not in the lexicon.
func (l Lexicon) Resolve(code string) string {
	if name, ok := l[code]; ok {
		return name
	}
	return code
}

// DefaultLexicon returns the built-in category table.
func DefaultLexicon() Lexicon {
	return Lexicon{
		"cs.AI":           "Artificial Intelligence",
		"cs.CV":           "Computer Vision",
		"cs.LG":           "Machine Learning",
		"cs.CL":           "Computation and Language",
		"cs.RO":           "Robotics",
		"cs.SE":           "Software Engineering",
		"cs.DB":           "Databases",
		"cs.DC":           "Distributed Computing",
		"cs.GT":           "Game Theory",
		"cs.HC":           "Human-Computer Interaction",
		"cs.IR":           "Information Retrieval",
		"cs.IT":           "Information Theory",
		"cs.MA":           "Multiagent Systems",
		"cs.MM":           "Multimedia",
		"cs.NE":           "Neural Computing",
		"cs.NI":           "Networking and Internet",
		"cs.OS":           "Operating Systems",
		"cs.PF":           "Performance",
		"cs.PL":           "Programming Languages",
		"cs.SC":           "Symbolic Computation",
		"cs.SD":           "Sound",
		"cs.SY":           "Systems and Control",
		"stat.ML":         "Statistical Machine Learning",
		"physics.comp-ph": "Computational Physics",
		"q-bio.QM":        "Quantitative Methods",
		"q-fin.ST":        "Statistical Finance",
		"eess.AS":         "Audio and Speech Processing",
		"eess.IV":         "Image and Video Processing",
		"eess.SP":         "Signal Processing",
		"eess.SY":         "Systems Engineering",
		"math.NA":         "Numerical Analysis",
		"math.OC":         "Optimization and Control",
	}
}
