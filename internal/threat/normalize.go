package threat

// Neutral category labels used by the context catalog.
const (
	Linkability     = "Linkability"
	Identifiability = "Identifiability"
	Repudiation     = "Repudiation"
	Detectability   = "Detectability"
	Disclosure      = "Disclosure"
	Unawareness     = "Unawareness"
	Tampering       = "Tampering"
)

// vocabulary maps a neutral label to its name in each methodology.
// Missing entries keep the neutral label.
var vocabulary = map[string]map[Methodology]string{
	Linkability: {
		STRIDE: "Information disclosure",
		CIA:    "Confidentiality",
	},
	Identifiability: {
		STRIDE: "Spoofing",
		CIA:    "Confidentiality",
	},
	Repudiation: {
		LINDDUN: "Non-repudiation",
		CIA:     "Integrity",
	},
	Detectability: {
		STRIDE: "Information disclosure",
		CIA:    "Confidentiality",
	},
	Disclosure: {
		LINDDUN: "Disclosure of information",
		STRIDE:  "Information disclosure",
		CIA:     "Confidentiality",
	},
	Unawareness: {
		STRIDE: "Elevation of privilege",
		CIA:    "Integrity",
	},
	Tampering: {
		LINDDUN: "Non-compliance",
		CIA:     "Integrity",
	},
}

// TranslateType returns the name of a neutral category in m
func TranslateType(neutral string, m Methodology) string {
	if renamed, ok := vocabulary[neutral][m]; ok {
		return renamed
	}
	return neutral
}

// Normalize rewrites each threat's type into m's vocabulary and stamps m as
// its model type. It modifies the slice in place and returns it.
func Normalize(threats []Threat, m Methodology) []Threat {
	for i := range threats {
		threats[i].ModelType = string(m)
		threats[i].Type = TranslateType(threats[i].Type, m)
	}
	return threats
}
