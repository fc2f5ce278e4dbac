package threat

// Methodology is a threat modelling methodology
type Methodology string

// Supported methodologies.
const (
	STRIDE  Methodology = "STRIDE"
	LINDDUN Methodology = "LINDDUN"
	CIA     Methodology = "CIA"
	MRTM    Methodology = "MRTM"
)

// FallbackMethodology is used for any unrecognised request.
const FallbackMethodology = MRTM

// Methodologies lists the supported methodologies
func Methodologies() []Methodology {
	return []Methodology{STRIDE, LINDDUN, CIA, MRTM}
}

// ResolveMethodology returns the requested methodology when it is
// supported, otherwise FallbackMethodology. Matching is exact.
func ResolveMethodology(requested string) Methodology {
	switch m := Methodology(requested); m {
	case MRTM, STRIDE, LINDDUN, CIA:
		return m
	default:
		return FallbackMethodology
	}
}
