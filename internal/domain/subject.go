package domain

// Domain is the coarse task category. It selects the persona, the response
// budget and the fallback content.
type Domain string

const (
	DomainChat        Domain = "chat"
	DomainPhysicsBook Domain = "physics_book"
	DomainMathBook    Domain = "math_book"
	DomainBiologyBook Domain = "biology_book"
)

const (
	SubjectPhysics     = "Physics"
	SubjectChemistry   = "Chemistry"
	SubjectMathematics = "Mathematics"
	SubjectBiology     = "Biology"
)

const (
	chatMaxTokens = 1500
	bookMaxTokens = 2000
)

// Subject returns the curriculum subject a book domain covers. Chat has none.
func (d Domain) Subject() string {
	switch d {
	case DomainPhysicsBook:
		return SubjectPhysics
	case DomainMathBook:
		return SubjectMathematics
	case DomainBiologyBook:
		return SubjectBiology
	default:
		return ""
	}
}

// MaxTokens is the response budget sent to the provider.
func (d Domain) MaxTokens() int {
	if d == DomainChat {
		return chatMaxTokens
	}
	return bookMaxTokens
}

// IsBookAnalysis reports whether d is one of the book-analysis domains.
func (d Domain) IsBookAnalysis() bool {
	switch d {
	case DomainPhysicsBook, DomainMathBook, DomainBiologyBook:
		return true
	default:
		return false
	}
}
