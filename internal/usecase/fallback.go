package usecase

import (
	"fmt"
	"strings"

	"exam-tutor/internal/domain"
)

type guidanceBlock struct {
	subject string
	keyword string
	text    string
}

// guidanceBlocks are checked in order and the first match wins.
var guidanceBlocks = []guidanceBlock{
	{
		subject: domain.SubjectPhysics,
		keyword: "physics",
		text: `For Physics specifically:
- Mechanics: See chapters 1-11 in H.C. Verma Vol. 1 covering Newton's Laws, Conservation principles, and Rotational dynamics
- Electromagnetism: Refer to chapters 29-34 in H.C. Verma Vol. 2 for detailed explanations of Gauss's Law, Ampere's Law, and electromagnetic induction
- Modern Physics: Study chapters 41-47 in H.C. Verma Vol. 2 for quantum phenomena and nuclear physics concepts`,
	},
	{
		subject: domain.SubjectChemistry,
		keyword: "chemistry",
		text: `For Chemistry specifically:
- Physical Chemistry: Review NCERT Class 11 (chapters 5-9) and Class 12 (chapters 1-5) for Thermodynamics, Chemical Equilibrium, and Electrochemistry
- Organic Chemistry: Study MS Chouhan's book which covers reaction mechanisms and functional group properties in detail, especially chapters 10-15
- Inorganic Chemistry: Use NCERT books which explain periodic trends and coordination compounds clearly in Class 11 (chapters 2-4) and Class 12 (chapters 7-9)`,
	},
	{
		subject: domain.SubjectMathematics,
		keyword: "math",
		text: `For Mathematics specifically:
- Calculus: See NCERT Class 12 (chapters 5-8) or RD Sharma Class 12 (chapters 10-20) which covers Continuity, Differentiation, Integration, and Differential Equations thoroughly
- Algebra: Review NCERT Class 11 (chapters 4-6) or RD Sharma Class 11 (chapters 13-18) for Mathematical Induction, Complex Numbers, Permutations & Combinations
- Coordinate Geometry: Study NCERT Class 11 (chapters 7-11) which covers straight lines, conic sections (circles, ellipses, parabolas, hyperbolas)
- 3D Geometry & Vectors: Refer to NCERT Class 12 (chapters 9-11) for vector algebra and three-dimensional geometry concepts`,
	},
	{
		subject: domain.SubjectBiology,
		keyword: "biology",
		text: `For Biology specifically:
- Cell Biology: Review NCERT Class 11 (Unit 3) covering cell structure, cell organelles, and cell division
- Plant Physiology: Study NCERT Class 11 (Unit 4) on transport systems, mineral nutrition, photosynthesis, and respiration
- Human Physiology: Refer to NCERT Class 11 (Unit 5) for detailed explanations of digestive, respiratory, circulatory, and excretory systems
- Genetics: See NCERT Class 12 (Unit 2) covering Mendelian genetics, DNA structure, gene expression, and molecular basis of inheritance
- Ecology: Explore NCERT Class 12 (Unit 5) which covers ecosystems, biodiversity, environmental issues and conservation`,
	},
}

const chatFallbackResources = `1. For CBSE Class 11-12 content: Refer to NCERT textbooks which cover the fundamentals thoroughly
2. For JEE preparation: H.C. Verma's "Concepts of Physics" and D.C. Pandey series are highly recommended
3. For BITSAT: Focus on NCERT books first, then move to specialized books like Arihant's BITSAT guides`

const (
	chatFallbackClosing = "Please try again later when the system load has reduced."
	bookFallbackClosing = "Please try again later for a more detailed, book-specific analysis."
)

var bookOverviews = map[domain.Domain]string{
	domain.DomainPhysicsBook: `Here's some general information about physics textbooks for CBSE Class 11-12 and competitive exams:

H.C. Verma's "Concepts of Physics":
- Mechanics (Vol. 1, Chapters 1-11): Covers kinematics, Newton's laws, work and energy, rotational dynamics
- Electromagnetism (Vol. 2, Chapters 29-34): Covers Gauss's law, Ampere's law, electromagnetic induction
- Modern Physics (Vol. 2, Chapters 41-47): Covers quantum phenomena and nuclear physics

NCERT Physics for Class 11 and 12 cover the same ground at board-exam depth, while I.E. Irodov's "Problems in General Physics" and the D.C. Pandey series provide harder problem sets.

These textbooks form the foundation for CBSE exams and are essential for competitive exams like JEE and BITSAT.`,
	domain.DomainMathBook: `Here's some general information about mathematics textbooks for CBSE Class 11-12 and competitive exams:

NCERT Mathematics for Class 11:
- Sets and Functions (Chapters 1-3): Covers fundamental concepts of sets, relations, functions, trigonometry
- Algebra (Chapters 4-6): Covers mathematical induction, complex numbers, linear inequalities, permutations and combinations
- Coordinate Geometry (Chapters 7-11): Covers straight lines, conic sections (circles, ellipses, parabolas, hyperbolas)
- Calculus (Chapter 13): Introduces limits and derivatives
- Statistics and Probability (Chapters 14-16): Covers measures of dispersion, probability

NCERT Mathematics for Class 12:
- Relations and Functions (Chapters 1-2): Covers advanced functions, inverse trigonometric functions
- Algebra (Chapter 3-4): Covers matrices, determinants
- Calculus (Chapters 5-8): Covers continuity, differentiability, applications of derivatives, integrals, differential equations
- Vectors and 3D Geometry (Chapters 9-11): Covers vector algebra, 3D geometry
- Linear Programming (Chapter 12): Covers optimization problems
- Probability (Chapter 13): Covers advanced probability concepts

These textbooks form the foundation for CBSE exams and are essential for competitive exams like JEE and BITSAT.`,
	domain.DomainBiologyBook: `Here's some general information about biology textbooks for CBSE Class 11-12 and competitive exams:

NCERT Biology for Class 11:
- Diversity in Living World (Units 1-2): Covers classification, kingdoms, taxonomic categories
- Cell Structure and Functions (Unit 3): Covers cell theory, cell membrane, organelles
- Plant Physiology (Unit 4): Covers transport, mineral nutrition, photosynthesis, respiration
- Human Physiology (Unit 5): Covers digestion, breathing, circulation, excretion

NCERT Biology for Class 12:
- Reproduction (Unit 1): Covers asexual, sexual reproduction, human reproduction
- Genetics and Evolution (Unit 2): Covers inheritance, molecular basis of inheritance, evolution
- Biology in Human Welfare (Unit 3): Covers health, diseases, improvement in food production
- Biotechnology (Unit 4): Covers principles, applications in health and agriculture
- Ecology (Unit 5): Covers organisms and environment, biodiversity, environmental issues

These textbooks form the foundation for CBSE exams and are essential for competitive exams like NEET, JEE, and BITSAT.`,
}

// emptyAnswers replace blank provider content.
var emptyAnswers = map[domain.Domain]string{
	domain.DomainChat:        "I apologize, but I couldn't generate a response. Please try again.",
	domain.DomainPhysicsBook: "I apologize, but I couldn't analyze this book. Please try again with a different book or topic.",
	domain.DomainMathBook:    "I apologize, but I couldn't analyze this mathematics book. Please try again with a different book or topic.",
	domain.DomainBiologyBook: "I apologize, but I couldn't analyze this biology book. Please try again with a different book or topic.",
}

// fallbackAnswer is the canned reply used when the provider is overloaded.
// It depends only on its inputs.
func fallbackAnswer(in Invocation) string {
	if in.Domain.IsBookAnalysis() {
		return bookFallback(in.Domain, in.BookName)
	}
	return chatFallback(in.Question, in.Subject)
}

func chatFallback(question, subject string) string {
	about := subject
	if about == "" {
		about = "this topic"
	}

	parts := []string{
		"I apologize, but I'm currently experiencing high demand and can't process your request right now.",
		fmt.Sprintf("Here are some resources for your question about %s:", about),
		chatFallbackResources,
	}
	if block, ok := matchGuidance(question, subject); ok {
		parts = append(parts, block.text)
	}
	parts = append(parts, chatFallbackClosing)
	return strings.Join(parts, "\n\n")
}

func matchGuidance(question, subject string) (guidanceBlock, bool) {
	q := strings.ToLower(question)
	for _, block := range guidanceBlocks {
		if strings.Contains(q, block.keyword) || strings.EqualFold(subject, block.subject) {
			return block, true
		}
	}
	return guidanceBlock{}, false
}

func bookFallback(d domain.Domain, bookName string) string {
	return strings.Join([]string{
		fmt.Sprintf(`I apologize, but I'm currently experiencing high demand and can't process your detailed analysis request for "%s".`, bookName),
		bookOverviews[d],
		bookFallbackClosing,
	}, "\n\n")
}

func emptyAnswer(d domain.Domain) string {
	if s, ok := emptyAnswers[d]; ok {
		return s
	}
	return emptyAnswers[domain.DomainChat]
}
