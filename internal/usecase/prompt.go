package usecase

import (
	"fmt"
	"strings"

	"exam-tutor/internal/domain"
)

const (
	roleSystem = "system"
	roleUser   = "user"
)

// bookKind is the noun used in the "Analyze the <kind> book" headline.
var bookKind = map[domain.Domain]string{
	domain.DomainPhysicsBook: "physics",
	domain.DomainMathBook:    "mathematics",
	domain.DomainBiologyBook: "biology",
}

// physicsBookNotes are appended to physics analysis and page-scan prompts for
// known book ids.
var physicsBookNotes = map[string]string{
	"hcv":             `This is from H.C. Verma's "Concepts of Physics," known for concise explanations and comprehensive problem-solving approaches. Focus on identifying the conceptual building blocks and problem-solving methodologies.`,
	"ncert11_physics": ncertPhysicsNote,
	"ncert12_physics": ncertPhysicsNote,
	"irodov":          `This is from I.E. Irodov's "Problems in General Physics," known for challenging physics problems. Focus on the advanced concepts and analytical approaches to problem-solving.`,
}

const ncertPhysicsNote = `This is from an NCERT Physics textbook, which forms the foundation of CBSE curriculum and JEE preparation. Focus on the fundamental concepts and their applications as presented in the standard curriculum.`

// chemistryBookNotes are used by page scans of known chemistry books.
var chemistryBookNotes = map[string]string{
	"ncert11_chemistry": ncertChemistryNote,
	"ncert12_chemistry": ncertChemistryNote,
	"msc":               `This is from M.S. Chouhan's Organic Chemistry, known for its comprehensive coverage of organic chemistry concepts and problem-solving techniques. Focus on reaction mechanisms, stereochemistry, and systematic approaches to solving organic chemistry problems.`,
}

const ncertChemistryNote = `This is from an NCERT Chemistry textbook, which forms the foundation of CBSE curriculum and JEE preparation. Focus on the fundamental chemical principles, reactions, and their applications as presented in the standard curriculum.`

var bookChecklists = map[domain.Domain][]string{
	domain.DomainPhysicsBook: {
		"Key concepts covered",
		"Problem-solving approach used",
		"Connection to JEE/BITSAT exams",
		"Recommended study strategy",
		"Important formulas and concepts",
		"Comparison with other standard books (if relevant)",
	},
	domain.DomainMathBook: {
		"Key mathematical concepts, theorems, and principles covered",
		"Problem-solving methodologies presented",
		"How this aligns with CBSE curriculum and JEE/BITSAT requirements",
		"Recommended study approach for this material",
		"Important formulas, theorems, and techniques",
		"Comparison with other standard mathematics textbooks (if relevant)",
	},
	domain.DomainBiologyBook: {
		"Key biological concepts, principles, and processes covered",
		"Teaching approach and presentation of content",
		"How this aligns with CBSE curriculum and competitive exam requirements",
		"Recommended study strategies for mastering this material",
		"Important diagrams, cycles, and biological processes",
		"Comparison with other standard biology textbooks (if relevant)",
	},
}

// buildChatMessages returns the system/user pair for a general question.
func buildChatMessages(question, subject, examType string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: roleSystem, Content: personaPrompt(domain.DomainChat)},
		{Role: roleUser, Content: buildChatUserPrompt(question, subject, examType)},
	}
}

func buildChatUserPrompt(question, subject, examType string) string {
	var b strings.Builder
	b.WriteString(question)
	if subject != "" || examType != "" {
		b.WriteString("\n\nContext:")
		if subject != "" {
			b.WriteString("\nSubject: " + subject)
		}
		if examType != "" {
			b.WriteString("\nExam Focus: " + examType)
		}
	}
	return b.String()
}

// bookHeadline is the instruction plus topic/chapter clauses. It doubles as
// the question recorded in the transcript.
func bookHeadline(d domain.Domain, bookName, topic, chapter string) string {
	headline := fmt.Sprintf(`Analyze the %s book "%s"`, bookKind[d], bookName)
	if topic != "" {
		headline += fmt.Sprintf(` focusing on the topic "%s"`, topic)
	}
	if chapter != "" {
		headline += fmt.Sprintf(` in chapter "%s"`, chapter)
	}
	return headline
}

func buildBookUserPrompt(d domain.Domain, bookName, topic, chapter, bookID string) string {
	lines := []string{bookHeadline(d, bookName, topic, chapter) + ". Please provide a detailed analysis including:"}
	for _, item := range bookChecklists[d] {
		lines = append(lines, "    - "+item)
	}
	prompt := strings.Join(lines, "\n")
	if d == domain.DomainPhysicsBook {
		if note, ok := physicsBookNotes[bookID]; ok {
			prompt += "\n\n" + note
		}
	}
	return prompt
}

func buildBookMessages(d domain.Domain, bookName, topic, chapter, bookID string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: roleSystem, Content: personaPrompt(d)},
		{Role: roleUser, Content: buildBookUserPrompt(d, bookName, topic, chapter, bookID)},
	}
}

const ocrInstruction = "Extract all the text visible in this image of a textbook page. Preserve all formatting, equations, and content as accurately as possible. Focus on maintaining the scientific integrity of the content. Include formulas and special characters as plaintext."

func buildOCRMessages(imageDataURL string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: roleUser, Content: ocrInstruction, ImageURL: imageDataURL},
	}
}

// scanSubject infers the page subject from the book id. Anything that is not
// recognisably chemistry is treated as physics.
func scanSubject(bookID string) string {
	if strings.Contains(bookID, "chem") || strings.Contains(bookID, "msc") {
		return "chemistry"
	}
	return "physics"
}

func buildScanAnalysisMessages(extracted, bookName, bookID, chapter string) []domain.ChatMessage {
	subject := scanSubject(bookID)

	var b strings.Builder
	fmt.Fprintf(&b, `You are a %s education expert. Analyze the following text from "%s"`, subject, bookName)
	if chapter != "" {
		fmt.Fprintf(&b, ` chapter "%s"`, chapter)
	}
	fmt.Fprintf(&b, ". Identify key %s concepts, provide an educational summary, and explain the core principles presented.\n\n", subject)

	if note, ok := physicsBookNotes[bookID]; ok {
		b.WriteString(note + "\n\n")
	} else if note, ok := chemistryBookNotes[bookID]; ok {
		b.WriteString(note + "\n\n")
	}

	b.WriteString("The extracted text is as follows:\n\n" + extracted + "\n\n")
	b.WriteString(scanJSONShape(subject))

	return []domain.ChatMessage{
		{Role: roleSystem, Content: fmt.Sprintf("You are a %s education expert specialized in analyzing textbook content.", subject)},
		{Role: roleUser, Content: b.String()},
	}
}

func scanJSONShape(subject string) string {
	return strings.Join([]string{
		"Respond with a JSON object with the following structure:",
		"{",
		`  "title": "The main topic or title of this page",`,
		`  "concepts": [`,
		`    {`,
		fmt.Sprintf(`      "name": "Name of %s concept",`, subject),
		`      "explanation": "Clear explanation suitable for a student"`,
		`    }`,
		`  ],`,
		`  "summary": "A comprehensive summary of the content",`,
		`  "examples": [`,
		`    {`,
		`      "problem": "Example problem if any",`,
		`      "solution": "Solution approach"`,
		`    }`,
		`  ],`,
		fmt.Sprintf(`  "relatedTopics": ["Related %s concepts or topics"]`, subject),
		"}",
	}, "\n")
}

func personaPrompt(d domain.Domain) string {
	switch d {
	case domain.DomainPhysicsBook:
		return physicsBookPersona
	case domain.DomainMathBook:
		return mathBookPersona
	case domain.DomainBiologyBook:
		return biologyBookPersona
	default:
		return tutorPersona
	}
}
