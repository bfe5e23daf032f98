package domain

import "time"

// Exchange is one persisted question/answer record. Exchanges are immutable
// once saved.
type Exchange struct {
	ID         int64     `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Subject    string    `json:"subject,omitempty"`
	ExamType   string    `json:"examType,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IsFallback bool      `json:"isFallback"`
}
