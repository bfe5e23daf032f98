package repository

import (
	"context"
	"sort"

	"exam-tutor/internal/domain"
)

// TranscriptStore is the append-only log of question/answer exchanges.
// Save assigns the id and timestamp; whatever the caller put in those fields
// is ignored. There is no update or delete.
type TranscriptStore interface {
	Save(ctx context.Context, ex domain.Exchange) (domain.Exchange, error)
	ListAll(ctx context.Context) ([]domain.Exchange, error)
	ListBySubject(ctx context.Context, subject string) ([]domain.Exchange, error)
	ListByExamType(ctx context.Context, examType string) ([]domain.Exchange, error)
}

func sortByID(xs []domain.Exchange) {
	sort.Slice(xs, func(i, j int) bool { return xs[i].ID < xs[j].ID })
}
