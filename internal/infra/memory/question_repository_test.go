package memory

import (
	"context"
	"testing"
	"time"

	"quiz-room-service/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(sampleBank()),
	}
	repo := NewQuestionRepository(loader, time.Minute)

	bank, err := repo.Bank(context.Background())
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	if len(bank) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(bank))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.Bank(context.Background()); err != nil {
		t.Fatalf("bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionRepositoryZeroTTLLoadsOnce(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(sampleBank()),
	}
	repo := NewQuestionRepository(loader, 0)

	for i := 0; i < 3; i++ {
		if _, err := repo.Bank(context.Background()); err != nil {
			t.Fatalf("bank: %v", err)
		}
	}
	if loader.calls != 1 {
		t.Fatalf("zero TTL means load once, got %d calls", loader.calls)
	}
}

func TestStaticLoaderRejectsEmptyBank(t *testing.T) {
	loader := NewStaticQuestionLoader(nil)
	if _, err := loader.LoadBank(context.Background()); err != domain.ErrBankEmpty {
		t.Fatalf("expected empty bank error, got %v", err)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context) (domain.QuestionBank, error) {
	l.calls++
	return l.QuestionLoader.LoadBank(ctx)
}

func sampleBank() domain.QuestionBank {
	return domain.QuestionBank{
		{Subject: "Math", Topic: "Arithmetic", Level: 1, Text: "What is 2 + 2?", Answer: "4"},
		{Subject: "Science", Topic: "Biology", Level: 2, Text: "What organ pumps blood?", Answer: "Heart"},
	}
}
