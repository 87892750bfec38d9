package redis

import (
	"context"
	"testing"
	"time"

	"quiz-room-service/internal/domain"
	"quiz-room-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		QuestionLoader: memory.NewStaticQuestionLoader(sampleBank()),
	}
	repo := NewQuestionRepository(client, loader, time.Minute)

	bank, err := repo.Bank(context.Background())
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	if len(bank) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(bank))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:bank") {
		t.Fatalf("expected bank cached in redis")
	}

	// Second call should hit the redis cache, loader not incremented.
	if _, err := repo.Bank(context.Background()); err != nil {
		t.Fatalf("bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestQuestionRepositoryReloadsAfterExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		QuestionLoader: memory.NewStaticQuestionLoader(sampleBank()),
	}
	repo := NewQuestionRepository(newClient(mr), loader, time.Minute)

	if _, err := repo.Bank(context.Background()); err != nil {
		t.Fatalf("bank: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := repo.Bank(context.Background()); err != nil {
		t.Fatalf("bank after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.QuestionLoader
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

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
