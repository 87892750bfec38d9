package domain_test

import (
	"testing"

	"quiz-room-service/internal/domain"
)

func TestBankSelectMatchesAllProvidedCriteria(t *testing.T) {
	bank := domain.QuestionBank{
		{Subject: "Math", Topic: "Arithmetic", Level: 1, Text: "q1", Answer: "a1"},
		{Subject: "Math", Topic: "Geometry", Level: 2, Text: "q2", Answer: "a2"},
		{Subject: "Science", Topic: "Biology", Level: 1, Text: "q3", Answer: "a3"},
	}

	if got := bank.Select(domain.Filter{}); len(got) != 3 {
		t.Fatalf("empty filter should match everything, got %d", len(got))
	}

	got := bank.Select(domain.Filter{Subject: "Math"})
	if len(got) != 2 || got[0].Text != "q1" || got[1].Text != "q2" {
		t.Fatalf("subject filter should keep bank order, got %+v", got)
	}

	level := 1
	got = bank.Select(domain.Filter{Subject: "Math", Level: &level})
	if len(got) != 1 || got[0].Text != "q1" {
		t.Fatalf("combined filter mismatch, got %+v", got)
	}

	if got := bank.Select(domain.Filter{Topic: "History"}); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestBankSelectLevelIsExact(t *testing.T) {
	bank := domain.QuestionBank{
		{Subject: "Math", Level: 1, Text: "q1", Answer: "a1"},
		{Subject: "Math", Level: 10, Text: "q2", Answer: "a2"},
	}
	level := 1
	got := bank.Select(domain.Filter{Level: &level})
	if len(got) != 1 || got[0].Text != "q1" {
		t.Fatalf("level must match exactly, got %+v", got)
	}
}
