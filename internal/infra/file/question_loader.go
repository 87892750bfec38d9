package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"quiz-room-service/internal/domain"
)

// QuestionLoader reads the question bank from a JSON file: a flat array of
// question records.
type QuestionLoader struct {
	path string
}

func NewQuestionLoader(path string) *QuestionLoader {
	return &QuestionLoader{path: path}
}

func (l *QuestionLoader) LoadBank(_ context.Context) (domain.QuestionBank, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	var bank domain.QuestionBank
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(bank) == 0 {
		return nil, domain.ErrBankEmpty
	}
	return bank, nil
}
