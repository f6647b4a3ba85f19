package bench

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadQuestions reads the benchmark question file. A missing or malformed
// file is a fatal error: the run must abort before any network activity.
func LoadQuestions(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse questions file %s: %w", path, err)
	}

	return questions, nil
}
