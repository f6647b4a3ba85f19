package bench

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteReport serializes the report with two-space indentation and writes it
// to path in one shot.
func WriteReport(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}
