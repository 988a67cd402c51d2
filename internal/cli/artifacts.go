package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// writeArtifacts writes DIR/<runID>/result.json (pretty-printed) and
// DIR/<runID>/events.jsonl (one compact line per event). Failures are
// warnings on stderr, never a command failure.
func writeArtifacts(dir, runID string, result any, events []any) {
	artDir := filepath.Join(dir, runID)
	if err := os.MkdirAll(artDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to create artifacts dir %s: %v\n", artDir, err)
		return
	}

	if data, err := json.MarshalIndent(result, "", "  "); err == nil {
		resultPath := filepath.Join(artDir, "result.json")
		if err := os.WriteFile(resultPath, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write %s: %v\n", resultPath, err)
		}
	}

	var lines []byte
	for _, event := range events {
		line, err := json.Marshal(event)
		if err != nil {
			continue
		}
		lines = append(lines, line...)
		lines = append(lines, '\n')
	}
	eventsPath := filepath.Join(artDir, "events.jsonl")
	if err := os.WriteFile(eventsPath, lines, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write %s: %v\n", eventsPath, err)
	}
}
