package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

// DecodeFile accepts either a snapshot envelope or the bare project array
// the front end exports.
func DecodeFile(b []byte) (*Snapshot, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var projects []domain.Project
		if err := json.Unmarshal(b, &projects); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project list: %w", err)
		}
		return &Snapshot{Version: SnapshotVersion, Projects: projects}, nil
	}
	return decodeSnapshot(b)
}

func ReadFile(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := DecodeFile(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteFile stores projects as an indented snapshot envelope.
func WriteFile(path, ownerID string, projects []domain.Project) error {
	b, err := json.MarshalIndent(newSnapshot(ownerID, projects), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
