package store

import (
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

func encode(s *budget.Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	return data, nil
}

func decode(data []byte) (*budget.Snapshot, error) {
	var s budget.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	return &s, nil
}
