package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"artistpulse/internal/model"
)

// JSONStore serves records from a static JSON array loaded once.
type JSONStore struct {
	byID map[string]model.BusinessRecord
}

// OpenJSON reads a JSON array of business records from path.
func OpenJSON(path string) (*JSONStore, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}
	var recs []model.BusinessRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("warehouse: decode %s: %w", path, err)
	}
	return NewJSONStore(recs), nil
}

// NewJSONStore indexes recs by user id. Later duplicates win.
func NewJSONStore(recs []model.BusinessRecord) *JSONStore {
	s := &JSONStore{byID: make(map[string]model.BusinessRecord, len(recs))}
	for _, r := range recs {
		s.byID[r.UserID] = r
	}
	return s
}

func (s *JSONStore) Get(_ context.Context, userID string) (model.BusinessRecord, bool, error) {
	r, ok := s.byID[userID]
	return r, ok, nil
}

// Records returns all records ordered by user id.
func (s *JSONStore) Records() []model.BusinessRecord {
	out := make([]model.BusinessRecord, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (s *JSONStore) Close() error { return nil }
