// Package inventory holds the in-memory line store and the reconciliation
// rules that add, open and consume stock.
package inventory

import (
	"fmt"

	"github.com/erazemk/spoolshelf/internal/model"
)

// Store is an ordered collection of lines indexed by id and identity key.
// It is not safe for concurrent use.
type Store struct {
	lines []model.Line
	byID  map[int64]int
	byKey map[model.Key]int64
}

// NewStore builds a store from a loaded snapshot. Zero-count lines are
// dropped before the id and identity checks, so they never conflict with a
// live line. A snapshot that otherwise breaks an invariant is rejected.
func NewStore(lines []model.Line) (*Store, error) {
	s := &Store{
		lines: make([]model.Line, 0, len(lines)),
		byID:  make(map[int64]int, len(lines)),
		byKey: make(map[model.Key]int64, len(lines)),
	}

	for _, l := range lines {
		if err := checkLine(l); err != nil {
			return nil, err
		}
		if l.ID <= 0 {
			return nil, &model.ValidationError{Field: "id", Reason: fmt.Sprintf("must be positive, got %d", l.ID)}
		}
		if l.Count == 0 {
			continue
		}
		if _, ok := s.byID[l.ID]; ok {
			return nil, &model.ValidationError{Field: "id", Reason: fmt.Sprintf("duplicate id %d", l.ID)}
		}
		if other, ok := s.byKey[l.Key()]; ok {
			return nil, &model.ValidationError{
				Field:  "line",
				Reason: fmt.Sprintf("lines %d and %d share the same identity", other, l.ID),
			}
		}
		s.byID[l.ID] = len(s.lines)
		s.byKey[l.Key()] = l.ID
		s.lines = append(s.lines, l)
	}
	return s, nil
}

// checkLine validates the fields of a line that came from outside the engine.
func checkLine(l model.Line) error {
	if !l.Category.Valid() {
		return &model.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", l.Category)}
	}
	if !l.Status.Valid() {
		return &model.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", l.Status)}
	}
	if l.Material == "" {
		return &model.ValidationError{Field: "material", Reason: "required"}
	}
	if l.Count < 0 {
		return &model.ValidationError{Field: "count", Reason: fmt.Sprintf("line %d has negative count %d", l.ID, l.Count)}
	}
	return nil
}

// Len returns the number of lines in the store.
func (s *Store) Len() int { return len(s.lines) }

// Lines returns a copy of all lines in insertion order.
func (s *Store) Lines() []model.Line {
	out := make([]model.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// FindByID returns the line with the given id.
func (s *Store) FindByID(id int64) (model.Line, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.Line{}, false
	}
	return s.lines[i], true
}

// FindByKey returns the line whose identity key matches exactly.
func (s *Store) FindByKey(key model.Key) (model.Line, bool) {
	id, ok := s.byKey[key]
	if !ok {
		return model.Line{}, false
	}
	return s.FindByID(id)
}

// Upsert inserts a line with a fresh id when l.ID is 0, or replaces the line
// with the same id in place. It returns the stored line.
//
// The caller must not upsert a line whose key belongs to a different id.
func (s *Store) Upsert(l model.Line) model.Line {
	if i, ok := s.byID[l.ID]; ok && l.ID != 0 {
		old := s.lines[i]
		if old.Key() != l.Key() {
			delete(s.byKey, old.Key())
		}
		s.lines[i] = l
		s.byKey[l.Key()] = l.ID
		return l
	}

	if l.ID == 0 {
		l.ID = s.nextID()
	}
	s.byID[l.ID] = len(s.lines)
	s.byKey[l.Key()] = l.ID
	s.lines = append(s.lines, l)
	return l
}

// nextID returns max existing id + 1, or 1 for an empty store.
func (s *Store) nextID() int64 {
	var highest int64
	for _, l := range s.lines {
		if l.ID > highest {
			highest = l.ID
		}
	}
	return highest + 1
}

// Prune removes every line with count <= 0 and returns the removed ids.
func (s *Store) Prune() []int64 {
	var pruned []int64
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.Count <= 0 {
			pruned = append(pruned, l.ID)
			continue
		}
		kept = append(kept, l)
	}
	if len(pruned) == 0 {
		return nil
	}

	s.lines = kept
	clear(s.byID)
	clear(s.byKey)
	for i, l := range s.lines {
		s.byID[l.ID] = i
		s.byKey[l.Key()] = l.ID
	}
	return pruned
}
