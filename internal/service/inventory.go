// Package service runs inventory operations against a persistence backend:
// load the full table, apply one reconciliation step, save the full table.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/erazemk/spoolshelf/internal/inventory"
	"github.com/erazemk/spoolshelf/internal/model"
)

// Persistence loads and replaces the complete set of inventory lines.
type Persistence interface {
	Load(ctx context.Context) ([]model.Line, error)
	Save(ctx context.Context, lines []model.Line) error
}

// Result is the committed state after a successful operation.
type Result struct {
	Lines   []model.Line      `json:"lines"`
	Outcome inventory.Outcome `json:"outcome"`
}

// Inventory serializes operations within one process. Two processes sharing
// the same backend still race: the last save wins.
type Inventory struct {
	backend Persistence
	mu      sync.Mutex
}

// NewInventory returns a service backed by p.
func NewInventory(p Persistence) *Inventory {
	return &Inventory{backend: p}
}

// List returns the current lines.
func (s *Inventory) List(ctx context.Context) ([]model.Line, error) {
	lines, err := s.backend.Load(ctx)
	if err != nil {
		return nil, &model.PersistenceError{Op: "load", Err: err}
	}
	if lines == nil {
		lines = []model.Line{}
	}
	return lines, nil
}

// Get returns one line by id.
func (s *Inventory) Get(ctx context.Context, id int64) (model.Line, error) {
	lines, err := s.List(ctx)
	if err != nil {
		return model.Line{}, err
	}
	for _, l := range lines {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Line{}, &model.NotFoundError{ID: id}
}

// AddStock adds unopened units and saves the result.
func (s *Inventory) AddStock(ctx context.Context, in inventory.StockInput) (*Result, error) {
	res, err := s.apply(ctx, func(lines []model.Line) ([]model.Line, inventory.Outcome, error) {
		return inventory.AddStock(lines, in)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("stock added",
		"category", in.Category, "material", in.Material, "color", in.Color, "brand", in.Brand,
		"quantity", in.Quantity, "created", res.Outcome.Created)
	return res, nil
}

// OpenUnit opens one unit of an unopened line and saves the result.
func (s *Inventory) OpenUnit(ctx context.Context, id int64) (*Result, error) {
	res, err := s.apply(ctx, func(lines []model.Line) ([]model.Line, inventory.Outcome, error) {
		return inventory.OpenUnit(lines, id)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("unit opened", "line", id, "pruned", res.Outcome.Pruned)
	return res, nil
}

// ConsumeUnit uses up one unit of an opened line and saves the result.
func (s *Inventory) ConsumeUnit(ctx context.Context, id int64) (*Result, error) {
	res, err := s.apply(ctx, func(lines []model.Line) ([]model.Line, inventory.Outcome, error) {
		return inventory.ConsumeUnit(lines, id)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("unit consumed", "line", id, "pruned", res.Outcome.Pruned)
	return res, nil
}

// Import replaces the whole inventory with lines after checking them.
func (s *Inventory) Import(ctx context.Context, lines []model.Line) ([]model.Line, error) {
	st, err := inventory.NewStore(lines)
	if err != nil {
		return nil, err
	}
	clean := st.Lines()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Save(ctx, clean); err != nil {
		return nil, &model.PersistenceError{Op: "save", Err: err}
	}
	slog.Info("inventory imported", "lines", len(clean))
	return clean, nil
}

type step func([]model.Line) ([]model.Line, inventory.Outcome, error)

// apply loads, runs fn and saves. Nothing is returned as committed unless
// the save succeeded.
func (s *Inventory) apply(ctx context.Context, fn step) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.backend.Load(ctx)
	if err != nil {
		return nil, &model.PersistenceError{Op: "load", Err: err}
	}

	next, out, err := fn(lines)
	if err != nil {
		return nil, err
	}

	if err := s.backend.Save(ctx, next); err != nil {
		return nil, &model.PersistenceError{Op: "save", Err: err}
	}
	return &Result{Lines: next, Outcome: out}, nil
}
