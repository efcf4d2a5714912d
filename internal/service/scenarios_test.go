package service

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/erazemk/spoolshelf/internal/csvfile"
	"github.com/erazemk/spoolshelf/internal/model"
)

func line(id int64, status model.Status, count int) model.Line {
	return model.Line{ID: id, Category: model.CategoryFilament, Material: "PLA", Color: "red", Status: status, Count: count}
}

// seeded returns a service over a CSV file holding lines.
func seeded(t *testing.T, lines ...model.Line) (*Inventory, *csvfile.Store) {
	t.Helper()
	backend := &csvfile.Store{Path: filepath.Join(t.TempDir(), "inventory.csv")}
	if err := backend.Save(context.Background(), lines); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	return NewInventory(backend), backend
}

func TestScenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("add to empty store", func(t *testing.T) {
		svc, backend := seeded(t)
		if _, err := svc.AddStock(ctx, redPLA(5)); err != nil {
			t.Fatalf("AddStock: %v", err)
		}
		got, _ := backend.Load(ctx)
		want := []model.Line{line(1, model.StatusUnopened, 5)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("open creates opened line", func(t *testing.T) {
		svc, backend := seeded(t, line(1, model.StatusUnopened, 5))
		if _, err := svc.OpenUnit(ctx, 1); err != nil {
			t.Fatalf("OpenUnit: %v", err)
		}
		got, _ := backend.Load(ctx)
		want := []model.Line{line(1, model.StatusUnopened, 4), line(2, model.StatusOpened, 1)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("open last unit merges and prunes", func(t *testing.T) {
		svc, backend := seeded(t, line(1, model.StatusUnopened, 1), line(2, model.StatusOpened, 2))
		if _, err := svc.OpenUnit(ctx, 1); err != nil {
			t.Fatalf("OpenUnit: %v", err)
		}
		got, _ := backend.Load(ctx)
		want := []model.Line{line(2, model.StatusOpened, 3)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("consume last unit empties store", func(t *testing.T) {
		svc, backend := seeded(t, line(1, model.StatusOpened, 1))
		if _, err := svc.ConsumeUnit(ctx, 1); err != nil {
			t.Fatalf("ConsumeUnit: %v", err)
		}
		got, _ := backend.Load(ctx)
		if len(got) != 0 {
			t.Errorf("expected empty store, got %+v", got)
		}
	})

	t.Run("open unknown id", func(t *testing.T) {
		start := []model.Line{line(1, model.StatusUnopened, 3)}
		svc, backend := seeded(t, start...)
		_, err := svc.OpenUnit(ctx, 42)
		if !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
		got, _ := backend.Load(ctx)
		if !reflect.DeepEqual(got, start) {
			t.Errorf("store changed: %+v", got)
		}
	})
}
