package inventory

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/erazemk/spoolshelf/internal/model"
)

// StockInput describes a delivery of unopened units.
type StockInput struct {
	Category model.Category `json:"category"`
	Material string         `json:"material"`
	Color    string         `json:"color"`
	Brand    string         `json:"brand"`
	Quantity int            `json:"quantity"`
	Notes    string         `json:"notes"`
}

// Validate checks the input before any line is touched.
func (in StockInput) Validate() error {
	if !in.Category.Valid() {
		return &model.ValidationError{Field: "category", Reason: "must be filament or resin"}
	}
	if in.Material == "" {
		return &model.ValidationError{Field: "material", Reason: "required"}
	}
	if in.Color == "" {
		return &model.ValidationError{Field: "color", Reason: "required"}
	}
	if in.Quantity < 1 {
		return &model.ValidationError{Field: "quantity", Reason: "must be at least 1, got " + strconv.Itoa(in.Quantity)}
	}
	return nil
}

// Outcome reports which lines an operation touched. Clients holding a
// selection on a pruned id should drop it.
type Outcome struct {
	Updated []int64 `json:"updated,omitempty"`
	Created int64   `json:"created,omitempty"`
	Pruned  []int64 `json:"pruned,omitempty"`
}

// AddStock adds unopened units, merging into the existing unopened line for
// the same product when there is one.
func AddStock(lines []model.Line, in StockInput) ([]model.Line, Outcome, error) {
	if err := in.Validate(); err != nil {
		return lines, Outcome{}, err
	}

	s, err := NewStore(lines)
	if err != nil {
		return lines, Outcome{}, err
	}

	var out Outcome
	key := model.ProductKey{
		Category: in.Category,
		Material: in.Material,
		Color:    in.Color,
		Brand:    in.Brand,
	}.WithStatus(model.StatusUnopened)

	if existing, ok := s.FindByKey(key); ok {
		if existing.Count > math.MaxInt-in.Quantity {
			return lines, Outcome{}, &model.ValidationError{
				Field:  "quantity",
				Reason: fmt.Sprintf("line %d cannot hold %d more units", existing.ID, in.Quantity),
			}
		}
		existing.Count += in.Quantity
		if existing.Notes == "" {
			existing.Notes = in.Notes
		}
		s.Upsert(existing)
		out.Updated = append(out.Updated, existing.ID)
	} else {
		created := s.Upsert(model.Line{
			Category: key.Category,
			Material: key.Material,
			Color:    key.Color,
			Brand:    key.Brand,
			Status:   model.StatusUnopened,
			Count:    in.Quantity,
			Notes:    in.Notes,
		})
		out.Created = created.ID
	}

	out.Pruned = s.Prune()
	return s.Lines(), out, nil
}

// OpenUnit moves one unit of an unopened line into the opened line for the
// same product, creating that line when needed. The source line is removed
// once its last unit is opened.
func OpenUnit(lines []model.Line, id int64) ([]model.Line, Outcome, error) {
	s, err := NewStore(lines)
	if err != nil {
		return lines, Outcome{}, err
	}

	src, ok := s.FindByID(id)
	if !ok || src.Status != model.StatusUnopened || src.Count < 1 {
		return lines, Outcome{}, &model.NotFoundError{ID: id, Want: model.StatusUnopened}
	}

	dst, merge := s.FindByKey(src.Product().WithStatus(model.StatusOpened))
	if merge && dst.Count == math.MaxInt {
		return lines, Outcome{}, &model.ValidationError{
			Field:  "count",
			Reason: fmt.Sprintf("opened line %d is full", dst.ID),
		}
	}

	var out Outcome
	src.Count--
	s.Upsert(src)
	out.Updated = append(out.Updated, src.ID)

	if merge {
		dst.Count++
		s.Upsert(dst)
		out.Updated = append(out.Updated, dst.ID)
	} else {
		opened := src
		opened.ID = 0
		opened.Status = model.StatusOpened
		opened.Count = 1
		out.Created = s.Upsert(opened).ID
	}

	out.Pruned = s.Prune()
	out.Updated = without(out.Updated, out.Pruned)
	return s.Lines(), out, nil
}

// ConsumeUnit uses up one unit of an opened line. The line is removed once
// its last unit is consumed.
func ConsumeUnit(lines []model.Line, id int64) ([]model.Line, Outcome, error) {
	s, err := NewStore(lines)
	if err != nil {
		return lines, Outcome{}, err
	}

	src, ok := s.FindByID(id)
	if !ok || src.Status != model.StatusOpened || src.Count < 1 {
		return lines, Outcome{}, &model.NotFoundError{ID: id, Want: model.StatusOpened}
	}

	src.Count--
	s.Upsert(src)

	var out Outcome
	out.Pruned = s.Prune()
	out.Updated = without([]int64{src.ID}, out.Pruned)
	return s.Lines(), out, nil
}

// without removes any id in drop from ids.
func without(ids, drop []int64) []int64 {
	return slices.DeleteFunc(ids, func(id int64) bool { return slices.Contains(drop, id) })
}
