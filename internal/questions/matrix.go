package questions

import (
	"github.com/google/uuid"
	"formloom/pkg/utils"
)

type ScaleType string

const (
	ScaleRadio    ScaleType = "radio"
	ScaleCheckbox ScaleType = "checkbox"
	ScaleRating   ScaleType = "rating"
	ScaleThumbs   ScaleType = "thumbs"
	ScaleText     ScaleType = "text"
)

// MatrixItem is a row or column. The id is assigned at creation and survives
// reorders, so answers keyed by it never shift to a different row.
type MatrixItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type MatrixSettings struct {
	Rows      []MatrixItem `json:"rows"`
	Columns   []MatrixItem `json:"columns"`
	ScaleType ScaleType    `json:"scale_type"`
}

func (s *MatrixSettings) Validate() error {
	switch s.ScaleType {
	case ScaleRadio, ScaleCheckbox, ScaleRating, ScaleThumbs, ScaleText:
	default:
		return utils.ValidationError("unknown matrix scale type: " + string(s.ScaleType))
	}
	if len(s.Rows) == 0 || len(s.Columns) == 0 {
		return utils.ValidationError("matrix needs at least one row and one column")
	}
	if err := uniqueItems(s.Rows); err != nil {
		return err
	}
	return uniqueItems(s.Columns)
}

func uniqueItems(items []MatrixItem) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID == "" {
			return utils.ValidationError("matrix rows and columns need an id")
		}
		if seen[it.ID] {
			return utils.ValidationError("duplicate matrix item id: " + it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

func defaultMatrixSettings() *MatrixSettings {
	return &MatrixSettings{
		ScaleType: ScaleRadio,
		Rows: []MatrixItem{
			{ID: uuid.NewString(), Label: "Row 1"},
			{ID: uuid.NewString(), Label: "Row 2"},
		},
		Columns: []MatrixItem{
			{ID: uuid.NewString(), Label: "Column 1"},
			{ID: uuid.NewString(), Label: "Column 2"},
			{ID: uuid.NewString(), Label: "Column 3"},
		},
	}
}

func (s *MatrixSettings) rowByID(id string) (MatrixItem, bool) { return itemByID(s.Rows, id) }
func (s *MatrixSettings) colByID(id string) (MatrixItem, bool) { return itemByID(s.Columns, id) }

func itemByID(items []MatrixItem, id string) (MatrixItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return MatrixItem{}, false
}

func (s *MatrixSettings) AddRow(label string) MatrixItem {
	it := MatrixItem{ID: uuid.NewString(), Label: label}
	s.Rows = append(s.Rows, it)
	return it
}

func (s *MatrixSettings) AddColumn(label string) MatrixItem {
	it := MatrixItem{ID: uuid.NewString(), Label: label}
	s.Columns = append(s.Columns, it)
	return it
}

func (s *MatrixSettings) RemoveRow(id string) bool    { return removeItem(&s.Rows, id) }
func (s *MatrixSettings) RemoveColumn(id string) bool { return removeItem(&s.Columns, id) }

func removeItem(items *[]MatrixItem, id string) bool {
	for i, it := range *items {
		if it.ID == id {
			*items = append((*items)[:i], (*items)[i+1:]...)
			return true
		}
	}
	return false
}

// MoveRow splices the row to the target index. Answers are keyed by id, so
// moving a row never reassociates responses.
func (s *MatrixSettings) MoveRow(id string, to int) bool    { return moveItem(&s.Rows, id, to) }
func (s *MatrixSettings) MoveColumn(id string, to int) bool { return moveItem(&s.Columns, id, to) }

func moveItem(items *[]MatrixItem, id string, to int) bool {
	if to < 0 || to >= len(*items) {
		return false
	}
	from := -1
	for i, it := range *items {
		if it.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	it := (*items)[from]
	*items = append((*items)[:from], (*items)[from+1:]...)
	*items = append((*items)[:to], append([]MatrixItem{it}, (*items)[to:]...)...)
	return true
}

// RowAnswer holds exactly one representation, matching the scale type:
// Single for radio/rating/thumbs, Multi for checkbox, Texts for text cells.
type RowAnswer struct {
	Single string            `json:"single,omitempty"`
	Multi  []string          `json:"multi,omitempty"`
	Texts  map[string]string `json:"texts,omitempty"`
}

// MatrixResponse is the sparse per-row answer state, keyed by row id.
type MatrixResponse map[string]RowAnswer

// ApplyChange records one cell interaction. Checkbox toggles membership, so
// applying the same change twice restores the previous selection. Every other
// scale type overwrites.
func (m MatrixResponse) ApplyChange(s *MatrixSettings, rowID, colID, value string) error {
	if _, ok := s.rowByID(rowID); !ok {
		return utils.ValidationError("unknown matrix row: " + rowID)
	}
	if _, ok := s.colByID(colID); !ok {
		return utils.ValidationError("unknown matrix column: " + colID)
	}

	row := m[rowID]
	switch s.ScaleType {
	case ScaleCheckbox:
		toggled := false
		for i, c := range row.Multi {
			if c == colID {
				row.Multi = append(row.Multi[:i], row.Multi[i+1:]...)
				toggled = true
				break
			}
		}
		if !toggled {
			row.Multi = append(row.Multi, colID)
		}
	case ScaleText:
		if row.Texts == nil {
			row.Texts = make(map[string]string)
		}
		row.Texts[colID] = value
	default:
		row = RowAnswer{Single: colID}
	}

	m[rowID] = row
	return nil
}

// RemoveRow drops the row's answer entry outright; there are no tombstones.
func (m MatrixResponse) RemoveRow(rowID string) {
	delete(m, rowID)
}

// answered reports whether the row carries any value.
func (r RowAnswer) answered() bool {
	return r.Single != "" || len(r.Multi) > 0 || len(r.Texts) > 0
}

// Complete reports whether every row has an answer.
func (m MatrixResponse) Complete(s *MatrixSettings) bool {
	for _, row := range s.Rows {
		if !m[row.ID].answered() {
			return false
		}
	}
	return true
}

// CheckAgainst validates shape: known ids only, and exactly one
// representation per row, consistent with the scale type.
func (m MatrixResponse) CheckAgainst(s *MatrixSettings) error {
	for rowID, ans := range m {
		if _, ok := s.rowByID(rowID); !ok {
			return utils.ValidationError("unknown matrix row: " + rowID)
		}

		reps := 0
		if ans.Single != "" {
			reps++
		}
		if len(ans.Multi) > 0 {
			reps++
		}
		if len(ans.Texts) > 0 {
			reps++
		}
		if reps > 1 {
			return utils.ValidationError("matrix row has conflicting answer shapes")
		}

		switch s.ScaleType {
		case ScaleCheckbox:
			if ans.Single != "" || len(ans.Texts) > 0 {
				return utils.ValidationError("checkbox matrix rows must use a selection list")
			}
			for _, colID := range ans.Multi {
				if _, ok := s.colByID(colID); !ok {
					return utils.ValidationError("unknown matrix column: " + colID)
				}
			}
		case ScaleText:
			if ans.Single != "" || len(ans.Multi) > 0 {
				return utils.ValidationError("text matrix rows must use per-column text")
			}
			for colID := range ans.Texts {
				if _, ok := s.colByID(colID); !ok {
					return utils.ValidationError("unknown matrix column: " + colID)
				}
			}
		default:
			if len(ans.Multi) > 0 || len(ans.Texts) > 0 {
				return utils.ValidationError("matrix rows must carry a single selection")
			}
			if ans.Single != "" {
				if _, ok := s.colByID(ans.Single); !ok {
					return utils.ValidationError("unknown matrix column: " + ans.Single)
				}
			}
		}
	}
	return nil
}
