package questions

import (
	"reflect"
	"testing"
)

func testMatrix(scale ScaleType) *MatrixSettings {
	return &MatrixSettings{
		ScaleType: scale,
		Rows: []MatrixItem{
			{ID: "r1", Label: "Service"},
			{ID: "r2", Label: "Price"},
			{ID: "r3", Label: "Speed"},
		},
		Columns: []MatrixItem{
			{ID: "c1", Label: "Poor"},
			{ID: "c2", Label: "Fair"},
			{ID: "c3", Label: "Good"},
		},
	}
}

func TestCheckboxToggleIsPairwiseIdempotent(t *testing.T) {
	s := testMatrix(ScaleCheckbox)
	m := MatrixResponse{}

	if err := m.ApplyChange(s, "r1", "c2", ""); err != nil {
		t.Fatal(err)
	}
	before := append([]string(nil), m["r1"].Multi...)

	// Toggling the same cell twice must restore the selection set.
	if err := m.ApplyChange(s, "r1", "c1", ""); err != nil {
		t.Fatal(err)
	}
	if err := m.ApplyChange(s, "r1", "c1", ""); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m["r1"].Multi, before) {
		t.Fatalf("selection after double toggle = %v, want %v", m["r1"].Multi, before)
	}
}

func TestRadioOverwrites(t *testing.T) {
	s := testMatrix(ScaleRadio)
	m := MatrixResponse{}

	_ = m.ApplyChange(s, "r2", "c1", "")
	_ = m.ApplyChange(s, "r2", "c3", "")
	if m["r2"].Single != "c3" {
		t.Fatalf("Single = %q, want c3", m["r2"].Single)
	}
	if len(m["r2"].Multi) != 0 || len(m["r2"].Texts) != 0 {
		t.Fatal("radio answer leaked into another representation")
	}
}

func TestTextWritesPerColumn(t *testing.T) {
	s := testMatrix(ScaleText)
	m := MatrixResponse{}

	_ = m.ApplyChange(s, "r1", "c1", "fine")
	_ = m.ApplyChange(s, "r1", "c2", "meh")
	_ = m.ApplyChange(s, "r1", "c1", "great")
	want := map[string]string{"c1": "great", "c2": "meh"}
	if !reflect.DeepEqual(m["r1"].Texts, want) {
		t.Fatalf("Texts = %v, want %v", m["r1"].Texts, want)
	}
}

func TestApplyChangeRejectsUnknownCells(t *testing.T) {
	s := testMatrix(ScaleRadio)
	m := MatrixResponse{}

	if err := m.ApplyChange(s, "ghost", "c1", ""); err == nil {
		t.Fatal("expected error for unknown row")
	}
	if err := m.ApplyChange(s, "r1", "ghost", ""); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestReorderKeepsAnswersAttached(t *testing.T) {
	s := testMatrix(ScaleRadio)
	m := MatrixResponse{}
	_ = m.ApplyChange(s, "r1", "c3", "")

	if !s.MoveRow("r1", 2) {
		t.Fatal("MoveRow failed")
	}
	if s.Rows[2].ID != "r1" {
		t.Fatalf("row order after move = %v", s.Rows)
	}
	// The answer follows the id, not the position.
	if m["r1"].Single != "c3" {
		t.Fatalf("answer moved: %v", m)
	}
	if err := m.CheckAgainst(s); err != nil {
		t.Fatalf("response invalid after reorder: %v", err)
	}
}

func TestRemoveRowDropsAnswerEntry(t *testing.T) {
	s := testMatrix(ScaleCheckbox)
	m := MatrixResponse{}
	_ = m.ApplyChange(s, "r2", "c1", "")

	if !s.RemoveRow("r2") {
		t.Fatal("RemoveRow failed")
	}
	m.RemoveRow("r2")
	if _, ok := m["r2"]; ok {
		t.Fatal("row answer survived row removal")
	}
	if len(s.Rows) != 2 {
		t.Fatalf("rows = %v", s.Rows)
	}
}

func TestCompleteRequiresEveryRow(t *testing.T) {
	s := testMatrix(ScaleRadio)
	m := MatrixResponse{}
	_ = m.ApplyChange(s, "r1", "c1", "")
	_ = m.ApplyChange(s, "r2", "c1", "")
	if m.Complete(s) {
		t.Fatal("two of three rows should not be complete")
	}
	_ = m.ApplyChange(s, "r3", "c2", "")
	if !m.Complete(s) {
		t.Fatal("all rows answered should be complete")
	}
}

func TestCheckAgainstRejectsMixedRepresentations(t *testing.T) {
	s := testMatrix(ScaleCheckbox)
	m := MatrixResponse{
		"r1": {Single: "c1", Multi: []string{"c2"}},
	}
	if err := m.CheckAgainst(s); err == nil {
		t.Fatal("expected error for conflicting answer shapes")
	}
}
