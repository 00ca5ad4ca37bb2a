package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestShouldAutoSave(t *testing.T) {
	cases := []struct {
		name      string
		persisted bool
		title     string
		questions int
		want      bool
	}{
		{"never persisted, has title", false, "Customer feedback", 0, false},
		{"never persisted, has questions", false, "", 3, false},
		{"persisted but empty", true, "", 0, false},
		{"persisted with title", true, "Customer feedback", 0, true},
		{"persisted with questions", true, "", 1, true},
	}
	for _, c := range cases {
		if got := ShouldAutoSave(c.persisted, c.title, c.questions); got != c.want {
			t.Errorf("%s: ShouldAutoSave=%v, want %v", c.name, got, c.want)
		}
	}
}

func TestStaleAutoSaveCannotCommitOverManualSave(t *testing.T) {
	c := NewSaveCoordinator()
	id := uuid.New()

	autoSeq, ok := c.Begin(id, SaveAuto)
	if !ok {
		t.Fatal("auto-save should start when nothing is in flight")
	}
	manualSeq, ok := c.Begin(id, SaveManual)
	if !ok {
		t.Fatal("manual save must always start")
	}

	// The auto-save response lands after the manual save was issued.
	if c.Commit(id, autoSeq, SaveAuto) {
		t.Fatal("stale auto-save committed over a newer manual save")
	}
	if !c.Commit(id, manualSeq, SaveManual) {
		t.Fatal("latest manual save should commit")
	}
}

func TestAutoSaveDroppedWhileManualInFlight(t *testing.T) {
	c := NewSaveCoordinator()
	id := uuid.New()

	manualSeq, _ := c.Begin(id, SaveManual)
	if _, ok := c.Begin(id, SaveAuto); ok {
		t.Fatal("auto-save should be dropped while a manual save is in flight")
	}

	c.Commit(id, manualSeq, SaveManual)
	if _, ok := c.Begin(id, SaveAuto); !ok {
		t.Fatal("auto-save should start again after the manual save finished")
	}
}

func TestCoordinatorIsolatesSurveys(t *testing.T) {
	c := NewSaveCoordinator()
	a, b := uuid.New(), uuid.New()

	c.Begin(a, SaveManual)
	if _, ok := c.Begin(b, SaveAuto); !ok {
		t.Fatal("a manual save on one survey must not block auto-saves on another")
	}
}
