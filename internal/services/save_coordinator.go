package services

import (
	"sync"

	"github.com/google/uuid"
)

type SaveKind int

const (
	SaveAuto SaveKind = iota
	SaveManual
)

// SaveCoordinator serializes builder saves per survey. Every accepted save
// gets a sequence number; only the latest sequence may commit, so a stale
// auto-save response can never clobber a newer manual save. An auto-save
// requested while a manual save is in flight is dropped outright.
type SaveCoordinator struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*saveSlot
}

type saveSlot struct {
	seq            uint64
	manualInFlight bool
}

func NewSaveCoordinator() *SaveCoordinator {
	return &SaveCoordinator{slots: make(map[uuid.UUID]*saveSlot)}
}

// ShouldAutoSave mirrors the builder's timer guard: no auto-save for a survey
// that was never persisted, or one with neither title text nor questions.
func ShouldAutoSave(persisted bool, title string, questionCount int) bool {
	if !persisted {
		return false
	}
	return title != "" || questionCount > 0
}

// Begin registers a save attempt and returns its sequence number. ok=false
// means the attempt was dropped and must not issue a write.
func (c *SaveCoordinator) Begin(surveyID uuid.UUID, kind SaveKind) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot, exists := c.slots[surveyID]
	if !exists {
		slot = &saveSlot{}
		c.slots[surveyID] = slot
	}

	if kind == SaveAuto && slot.manualInFlight {
		return 0, false
	}

	slot.seq++
	if kind == SaveManual {
		slot.manualInFlight = true
	}
	return slot.seq, true
}

// Commit reports whether this save is still the latest; a false return means
// a newer save superseded it and its result should be discarded.
func (c *SaveCoordinator) Commit(surveyID uuid.UUID, seq uint64, kind SaveKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot, exists := c.slots[surveyID]
	if !exists {
		return false
	}
	if kind == SaveManual {
		slot.manualInFlight = false
	}
	return slot.seq == seq
}
