package questions

import "testing"

func TestHasAccess(t *testing.T) {
	cases := []struct {
		name string
		id   string
		plan Plan
		role Role
		want bool
	}{
		{"free type on free plan", TypeShortText, PlanFree, RoleUser, true},
		{"gated type on free plan", TypeMatrix, PlanFree, RoleUser, false},
		{"gated type on pro plan", TypeMatrix, PlanPro, RoleUser, true},
		{"gated type on business plan", TypeEmojiCustom, PlanBusiness, RoleUser, true},
		{"admin bypasses gating", TypeMatrix, PlanFree, RoleAdmin, true},
		{"super admin bypasses gating", TypeEmojiCustom, PlanFree, RoleSuperAdmin, true},
		{"unknown type never passes", "hologram", PlanBusiness, RoleSuperAdmin, false},
	}
	for _, c := range cases {
		if got := HasAccess(c.id, c.plan, c.role); got != c.want {
			t.Errorf("%s: HasAccess(%q,%q,%q)=%v, want %v", c.name, c.id, c.plan, c.role, got, c.want)
		}
	}
}

func TestDefaultSettingsAreFresh(t *testing.T) {
	a, ok := DefaultSettings(TypeMultipleChoice)
	if !ok {
		t.Fatal("no defaults for multiple_choice")
	}
	b, _ := DefaultSettings(TypeMultipleChoice)

	ca := a.(*ChoiceSettings)
	cb := b.(*ChoiceSettings)
	ca.Options[0].Label = "mutated"
	if cb.Options[0].Label == "mutated" {
		t.Fatal("defaults share state between calls")
	}
}

func TestEveryCatalogEntryHasValidDefaults(t *testing.T) {
	for _, d := range AllQuestionTypes() {
		s, ok := DefaultSettings(d.ID)
		if !ok {
			t.Fatalf("%s: missing defaults", d.ID)
		}
		if err := s.Validate(); err != nil {
			t.Fatalf("%s: default settings invalid: %v", d.ID, err)
		}
		raw, err := EncodeSettings(s)
		if err != nil {
			t.Fatalf("%s: encode: %v", d.ID, err)
		}
		if _, err := DecodeSettings(d.ID, raw); err != nil {
			t.Fatalf("%s: decode round trip: %v", d.ID, err)
		}
	}
}

func TestDecodeSettingsRejectsUnknownType(t *testing.T) {
	if _, err := DecodeSettings("hologram", []byte(`{}`)); err == nil {
		t.Fatal("expected error for unknown question type")
	}
}
