package questions

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func requiredText(id uuid.UUID) QuestionView {
	return QuestionView{
		ID:       id,
		Type:     TypeShortText,
		Required: true,
		Settings: &TextSettings{MaxLength: 255},
	}
}

func TestMissingRequiredCountsExactly(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	qs := []QuestionView{
		requiredText(ids[0]),
		requiredText(ids[1]),
		requiredText(ids[2]),
		{ID: uuid.New(), Type: TypeShortText, Required: false, Settings: &TextSettings{}},
	}

	answers := map[uuid.UUID]json.RawMessage{
		ids[0]: json.RawMessage(`"hello"`),
		ids[1]: json.RawMessage(`""`),   // empty string does not count
		ids[2]: json.RawMessage(`null`), // nor does null
	}

	missing := MissingRequired(qs, answers)
	if len(missing) != 2 {
		t.Fatalf("missing = %v, want exactly 2 entries", missing)
	}
	if missing[0] != ids[1] || missing[1] != ids[2] {
		t.Fatalf("missing ids out of order: %v", missing)
	}
}

func TestMissingRequiredMatrixNeedsEveryRow(t *testing.T) {
	q := QuestionView{
		ID:       uuid.New(),
		Type:     TypeMatrix,
		Required: true,
		Settings: testMatrix(ScaleRadio),
	}
	partial := json.RawMessage(`{"r1":{"single":"c1"}}`)
	full := json.RawMessage(`{"r1":{"single":"c1"},"r2":{"single":"c2"},"r3":{"single":"c3"}}`)

	if got := MissingRequired([]QuestionView{q}, map[uuid.UUID]json.RawMessage{q.ID: partial}); len(got) != 1 {
		t.Fatalf("partial matrix should be missing, got %v", got)
	}
	if got := MissingRequired([]QuestionView{q}, map[uuid.UUID]json.RawMessage{q.ID: full}); len(got) != 0 {
		t.Fatalf("complete matrix should not be missing, got %v", got)
	}
}

func TestEmojiCustomThreeOptions(t *testing.T) {
	s := &EmojiSettings{
		Emojis: []string{"🥉", "🥈", "🥇"},
		Labels: []string{"Bronze", "Silver", "Gold"},
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}

	opts := s.RenderOptions()
	if len(opts) != 3 {
		t.Fatalf("rendered %d options, want 3", len(opts))
	}
	for i, o := range opts {
		if o.Value != i+1 {
			t.Fatalf("option %d has value %d, want %d", i, o.Value, i+1)
		}
	}
	if opts[1].Emoji != "🥈" || opts[1].Label != "Silver" {
		t.Fatalf("option 2 = %+v, want paired silver label", opts[1])
	}

	q := QuestionView{ID: uuid.New(), Type: TypeEmojiCustom, Settings: s}
	// Selecting option 2 submits the 1-indexed value 2.
	if err := ValidateAnswer(q, json.RawMessage(`2`)); err != nil {
		t.Fatalf("value 2 should be valid: %v", err)
	}
	if err := ValidateAnswer(q, json.RawMessage(`0`)); err == nil {
		t.Fatal("value 0 should be rejected (answers are 1-indexed)")
	}
	if err := ValidateAnswer(q, json.RawMessage(`4`)); err == nil {
		t.Fatal("value 4 should be rejected for 3 emojis")
	}
}

func TestValidateAnswerShapes(t *testing.T) {
	choice := &ChoiceSettings{Options: []Option{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}}
	cases := []struct {
		name    string
		q       QuestionView
		raw     string
		wantErr bool
	}{
		{"choice accepts known option", QuestionView{Type: TypeMultipleChoice, Settings: choice}, `"a"`, false},
		{"choice rejects unknown option", QuestionView{Type: TypeMultipleChoice, Settings: choice}, `"z"`, true},
		{"checkboxes reject unknown member", QuestionView{Type: TypeCheckboxes, Settings: &ChoiceSettings{Options: choice.Options, Multiple: true}}, `["a","z"]`, true},
		{"rating in bounds", QuestionView{Type: TypeRating, Settings: &RatingSettings{Max: 5}}, `5`, false},
		{"rating out of bounds", QuestionView{Type: TypeRating, Settings: &RatingSettings{Max: 5}}, `6`, true},
		{"nps accepts zero", QuestionView{Type: TypeNPS, Settings: &ScaleSettings{Min: 0, Max: 10}}, `0`, false},
		{"thumbs up", QuestionView{Type: TypeThumbs, Settings: &ThumbsSettings{}}, `"up"`, false},
		{"thumbs sideways", QuestionView{Type: TypeThumbs, Settings: &ThumbsSettings{}}, `"sideways"`, true},
		{"yes_no", QuestionView{Type: TypeYesNo, Settings: &YesNoSettings{}}, `"yes"`, false},
		{"text over max length", QuestionView{Type: TypeShortText, Settings: &TextSettings{MaxLength: 3}}, `"abcd"`, true},
		{"wrong json shape", QuestionView{Type: TypeRating, Settings: &RatingSettings{Max: 5}}, `"five"`, true},
	}
	for _, c := range cases {
		err := ValidateAnswer(c.q, json.RawMessage(c.raw))
		if (err != nil) != c.wantErr {
			t.Errorf("%s: err=%v, wantErr=%v", c.name, err, c.wantErr)
		}
	}
}
