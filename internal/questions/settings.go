package questions

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"formloom/pkg/utils"
)

// Settings is the typed per-question configuration. The concrete shape is a
// sum over question type; jsonb in, typed variant out.
type Settings interface {
	// Validate checks internal consistency, not answer values.
	Validate() error
}

type TextSettings struct {
	Placeholder string `json:"placeholder,omitempty"`
	MaxLength   int    `json:"max_length,omitempty"`
	Multiline   bool   `json:"multiline,omitempty"`
}

func (s *TextSettings) Validate() error {
	if s.MaxLength < 0 {
		return utils.ValidationError("max_length must not be negative")
	}
	return nil
}

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type ChoiceSettings struct {
	Options    []Option `json:"options"`
	Multiple   bool     `json:"multiple,omitempty"`
	AllowOther bool     `json:"allow_other,omitempty"`
}

func (s *ChoiceSettings) Validate() error {
	if len(s.Options) == 0 {
		return utils.ValidationError("at least one option is required")
	}
	seen := make(map[string]bool, len(s.Options))
	for _, o := range s.Options {
		if o.ID == "" || o.Label == "" {
			return utils.ValidationError("options need an id and a label")
		}
		if seen[o.ID] {
			return utils.ValidationError("duplicate option id: " + o.ID)
		}
		seen[o.ID] = true
	}
	return nil
}

func (s *ChoiceSettings) OptionByID(id string) (Option, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

func defaultChoiceSettings(multiple bool) *ChoiceSettings {
	return &ChoiceSettings{
		Multiple: multiple,
		Options: []Option{
			{ID: uuid.NewString(), Label: "Option 1"},
			{ID: uuid.NewString(), Label: "Option 2"},
		},
	}
}

type YesNoSettings struct {
	YesLabel string `json:"yes_label,omitempty"`
	NoLabel  string `json:"no_label,omitempty"`
}

func (s *YesNoSettings) Validate() error { return nil }

type RatingSettings struct {
	Max  int    `json:"max"`
	Icon string `json:"icon,omitempty"`
}

func (s *RatingSettings) Validate() error {
	if s.Max < 2 || s.Max > 10 {
		return utils.ValidationError("rating max must be between 2 and 10")
	}
	return nil
}

type ScaleSettings struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	MinLabel string `json:"min_label,omitempty"`
	MaxLabel string `json:"max_label,omitempty"`
}

func (s *ScaleSettings) Validate() error {
	if s.Max <= s.Min {
		return utils.ValidationError("scale max must be greater than min")
	}
	return nil
}

type ThumbsSettings struct {
	UpLabel   string `json:"up_label,omitempty"`
	DownLabel string `json:"down_label,omitempty"`
}

func (s *ThumbsSettings) Validate() error { return nil }

// EmojiSettings pairs each emoji with a label shown on hover/selection.
// Answers are 1-indexed positions into Emojis.
type EmojiSettings struct {
	Emojis []string `json:"emojis"`
	Labels []string `json:"labels"`
}

func (s *EmojiSettings) Validate() error {
	if len(s.Emojis) == 0 {
		return utils.ValidationError("at least one emoji is required")
	}
	if len(s.Labels) != len(s.Emojis) {
		return utils.ValidationError("emoji labels must pair one-to-one with emojis")
	}
	return nil
}

type EmojiOption struct {
	Value int    `json:"value"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

// RenderOptions is what the respondent UI iterates over. Values start at 1.
func (s *EmojiSettings) RenderOptions() []EmojiOption {
	out := make([]EmojiOption, len(s.Emojis))
	for i, e := range s.Emojis {
		out[i] = EmojiOption{Value: i + 1, Emoji: e, Label: s.Labels[i]}
	}
	return out
}

type DateSettings struct {
	IncludeTime bool `json:"include_time,omitempty"`
}

func (s *DateSettings) Validate() error { return nil }

// DecodeSettings parses a stored settings blob into the typed variant for the
// question type. An empty blob yields the registry defaults.
func DecodeSettings(questionType string, raw []byte) (Settings, error) {
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
		s, ok := DefaultSettings(questionType)
		if !ok {
			return nil, utils.ValidationError("unknown question type: " + questionType)
		}
		return s, nil
	}

	var s Settings
	switch questionType {
	case TypeShortText, TypeLongText:
		s = &TextSettings{}
	case TypeMultipleChoice, TypeCheckboxes, TypeDropdown:
		s = &ChoiceSettings{}
	case TypeYesNo:
		s = &YesNoSettings{}
	case TypeRating:
		s = &RatingSettings{}
	case TypeNPS:
		s = &ScaleSettings{}
	case TypeThumbs:
		s = &ThumbsSettings{}
	case TypeEmojiScale, TypeEmojiCustom:
		s = &EmojiSettings{}
	case TypeDate:
		s = &DateSettings{}
	case TypeMatrix:
		s = &MatrixSettings{}
	default:
		return nil, utils.ValidationError("unknown question type: " + questionType)
	}

	if err := json.Unmarshal(raw, s); err != nil {
		return nil, utils.ValidationError(fmt.Sprintf("settings are not valid for %s question", questionType))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func EncodeSettings(s Settings) ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}
