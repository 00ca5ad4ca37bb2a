package questions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"formloom/pkg/utils"
)

// QuestionView is the decoded form services hand to validation: db identity
// plus the typed settings variant.
type QuestionView struct {
	ID       uuid.UUID
	Type     string
	Title    string
	Required bool
	Settings Settings
}

// AnswerEmpty reports whether a raw answer value counts as "no answer" for
// required-field purposes. A required matrix needs every row answered.
func AnswerEmpty(q QuestionView, raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	if len(raw) == 0 || trimmed == "null" || trimmed == `""` || trimmed == "[]" || trimmed == "{}" {
		return true
	}

	if q.Type == TypeMatrix {
		ms, ok := q.Settings.(*MatrixSettings)
		if !ok {
			return true
		}
		var mr MatrixResponse
		if err := json.Unmarshal(raw, &mr); err != nil {
			return true
		}
		return !mr.Complete(ms)
	}
	return false
}

// MissingRequired returns the ids of required questions without a usable
// answer, in question order.
func MissingRequired(qs []QuestionView, answers map[uuid.UUID]json.RawMessage) []uuid.UUID {
	var missing []uuid.UUID
	for _, q := range qs {
		if !q.Required {
			continue
		}
		raw, ok := answers[q.ID]
		if !ok || AnswerEmpty(q, raw) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// ValidateAnswer type-checks a single answer value against the question's
// settings. Empty values pass here; required-ness is MissingRequired's job.
func ValidateAnswer(q QuestionView, raw json.RawMessage) error {
	if AnswerEmpty(q, raw) && q.Type != TypeMatrix {
		return nil
	}

	switch q.Type {
	case TypeShortText, TypeLongText:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return answerShapeError(q)
		}
		s := q.Settings.(*TextSettings)
		if s.MaxLength > 0 && len(v) > s.MaxLength {
			return utils.ValidationError(fmt.Sprintf("answer exceeds %d characters", s.MaxLength))
		}

	case TypeMultipleChoice, TypeDropdown:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return answerShapeError(q)
		}
		s := q.Settings.(*ChoiceSettings)
		if _, ok := s.OptionByID(v); !ok && !(s.AllowOther && v != "") {
			return utils.ValidationError("answer is not one of the question's options")
		}

	case TypeCheckboxes:
		var vs []string
		if err := json.Unmarshal(raw, &vs); err != nil {
			return answerShapeError(q)
		}
		s := q.Settings.(*ChoiceSettings)
		for _, v := range vs {
			if _, ok := s.OptionByID(v); !ok && !(s.AllowOther && v != "") {
				return utils.ValidationError("answer is not one of the question's options")
			}
		}

	case TypeYesNo:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil || (v != "yes" && v != "no") {
			return answerShapeError(q)
		}

	case TypeRating:
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return answerShapeError(q)
		}
		s := q.Settings.(*RatingSettings)
		if v < 1 || v > s.Max {
			return utils.ValidationError(fmt.Sprintf("rating must be between 1 and %d", s.Max))
		}

	case TypeNPS:
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return answerShapeError(q)
		}
		s := q.Settings.(*ScaleSettings)
		if v < s.Min || v > s.Max {
			return utils.ValidationError(fmt.Sprintf("answer must be between %d and %d", s.Min, s.Max))
		}

	case TypeThumbs:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil || (v != "up" && v != "down") {
			return answerShapeError(q)
		}

	case TypeEmojiScale, TypeEmojiCustom:
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return answerShapeError(q)
		}
		s := q.Settings.(*EmojiSettings)
		// Emoji answers are 1-indexed positions.
		if v < 1 || v > len(s.Emojis) {
			return utils.ValidationError(fmt.Sprintf("answer must be between 1 and %d", len(s.Emojis)))
		}

	case TypeDate:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil || v == "" {
			return answerShapeError(q)
		}

	case TypeMatrix:
		s := q.Settings.(*MatrixSettings)
		var mr MatrixResponse
		if err := json.Unmarshal(raw, &mr); err != nil {
			return answerShapeError(q)
		}
		if err := mr.CheckAgainst(s); err != nil {
			return err
		}

	default:
		return utils.ValidationError("unknown question type: " + q.Type)
	}
	return nil
}

func answerShapeError(q QuestionView) *utils.AppError {
	return utils.ValidationError(fmt.Sprintf("answer has the wrong shape for a %s question", q.Type))
}
