package questions

// Question type identifiers. The registry is the single source of truth for
// what a survey may contain.
const (
	TypeShortText      = "short_text"
	TypeLongText       = "long_text"
	TypeMultipleChoice = "multiple_choice"
	TypeCheckboxes     = "checkboxes"
	TypeDropdown       = "dropdown"
	TypeYesNo          = "yes_no"
	TypeRating         = "rating"
	TypeNPS            = "nps"
	TypeThumbs         = "thumbs"
	TypeEmojiScale     = "emoji_scale"
	TypeEmojiCustom    = "emoji_custom"
	TypeDate           = "date"
	TypeMatrix         = "matrix"
)

type TypeDescriptor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	MinPlan  Plan   `json:"min_plan"`

	defaults func() Settings
}

// Ordered the way the builder palette shows them.
var catalog = []TypeDescriptor{
	{ID: TypeShortText, Name: "Short Text", Category: "text", Icon: "text", MinPlan: PlanFree,
		defaults: func() Settings { return &TextSettings{Placeholder: "Type your answer", MaxLength: 255} }},
	{ID: TypeLongText, Name: "Long Text", Category: "text", Icon: "align-left", MinPlan: PlanFree,
		defaults: func() Settings { return &TextSettings{Placeholder: "Type your answer", MaxLength: 5000, Multiline: true} }},
	{ID: TypeMultipleChoice, Name: "Multiple Choice", Category: "choice", Icon: "circle-dot", MinPlan: PlanFree,
		defaults: func() Settings { return defaultChoiceSettings(false) }},
	{ID: TypeCheckboxes, Name: "Checkboxes", Category: "choice", Icon: "square-check", MinPlan: PlanFree,
		defaults: func() Settings { return defaultChoiceSettings(true) }},
	{ID: TypeDropdown, Name: "Dropdown", Category: "choice", Icon: "chevron-down", MinPlan: PlanFree,
		defaults: func() Settings { return defaultChoiceSettings(false) }},
	{ID: TypeYesNo, Name: "Yes / No", Category: "choice", Icon: "toggle-left", MinPlan: PlanFree,
		defaults: func() Settings { return &YesNoSettings{YesLabel: "Yes", NoLabel: "No"} }},
	{ID: TypeRating, Name: "Star Rating", Category: "rating", Icon: "star", MinPlan: PlanFree,
		defaults: func() Settings { return &RatingSettings{Max: 5, Icon: "star"} }},
	{ID: TypeNPS, Name: "Net Promoter Score", Category: "rating", Icon: "gauge", MinPlan: PlanPro,
		defaults: func() Settings {
			return &ScaleSettings{Min: 0, Max: 10, MinLabel: "Not at all likely", MaxLabel: "Extremely likely"}
		}},
	{ID: TypeThumbs, Name: "Thumbs", Category: "rating", Icon: "thumbs-up", MinPlan: PlanFree,
		defaults: func() Settings { return &ThumbsSettings{UpLabel: "Yes", DownLabel: "No"} }},
	{ID: TypeEmojiScale, Name: "Emoji Scale", Category: "rating", Icon: "smile", MinPlan: PlanFree,
		defaults: func() Settings {
			return &EmojiSettings{
				Emojis: []string{"😡", "🙁", "😐", "🙂", "😍"},
				Labels: []string{"Terrible", "Bad", "Okay", "Good", "Amazing"},
			}
		}},
	{ID: TypeEmojiCustom, Name: "Custom Emoji", Category: "rating", Icon: "sparkles", MinPlan: PlanPro,
		defaults: func() Settings {
			return &EmojiSettings{
				Emojis: []string{"👍", "👎"},
				Labels: []string{"Like", "Dislike"},
			}
		}},
	{ID: TypeDate, Name: "Date", Category: "text", Icon: "calendar", MinPlan: PlanFree,
		defaults: func() Settings { return &DateSettings{} }},
	{ID: TypeMatrix, Name: "Matrix", Category: "advanced", Icon: "grid", MinPlan: PlanPro,
		defaults: func() Settings { return defaultMatrixSettings() }},
}

var catalogByID = func() map[string]TypeDescriptor {
	m := make(map[string]TypeDescriptor, len(catalog))
	for _, d := range catalog {
		m[d.ID] = d
	}
	return m
}()

func AllQuestionTypes() []TypeDescriptor {
	out := make([]TypeDescriptor, len(catalog))
	copy(out, catalog)
	return out
}

func QuestionType(id string) (TypeDescriptor, bool) {
	d, ok := catalogByID[id]
	return d, ok
}

// HasAccess gates restricted question types by subscription plan. Admin roles
// bypass the plan check. Unknown types never pass.
func HasAccess(id string, plan Plan, role Role) bool {
	d, ok := catalogByID[id]
	if !ok {
		return false
	}
	if role == RoleAdmin || role == RoleSuperAdmin {
		return true
	}
	return PlanAtLeast(plan, d.MinPlan)
}

// DefaultSettings returns a fresh typed settings value for the given type.
// Each call allocates, so callers can mutate freely.
func DefaultSettings(id string) (Settings, bool) {
	d, ok := catalogByID[id]
	if !ok {
		return nil, false
	}
	return d.defaults(), true
}
