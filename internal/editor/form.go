package editor

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/startpage/internal/domain"
)

// Command is a form button that is not a document action.
type Command string

const (
	CommandNone  Command = ""
	CommandApply Command = "apply"
	CommandSave  Command = "save"
	CommandClose Command = "close"
)

// Form field names.
const (
	FieldAction    = "action"
	FieldWallpaper = "wallpaper"
	FieldLat       = "lat"
	FieldLon       = "lon"
)

// Submission is a decoded editor form.
type Submission struct {
	// Edits are the category and link field values that differ from the document.
	Edits []domain.Action
	// Action is the button's document action, nil for commands.
	Action *domain.Action
	// Command is set for apply, save and close.
	Command Command
	// Settings holds the top-level fields; only Save applies it.
	Settings domain.Action
}

// Actions returns Edits followed by Action, the order they must be applied in.
func (s Submission) Actions() []domain.Action {
	out := make([]domain.Action, 0, len(s.Edits)+1)
	out = append(out, s.Edits...)
	if s.Action != nil {
		out = append(out, *s.Action)
	}
	return out
}

// ParseForm decodes form against doc, the document it will be applied to.
// Fields for categories or links doc does not have are ignored.
func ParseForm(form url.Values, doc *domain.Configuration) (Submission, error) {
	if doc == nil {
		return Submission{}, domain.ErrInvalidConfig
	}

	action, cmd, err := ParseButton(form.Get(FieldAction))
	if err != nil {
		return Submission{}, err
	}

	sub := Submission{
		Edits:   fieldEdits(form, doc),
		Command: cmd,
		Settings: domain.Action{
			Kind:       domain.ActionSetSettings,
			Wallpaper:  strings.TrimSpace(form.Get(FieldWallpaper)),
			WeatherLat: strings.TrimSpace(form.Get(FieldLat)),
			WeatherLon: strings.TrimSpace(form.Get(FieldLon)),
		},
	}
	if cmd == CommandNone {
		sub.Action = &action
	}
	return sub, nil
}

func fieldEdits(form url.Values, doc *domain.Configuration) []domain.Action {
	var edits []domain.Action
	for c, cat := range doc.Categories {
		// The color picker only ever submits "#rrggbb", so compare against that form
		// or an untouched "#abc" would come back as an edit.
		current := map[string]string{"title": cat.Title, "color": domain.PickerColor(cat.Color)}
		for _, field := range []string{"title", "color"} {
			key := fmt.Sprintf("cat-%d-%s", c, field)
			if form.Has(key) && !sameValue(field, form.Get(key), current[field]) {
				edits = append(edits, domain.Action{
					Kind: domain.ActionEditCategory, Category: c, Field: field, Value: form.Get(key),
				})
			}
		}

		for l, link := range cat.Links {
			current := map[string]string{"name": link.Name, "url": link.URL, "icon": link.Icon}
			for _, field := range []string{"name", "url", "icon"} {
				key := fmt.Sprintf("link-%d-%d-%s", c, l, field)
				if form.Has(key) && form.Get(key) != current[field] {
					edits = append(edits, domain.Action{
						Kind: domain.ActionEditLink, Category: c, Link: l, Field: field, Value: form.Get(key),
					})
				}
			}
		}
	}
	return edits
}

func sameValue(field, submitted, current string) bool {
	if field == "color" {
		return strings.EqualFold(submitted, current)
	}
	return submitted == current
}

// ParseButton decodes a button value such as "move_link:0:2:-1".
// An empty value is treated as apply, which is what implicit form submission sends.
func ParseButton(value string) (domain.Action, Command, error) {
	parts := strings.Split(value, ":")
	kind, args := parts[0], parts[1:]

	switch Command(kind) {
	case CommandNone, CommandApply:
		return domain.Action{}, CommandApply, nil
	case CommandSave, CommandClose:
		return domain.Action{}, Command(kind), nil
	}

	want := map[domain.ActionKind]int{
		domain.ActionMoveCategory:   2,
		domain.ActionMoveLink:       3,
		domain.ActionDeleteCategory: 1,
		domain.ActionDeleteLink:     2,
		domain.ActionAddCategory:    0,
		domain.ActionAddLink:        1,
	}
	n, ok := want[domain.ActionKind(kind)]
	if !ok {
		return domain.Action{}, CommandNone, fmt.Errorf("%w: %q", domain.ErrUnknownAction, kind)
	}
	if len(args) != n {
		return domain.Action{}, CommandNone, fmt.Errorf("%w: %q takes %d arguments, got %d", domain.ErrUnknownAction, kind, n, len(args))
	}

	nums := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return domain.Action{}, CommandNone, fmt.Errorf("%w: bad argument %q", domain.ErrUnknownAction, a)
		}
		nums[i] = v
	}

	a := domain.Action{Kind: domain.ActionKind(kind)}
	switch a.Kind {
	case domain.ActionMoveCategory:
		a.Category, a.Dir = nums[0], nums[1]
	case domain.ActionMoveLink:
		a.Category, a.Link, a.Dir = nums[0], nums[1], nums[2]
	case domain.ActionDeleteCategory, domain.ActionAddLink:
		a.Category = nums[0]
	case domain.ActionDeleteLink:
		a.Category, a.Link = nums[0], nums[1]
	}
	return a, CommandNone, nil
}
