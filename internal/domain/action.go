package domain

import "fmt"

// ActionKind names an editor intent.
type ActionKind string

const (
	ActionMoveCategory   ActionKind = "move_category"
	ActionMoveLink       ActionKind = "move_link"
	ActionDeleteCategory ActionKind = "delete_category"
	ActionDeleteLink     ActionKind = "delete_link"
	ActionAddCategory    ActionKind = "add_category"
	ActionAddLink        ActionKind = "add_link"
	ActionEditCategory   ActionKind = "edit_category"
	ActionEditLink       ActionKind = "edit_link"
	ActionSetSettings    ActionKind = "set_settings"
)

// Defaults for entries created from the editor.
const (
	NewCategoryTitle = "/new"
	NewCategoryColor = "#3273dc"
)

// Action is a described user intent. Only the fields relevant to Kind are read.
type Action struct {
	Kind     ActionKind `json:"kind"`
	Category int        `json:"category,omitempty"`
	Link     int        `json:"link,omitempty"`
	Dir      int        `json:"dir,omitempty"`   // -1 (up) or +1 (down)
	Field    string     `json:"field,omitempty"` // edit_category: title|color, edit_link: name|url|icon
	Value    string     `json:"value,omitempty"`

	// set_settings
	Wallpaper  string `json:"wallpaper,omitempty"`
	WeatherLat string `json:"weatherLat,omitempty"`
	WeatherLon string `json:"weatherLon,omitempty"`
}

// Apply is the single reducer for editor actions. It mutates doc in place.
// Moves past either end are silent no-ops; every other out-of-range index is an error
// and leaves doc untouched.
func Apply(doc *Configuration, a Action) error {
	if doc == nil {
		return ErrInvalidConfig
	}

	switch a.Kind {
	case ActionMoveCategory:
		if !validIndex(a.Category, len(doc.Categories)) {
			return outOfRange("category", a.Category)
		}
		if err := checkDir(a.Dir); err != nil {
			return err
		}
		Move(doc.Categories, a.Category, a.Category+a.Dir)

	case ActionMoveLink:
		cat, err := categoryAt(doc, a.Category)
		if err != nil {
			return err
		}
		if !validIndex(a.Link, len(cat.Links)) {
			return outOfRange("link", a.Link)
		}
		if err := checkDir(a.Dir); err != nil {
			return err
		}
		Move(cat.Links, a.Link, a.Link+a.Dir)

	case ActionDeleteCategory:
		if !validIndex(a.Category, len(doc.Categories)) {
			return outOfRange("category", a.Category)
		}
		doc.Categories = Remove(doc.Categories, a.Category)

	case ActionDeleteLink:
		cat, err := categoryAt(doc, a.Category)
		if err != nil {
			return err
		}
		if !validIndex(a.Link, len(cat.Links)) {
			return outOfRange("link", a.Link)
		}
		cat.Links = Remove(cat.Links, a.Link)

	case ActionAddCategory:
		doc.Categories = append(doc.Categories, Category{
			Title: NewCategoryTitle,
			Color: NewCategoryColor,
			Links: []Link{},
		})

	case ActionAddLink:
		cat, err := categoryAt(doc, a.Category)
		if err != nil {
			return err
		}
		cat.Links = append(cat.Links, Link{Name: "", URL: "", Icon: DefaultIcon})

	case ActionEditCategory:
		cat, err := categoryAt(doc, a.Category)
		if err != nil {
			return err
		}
		switch a.Field {
		case "title":
			cat.Title = a.Value
		case "color":
			cat.Color = a.Value
		default:
			return fmt.Errorf("%w: category field %q", ErrUnknownAction, a.Field)
		}

	case ActionEditLink:
		cat, err := categoryAt(doc, a.Category)
		if err != nil {
			return err
		}
		if !validIndex(a.Link, len(cat.Links)) {
			return outOfRange("link", a.Link)
		}
		link := &cat.Links[a.Link]
		switch a.Field {
		case "name":
			link.Name = a.Value
		case "url":
			link.URL = a.Value
		case "icon":
			link.Icon = a.Value
		default:
			return fmt.Errorf("%w: link field %q", ErrUnknownAction, a.Field)
		}

	case ActionSetSettings:
		doc.Wallpaper = a.Wallpaper
		doc.WeatherLat = a.WeatherLat
		doc.WeatherLon = a.WeatherLon

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}

	return nil
}

// Move relocates s[from] to index to, shifting the elements in between.
// It is a no-op when to falls outside the slice.
func Move[T any](s []T, from, to int) {
	if to < 0 || to >= len(s) || from < 0 || from >= len(s) || from == to {
		return
	}
	item := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = item
}

// Remove deletes s[i], keeping the relative order of the remaining elements.
func Remove[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func categoryAt(doc *Configuration, i int) (*Category, error) {
	if !validIndex(i, len(doc.Categories)) {
		return nil, outOfRange("category", i)
	}
	return &doc.Categories[i], nil
}

func validIndex(i, n int) bool { return i >= 0 && i < n }

func checkDir(dir int) error {
	if dir != -1 && dir != 1 {
		return fmt.Errorf("%w: direction must be -1 or 1, got %d", ErrUnknownAction, dir)
	}
	return nil
}

func outOfRange(what string, i int) error {
	return fmt.Errorf("%w: %s %d", ErrIndexOutOfRange, what, i)
}
