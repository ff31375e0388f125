package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleDoc() *Configuration {
	return &Configuration{
		Wallpaper: "./img/wp.jpg",
		Categories: []Category{
			{Title: "a", Color: "#111", Links: []Link{{Name: "a1"}, {Name: "a2"}, {Name: "a3"}}},
			{Title: "b", Color: "#222", Links: []Link{{Name: "b1"}}},
			{Title: "c", Color: "#333", Links: []Link{}},
		},
	}
}

func titles(doc *Configuration) []string {
	out := make([]string, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		out = append(out, c.Title)
	}
	return out
}

func TestApplyMoveCategory(t *testing.T) {
	tests := []struct {
		name  string
		index int
		dir   int
		want  []string
	}{
		{name: "move up", index: 1, dir: -1, want: []string{"b", "a", "c"}},
		{name: "move down", index: 1, dir: 1, want: []string{"a", "c", "b"}},
		{name: "first cannot move up", index: 0, dir: -1, want: []string{"a", "b", "c"}},
		{name: "last cannot move down", index: 2, dir: 1, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDoc()
			if err := Apply(doc, Action{Kind: ActionMoveCategory, Category: tt.index, Dir: tt.dir}); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, titles(doc)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyMoveIsReversible(t *testing.T) {
	doc := sampleDoc()
	before := doc.Clone()

	if err := Apply(doc, Action{Kind: ActionMoveLink, Category: 0, Link: 1, Dir: -1}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	// The moved link now sits at index 0.
	if err := Apply(doc, Action{Kind: ActionMoveLink, Category: 0, Link: 0, Dir: 1}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if diff := cmp.Diff(before, doc); diff != "" {
		t.Errorf("move up then down changed the document (-want +got):\n%s", diff)
	}
}

func TestApplyInvalidDirection(t *testing.T) {
	doc := sampleDoc()
	err := Apply(doc, Action{Kind: ActionMoveCategory, Category: 0, Dir: 2})
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Apply() error = %v, want ErrUnknownAction", err)
	}
}

func TestApplyDeleteLink(t *testing.T) {
	doc := sampleDoc()
	before := doc.Clone()

	if err := Apply(doc, Action{Kind: ActionDeleteLink, Category: 0, Link: 1}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got := len(doc.Categories[0].Links); got != 2 {
		t.Fatalf("links after delete = %d, want 2", got)
	}
	if doc.Categories[0].Links[0].Name != "a1" || doc.Categories[0].Links[1].Name != "a3" {
		t.Errorf("remaining links = %+v, want a1, a3", doc.Categories[0].Links)
	}
	if diff := cmp.Diff(before.Categories[1:], doc.Categories[1:]); diff != "" {
		t.Errorf("other categories changed (-want +got):\n%s", diff)
	}
}

func TestApplyDeleteCategory(t *testing.T) {
	doc := sampleDoc()
	if err := Apply(doc, Action{Kind: ActionDeleteCategory, Category: 0}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if diff := cmp.Diff([]string{"b", "c"}, titles(doc)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyAdd(t *testing.T) {
	doc := sampleDoc()

	if err := Apply(doc, Action{Kind: ActionAddCategory}); err != nil {
		t.Fatalf("Apply(add_category) error = %v", err)
	}
	last := doc.Categories[len(doc.Categories)-1]
	want := Category{Title: NewCategoryTitle, Color: NewCategoryColor, Links: []Link{}}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Errorf("new category mismatch (-want +got):\n%s", diff)
	}

	if err := Apply(doc, Action{Kind: ActionAddLink, Category: 2}); err != nil {
		t.Fatalf("Apply(add_link) error = %v", err)
	}
	if diff := cmp.Diff([]Link{{Icon: DefaultIcon}}, doc.Categories[2].Links); diff != "" {
		t.Errorf("new link mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEdit(t *testing.T) {
	doc := sampleDoc()

	steps := []Action{
		{Kind: ActionEditCategory, Category: 1, Field: "title", Value: "/work"},
		{Kind: ActionEditCategory, Category: 1, Field: "color", Value: "#abcdef"},
		{Kind: ActionEditLink, Category: 1, Link: 0, Field: "name", Value: "Mail"},
		{Kind: ActionEditLink, Category: 1, Link: 0, Field: "url", Value: "https://mail.example.com"},
		{Kind: ActionEditLink, Category: 1, Link: 0, Field: "icon", Value: "fas fa-envelope"},
		{Kind: ActionSetSettings, Wallpaper: "bg.png", WeatherLat: "59.91", WeatherLon: "10.75"},
	}
	for _, a := range steps {
		if err := Apply(doc, a); err != nil {
			t.Fatalf("Apply(%+v) error = %v", a, err)
		}
	}

	want := Category{
		Title: "/work",
		Color: "#abcdef",
		Links: []Link{{Name: "Mail", URL: "https://mail.example.com", Icon: "fas fa-envelope"}},
	}
	if diff := cmp.Diff(want, doc.Categories[1]); diff != "" {
		t.Errorf("edited category mismatch (-want +got):\n%s", diff)
	}
	if doc.Wallpaper != "bg.png" || doc.WeatherLat != "59.91" || doc.WeatherLon != "10.75" {
		t.Errorf("settings not applied: %+v", doc)
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		want   error
	}{
		{name: "delete missing category", action: Action{Kind: ActionDeleteCategory, Category: 5}, want: ErrIndexOutOfRange},
		{name: "delete negative link", action: Action{Kind: ActionDeleteLink, Category: 0, Link: -1}, want: ErrIndexOutOfRange},
		{name: "add link to missing category", action: Action{Kind: ActionAddLink, Category: 3}, want: ErrIndexOutOfRange},
		{name: "edit missing link", action: Action{Kind: ActionEditLink, Category: 2, Link: 0, Field: "name"}, want: ErrIndexOutOfRange},
		{name: "unknown category field", action: Action{Kind: ActionEditCategory, Category: 0, Field: "links"}, want: ErrUnknownAction},
		{name: "unknown kind", action: Action{Kind: "rename"}, want: ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDoc()
			before := doc.Clone()
			err := Apply(doc, tt.action)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.want)
			}
			if diff := cmp.Diff(before, doc); diff != "" {
				t.Errorf("failed action mutated the document (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := sampleDoc()
	clone := doc.Clone()
	clone.Categories[0].Links[0].Name = "changed"
	clone.Categories[1].Title = "changed"

	if doc.Categories[0].Links[0].Name != "a1" || doc.Categories[1].Title != "b" {
		t.Error("Clone() shares memory with the original")
	}
}

func TestValidate(t *testing.T) {
	var nilDoc *Configuration
	if err := nilDoc.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil Validate() = %v, want ErrInvalidConfig", err)
	}
	if err := (&Configuration{}).Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("missing categories Validate() = %v, want ErrInvalidConfig", err)
	}
	if err := (&Configuration{Categories: []Category{}}).Validate(); err != nil {
		t.Errorf("empty categories Validate() = %v, want nil", err)
	}
	if err := DefaultConfiguration().Validate(); err != nil {
		t.Errorf("default Validate() = %v, want nil", err)
	}
}
