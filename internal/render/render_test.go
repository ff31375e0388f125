package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/startpage/internal/domain"
)

type fakeWeather struct {
	calls    int
	lat, lon string
	text     string
}

func (f *fakeWeather) Display(_ context.Context, lat, lon string) string {
	f.calls++
	f.lat, f.lon = lat, lon
	return f.text
}

type fixedClock string

func (c fixedClock) Now() string { return string(c) }

func newTestRenderer(t *testing.T, w *fakeWeather) *Renderer {
	t.Helper()
	r, err := New(w, fixedClock("January 1st 2025 - 9:05:07 am"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestPage(t *testing.T) {
	w := &fakeWeather{text: "Now: 5°C, clearsky day | +3h: N/A | +6h: N/A"}
	r := newTestRenderer(t, w)

	doc := &domain.Configuration{
		Wallpaper:  "bg.jpg",
		WeatherLat: "59.91",
		WeatherLon: "10.75",
		Categories: []domain.Category{
			{Title: "/dev", Color: "#48c774", Links: []domain.Link{
				{Name: "Github", URL: "https://github.com", Icon: "fa-brands fa-github"},
				{Name: "Plain", URL: "https://example.com"},
			}},
			{Title: "/broken", Color: "zz", Links: []domain.Link{}},
		},
	}

	var buf bytes.Buffer
	if err := r.Page(context.Background(), &buf, doc); err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"url('bg.jpg')",
		"background-color: rgba(72,199,116,0.4);",
		"background-color: rgba(NaN,NaN,NaN,0.4);",
		`href="https://github.com"`,
		`<i class="fa-brands fa-github">`,
		`<i class="fas fa-link">`,
		"January 1st 2025 - 9:05:07 am",
		"Now: 5°C, clearsky day",
		"/api/clock",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page is missing %q", want)
		}
	}

	if strings.Index(out, "/dev") > strings.Index(out, "/broken") {
		t.Error("categories are not rendered in document order")
	}
	if strings.Index(out, "Github") > strings.Index(out, "Plain") {
		t.Error("links are not rendered in document order")
	}

	if w.calls != 1 || w.lat != "59.91" || w.lon != "10.75" {
		t.Errorf("weather lookups = %d (%q, %q), want 1 for the document coordinates", w.calls, w.lat, w.lon)
	}
}

func TestPageEscapesContent(t *testing.T) {
	r := newTestRenderer(t, &fakeWeather{})

	doc := &domain.Configuration{Categories: []domain.Category{{
		Title: "<script>alert(1)</script>",
		Color: "#fff",
		Links: []domain.Link{{Name: "x", URL: "javascript:alert(1)"}},
	}}}

	var buf bytes.Buffer
	if err := r.Page(context.Background(), &buf, doc); err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Error("category title was not escaped")
	}
	if strings.Contains(out, `href="javascript:`) {
		t.Error("unsafe link target was not filtered")
	}
}

func TestPageNilDocument(t *testing.T) {
	r := newTestRenderer(t, &fakeWeather{})
	if err := r.Page(context.Background(), &bytes.Buffer{}, nil); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Page(nil) error = %v, want ErrInvalidConfig", err)
	}
}

func TestEditor(t *testing.T) {
	w := &fakeWeather{}
	r := newTestRenderer(t, w)

	var buf bytes.Buffer
	if err := r.Editor(&buf, domain.DefaultConfiguration(), "Config imported"); err != nil {
		t.Fatalf("Editor() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`name="wallpaper" value="./img/wp.jpg"`,
		`name="cat-0-title" value="/dev"`,
		`name="cat-1-color" value="#3273dc"`,
		`name="link-1-0-url" value="https://reddit.com"`,
		`value="move_category:1:-1"`,
		`value="move_link:0:0:1"`,
		`value="delete_link:1:0"`,
		`value="add_link:0"`,
		`value="add_category"`,
		`value="save"`,
		`value="close"`,
		`href="/export"`,
		`action="/import"`,
		"Config imported",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("editor is missing %q", want)
		}
	}
	if w.calls != 0 {
		t.Errorf("editor triggered %d weather lookups, want 0", w.calls)
	}
}

func TestEditorWithoutNotice(t *testing.T) {
	r := newTestRenderer(t, &fakeWeather{})

	var buf bytes.Buffer
	if err := r.Editor(&buf, domain.DefaultConfiguration(), ""); err != nil {
		t.Fatalf("Editor() error = %v", err)
	}
	if strings.Contains(buf.String(), `id="notice"`) {
		t.Error("editor rendered an empty notice")
	}
}

func TestEditorColorPickerValues(t *testing.T) {
	r := newTestRenderer(t, &fakeWeather{})
	doc := &domain.Configuration{Categories: []domain.Category{
		{Title: "/a", Color: "#abc", Links: []domain.Link{}},
		{Title: "/b", Color: "48C774", Links: []domain.Link{}},
		{Title: "/c", Color: "zz", Links: []domain.Link{}},
	}}

	var buf bytes.Buffer
	if err := r.Editor(&buf, doc, ""); err != nil {
		t.Fatalf("Editor() error = %v", err)
	}
	for _, want := range []string{
		`name="cat-0-color" value="#aabbcc"`,
		`name="cat-1-color" value="#48c774"`,
		`name="cat-2-color" value="#000000"`,
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("editor is missing %q", want)
		}
	}
}
