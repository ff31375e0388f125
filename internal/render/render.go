package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/MrSnakeDoc/startpage/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTitle = "Start Page"

// WeatherSource produces the text of the weather slot.
type WeatherSource interface {
	Display(ctx context.Context, lat, lon string) string
}

// ClockSource produces the initial clock text; the page keeps it current over SSE.
type ClockSource interface {
	Now() string
}

// Renderer turns a configuration document into HTML.
type Renderer struct {
	page    *template.Template
	editor  *template.Template
	weather WeatherSource
	clock   ClockSource
}

// New parses the embedded templates.
func New(weather WeatherSource, clock ClockSource) (*Renderer, error) {
	page, err := template.ParseFS(templateFS, "templates/layout.html", "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	editor, err := template.New("editor.html").
		Funcs(template.FuncMap{"pickerColor": domain.PickerColor}).
		ParseFS(templateFS, "templates/layout.html", "templates/editor.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse editor template: %w", err)
	}
	return &Renderer{page: page, editor: editor, weather: weather, clock: clock}, nil
}

type pageView struct {
	Title      string
	Wallpaper  string
	Clock      string
	Weather    string
	Categories []categoryView
}

type categoryView struct {
	Title        string
	HeadingStyle template.CSS
	Links        []linkView
}

type linkView struct {
	Name string
	URL  string
	Icon string
}

type editorView struct {
	Title      string
	Notice     string
	Wallpaper  string
	WeatherLat string
	WeatherLon string
	Categories []domain.Category
}

// Page renders the main page. The weather lookup runs before any byte is written,
// so a render always carries the result of its own lookup.
func (r *Renderer) Page(ctx context.Context, w io.Writer, doc *domain.Configuration) error {
	if doc == nil {
		return domain.ErrInvalidConfig
	}

	view := pageView{
		Title:      pageTitle,
		Wallpaper:  doc.Wallpaper,
		Weather:    r.weather.Display(ctx, doc.WeatherLat, doc.WeatherLon),
		Categories: make([]categoryView, 0, len(doc.Categories)),
	}
	if r.clock != nil {
		view.Clock = r.clock.Now()
	}

	for _, cat := range doc.Categories {
		cv := categoryView{
			Title:        cat.Title,
			HeadingStyle: headingStyle(cat.Color),
			Links:        make([]linkView, 0, len(cat.Links)),
		}
		for _, l := range cat.Links {
			cv.Links = append(cv.Links, linkView{Name: l.Name, URL: l.URL, Icon: l.IconOrDefault()})
		}
		view.Categories = append(view.Categories, cv)
	}

	return r.page.ExecuteTemplate(w, "page.html", view)
}

// Editor renders the configuration form. notice, when set, is shown above the form.
func (r *Renderer) Editor(w io.Writer, doc *domain.Configuration, notice string) error {
	if doc == nil {
		return domain.ErrInvalidConfig
	}
	return r.editor.ExecuteTemplate(w, "editor.html", editorView{
		Title:      pageTitle + " - Configuration",
		Notice:     notice,
		Wallpaper:  doc.Wallpaper,
		WeatherLat: doc.WeatherLat,
		WeatherLon: doc.WeatherLon,
		Categories: doc.Categories,
	})
}

// headingStyle is built only from HexToRGBA output: digits, commas, dots and NaN.
func headingStyle(color string) template.CSS {
	return template.CSS("background-color: " + domain.HexToRGBA(color, domain.HeadingAlpha) + ";")
}
