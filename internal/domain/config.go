package domain

// DefaultIcon is used when a link has no icon of its own.
const DefaultIcon = "fas fa-link"

// Configuration is the single document behind the start page.
//
// It is NOT tied to a storage backend: the store persists it as JSON text,
// the renderer and the editor only ever see this structure.
type Configuration struct {
	// Wallpaper is a path or URL to the background image.
	Wallpaper string `json:"wallpaper"`

	// WeatherLat and WeatherLon are decimal coordinates kept as text.
	// Either one being empty disables the weather lookup.
	WeatherLat string `json:"weatherLat"`
	WeatherLon string `json:"weatherLon"`

	// Categories are displayed in slice order.
	Categories []Category `json:"categories"`
}

// Category is a titled, colored group of links.
// Its index in Configuration.Categories is its only identity.
type Category struct {
	Title string `json:"title"`
	Color string `json:"color"` // hex, 3 or 6 digits, optional leading '#'
	Links []Link `json:"links"`
}

// Link is a single entry within a category.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// IconOrDefault returns the link icon, falling back to DefaultIcon.
func (l Link) IconOrDefault() string {
	if l.Icon == "" {
		return DefaultIcon
	}
	return l.Icon
}

// DefaultConfiguration returns the built-in document used when nothing is persisted.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Wallpaper:  "./img/wp.jpg",
		WeatherLat: "",
		WeatherLon: "",
		Categories: []Category{
			{
				Title: "/dev",
				Color: "#48c774",
				Links: []Link{{Name: "Github", URL: "https://github.com", Icon: "fa-brands fa-github"}},
			},
			{
				Title: "/social",
				Color: "#3273dc",
				Links: []Link{{Name: "Reddit", URL: "https://reddit.com", Icon: "fa-brands fa-reddit-alien"}},
			},
		},
	}
}

// Clone returns a deep copy of the document.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	out := *c
	if c.Categories != nil {
		out.Categories = make([]Category, len(c.Categories))
		for i, cat := range c.Categories {
			out.Categories[i] = cat
			if cat.Links != nil {
				out.Categories[i].Links = make([]Link, len(cat.Links))
				copy(out.Categories[i].Links, cat.Links)
			}
		}
	}
	return &out
}

// Validate performs the shallow shape check applied before a document replaces
// the current one: it must exist and carry a categories array.
func (c *Configuration) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}
	if c.Categories == nil {
		return ErrInvalidConfig
	}
	return nil
}
