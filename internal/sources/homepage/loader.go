package homepage

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// templateVar matches Homepage template variables such as {{HOMEPAGE_VAR_ADGUARD_USER}}.
var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads a Homepage services.yaml and/or bookmarks.yaml.
// An empty path means the file is not configured.
type Loader struct {
	servicesPath  string
	bookmarksPath string
}

// NewLoader creates a new Homepage loader
func NewLoader(servicesPath, bookmarksPath string) *Loader {
	return &Loader{
		servicesPath:  servicesPath,
		bookmarksPath: bookmarksPath,
	}
}

// Configured reports whether at least one source file is set.
func (l *Loader) Configured() bool {
	return l.servicesPath != "" || l.bookmarksPath != ""
}

// LoadServices reads and parses services.yaml. It returns nil when no path is configured.
func (l *Loader) LoadServices() (ServicesConfig, error) {
	if l.servicesPath == "" {
		return nil, nil
	}
	var config ServicesConfig
	if err := readYAML(l.servicesPath, &config); err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}
	return config, nil
}

// LoadBookmarks reads and parses bookmarks.yaml. It returns nil when no path is configured.
func (l *Loader) LoadBookmarks() (BookmarksConfig, error) {
	if l.bookmarksPath == "" {
		return nil, nil
	}
	var config BookmarksConfig
	if err := readYAML(l.bookmarksPath, &config); err != nil {
		return nil, fmt.Errorf("bookmarks: %w", err)
	}
	return config, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Secrets referenced by Homepage never reach the start page.
	data = stripTemplateVariables(data)

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	return nil
}

// stripTemplateVariables replaces Homepage template variables with an empty YAML string
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
