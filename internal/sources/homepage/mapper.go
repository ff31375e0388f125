package homepage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/startpage/internal/domain"
)

// Palette is cycled through to color seeded categories.
var Palette = []string{"#48c774", "#3273dc", "#ffdd57", "#f14668", "#b86bff", "#00d1b2"}

// MapCategories converts Homepage groups into start page categories.
// Services come first, then bookmarks, each in file order. Entries without href are skipped,
// and so are groups left empty.
func MapCategories(services ServicesConfig, bookmarks BookmarksConfig) ([]domain.Category, error) {
	var categories []domain.Category

	for _, groupMap := range services {
		for _, groupName := range sortedKeys(groupMap) {
			var links []domain.Link
			for _, serviceMap := range groupMap[groupName] {
				for _, name := range sortedKeys(serviceMap) {
					props := serviceMap[name]
					if props.Href == "" {
						continue
					}
					links = append(links, domain.Link{Name: name, URL: props.Href, Icon: fontIcon(props.Icon)})
				}
			}
			categories = appendCategory(categories, groupName, links)
		}
	}

	for _, group := range bookmarks {
		for _, groupName := range sortedKeys(group) {
			var links []domain.Link
			for _, bookmarkMap := range group[groupName] {
				for _, name := range sortedKeys(bookmarkMap) {
					entries := bookmarkMap[name]
					// Each bookmark has a list with a single entry
					if len(entries) == 0 || entries[0].Href == "" {
						continue
					}
					links = append(links, domain.Link{Name: name, URL: entries[0].Href, Icon: fontIcon(entries[0].Icon)})
				}
			}
			categories = appendCategory(categories, groupName, links)
		}
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("no valid links found in homepage config")
	}
	return categories, nil
}

func appendCategory(categories []domain.Category, name string, links []domain.Link) []domain.Category {
	if len(links) == 0 {
		return categories
	}
	return append(categories, domain.Category{
		Title: categoryTitle(name),
		Color: Palette[len(categories)%len(Palette)],
		Links: links,
	})
}

// categoryTitle follows the start page convention of path-like titles.
// Example: "Media Center" -> "/media-center"
func categoryTitle(name string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return "/" + strings.TrimPrefix(slug, "/")
}

// fontIcon keeps Font Awesome classes; Homepage image icons (svg/png, mdi-, si-) cannot be
// rendered by the page and fall back to the default icon.
func fontIcon(icon string) string {
	icon = strings.TrimSpace(icon)
	if strings.HasPrefix(icon, "fa") && strings.Contains(icon, " ") {
		return icon
	}
	return domain.DefaultIcon
}

// sortedKeys gives map iteration a stable order; groups normally hold a single key.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
