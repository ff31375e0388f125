package homepage

import (
	"github.com/MrSnakeDoc/startpage/internal/domain"
	"github.com/MrSnakeDoc/startpage/internal/logger"
)

// SeedDefaults returns a constructor for the default document. When the loader is configured,
// categories are read from the Homepage files on every call; any failure falls back to the
// built-in default.
func SeedDefaults(loader *Loader, log logger.Logger) func() *domain.Configuration {
	return func() *domain.Configuration {
		doc := domain.DefaultConfiguration()
		if loader == nil || !loader.Configured() {
			return doc
		}

		services, err := loader.LoadServices()
		if err != nil {
			log.Warn("failed to load homepage services, using built-in default", logger.Error(err))
			return doc
		}
		bookmarks, err := loader.LoadBookmarks()
		if err != nil {
			log.Warn("failed to load homepage bookmarks, using built-in default", logger.Error(err))
			return doc
		}

		categories, err := MapCategories(services, bookmarks)
		if err != nil {
			log.Warn("homepage config has no usable links, using built-in default", logger.Error(err))
			return doc
		}

		log.Info("seeded default configuration from homepage",
			logger.Int("categories", len(categories)))
		doc.Categories = categories
		return doc
	}
}
