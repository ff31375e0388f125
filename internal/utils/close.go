package utils

import (
	"io"

	"github.com/MrSnakeDoc/startpage/internal/logger"
)

// Close closes c and ignores any error.
// Use for best-effort cleanup of response bodies and uploads.
func Close(c io.Closer) {
	_ = c.Close()
}

// CloseLogged closes c and logs any error at warn level under the given name.
func CloseLogged(c io.Closer, what string, log logger.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close",
			logger.String("what", what),
			logger.Error(err))
	}
}
