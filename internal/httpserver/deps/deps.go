package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/startpage/internal/clock"
	"github.com/MrSnakeDoc/startpage/internal/configstore"
	"github.com/MrSnakeDoc/startpage/internal/editor"
	"github.com/MrSnakeDoc/startpage/internal/logger"
	"github.com/MrSnakeDoc/startpage/internal/render"
)

// Pinger reports whether a backing service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	AllowedHosts   []string             // Host headers allowed on mutating routes
	AllowedCIDRS   []string             // IPs allowed on mutating routes and readyz
	TrustProxy     bool                 // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Store          *configstore.Store   // the configuration document
	Editor         *editor.Editor       // editor form submissions
	Renderer       *render.Renderer     // HTML pages
	Weather        render.WeatherSource // weather slot text
	Clock          *clock.Hub           // SSE clock ticks
	Backend        Pinger               // persistence health, nil when not applicable
	RateLimitBurst int                  // weather API bucket size per IP
	RateLimitRPM   int                  // weather API refill per IP per minute
}
