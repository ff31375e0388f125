package redis

const (
	// KeyConfig holds the whole configuration document as JSON text
	KeyConfig = "startpage:config"
)

// ConfigKey returns the Redis key for the configuration document
func ConfigKey() string {
	return KeyConfig
}
