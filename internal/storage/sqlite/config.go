package sqlite

// Config holds SQLite settings
type Config struct {
	// Path is the database file. Parent directories are created on open.
	Path string
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/wsgame.db",
	}
}
