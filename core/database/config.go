package database

// Config holds settings for the local sqlite cache database.
type Config struct {
	// Path is the filesystem location of the sqlite file.
	Path string `yaml:"path" envconfig:"CACHE_PATH"`
	// MigrationsDir overrides the default ./migrations directory when set.
	MigrationsDir string `yaml:"migrations_dir" envconfig:"CACHE_MIGRATIONS_DIR"`
}
