package static

// Config holds the asset root and entry document name.
type Config struct {
	Dir   string `env:"STATIC_DIR" envDefault:"frontend"`
	Index string `env:"STATIC_INDEX" envDefault:"index.html"`
}
