package diskwr

// Config defines the configuration options for the local disk store.
type Config struct {
	// RootDir is the directory where stored files live. A relative path
	// is resolved against the working directory at startup.
	RootDir string `yaml:"root_dir" validate:"required" default:"uploads"`
}
