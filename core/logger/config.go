package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding (json, console).
	Format string `mapstructure:"format" default:"json"`
	// Output is stderr, stdout or a file path. Reports go to stdout, so the
	// default keeps logs off it.
	Output string `mapstructure:"output" default:"stderr"`
}
