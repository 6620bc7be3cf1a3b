// Package logger provides logging functionality for the application.
package logger

// Level represents the logging level.
type Level string

const (
	// DebugLevel logs debug messages.
	DebugLevel Level = "debug"
	// InfoLevel logs info messages.
	InfoLevel Level = "info"
	// WarnLevel logs warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel logs error messages.
	ErrorLevel Level = "error"
	// FatalLevel logs fatal messages and exits.
	FatalLevel Level = "fatal"
)

// Supported encodings.
const (
	// EncodingConsole is the human-readable console encoding.
	EncodingConsole = "console"
	// EncodingJSON is the structured JSON encoding.
	EncodingJSON = "json"
)

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level.
	Level Level `mapstructure:"level" yaml:"level"`
	// Development enables development mode.
	Development bool `mapstructure:"development" yaml:"development"`
	// Encoding sets the logger's encoding.
	Encoding string `mapstructure:"encoding" yaml:"encoding"`
	// EnableColor enables colored output in development mode.
	EnableColor bool `mapstructure:"enable_color" yaml:"enable_color"`
}
