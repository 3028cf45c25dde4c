package logger

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// New returns a logger configured with the provided level. The handle is
// handed explicitly to every component that logs; there is no package-level
// singleton to reach for.
func New(level string) *Logger {
	return newZapLogger(level)
}
