package core

// Logger is any leveled logger that can also ship errors to an external tracker.
// Extra args may carry errors or arbitrary context to be reported alongside the message.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
