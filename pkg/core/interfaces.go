package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NopLogger returns a Logger that discards everything
func NopLogger() Logger {
	return nopLogger{}
}

// LoggerOrNop returns logger, or a discarding logger when it is nil
func LoggerOrNop(logger Logger) Logger {
	if logger == nil {
		return NopLogger()
	}
	return logger
}
