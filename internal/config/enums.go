package config

// LogLevel represents the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo:
		return true
	}
	return false
}

func (l LogLevel) IsDebug() bool {
	return l == LogLevelDebug
}
