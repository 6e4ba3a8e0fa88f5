package logger

import "fmt"

type multiLogger []Logger

// Multi returns a Logger that forwards every message to each non-nil logger
// in order.
func Multi(loggers ...Logger) Logger {
	var m multiLogger
	for _, l := range loggers {
		if l != nil {
			m = append(m, l)
		}
	}
	return m
}

func (m multiLogger) LogTrace(message string) {
	for _, l := range m {
		l.LogTrace(message)
	}
}

func (m multiLogger) LogDebug(message string) {
	for _, l := range m {
		l.LogDebug(message)
	}
}

func (m multiLogger) LogInfo(message string) {
	for _, l := range m {
		l.LogInfo(message)
	}
}

func (m multiLogger) LogWarn(message string) {
	for _, l := range m {
		l.LogWarn(message)
	}
}

func (m multiLogger) LogError(message string) {
	for _, l := range m {
		l.LogError(message)
	}
}

// Reporter routes traversal problems into a Logger: warnings at WARN,
// errors at ERROR, each formatted as "path: error".
type Reporter struct {
	log Logger
}

// NewReporter creates a Reporter writing to l. A nil l discards everything.
func NewReporter(l Logger) *Reporter {
	if l == nil {
		l = NewNoOpLogger()
	}
	return &Reporter{log: l}
}

// Warn logs a policy stop such as an untraversed mountpoint.
func (r *Reporter) Warn(path string, err error) {
	r.log.LogWarn(fmt.Sprintf("%s: %v", path, err))
}

// Error logs a failed filesystem operation.
func (r *Reporter) Error(path string, err error) {
	r.log.LogError(fmt.Sprintf("%s: %v", path, err))
}
