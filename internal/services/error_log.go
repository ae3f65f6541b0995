package services

import (
	"fmt"
	"io"
	"log"
	"os"
)

// ErrorLog appends diagnostic lines to a local file. Concurrent writers may
// interleave whole lines; no ordering is promised.
type ErrorLog struct {
	logger *log.Logger
	closer io.Closer
}

func NewErrorLog(path string) (*ErrorLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log: %w", err)
	}

	return &ErrorLog{
		logger: log.New(f, "", log.LstdFlags),
		closer: f,
	}, nil
}

func NewErrorLogWriter(w io.Writer) *ErrorLog {
	return &ErrorLog{logger: log.New(w, "", log.LstdFlags)}
}

// Printf writes one line tagged with the request ID. A nil ErrorLog discards.
func (l *ErrorLog) Printf(requestID, format string, args ...any) {
	if l == nil {
		return
	}
	if requestID == "" {
		requestID = "-"
	}
	l.logger.Printf("[%s] %s", requestID, fmt.Sprintf(format, args...))
}

func (l *ErrorLog) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
