package internal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Logger is an append-only run log file. A nil Logger discards everything,
// which keeps call sites unconditional.
type Logger struct {
	mu sync.Mutex
	f  *os.File
}

func NewLogger(path string) (*Logger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Logger{f: f}, nil
}

func (l *Logger) Log(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, time.Now().Format("2006-01-02 15:04:05")+" "+format+"\n", args...)
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.f.Close()
}
