package logger

import (
	"bytes"
	"log"
)

// ToStdLogger adapts l to a *log.Logger for libraries that want one.
// Every line written is forwarded to l.Info.
func ToStdLogger(l Logger) *log.Logger {
	return log.New(&infoWriter{l: l}, "", 0)
}

type infoWriter struct {
	l Logger
}

func (w *infoWriter) Write(p []byte) (int, error) {
	w.l.Info("%s", bytes.TrimRight(p, "\n"))
	return len(p), nil
}
