package logging

import (
	"log/slog"
)

// CountingWriter is an io.Writer that counts bytes and reports progress to slog.
// It is used to observe streamed downloads (e.g. raw diff bodies) without
// buffering them twice.
type CountingWriter struct {
	logger *slog.Logger
	label  string
	total  int64
}

// NewCountingWriter constructs a CountingWriter bound to the provided logger.
// The label identifies the stream in log output.
func NewCountingWriter(logger *slog.Logger, label string) *CountingWriter {
	return &CountingWriter{logger: logger, label: label}
}

// Write accumulates the byte count. It never fails.
func (w *CountingWriter) Write(p []byte) (int, error) {
	w.total += int64(len(p))
	return len(p), nil
}

// Total returns the number of bytes written so far.
func (w *CountingWriter) Total() int64 {
	return w.total
}

// LogTotal emits a single debug record with the accumulated byte count.
func (w *CountingWriter) LogTotal() {
	if w.logger != nil {
		w.logger.Debug("download complete", "stream", w.label, "bytes", w.total)
	}
}
