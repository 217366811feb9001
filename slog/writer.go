package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesift"
)

// Ensure LoggingRecordWriter implements pagesift.RecordWriter.
var _ pagesift.RecordWriter = (*LoggingRecordWriter)(nil)

// LoggingRecordWriter wraps a RecordWriter and logs each write.
type LoggingRecordWriter struct {
	next   pagesift.RecordWriter
	logger *slog.Logger
}

// NewLoggingRecordWriter creates a new LoggingRecordWriter.
func NewLoggingRecordWriter(next pagesift.RecordWriter, logger *slog.Logger) *LoggingRecordWriter {
	return &LoggingRecordWriter{next: next, logger: logger}
}

// WriteRecords delegates to the wrapped writer.
func (w *LoggingRecordWriter) WriteRecords(ctx context.Context, records []*pagesift.Record) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write records",
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRecords(ctx, records)
}
