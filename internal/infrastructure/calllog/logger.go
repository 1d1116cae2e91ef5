package calllog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// Entry is one side of a logged remote call. Payload is already masked.
type Entry struct {
	URL       string
	Direction Direction
	Payload   string
	Success   bool
	LoggedAt  time.Time
}

type Sink interface {
	Write(ctx context.Context, entry Entry) error
}

// Logger records remote calls with card data masked. It never fails the caller:
// serialization and sink errors are logged at debug level and dropped.
type Logger struct {
	baseURL string
	sink    Sink
	logger  *slog.Logger
	now     func() time.Time
}

func NewLogger(baseURL string, sink Sink, logger *slog.Logger) *Logger {
	return &Logger{
		baseURL: baseURL,
		sink:    sink,
		logger:  logger,
		now:     time.Now,
	}
}

// LogCall writes the request as an input entry and the response as an output entry.
// Entries are written even when ctx was cancelled by the call that failed.
func (l *Logger) LogCall(ctx context.Context, url string, request, response any, isError bool) {
	ctx = context.WithoutCancel(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			l.logger.Debug("call log panicked", "url", url, "panic", rec)
		}
	}()

	full := l.baseURL + url
	l.write(ctx, full, DirectionInput, request, !isError)
	l.write(ctx, full, DirectionOutput, response, !isError)
}

func (l *Logger) write(ctx context.Context, url string, direction Direction, payload any, success bool) {
	masked, err := MaskJSON(payload)
	if err != nil {
		l.logger.Debug("failed to serialize call log payload", "url", url, "direction", direction, "error", err)
		return
	}

	entry := Entry{
		URL:       url,
		Direction: direction,
		Payload:   masked,
		Success:   success,
		LoggedAt:  l.now(),
	}

	if err := l.sink.Write(ctx, entry); err != nil {
		l.logger.Debug("failed to write call log entry", "url", url, "direction", direction, "error", err)
	}
}

// SlogSink writes entries as structured log lines.
type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Write(ctx context.Context, entry Entry) error {
	level := slog.LevelInfo
	if !entry.Success {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "gateway call",
		"url", entry.URL,
		"direction", string(entry.Direction),
		"success", entry.Success,
		"payload", entry.Payload,
	)
	return nil
}

// MultiSink fans an entry out to every sink and joins their errors.
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, entry Entry) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Write(ctx, entry); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", sink, err))
		}
	}
	return errors.Join(errs...)
}
