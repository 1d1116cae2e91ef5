package calllog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/infrastructure/calllog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	entries []calllog.Entry
	ctxErrs []error
	err     error
}

func (s *recordingSink) Write(ctx context.Context, entry calllog.Entry) error {
	s.entries = append(s.entries, entry)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMask(t *testing.T) {
	t.Run("masks sensitive fields at any depth", func(t *testing.T) {
		out, err := calllog.MaskJSON(map[string]any{
			"number": "4242424242424242",
			"meta":   map[string]any{"cvc": "123"},
			"list":   []any{map[string]any{"exp_month": 7, "exp_year": "2030"}},
			"name":   "Ada",
		})
		require.NoError(t, err)

		assert.NotContains(t, out, "4242424242424242")
		assert.NotContains(t, out, `"123"`)
		assert.NotContains(t, out, "2030")
		assert.Contains(t, out, `"number":"xxxxxxxxxxxxxxxx"`)
		assert.Contains(t, out, `"cvc":"xxx"`)
		assert.Contains(t, out, `"exp_month":"x"`)
		assert.Contains(t, out, `"name":"Ada"`)
	})

	t.Run("matching is case sensitive", func(t *testing.T) {
		out, err := calllog.MaskJSON(map[string]any{"Number": "4242", "CVC": "999"})
		require.NoError(t, err)

		assert.Contains(t, out, "4242")
		assert.Contains(t, out, "999")
	})

	t.Run("masks tagged struct fields", func(t *testing.T) {
		type card struct {
			Number string `json:"number"`
			Last4  string `json:"last4"`
		}
		out, err := calllog.MaskJSON(struct {
			Card card `json:"card"`
		}{Card: card{Number: "4000056655665556", Last4: "5556"}})
		require.NoError(t, err)

		assert.NotContains(t, out, "4000056655665556")
		assert.Contains(t, out, `"last4":"5556"`)
	})
}

func TestLogger_LogCall(t *testing.T) {
	t.Run("writes input and output entries", func(t *testing.T) {
		sink := &recordingSink{}
		logger := calllog.NewLogger("https://api.stripe.com/v1/", sink, discardLogger())

		logger.LogCall(context.Background(), "charges",
			map[string]any{"amount": 2500},
			map[string]any{"id": "ch_1"},
			false,
		)

		require.Len(t, sink.entries, 2)
		assert.Equal(t, calllog.DirectionInput, sink.entries[0].Direction)
		assert.Equal(t, calllog.DirectionOutput, sink.entries[1].Direction)
		assert.Equal(t, "https://api.stripe.com/v1/charges", sink.entries[0].URL)
		assert.True(t, sink.entries[0].Success)
		assert.JSONEq(t, `{"amount":2500}`, sink.entries[0].Payload)
		assert.JSONEq(t, `{"id":"ch_1"}`, sink.entries[1].Payload)
	})

	t.Run("error calls are tagged unsuccessful", func(t *testing.T) {
		sink := &recordingSink{}
		logger := calllog.NewLogger("", sink, discardLogger())

		logger.LogCall(context.Background(), "refunds", nil, nil, true)

		require.Len(t, sink.entries, 2)
		assert.False(t, sink.entries[0].Success)
		assert.False(t, sink.entries[1].Success)
	})

	t.Run("cancelled request context still reaches the sink", func(t *testing.T) {
		sink := &recordingSink{}
		logger := calllog.NewLogger("", sink, discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		logger.LogCall(ctx, "charges", map[string]any{"amount": 100}, map[string]any{"error": "timeout"}, true)

		require.Len(t, sink.ctxErrs, 2)
		assert.NoError(t, sink.ctxErrs[0])
		assert.NoError(t, sink.ctxErrs[1])
	})

	t.Run("sink failures are swallowed", func(t *testing.T) {
		sink := &recordingSink{err: errors.New("disk full")}
		logger := calllog.NewLogger("", sink, discardLogger())

		assert.NotPanics(t, func() {
			logger.LogCall(context.Background(), "customers", map[string]any{}, map[string]any{}, false)
		})
		assert.Len(t, sink.entries, 2)
	})

	t.Run("unserializable payloads are skipped", func(t *testing.T) {
		sink := &recordingSink{}
		logger := calllog.NewLogger("", sink, discardLogger())

		assert.NotPanics(t, func() {
			logger.LogCall(context.Background(), "customers", make(chan int), map[string]any{"ok": true}, false)
		})
		require.Len(t, sink.entries, 1)
		assert.Equal(t, calllog.DirectionOutput, sink.entries[0].Direction)
	})
}

func TestMultiSink(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{err: errors.New("down")}

	err := calllog.MultiSink{first, second}.Write(context.Background(), calllog.Entry{URL: "x"})

	assert.Error(t, err)
	assert.Len(t, first.entries, 1)
	assert.Len(t, second.entries, 1)
}
