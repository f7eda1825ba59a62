package log_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cometbft/cometbft-blscache/libs/log"
)

func TestLoggerWritesMessage(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewLoggerWithColor(&buf, false)
	logger.Info("pairing cache resized", "capacity", 3)
	msg := strings.TrimSpace(buf.String())
	if !strings.Contains(msg, "pairing cache resized") {
		t.Errorf("expected logger msg to contain message, got %s", msg)
	}
	if !strings.Contains(msg, "capacity=3") {
		t.Errorf("expected logger msg to contain keyvals, got %s", msg)
	}
}

func TestLoggerRendersErrors(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewLoggerWithColor(&buf, false)
	logger.Error("import failed", "err", errors.New("bad entry"))
	if !strings.Contains(buf.String(), "bad entry") {
		t.Errorf("expected error to be rendered, got %s", buf.String())
	}
}

func TestJSONLoggerWith(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewJSONLoggerNoTS(&buf).With("module", "blscache")
	logger.Debug("cache miss", "key", log.LazyHex([]byte{0xab, 0xcd}))

	const want = `{"level":"DEBUG","msg":"cache miss","module":"blscache","key":"abcd"}`
	if got := strings.TrimSpace(buf.String()); got != want {
		t.Errorf("\nwant '%s'\nhave '%s'", want, got)
	}
}
