package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdLogger_DebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("debug output written while disabled: %q", buf.String())
	}

	l.Printf("shown %d", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Errorf("Printf output missing: %q", buf.String())
	}
}

func TestStdLogger_DebugOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)

	l.Debugf("visible %s", "yes")
	out := buf.String()
	if !strings.Contains(out, "DEBUG visible yes") {
		t.Errorf("debug output missing: %q", out)
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Errorf("expected caller file in prefix: %q", out)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	l := New(&bytes.Buffer{}, false)
	if OrNop(l) != Logger(l) {
		t.Error("OrNop should return the given logger")
	}
}
