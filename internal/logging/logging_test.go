package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_DebugLevels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug suppressed without --debug, got %q", buf.String())
	}

	New(&buf, false).Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warning logged, got %q", buf.String())
	}

	buf.Reset()
	New(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug logged with --debug, got %q", buf.String())
	}
}
