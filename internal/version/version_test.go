package version

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, v, c, b string) {
	t.Helper()
	origVersion, origCommit, origBuildTime := Version, Commit, BuildTime
	t.Cleanup(func() {
		Version, Commit, BuildTime = origVersion, origCommit, origBuildTime
	})
	Version, Commit, BuildTime = v, c, b
}

func TestString(t *testing.T) {
	withBuildInfo(t, "1.2.3", "abc1234", "2025-10-01T10:00:00Z")

	expected := "1.2.3 (abc1234) built 2025-10-01T10:00:00Z"
	if result := String(); result != expected {
		t.Errorf("String() = %q, want %q", result, expected)
	}
}

func TestAttr(t *testing.T) {
	withBuildInfo(t, "1.2.3", "abc1234", "2025-10-01T10:00:00Z")

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("starting", Attr())

	out := buf.String()
	for _, want := range []string{"build.version=1.2.3", "build.commit=abc1234", "build.time=2025-10-01T10:00:00Z"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

func TestDefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildTime == "" {
		t.Error("BuildTime should not be empty")
	}
}
