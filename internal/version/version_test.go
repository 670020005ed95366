package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	t.Run("custom values", func(t *testing.T) {
		origVersion := Version
		origCommit := Commit
		origBuildTime := BuildTime
		defer func() {
			Version = origVersion
			Commit = origCommit
			BuildTime = origBuildTime
		}()

		Version = "1.2.3"
		Commit = "abc1234"
		BuildTime = "2024-01-15T10:00:00Z"

		expected := "1.2.3 (abc1234) built 2024-01-15T10:00:00Z"
		if got := String(); got != expected {
			t.Errorf("String() = %q, want %q", got, expected)
		}
	})

	t.Run("default values", func(t *testing.T) {
		result := String()
		if !strings.Contains(result, "built") {
			t.Errorf("String() = %q, should contain 'built'", result)
		}
	})
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
