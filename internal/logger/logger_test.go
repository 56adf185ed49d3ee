package logger

import "testing"

func TestInitLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		if err := Init(level); err != nil {
			t.Errorf("Init(%q) returned %v", level, err)
		}
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
