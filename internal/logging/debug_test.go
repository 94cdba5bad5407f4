package logging

import (
	"os"
	"testing"
)

func TestDebugEnabled(t *testing.T) {
	os.Unsetenv("TG_DEBUG")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when TG_DEBUG is not set")
	}

	t.Setenv("TG_DEBUG", "")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when TG_DEBUG is empty")
	}

	t.Setenv("TG_DEBUG", "1")
	if !DebugEnabled() {
		t.Error("DebugEnabled() should return true when TG_DEBUG is set")
	}
}

func TestDebugOutputDoesNotPanic(t *testing.T) {
	// Stdout is not captured here; the test only ensures both paths run.
	os.Unsetenv("TG_DEBUG")
	Debugf("hidden: %s", "test")
	Debugln("hidden")

	t.Setenv("TG_DEBUG", "1")
	Debugf("visible: %s", "test")
	Debugln("visible")
}
