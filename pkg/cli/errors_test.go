package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("ledger.backend", "unknown backend")
	if !strings.Contains(err.Error(), "ledger.backend") {
		t.Errorf("Error() = %q, want field name", err.Error())
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("disk full")
	err := NewCommandError("ledger prune", inner)

	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to the inner error")
	}
	if !strings.Contains(err.Error(), "ledger prune") {
		t.Errorf("Error() = %q, want command name", err.Error())
	}
}
