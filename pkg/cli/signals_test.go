package cli

import (
	"testing"
	"time"
)

func TestSetupSignalHandlerCancel(t *testing.T) {
	ctx, cancel := SetupSignalHandler()

	select {
	case <-ctx.Done():
		t.Fatal("context cancelled before any signal")
	default:
	}

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled after cancel func")
	}
}
