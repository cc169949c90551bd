package timeouts

import (
	"testing"
	"time"
)

func TestConfigure_IgnoresZeroValues(t *testing.T) {
	Reset()
	defer Reset()

	Configure(Config{Short: 7 * time.Second})

	if Short() != 7*time.Second {
		t.Errorf("Short: got %v, want 7s", Short())
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium: got %v, want default %v", Medium(), DefaultMedium)
	}
	if Transfer() != DefaultTransfer {
		t.Errorf("Transfer: got %v, want default %v", Transfer(), DefaultTransfer)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	Reset()
	defer Reset()

	t.Setenv("TIMEOUT_LONG", "45s")
	t.Setenv("TIMEOUT_TRANSFER", "not-a-duration")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("configured count: got %d, want 1", n)
	}
	if Long() != 45*time.Second {
		t.Errorf("Long: got %v, want 45s", Long())
	}
	if Transfer() != DefaultTransfer {
		t.Errorf("Transfer should keep default, got %v", Transfer())
	}
}
