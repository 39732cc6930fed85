package platform

import (
	"errors"
	"runtime"
	"testing"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/ax/axtest"
)

func TestNewProvider_ReturnsProvider(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("skipping on non-darwin")
	}
	// On darwin, the darwin package may or may not be imported for side effects
	// depending on whether the test binary includes it. We just verify the
	// function doesn't panic.
	_, _ = NewProvider()
}

func TestNewProvider_UnsupportedPlatform(t *testing.T) {
	// Temporarily clear the provider func to simulate unsupported platform
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := NewProvider()
	if err == nil {
		t.Fatal("expected error on unsupported platform")
	}
	if err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestProvider_Client(t *testing.T) {
	p := &Provider{
		Backend:   axtest.NewBackend(),
		Processes: axtest.Processes{},
		RunLoop:   &axtest.RunLoop{},
		Trust:     &axtest.Trust{},
	}
	if _, err := p.Client(false); !errors.Is(err, ax.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got: %v", err)
	}

	p.Trust = &axtest.Trust{Trusted: true}
	c, err := p.Client(false)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	sw := c.SystemWide()
	defer sw.Close()
	if !sw.IsSystemWide() {
		t.Error("expected the system-wide element")
	}
}
