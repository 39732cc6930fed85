package platform

import (
	"fmt"
	"runtime"

	"github.com/mj1618/axcore/internal/ax"
)

// Provider bundles the accessibility backend and its collaborators for the
// current OS.
type Provider struct {
	Backend   ax.Backend
	Processes ax.ProcessTable
	RunLoop   ax.RunLoop
	Trust     ax.TrustChecker
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("axcore is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// Client builds an ax.Client over the provider. When the provider has a
// trust checker, an untrusted process gets ax.ErrPermissionDenied.
func (p *Provider) Client(prompt bool, opts ...ax.Option) (*ax.Client, error) {
	if p.Trust != nil {
		opts = append([]ax.Option{ax.WithTrust(p.Trust, prompt)}, opts...)
	}
	return ax.NewClient(p.Backend, p.Processes, p.RunLoop, opts...)
}
