//go:build darwin

package darwin

import "github.com/mj1618/axcore/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		backend, err := NewBackend()
		if err != nil {
			return nil, err
		}
		return &platform.Provider{
			Backend:   backend,
			Processes: platform.Processes{},
			RunLoop:   RunLoop{},
			Trust:     Trust{},
		}, nil
	}
}
