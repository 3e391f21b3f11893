// Package ports defines the core interfaces for the application.
package ports

import "github.com/vgfx/forge/internal/core/domain"

// ConfigLoader loads the shader manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest at the given path and returns it with all
	// defaults applied.
	Load(path string) (*domain.Manifest, error)
}
