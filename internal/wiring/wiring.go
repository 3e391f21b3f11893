// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/vgfx/forge/internal/adapters/cas"
	_ "github.com/vgfx/forge/internal/adapters/config"
	_ "github.com/vgfx/forge/internal/adapters/fs"
	_ "github.com/vgfx/forge/internal/adapters/logger"
	_ "github.com/vgfx/forge/internal/adapters/render"
	_ "github.com/vgfx/forge/internal/adapters/shell"
	_ "github.com/vgfx/forge/internal/adapters/telemetry"
	_ "github.com/vgfx/forge/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "github.com/vgfx/forge/internal/app"
	_ "github.com/vgfx/forge/internal/engine/scheduler"
)
