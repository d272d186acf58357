// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pantry/internal/adapters/config"
	_ "go.trai.ch/pantry/internal/adapters/fs"
	_ "go.trai.ch/pantry/internal/adapters/lockfile"
	_ "go.trai.ch/pantry/internal/adapters/logger"
	_ "go.trai.ch/pantry/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/pantry/internal/app"
)
