package app

import "go.trai.ch/pantry/internal/core/ports"

// Components groups what the command line needs from the wired graph.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}
