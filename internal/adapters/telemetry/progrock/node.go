package progrock

import (
	"context"
	"io"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/pantry/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the telemetry adapter node.
	NodeID graft.ID = "adapter.telemetry"

	// ProgressEnv enables per-cookbook progress lines on stderr when set.
	ProgressEnv = "PANTRY_PROGRESS"
)

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			out := io.Discard
			if os.Getenv(ProgressEnv) != "" {
				out = os.Stderr
			}
			return New(out), nil
		},
	})
}
