package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pantry/internal/adapters/logger"
	"go.trai.ch/pantry/internal/core/ports"
)

// NodeID is the unique identifier for the policy loader Graft node.
const NodeID graft.ID = "adapter.policy_loader"

func init() {
	graft.Register(graft.Node[ports.PolicyLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.PolicyLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
