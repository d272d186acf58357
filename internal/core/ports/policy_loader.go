package ports

import "go.trai.ch/pantry/internal/core/domain"

// PolicyLoader defines the interface for loading a policy file.
//
//go:generate mockgen -source=policy_loader.go -destination=mocks/mock_policy_loader.go -package=mocks
type PolicyLoader interface {
	// Load reads and validates the policy at path.
	Load(path string) (*domain.Policy, error)
}
