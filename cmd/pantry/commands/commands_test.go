package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pantry/cmd/pantry/commands"
	"go.trai.ch/pantry/internal/app"
	"go.trai.ch/pantry/internal/build"
	"go.trai.ch/pantry/internal/core/domain"
)

type mockApp struct {
	lockFunc     func(ctx context.Context, policyPath, lockPath string) (*domain.PolicyfileLock, error)
	validateFunc func(ctx context.Context, policyPath, lockPath string) (*app.ValidationResult, error)
	checkFunc    func(ctx context.Context, lockPath, name, version string, deps []domain.DependencyRequest) error
	identifyFunc func(ctx context.Context, path string) (*domain.Identifiers, error)
}

func (m *mockApp) Lock(ctx context.Context, policyPath, lockPath string) (*domain.PolicyfileLock, error) {
	if m.lockFunc != nil {
		return m.lockFunc(ctx, policyPath, lockPath)
	}
	return &domain.PolicyfileLock{}, nil
}

func (m *mockApp) Validate(ctx context.Context, policyPath, lockPath string) (*app.ValidationResult, error) {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, policyPath, lockPath)
	}
	return &app.ValidationResult{}, nil
}

func (m *mockApp) Check(ctx context.Context, lockPath, name, version string, deps []domain.DependencyRequest) error {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, lockPath, name, version, deps)
	}
	return nil
}

func (m *mockApp) Identify(ctx context.Context, path string) (*domain.Identifiers, error) {
	if m.identifyFunc != nil {
		return m.identifyFunc(ctx, path)
	}
	return nil, errors.New("not configured")
}

type recordingFormatter struct {
	json bool
}

func (r *recordingFormatter) SetJSON(enable bool) { r.json = enable }

func execute(t *testing.T, cli *commands.CLI, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Lock(t *testing.T) {
	t.Run("uses default paths", func(t *testing.T) {
		var policy, lock string
		mock := &mockApp{
			lockFunc: func(_ context.Context, policyPath, lockPath string) (*domain.PolicyfileLock, error) {
				policy, lock = policyPath, lockPath
				return &domain.PolicyfileLock{}, nil
			},
		}

		_, err := execute(t, commands.New(mock), "lock")
		require.NoError(t, err)
		assert.Equal(t, "policy.yaml", policy)
		assert.Equal(t, "Policyfile.lock.json", lock)
	})

	t.Run("wires path flags", func(t *testing.T) {
		var policy, lock string
		mock := &mockApp{
			lockFunc: func(_ context.Context, policyPath, lockPath string) (*domain.PolicyfileLock, error) {
				policy, lock = policyPath, lockPath
				return &domain.PolicyfileLock{}, nil
			},
		}

		_, err := execute(t, commands.New(mock), "lock", "-p", "infra/policy.yaml", "--lockfile", "infra/lock.json")
		require.NoError(t, err)
		assert.Equal(t, "infra/policy.yaml", policy)
		assert.Equal(t, "infra/lock.json", lock)
	})

	t.Run("returns error on lock failure", func(t *testing.T) {
		mock := &mockApp{
			lockFunc: func(_ context.Context, _, _ string) (*domain.PolicyfileLock, error) {
				return nil, errors.New("simulated error")
			},
		}

		_, err := execute(t, commands.New(mock), "lock")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects arguments", func(t *testing.T) {
		_, err := execute(t, commands.New(&mockApp{}), "lock", "extra")
		require.Error(t, err)
	})
}

func TestCommands_JSONLogs(t *testing.T) {
	f := &recordingFormatter{}
	_, err := execute(t, commands.New(&mockApp{}, commands.WithLogFormatter(f)), "lock", "--json-logs")
	require.NoError(t, err)
	assert.True(t, f.json)

	f = &recordingFormatter{}
	_, err = execute(t, commands.New(&mockApp{}, commands.WithLogFormatter(f)), "lock")
	require.NoError(t, err)
	assert.False(t, f.json)
}

func TestCommands_Validate(t *testing.T) {
	t.Run("reports refreshed cookbooks", func(t *testing.T) {
		mock := &mockApp{
			validateFunc: func(_ context.Context, _, _ string) (*app.ValidationResult, error) {
				return &app.ValidationResult{Updated: []string{"apt", "yum"}, Written: true}, nil
			},
		}

		out, err := execute(t, commands.New(mock), "validate")
		require.NoError(t, err)
		assert.Equal(t, "refreshed apt\nrefreshed yum\nPolicyfile.lock.json is valid\n", out)
	})

	t.Run("returns error on validation failure", func(t *testing.T) {
		mock := &mockApp{
			validateFunc: func(_ context.Context, _, _ string) (*app.ValidationResult, error) {
				return nil, domain.ErrValidationFailed
			},
		}

		_, err := execute(t, commands.New(mock), "validate")
		require.ErrorIs(t, err, domain.ErrValidationFailed)
	})
}

func TestCommands_Check(t *testing.T) {
	t.Run("parses depends flags", func(t *testing.T) {
		var got []domain.DependencyRequest
		var gotName, gotVersion string
		mock := &mockApp{
			checkFunc: func(_ context.Context, _, name, version string, deps []domain.DependencyRequest) error {
				gotName, gotVersion, got = name, version, deps
				return nil
			},
		}

		out, err := execute(t, commands.New(mock),
			"check", "nginx", "1.4.0", "--depends", "apt=~> 2.3", "-d", "yum", "-d", "runit== 1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "nginx", gotName)
		assert.Equal(t, "1.4.0", gotVersion)
		assert.Equal(t, []domain.DependencyRequest{
			{Name: "apt", Constraint: "~> 2.3"},
			{Name: "yum", Constraint: domain.DefaultConstraint},
			{Name: "runit", Constraint: "= 1.0.0"},
		}, got)
		assert.Equal(t, "nginx (1.4.0) is compatible with Policyfile.lock.json\n", out)
	})

	t.Run("keeps operators written against the name", func(t *testing.T) {
		var got []domain.DependencyRequest
		mock := &mockApp{
			checkFunc: func(_ context.Context, _, _, _ string, deps []domain.DependencyRequest) error {
				got = deps
				return nil
			},
		}

		_, err := execute(t, commands.New(mock),
			"check", "nginx", "1.4.0", "-d", "apt>=1.0", "-d", "yum<= 3.0", "-d", "runit~>1.2", "-d", " ntp = != 2.0 ")
		require.NoError(t, err)
		assert.Equal(t, []domain.DependencyRequest{
			{Name: "apt", Constraint: ">=1.0"},
			{Name: "yum", Constraint: "<= 3.0"},
			{Name: "runit", Constraint: "~>1.2"},
			{Name: "ntp", Constraint: "!= 2.0"},
		}, got)
	})

	t.Run("returns conflicts", func(t *testing.T) {
		mock := &mockApp{
			checkFunc: func(_ context.Context, _, _, _ string, _ []domain.DependencyRequest) error {
				return &domain.ConflictError{Cookbook: domain.NewCookbook("nginx", "2.0.0")}
			},
		}

		_, err := execute(t, commands.New(mock), "check", "nginx", "2.0.0")
		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("requires name and version", func(t *testing.T) {
		_, err := execute(t, commands.New(&mockApp{}), "check", "nginx")
		require.Error(t, err)
	})
}

func TestCommands_Identify(t *testing.T) {
	ids, err := domain.NewIdentifiers("cookbooks/apt", "2.5.6", map[string]domain.FileChecksum{
		"metadata.rb": {Checksum: "4879d0004b177546cfbcfb2fd26df7c8"},
	})
	require.NoError(t, err)

	mock := &mockApp{
		identifyFunc: func(_ context.Context, path string) (*domain.Identifiers, error) {
			assert.Equal(t, "cookbooks/apt", path)
			return ids, nil
		},
	}

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, commands.New(mock), "identify", "cookbooks/apt")
		require.NoError(t, err)
		assert.Contains(t, out, "version:    2.5.6\n")
		assert.Contains(t, out, "identifier: "+ids.ContentIdentifier+"\n")
		assert.Contains(t, out, "dotted:     "+ids.DottedDecimalIdentifier+"\n")
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, commands.New(mock), "identify", "cookbooks/apt", "--json")
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "2.5.6", decoded["version"])
		assert.Equal(t, ids.ContentIdentifier, decoded["identifier"])
		assert.Contains(t, decoded["files"], "metadata.rb")
	})

	t.Run("fingerprint", func(t *testing.T) {
		out, err := execute(t, commands.New(mock), "identify", "cookbooks/apt", "--fingerprint")
		require.NoError(t, err)
		assert.Equal(t, "metadata.rb:4879d0004b177546cfbcfb2fd26df7c8\n", out)
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, commands.New(&mockApp{}), "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
