package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pantry/internal/adapters/telemetry"
	"go.trai.ch/pantry/internal/app"
	"go.trai.ch/pantry/internal/core/domain"
	"go.trai.ch/pantry/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type mockedApp struct {
	app    *app.App
	loader *mocks.MockPolicyLoader
	store  *mocks.MockLockStore
	logger *mocks.MockLogger
}

func newMockedApp(t *testing.T) *mockedApp {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &mockedApp{
		loader: mocks.NewMockPolicyLoader(ctrl),
		store:  mocks.NewMockLockStore(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	m.app = app.New(
		m.loader,
		mocks.NewMockFingerprinter(ctrl),
		mocks.NewMockMetadataReader(ctrl),
		m.store,
		m.logger,
		telemetry.NewNoOp(),
	)
	return m
}

func (m *mockedApp) provider() ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:       m.app,
			Logger:    m.logger,
			Telemetry: telemetry.NewNoOp(),
		}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	m := newMockedApp(t)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, m.provider())

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "pantry version")
	assert.Empty(t, stderr.String())
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	m := newMockedApp(t)

	m.loader.EXPECT().Load("policy.yaml").Return(nil, domain.ErrPolicyReadFailed)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrLockFailed)
		assert.ErrorIs(t, err, domain.ErrPolicyReadFailed)
	})

	exitCode := run(context.Background(), []string{"lock"}, new(bytes.Buffer), new(bytes.Buffer), m.provider())
	assert.Equal(t, 1, exitCode)
}

// TestRun_CheckUsesLockfileFlag verifies that global flags reach the application.
func TestRun_CheckUsesLockfileFlag(t *testing.T) {
	m := newMockedApp(t)

	m.store.EXPECT().Load("custom.lock.json").Return(&domain.PolicyfileLock{}, nil)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(),
		[]string{"check", "apt", "2.0.0", "-l", "custom.lock.json"},
		stdout, new(bytes.Buffer), m.provider())

	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "apt (2.0.0) is compatible with custom.lock.json\n", stdout.String())
}
