package telemetry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pantry/internal/adapters/telemetry"
	"go.trai.ch/pantry/internal/core/ports"
)

func TestNoOp_Record(t *testing.T) {
	tel := telemetry.NewNoOp()

	ctx, v := tel.Record(context.Background(), "fingerprint nginx")
	require.NotNil(t, v)

	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, v, got)

	n, err := fmt.Fprint(v.Stdout(), "discarded")
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	v.Cached()
	v.Complete(errors.New("ignored"))
	assert.NoError(t, tel.Close())
}
