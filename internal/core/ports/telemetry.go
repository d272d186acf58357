package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of long running steps.
type Telemetry interface {
	// Record starts a new vertex named name.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded step.
type Vertex interface {
	// Stdout returns a writer for the step's output stream.
	Stdout() io.Writer
	// Stderr returns a writer for the step's error stream.
	Stderr() io.Writer
	// Complete marks the step finished, failed if err is non-nil.
	Complete(err error)
	// Cached marks the step as satisfied without doing work.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
