package ports

import (
	"context"

	"goseg/domain/frame"
)

// FrameSource loads a unit table from an external store (CSV, XLSX,
// Postgres) into a frame. Connection and location details are adapter
// constructor arguments.
type FrameSource interface {
	Load(ctx context.Context) (*frame.Frame, error)
}
