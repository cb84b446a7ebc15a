package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/treeline/internal/types"
)

// SnapshotBuilder builds directory snapshot nodes using configured options.
type SnapshotBuilder struct {
	IgnorePatterns []string
	Depth          types.DepthPair
	Logger         *zap.Logger
}

// logger returns the configured logger or a no-op logger.
func (snapshotBuilder *SnapshotBuilder) logger() *zap.Logger {
	if snapshotBuilder.Logger == nil {
		return zap.NewNop()
	}
	return snapshotBuilder.Logger
}
