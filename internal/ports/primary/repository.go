package primary

import (
	"context"

	"rasana/internal/core/interaction"
)

// PrimaryRepository resolves public fsids to internal primary ids.
type PrimaryRepository interface {
	// ResolveID returns 0 when no entity carries the fsid.
	ResolveID(ctx context.Context, kind interaction.Kind, fsid string) (uint64, error)
	// ResolveIDs drops fsids that match nothing; order is not preserved.
	ResolveIDs(ctx context.Context, kind interaction.Kind, fsids []string) ([]uint64, error)
	// FsidsByIDs is the reverse mapping, used when enriching results.
	FsidsByIDs(ctx context.Context, kind interaction.Kind, ids []uint64) (map[uint64]string, error)
}
