package feedapp

import (
	"context"

	"go.uber.org/zap"

	"rasana/internal/config"
	"rasana/internal/core/content"
	interactionEntity "rasana/internal/core/interaction"
	primaryEntity "rasana/internal/core/primary"
	"rasana/internal/ports/cache"
	commentPort "rasana/internal/ports/comment"
	postPort "rasana/internal/ports/post"
	primaryPort "rasana/internal/ports/primary"
)

// BlockResolver supplies the exclusion sets and follow graphs the
// assembler folds into query plans.
type BlockResolver interface {
	ResolveBlocked(ctx context.Context, viewerID uint64, kind interactionEntity.Kind) ([]uint64, error)
	FollowedIDs(ctx context.Context, viewerID uint64, kind interactionEntity.Kind) ([]uint64, error)
}

// Expander resolves textual fsid specs to primary id sets.
type Expander interface {
	Expand(ctx context.Context, kind interactionEntity.Kind, spec string, viewerID uint64, includeSubgroups bool) (*primaryEntity.Expansion, error)
	ExplodeIDs(ctx context.Context, kind interactionEntity.Kind, spec string) ([]uint64, error)
	ResolveID(ctx context.Context, kind interactionEntity.Kind, fsid string) (uint64, error)
}

// FeedService assembles, caches and executes content listing queries.
type FeedService struct {
	Snapshot          *config.Snapshot
	Blocks            BlockResolver
	Expander          Expander
	Permissions       *content.PermissionService
	PostRepository    postPort.PostRepository
	CommentRepository commentPort.CommentRepository
	PrimaryRepository primaryPort.PrimaryRepository
	Cache             cache.TaggedCache
	Logger            *zap.Logger
}

func NewFeedService(
	snap *config.Snapshot,
	blocks BlockResolver,
	expander Expander,
	permissions *content.PermissionService,
	postRepo postPort.PostRepository,
	commentRepo commentPort.CommentRepository,
	primaryRepo primaryPort.PrimaryRepository,
	taggedCache cache.TaggedCache,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		Snapshot:          snap,
		Blocks:            blocks,
		Expander:          expander,
		Permissions:       permissions,
		PostRepository:    postRepo,
		CommentRepository: commentRepo,
		PrimaryRepository: primaryRepo,
		Cache:             taggedCache,
		Logger:            logger,
	}
}

// pageSize clamps the requested size to the configured default and cap.
func (s *FeedService) pageSize(requested int) int {
	if requested < 1 {
		return s.Snapshot.DefaultPageSize
	}
	if requested > s.Snapshot.MaxPageSize {
		return s.Snapshot.MaxPageSize
	}
	return requested
}

// getCachedPage serves guest listings from the result cache. Authenticated
// viewers never consult it.
func (s *FeedService) getCachedPage(ctx context.Context, viewerID uint64, key string) *postPort.Page {
	if viewerID != 0 {
		return nil
	}
	var page postPort.Page
	hit, err := s.Cache.GetJSON(ctx, key, &page)
	if err != nil || !hit {
		return nil
	}
	return &page
}

func (s *FeedService) putCachedPage(ctx context.Context, viewerID uint64, key string, page *postPort.Page) {
	if viewerID != 0 {
		return
	}
	if err := s.Cache.PutJSON(ctx, key, page, cache.TagLists, s.Snapshot.GuestCacheTTL); err != nil {
		s.Logger.Warn("guest list cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// mergeIDs unions id slices, deduplicating while keeping first-seen order.
func mergeIDs(sets ...[]uint64) []uint64 {
	var out []uint64
	seen := make(map[uint64]struct{})
	for _, set := range sets {
		for _, id := range set {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
