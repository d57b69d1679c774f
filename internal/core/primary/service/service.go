package primaryapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	interactionEntity "rasana/internal/core/interaction"
	primaryEntity "rasana/internal/core/primary"
	"rasana/internal/ports/cache"
	groupPort "rasana/internal/ports/group"
	interactionPort "rasana/internal/ports/interaction"
	primaryPort "rasana/internal/ports/primary"
)

// ExpanderService resolves textual fsid specs to primary id sets with a
// short-lived cache in front of the primary store. Callers accept eventual
// consistency within the TTL window.
type ExpanderService struct {
	PrimaryRepository     primaryPort.PrimaryRepository
	GroupRepository       groupPort.GroupRepository
	InteractionRepository interactionPort.InteractionRepository
	Cache                 cache.TaggedCache
	TTL                   time.Duration
}

func NewExpanderService(
	primaryRepo primaryPort.PrimaryRepository,
	groupRepo groupPort.GroupRepository,
	interactionRepo interactionPort.InteractionRepository,
	taggedCache cache.TaggedCache,
	ttl time.Duration,
) *ExpanderService {
	return &ExpanderService{
		PrimaryRepository:     primaryRepo,
		GroupRepository:       groupRepo,
		InteractionRepository: interactionRepo,
		Cache:                 taggedCache,
		TTL:                   ttl,
	}
}

// Expand resolves a comma-separated fsid spec to primary ids. Group specs
// additionally honor the viewer's private group access, optionally pull in
// subgroups, and report the strictest per-group content date limit.
func (s *ExpanderService) Expand(ctx context.Context, kind interactionEntity.Kind, spec string, viewerID uint64, includeSubgroups bool) (*primaryEntity.Expansion, error) {
	key := expandCacheKey(kind, spec, viewerID, includeSubgroups)

	var cached primaryEntity.Expansion
	hit, err := s.Cache.GetJSON(ctx, key, &cached)
	if err == nil && hit {
		return &cached, nil
	}

	fsids := splitSpec(spec)

	var expansion *primaryEntity.Expansion
	if kind == interactionEntity.KindGroup {
		expansion, err = s.expandGroups(ctx, fsids, viewerID, includeSubgroups)
	} else {
		var ids []uint64
		ids, err = s.PrimaryRepository.ResolveIDs(ctx, kind, fsids)
		if err == nil {
			expansion = &primaryEntity.Expansion{IDs: ids, Count: len(ids)}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("expanding %s spec: %w", kind, err)
	}

	if err := s.Cache.PutJSON(ctx, key, expansion, cache.TagConfigs, s.TTL); err != nil {
		// A failed cache write only costs the next caller a recompute.
		return expansion, nil
	}

	return expansion, nil
}

func (s *ExpanderService) expandGroups(ctx context.Context, fsids []string, viewerID uint64, includeSubgroups bool) (*primaryEntity.Expansion, error) {
	groups, err := s.GroupRepository.FindByFsids(ctx, fsids)
	if err != nil {
		return nil, err
	}

	var memberOf map[uint64]struct{}
	if viewerID != 0 {
		followed, err := s.InteractionRepository.FollowedIDs(ctx, viewerID, interactionEntity.KindGroup)
		if err != nil {
			return nil, err
		}
		memberOf = make(map[uint64]struct{}, len(followed))
		for _, id := range followed {
			memberOf[id] = struct{}{}
		}
	}

	var ids []uint64
	var dateLimit *time.Time
	for _, g := range groups {
		if g.IsPrivate {
			if _, ok := memberOf[g.ID]; !ok {
				continue
			}
		}
		ids = append(ids, g.ID)
		if g.ContentDateLimit != nil && (dateLimit == nil || g.ContentDateLimit.Before(*dateLimit)) {
			dateLimit = g.ContentDateLimit
		}
	}

	if includeSubgroups && len(ids) > 0 {
		subIDs, err := s.GroupRepository.SubgroupIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		seen := make(map[uint64]struct{}, len(ids))
		for _, id := range ids {
			seen[id] = struct{}{}
		}
		for _, id := range subIDs {
			if _, ok := seen[id]; !ok {
				ids = append(ids, id)
				seen[id] = struct{}{}
			}
		}
	}

	return &primaryEntity.Expansion{IDs: ids, Count: len(ids), DateLimit: dateLimit}, nil
}

// ExplodeIDs resolves a spec without caching; used for viewer-supplied
// exclusion lists where a stale resolution would widen visibility.
func (s *ExpanderService) ExplodeIDs(ctx context.Context, kind interactionEntity.Kind, spec string) ([]uint64, error) {
	if spec == "" {
		return nil, nil
	}
	return s.PrimaryRepository.ResolveIDs(ctx, kind, splitSpec(spec))
}

// ResolveID resolves one fsid; 0 means no match.
func (s *ExpanderService) ResolveID(ctx context.Context, kind interactionEntity.Kind, fsid string) (uint64, error) {
	return s.PrimaryRepository.ResolveID(ctx, kind, fsid)
}

// splitSpec parses the comma-separated spec, trimming, deduplicating and
// capping at MaxSpecEntries.
func splitSpec(spec string) []string {
	parts := strings.Split(spec, ",")
	seen := make(map[string]struct{}, len(parts))
	fsids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		fsids = append(fsids, p)
		if len(fsids) == primaryEntity.MaxSpecEntries {
			break
		}
	}
	return fsids
}

func expandCacheKey(kind interactionEntity.Kind, spec string, viewerID uint64, includeSubgroups bool) string {
	raw := fmt.Sprintf("%s|%s|%d|%t", kind, spec, viewerID, includeSubgroups)
	return fmt.Sprintf("feed_expand_%s_%016x", kind, xxhash.Sum64String(raw))
}
