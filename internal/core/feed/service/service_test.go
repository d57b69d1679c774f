package feedapp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rasana/internal/config"
	"rasana/internal/core/content"
	"rasana/internal/core/feed"
	commentEntity "rasana/internal/core/comment"
	groupEntity "rasana/internal/core/group"
	interactionEntity "rasana/internal/core/interaction"
	postEntity "rasana/internal/core/post"
	primaryEntity "rasana/internal/core/primary"
)

// Test doubles for the assembler's collaborators.

type stubBlocks struct {
	blocked  map[interactionEntity.Kind][]uint64
	followed map[interactionEntity.Kind][]uint64
}

func (s *stubBlocks) ResolveBlocked(_ context.Context, _ uint64, kind interactionEntity.Kind) ([]uint64, error) {
	return s.blocked[kind], nil
}

func (s *stubBlocks) FollowedIDs(_ context.Context, _ uint64, kind interactionEntity.Kind) ([]uint64, error) {
	return s.followed[kind], nil
}

type stubExpander struct {
	expansions map[string]*primaryEntity.Expansion
	explode    map[string][]uint64
	resolve    map[string]uint64
}

func specKey(kind interactionEntity.Kind, spec string) string {
	return fmt.Sprintf("%s|%s", kind, spec)
}

func (s *stubExpander) Expand(_ context.Context, kind interactionEntity.Kind, spec string, _ uint64, _ bool) (*primaryEntity.Expansion, error) {
	if e, ok := s.expansions[specKey(kind, spec)]; ok {
		return e, nil
	}
	return &primaryEntity.Expansion{}, nil
}

func (s *stubExpander) ExplodeIDs(_ context.Context, kind interactionEntity.Kind, spec string) ([]uint64, error) {
	if spec == "" {
		return nil, nil
	}
	return s.explode[specKey(kind, spec)], nil
}

func (s *stubExpander) ResolveID(_ context.Context, _ interactionEntity.Kind, fsid string) (uint64, error) {
	return s.resolve[fsid], nil
}

type stubPostRepo struct {
	lastPlan *feed.Plan
	posts    []*postEntity.Post
	total    int64
	hashtags map[uint64][]uint64
	calls    int
}

func (s *stubPostRepo) Create(_ context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	return p, nil
}

func (s *stubPostRepo) FindByFsid(_ context.Context, fsid string) (*postEntity.Post, error) {
	for _, p := range s.posts {
		if p.Fsid == fsid {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubPostRepo) ExecutePlan(_ context.Context, plan *feed.Plan) ([]*postEntity.Post, int64, error) {
	s.lastPlan = plan
	s.calls++
	return s.posts, s.total, nil
}

func (s *stubPostRepo) HashtagIDsByPost(_ context.Context, _ []uint64) (map[uint64][]uint64, error) {
	return s.hashtags, nil
}

type stubCommentRepo struct {
	lastPlan    *feed.Plan
	lastPostIDs []uint64
	comments    []*commentEntity.Comment
	total       int64
}

func (s *stubCommentRepo) Create(_ context.Context, c *commentEntity.Comment) (*commentEntity.Comment, error) {
	return c, nil
}

func (s *stubCommentRepo) FindByFsid(_ context.Context, _ string) (*commentEntity.Comment, error) {
	return nil, nil
}

func (s *stubCommentRepo) ExecutePlan(_ context.Context, plan *feed.Plan, postIDs []uint64) ([]*commentEntity.Comment, int64, error) {
	s.lastPlan = plan
	s.lastPostIDs = postIDs
	return s.comments, s.total, nil
}

type stubGroupRepo struct {
	groups map[uint64]*groupEntity.Group
}

func (s *stubGroupRepo) FindByID(_ context.Context, id uint64) (*groupEntity.Group, error) {
	return s.groups[id], nil
}

func (s *stubGroupRepo) FindByFsids(_ context.Context, _ []string) ([]*groupEntity.Group, error) {
	return nil, nil
}

func (s *stubGroupRepo) SubgroupIDs(_ context.Context, _ []uint64) ([]uint64, error) {
	return nil, nil
}

func (s *stubGroupRepo) PrivateGroupIDs(_ context.Context) ([]uint64, error) {
	return nil, nil
}

type stubInteractionRepo struct {
	following map[uint64]bool
}

func (s *stubInteractionRepo) BlockedIDs(_ context.Context, _ uint64, _ interactionEntity.Kind) ([]uint64, error) {
	return nil, nil
}

func (s *stubInteractionRepo) FollowedIDs(_ context.Context, _ uint64, _ interactionEntity.Kind) ([]uint64, error) {
	return nil, nil
}

func (s *stubInteractionRepo) IsFollowing(_ context.Context, _ uint64, _ interactionEntity.Kind, followedID uint64) (bool, error) {
	return s.following[followedID], nil
}

func (s *stubInteractionRepo) Block(_ context.Context, _ *interactionEntity.BlockRelation) error {
	return nil
}

func (s *stubInteractionRepo) Unblock(_ context.Context, _ uint64, _ interactionEntity.Kind, _ uint64) error {
	return nil
}

func (s *stubInteractionRepo) Follow(_ context.Context, _ *interactionEntity.FollowRelation) error {
	return nil
}

func (s *stubInteractionRepo) Unfollow(_ context.Context, _ uint64, _ interactionEntity.Kind, _ uint64) error {
	return nil
}

type stubPrimaryRepo struct{}

func (s *stubPrimaryRepo) ResolveID(_ context.Context, _ interactionEntity.Kind, _ string) (uint64, error) {
	return 0, nil
}

func (s *stubPrimaryRepo) ResolveIDs(_ context.Context, _ interactionEntity.Kind, _ []string) ([]uint64, error) {
	return nil, nil
}

func (s *stubPrimaryRepo) FsidsByIDs(_ context.Context, kind interactionEntity.Kind, ids []uint64) (map[uint64]string, error) {
	out := make(map[uint64]string, len(ids))
	for _, id := range ids {
		out[id] = fmt.Sprintf("%s-%d", kind, id)
	}
	return out, nil
}

// memCache is a map-backed TaggedCache good enough for guest cache tests.
type memCache struct {
	entries map[string][]byte
	tags    map[string][]string
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}, tags: map[string][]string{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	payload, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, dest)
}

func (c *memCache) PutJSON(_ context.Context, key string, value interface{}, tag string, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = payload
	c.tags[tag] = append(c.tags[tag], key)
	return nil
}

func (c *memCache) InvalidateTag(_ context.Context, tag string) error {
	for _, key := range c.tags[tag] {
		delete(c.entries, key)
	}
	delete(c.tags, tag)
	return nil
}

func testSnapshot() *config.Snapshot {
	return &config.Snapshot{
		DefaultPageSize:     15,
		MaxPageSize:         50,
		GuestCacheTTL:       5 * time.Second,
		ExpanderCacheTTL:    time.Minute,
		NearbyLengthKm:      5,
		NearbyLengthMi:      3,
		DefaultLengthUnit:   "km",
		ProfilePostsEnabled: true,
	}
}

type testDeps struct {
	blocks       *stubBlocks
	expander     *stubExpander
	posts        *stubPostRepo
	comments     *stubCommentRepo
	groups       *stubGroupRepo
	interactions *stubInteractionRepo
	cache        *memCache
	snap         *config.Snapshot
}

func newTestService() (*FeedService, *testDeps) {
	deps := &testDeps{
		blocks: &stubBlocks{
			blocked:  map[interactionEntity.Kind][]uint64{},
			followed: map[interactionEntity.Kind][]uint64{},
		},
		expander: &stubExpander{
			expansions: map[string]*primaryEntity.Expansion{},
			explode:    map[string][]uint64{},
			resolve:    map[string]uint64{},
		},
		posts:        &stubPostRepo{},
		comments:     &stubCommentRepo{},
		groups:       &stubGroupRepo{groups: map[uint64]*groupEntity.Group{}},
		interactions: &stubInteractionRepo{following: map[uint64]bool{}},
		cache:        newMemCache(),
		snap:         testSnapshot(),
	}

	permissions := content.NewPermissionService(deps.groups, deps.interactions, deps.snap)
	svc := NewFeedService(
		deps.snap,
		deps.blocks,
		deps.expander,
		permissions,
		deps.posts,
		deps.comments,
		&stubPrimaryRepo{},
		deps.cache,
		zap.NewNop(),
	)
	return svc, deps
}
