package feedapp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasana/internal/apperr"
	"rasana/internal/core/feed"
	interactionEntity "rasana/internal/core/interaction"
	postEntity "rasana/internal/core/post"
	primaryEntity "rasana/internal/core/primary"
	userEntity "rasana/internal/core/user"
)

func TestBuildListPlanMergesSuppliedAndDerivedBlocks(t *testing.T) {
	svc, deps := newTestService()
	deps.expander.explode[specKey(interactionEntity.KindUser, "u1,u2")] = []uint64{1, 2}
	deps.blocks.blocked[interactionEntity.KindUser] = []uint64{2, 3}
	deps.blocks.blocked[interactionEntity.KindGroup] = []uint64{40}

	viewer := &userEntity.User{ID: 9}
	plan, err := svc.buildListPlan(context.Background(), viewer, &feed.ListSpec{BlockUsers: "u1,u2"}, time.Now())
	require.NoError(t, err)

	assert.ElementsMatch(t, []uint64{1, 2, 3}, plan.ExcludeUserIDs)
	assert.Equal(t, []uint64{40}, plan.ExcludeGroupIDs)
	assert.Equal(t, uint64(9), plan.ViewerID)
}

func TestBuildListPlanEmptyGroupFilterAborts(t *testing.T) {
	svc, deps := newTestService()
	deps.expander.expansions[specKey(interactionEntity.KindGroup, "ghost")] = &primaryEntity.Expansion{Count: 0}

	_, err := svc.buildListPlan(context.Background(), nil, &feed.ListSpec{Groups: "ghost"}, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrEmptyGroupFilter)
	assert.True(t, apperr.IsEmptyFilter(err))
}

func TestBuildListPlanProfilePostsDisabled(t *testing.T) {
	svc, deps := newTestService()
	deps.snap.ProfilePostsEnabled = false

	_, err := svc.buildListPlan(context.Background(), nil, &feed.ListSpec{Users: "someone"}, time.Now())

	assert.ErrorIs(t, err, apperr.ErrProfilePostsOff)
}

func TestBuildListPlanUserScopeExcludesAnonymous(t *testing.T) {
	svc, deps := newTestService()
	deps.expander.expansions[specKey(interactionEntity.KindUser, "u1")] = &primaryEntity.Expansion{IDs: []uint64{7}, Count: 1}

	plan, err := svc.buildListPlan(context.Background(), nil, &feed.ListSpec{Users: "u1"}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, []uint64{7}, plan.IncludeUserIDs)
	assert.True(t, plan.ExcludeAnonymous)
}

func TestBuildListPlanGroupDateLimitOverridesViewerLimit(t *testing.T) {
	svc, deps := newTestService()
	groupLimit := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	deps.expander.expansions[specKey(interactionEntity.KindGroup, "g1")] = &primaryEntity.Expansion{
		IDs: []uint64{3}, Count: 1, DateLimit: &groupLimit,
	}

	// The viewer expired long ago; the group override still wins.
	expired := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	viewer := &userEntity.User{ID: 4, ExpiredAt: &expired}

	plan, err := svc.buildListPlan(context.Background(), viewer, &feed.ListSpec{Groups: "g1"}, time.Now())
	require.NoError(t, err)

	require.NotNil(t, plan.DateLimit)
	assert.Equal(t, groupLimit, *plan.DateLimit)
}

func TestBuildListPlanCursors(t *testing.T) {
	svc, deps := newTestService()
	deps.expander.resolve["pid-a"] = 10
	deps.expander.resolve["pid-b"] = 20

	plan, err := svc.buildListPlan(context.Background(), nil, &feed.ListSpec{SincePid: "pid-a", BeforePid: "pid-b"}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, uint64(10), plan.SinceID)
	assert.Equal(t, uint64(20), plan.BeforeID)
}

func TestBuildListPlanUnknownCursorLeavesBoundUnset(t *testing.T) {
	svc, _ := newTestService()

	plan, err := svc.buildListPlan(context.Background(), nil, &feed.ListSpec{SincePid: "missing"}, time.Now())
	require.NoError(t, err)

	assert.Zero(t, plan.SinceID)
}

func TestPageSizeClamp(t *testing.T) {
	svc, _ := newTestService()

	assert.Equal(t, 15, svc.pageSize(0))
	assert.Equal(t, 15, svc.pageSize(-3))
	assert.Equal(t, 20, svc.pageSize(20))
	assert.Equal(t, 50, svc.pageSize(500))
}

func TestResolveOrderMapping(t *testing.T) {
	assert.Equal(t, feed.Order{Random: true}, resolveOrder("random", ""))
	assert.Equal(t, feed.Order{Column: feed.OrderCommentTime, Desc: true}, resolveOrder("commentTime", ""))
	assert.Equal(t, feed.Order{Column: feed.OrderLike, Desc: false}, resolveOrder("like", "asc"))
	// Unknown and empty order types fall back to newest first.
	assert.Equal(t, feed.Order{Column: feed.OrderCreatedTime, Desc: true}, resolveOrder("", ""))
	assert.Equal(t, feed.Order{Column: feed.OrderCreatedTime, Desc: true}, resolveOrder("bogus", "desc"))
}

func TestResolveContentTypeMapping(t *testing.T) {
	assert.Equal(t, feed.ContentTypePlan{}, resolveContentType(""))
	assert.Equal(t, feed.ContentTypePlan{}, resolveContentType("All"))
	assert.Equal(t, feed.ContentTypePlan{TextOnly: true}, resolveContentType("Text"))
	assert.Equal(t, feed.ContentTypePlan{FileType: postEntity.FileTypeImage}, resolveContentType("Image"))
	assert.Equal(t, feed.ContentTypePlan{FileType: postEntity.FileTypeDocument}, resolveContentType("Document"))
	assert.Equal(t, feed.ContentTypePlan{ExtendFskey: "quiz-widget"}, resolveContentType("quiz-widget"))
}

func TestBuildListPlanDigestAndSticky(t *testing.T) {
	svc, _ := newTestService()

	plan, err := svc.buildListPlan(context.Background(), nil, &feed.ListSpec{AllDigest: true, DigestState: 2, StickyState: 3}, time.Now())
	require.NoError(t, err)

	assert.True(t, plan.AllDigest)
	// allDigest swallows the specific digest state.
	assert.Zero(t, plan.DigestState)
	assert.Equal(t, 3, plan.StickyState)
}

func TestListPostsGuestResultCache(t *testing.T) {
	svc, deps := newTestService()
	deps.posts.posts = []*postEntity.Post{{ID: 1, Fsid: "p1", Content: "hello", UserID: 2, CreatedAt: time.Now()}}
	deps.posts.total = 1

	params := map[string]string{"page": "1"}

	first, err := svc.ListPosts(context.Background(), nil, &feed.ListSpec{}, params)
	require.NoError(t, err)
	require.Len(t, first.List, 1)
	assert.Equal(t, 1, deps.posts.calls)

	// Second identical guest request is served from the cache.
	second, err := svc.ListPosts(context.Background(), nil, &feed.ListSpec{}, params)
	require.NoError(t, err)
	assert.Equal(t, 1, deps.posts.calls)
	assert.Equal(t, first.Total, second.Total)
}

func TestListPostsViewerSkipsResultCache(t *testing.T) {
	svc, deps := newTestService()
	deps.posts.posts = nil
	deps.posts.total = 0
	viewer := &userEntity.User{ID: 3}
	params := map[string]string{"page": "1"}

	_, err := svc.ListPosts(context.Background(), viewer, &feed.ListSpec{}, params)
	require.NoError(t, err)
	_, err = svc.ListPosts(context.Background(), viewer, &feed.ListSpec{}, params)
	require.NoError(t, err)

	assert.Equal(t, 2, deps.posts.calls)
	assert.Empty(t, deps.cache.entries)
}

func TestListPostsAnonymousAuthorHidden(t *testing.T) {
	svc, deps := newTestService()
	deps.posts.posts = []*postEntity.Post{
		{ID: 1, Fsid: "p1", IsAnonymous: true, User: userEntity.User{Fsid: "u1", Username: "alice"}, CreatedAt: time.Now()},
		{ID: 2, Fsid: "p2", User: userEntity.User{Fsid: "u2", Username: "bob"}, CreatedAt: time.Now()},
	}
	deps.posts.total = 2

	page, err := svc.ListPosts(context.Background(), &userEntity.User{ID: 1}, &feed.ListSpec{}, nil)
	require.NoError(t, err)
	require.Len(t, page.List, 2)

	assert.Empty(t, page.List[0].Uid)
	assert.Empty(t, page.List[0].Username)
	assert.Equal(t, "u2", page.List[1].Uid)
	assert.Equal(t, "bob", page.List[1].Username)
}
