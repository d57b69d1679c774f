package feedapp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasana/internal/apperr"
	"rasana/internal/core/feed"
	groupEntity "rasana/internal/core/group"
	interactionEntity "rasana/internal/core/interaction"
	postEntity "rasana/internal/core/post"
	userEntity "rasana/internal/core/user"
)

func enabledAuthor(fsid string) userEntity.User {
	return userEntity.User{ID: 2, Fsid: fsid, Username: "author", IsEnabled: true}
}

func TestGetPostDetailNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetPostDetail(context.Background(), nil, "missing")

	assert.ErrorIs(t, err, apperr.ErrPostNotFound)
}

func TestGetPostDetailDisabledHiddenFromOthers(t *testing.T) {
	svc, deps := newTestService()
	deps.posts.posts = []*postEntity.Post{{
		ID: 1, Fsid: "p1", UserID: 2, User: enabledAuthor("u2"), CreatedAt: time.Now(),
	}}

	_, err := svc.GetPostDetail(context.Background(), &userEntity.User{ID: 3}, "p1")

	assert.ErrorIs(t, err, apperr.ErrPostDisabled)
}

func TestGetPostDetailDisabledVisibleToAuthor(t *testing.T) {
	svc, deps := newTestService()
	deps.posts.posts = []*postEntity.Post{{
		ID: 1, Fsid: "p1", UserID: 2, User: enabledAuthor("u2"), CreatedAt: time.Now(),
	}}

	dto, err := svc.GetPostDetail(context.Background(), &userEntity.User{ID: 2}, "p1")

	require.NoError(t, err)
	assert.Equal(t, "p1", dto.Pid)
}

func TestGetPostDetailDisabledAuthor(t *testing.T) {
	svc, deps := newTestService()
	deps.posts.posts = []*postEntity.Post{{
		ID: 1, Fsid: "p1", UserID: 2, IsEnabled: true,
		User:      userEntity.User{ID: 2, Fsid: "u2", IsEnabled: false},
		CreatedAt: time.Now(),
	}}

	_, err := svc.GetPostDetail(context.Background(), nil, "p1")

	assert.ErrorIs(t, err, apperr.ErrAuthorDisabled)
}

func TestGetPostDetailPrivateGroupMembersOnly(t *testing.T) {
	svc, deps := newTestService()
	deps.groups.groups[8] = &groupEntity.Group{ID: 8, IsPrivate: true}
	deps.posts.posts = []*postEntity.Post{{
		ID: 1, Fsid: "p1", UserID: 2, GroupID: 8, IsEnabled: true,
		User: enabledAuthor("u2"), CreatedAt: time.Now(),
	}}

	_, err := svc.GetPostDetail(context.Background(), nil, "p1")
	assert.ErrorIs(t, err, apperr.ErrPrivateGroup)

	_, err = svc.GetPostDetail(context.Background(), &userEntity.User{ID: 5}, "p1")
	assert.ErrorIs(t, err, apperr.ErrPrivateGroup)

	deps.interactions.following[8] = true
	dto, err := svc.GetPostDetail(context.Background(), &userEntity.User{ID: 5}, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", dto.Pid)
}

func TestListCommentsScopedToPost(t *testing.T) {
	svc, deps := newTestService()
	deps.posts.posts = []*postEntity.Post{{
		ID: 11, Fsid: "p1", UserID: 2, IsEnabled: true,
		User: enabledAuthor("u2"), CreatedAt: time.Now(),
	}}
	deps.expander.explode[specKey(interactionEntity.KindComment, "c9")] = []uint64{9}

	_, err := svc.ListComments(context.Background(), &userEntity.User{ID: 3}, &feed.CommentListSpec{
		Pid:           "p1",
		BlockComments: "c9",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []uint64{11}, deps.comments.lastPostIDs)
	assert.Equal(t, []uint64{9}, deps.comments.lastPlan.ExcludeCommentIDs)
}

func TestListCommentsUnknownPost(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ListComments(context.Background(), nil, &feed.CommentListSpec{Pid: "nope"}, nil)

	assert.ErrorIs(t, err, apperr.ErrPostNotFound)
}
