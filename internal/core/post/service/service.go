package postapp

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	commentEntity "rasana/internal/core/comment"
	interactionEntity "rasana/internal/core/interaction"
	"rasana/internal/core/invalidation"
	postEntity "rasana/internal/core/post"
	"rasana/internal/ports/cache"
	commentPort "rasana/internal/ports/comment"
	invalidationPort "rasana/internal/ports/invalidation"
	postPort "rasana/internal/ports/post"
	primaryPort "rasana/internal/ports/primary"
)

// PostService owns the content write path. Every accepted write enqueues a
// listing cache invalidation; the read pipeline itself never mutates.
type PostService struct {
	PostRepository         postPort.PostRepository
	CommentRepository      commentPort.CommentRepository
	PrimaryRepository      primaryPort.PrimaryRepository
	InvalidationRepository invalidationPort.InvalidationRepository
	Logger                 *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	commentRepo commentPort.CommentRepository,
	primaryRepo primaryPort.PrimaryRepository,
	invalidationRepo invalidationPort.InvalidationRepository,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:         postRepo,
		CommentRepository:      commentRepo,
		PrimaryRepository:      primaryRepo,
		InvalidationRepository: invalidationRepo,
		Logger:                 logger,
	}
}

type CreatePostInput struct {
	Title       string
	Content     string
	GroupFsid   string
	GeotagFsid  string
	IsAnonymous bool
}

func (s *PostService) CreatePost(ctx context.Context, authorID uint64, in *CreatePostInput) (*postPort.PostDTO, error) {
	p := &postEntity.Post{
		Fsid:        uuid.Must(uuid.NewV4()).String(),
		UserID:      authorID,
		Title:       in.Title,
		Content:     in.Content,
		IsEnabled:   true,
		IsAnonymous: in.IsAnonymous,
		DigestState: postEntity.DigestNo,
		StickyState: postEntity.StickyNo,
	}

	if in.GroupFsid != "" {
		id, err := s.PrimaryRepository.ResolveID(ctx, interactionEntity.KindGroup, in.GroupFsid)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, fmt.Errorf("unknown group %q", in.GroupFsid)
		}
		p.GroupID = id
	}
	if in.GeotagFsid != "" {
		id, err := s.PrimaryRepository.ResolveID(ctx, interactionEntity.KindGeotag, in.GeotagFsid)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, fmt.Errorf("unknown geotag %q", in.GeotagFsid)
		}
		p.GeotagID = id
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.enqueueListInvalidation(ctx, "post_create")

	return &postPort.PostDTO{
		Pid:     created.Fsid,
		Title:   created.Title,
		Content: created.Content,
	}, nil
}

type CreateCommentInput struct {
	Pid         string
	ParentCid   string
	Content     string
	IsAnonymous bool
}

func (s *PostService) CreateComment(ctx context.Context, authorID uint64, in *CreateCommentInput) (*commentPort.CommentDTO, error) {
	postID, err := s.PrimaryRepository.ResolveID(ctx, interactionEntity.KindPost, in.Pid)
	if err != nil {
		return nil, err
	}
	if postID == 0 {
		return nil, fmt.Errorf("unknown post %q", in.Pid)
	}

	c := &commentEntity.Comment{
		Fsid:        uuid.Must(uuid.NewV4()).String(),
		PostID:      postID,
		UserID:      authorID,
		Content:     in.Content,
		IsEnabled:   true,
		IsAnonymous: in.IsAnonymous,
	}

	if in.ParentCid != "" {
		parentID, err := s.PrimaryRepository.ResolveID(ctx, interactionEntity.KindComment, in.ParentCid)
		if err != nil {
			return nil, err
		}
		if parentID == 0 {
			return nil, fmt.Errorf("unknown comment %q", in.ParentCid)
		}
		c.ParentID = parentID
	}

	created, err := s.CommentRepository.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.enqueueListInvalidation(ctx, "comment_create")

	return &commentPort.CommentDTO{
		Cid:     created.Fsid,
		Pid:     in.Pid,
		Content: created.Content,
	}, nil
}

// A failed enqueue is logged, not surfaced: the short TTL still bounds
// staleness without the worker.
func (s *PostService) enqueueListInvalidation(ctx context.Context, reason string) {
	event := &invalidation.Event{
		CacheTag: cache.TagLists,
		Reason:   reason,
		Status:   invalidation.StatusPending,
	}
	if err := s.InvalidationRepository.Enqueue(ctx, event); err != nil {
		s.Logger.Warn("could not enqueue cache invalidation", zap.String("reason", reason), zap.Error(err))
	}
}
