package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"rasana/internal/adapters/httpapi/middleware"
	"rasana/internal/config"
	"rasana/internal/core/feed"
	interactionEntity "rasana/internal/core/interaction"
	postapp "rasana/internal/core/post/service"
	userEntity "rasana/internal/core/user"
	commentPort "rasana/internal/ports/comment"
	postPort "rasana/internal/ports/post"
	providerPort "rasana/internal/ports/provider"
	userPort "rasana/internal/ports/user"
)

// Inbound ports: what the HTTP layer needs from the application services.

type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, name, family, username, mobile, password string) (*userPort.UserDTO, error)
	FindByFsid(ctx context.Context, fsid string) (*userEntity.User, error)
}

type FeedUseCase interface {
	ListPosts(ctx context.Context, viewer *userEntity.User, spec *feed.ListSpec, rawParams map[string]string) (*postPort.Page, error)
	NearbyPosts(ctx context.Context, viewer *userEntity.User, spec *feed.NearbySpec, rawParams map[string]string) (*postPort.Page, error)
	Timelines(ctx context.Context, viewer *userEntity.User, spec *feed.TimelineSpec) (*postPort.Page, error)
	GetPostDetail(ctx context.Context, viewer *userEntity.User, pid string) (*postPort.PostDTO, error)
	ListComments(ctx context.Context, viewer *userEntity.User, spec *feed.CommentListSpec, rawParams map[string]string) (*commentPort.Page, error)
}

type PostWriteUseCase interface {
	CreatePost(ctx context.Context, authorID uint64, in *postapp.CreatePostInput) (*postPort.PostDTO, error)
	CreateComment(ctx context.Context, authorID uint64, in *postapp.CreateCommentInput) (*commentPort.CommentDTO, error)
}

type InteractionUseCase interface {
	Block(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, targetID uint64) error
	Unblock(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, targetID uint64) error
	Follow(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, targetID uint64) error
	Unfollow(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, targetID uint64) error
}

// IDResolver maps public fsids to primary ids for interaction targets.
type IDResolver interface {
	ResolveID(ctx context.Context, kind interactionEntity.Kind, fsid string) (uint64, error)
}

// SetupRoutes wires the controllers. Use cases are injected; the router
// never touches adapters directly.
func SetupRoutes(
	snap *config.Snapshot,
	userUC UserUseCase,
	feedUC FeedUseCase,
	postUC PostWriteUseCase,
	interactionUC InteractionUseCase,
	resolver IDResolver,
	provider providerPort.ContentProvider,
) *gin.Engine {
	r := gin.Default()

	uc := NewUserController(userUC)
	pc := NewPostController(snap, feedUC, postUC, provider)
	cc := NewCommentController(feedUC, postUC)
	ic := NewInteractionController(interactionUC, resolver)

	secret := []byte(snap.JWTSecret)
	auth := middleware.JWTAuth(secret, userUC)
	optionalAuth := middleware.OptionalJWTAuth(secret, userUC)

	r.POST("/register", uc.RegisterUser)
	r.POST("/login", uc.LoginUser)

	api := r.Group("/api/v1")

	// Listing endpoints serve guests too; auth only narrows or widens
	// what they see.
	api.GET("/posts", optionalAuth, pc.ListPosts)
	api.GET("/posts/nearby", optionalAuth, pc.NearbyPosts)
	api.GET("/posts/timelines", auth, pc.Timelines)
	api.GET("/posts/:pid", optionalAuth, pc.GetPostDetail)
	api.GET("/comments", optionalAuth, cc.ListComments)

	api.POST("/posts", auth, pc.CreatePost)
	api.POST("/comments", auth, cc.CreateComment)

	api.POST("/block", auth, ic.Block)
	api.POST("/unblock", auth, ic.Unblock)
	api.POST("/follow", auth, ic.Follow)
	api.POST("/unfollow", auth, ic.Unfollow)

	return r
}
