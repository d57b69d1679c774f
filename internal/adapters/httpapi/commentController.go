package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rasana/internal/adapters/httpapi/middleware"
	"rasana/internal/apperr"
	"rasana/internal/core/feed"
	postapp "rasana/internal/core/post/service"
)

type CommentController struct {
	feed  FeedUseCase
	posts PostWriteUseCase
}

func NewCommentController(feedUC FeedUseCase, postUC PostWriteUseCase) *CommentController {
	return &CommentController{feed: feedUC, posts: postUC}
}

func (ctl *CommentController) ListComments(c *gin.Context) {
	var spec feed.CommentListSpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	viewer := middleware.Viewer(c)
	page, err := ctl.feed.ListComments(c.Request.Context(), viewer, &spec, queryParams(c))
	if err != nil {
		if apperr.IsEmptyFilter(err) {
			respondEmptyFilter(c, err, spec.PageSize)
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

func (ctl *CommentController) CreateComment(c *gin.Context) {
	var req struct {
		Pid         string `json:"pid" binding:"required"`
		ParentCid   string `json:"parentCid"`
		Content     string `json:"content" binding:"required"`
		IsAnonymous bool   `json:"isAnonymous"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	viewer := middleware.Viewer(c)
	dto, err := ctl.posts.CreateComment(c.Request.Context(), viewer.ID, &postapp.CreateCommentInput{
		Pid:         req.Pid,
		ParentCid:   req.ParentCid,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	respondCreated(c, dto)
}
