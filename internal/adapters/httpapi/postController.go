package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"rasana/internal/adapters/httpapi/middleware"
	"rasana/internal/apperr"
	"rasana/internal/config"
	"rasana/internal/core/feed"
	postapp "rasana/internal/core/post/service"
	providerPort "rasana/internal/ports/provider"
)

type PostController struct {
	snap     *config.Snapshot
	feed     FeedUseCase
	posts    PostWriteUseCase
	provider providerPort.ContentProvider
}

func NewPostController(snap *config.Snapshot, feedUC FeedUseCase, postUC PostWriteUseCase, provider providerPort.ContentProvider) *PostController {
	return &PostController{snap: snap, feed: feedUC, posts: postUC, provider: provider}
}

// forwardToProvider hands the whole request to the configured external
// provider and relays the answer untouched. No fallback on failure.
func (ctl *PostController) forwardToProvider(c *gin.Context, fskey, endpoint string) {
	headers := map[string]string{}
	for key, values := range c.Request.Header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
	}

	if c.Request.URL.RawQuery != "" {
		endpoint += "?" + c.Request.URL.RawQuery
	}

	res, err := ctl.provider.Forward(c.Request.Context(), fskey, endpoint, headers, body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "content provider unavailable"})
		return
	}
	c.Data(res.StatusCode, res.ContentType, res.Body)
}

func (ctl *PostController) ListPosts(c *gin.Context) {
	if fskey := ctl.snap.PostListService; fskey != "" {
		ctl.forwardToProvider(c, fskey, "posts")
		return
	}

	var spec feed.ListSpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	viewer := middleware.Viewer(c)
	page, err := ctl.feed.ListPosts(c.Request.Context(), viewer, &spec, queryParams(c))
	if err != nil {
		if apperr.IsEmptyFilter(err) {
			respondEmptyFilter(c, err, ctl.snap.DefaultPageSize)
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

func (ctl *PostController) NearbyPosts(c *gin.Context) {
	if fskey := ctl.snap.PostNearbyService; fskey != "" {
		ctl.forwardToProvider(c, fskey, "posts/nearby")
		return
	}

	var spec feed.NearbySpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	viewer := middleware.Viewer(c)
	page, err := ctl.feed.NearbyPosts(c.Request.Context(), viewer, &spec, queryParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

func (ctl *PostController) Timelines(c *gin.Context) {
	if fskey := ctl.snap.PostTimelinesService; fskey != "" {
		ctl.forwardToProvider(c, fskey, "posts/timelines")
		return
	}

	var spec feed.TimelineSpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	viewer := middleware.Viewer(c)
	page, err := ctl.feed.Timelines(c.Request.Context(), viewer, &spec)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

func (ctl *PostController) GetPostDetail(c *gin.Context) {
	if fskey := ctl.snap.PostDetailService; fskey != "" {
		ctl.forwardToProvider(c, fskey, "posts/"+c.Param("pid"))
		return
	}

	viewer := middleware.Viewer(c)
	dto, err := ctl.feed.GetPostDetail(c.Request.Context(), viewer, c.Param("pid"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dto)
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Content     string `json:"content" binding:"required"`
		Gid         string `json:"gid"`
		Gtid        string `json:"gtid"`
		IsAnonymous bool   `json:"isAnonymous"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	viewer := middleware.Viewer(c)
	dto, err := ctl.posts.CreatePost(c.Request.Context(), viewer.ID, &postapp.CreatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		GroupFsid:   req.Gid,
		GeotagFsid:  req.Gtid,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	respondCreated(c, dto)
}
