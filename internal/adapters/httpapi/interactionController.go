package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rasana/internal/adapters/httpapi/middleware"
	interactionEntity "rasana/internal/core/interaction"
)

type InteractionController struct {
	interactions InteractionUseCase
	resolver     IDResolver
}

func NewInteractionController(interactionUC InteractionUseCase, resolver IDResolver) *InteractionController {
	return &InteractionController{interactions: interactionUC, resolver: resolver}
}

// resolveTarget parses and resolves the {type, fsid} pair every
// interaction endpoint takes.
func (ctl *InteractionController) resolveTarget(c *gin.Context) (interactionEntity.Kind, uint64, bool) {
	var req struct {
		Type string `json:"type" binding:"required"`
		Fsid string `json:"fsid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return 0, 0, false
	}

	kind, ok := interactionEntity.ParseKind(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown target type"})
		return 0, 0, false
	}

	id, err := ctl.resolver.ResolveID(c.Request.Context(), kind, req.Fsid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return 0, 0, false
	}
	if id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "target not found"})
		return 0, 0, false
	}

	return kind, id, true
}

func (ctl *InteractionController) handle(c *gin.Context, apply func(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, targetID uint64) error) {
	kind, targetID, ok := ctl.resolveTarget(c)
	if !ok {
		return
	}

	viewer := middleware.Viewer(c)
	if err := apply(c.Request.Context(), viewer.ID, kind, targetID); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	respondOK(c, nil)
}

func (ctl *InteractionController) Block(c *gin.Context) {
	ctl.handle(c, ctl.interactions.Block)
}

func (ctl *InteractionController) Unblock(c *gin.Context) {
	ctl.handle(c, ctl.interactions.Unblock)
}

func (ctl *InteractionController) Follow(c *gin.Context) {
	ctl.handle(c, ctl.interactions.Follow)
}

func (ctl *InteractionController) Unfollow(c *gin.Context) {
	ctl.handle(c, ctl.interactions.Unfollow)
}
