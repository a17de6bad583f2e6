package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chilaq/internal/entity"
	"chilaq/internal/usecase"
	"chilaq/pkg/logger"
	"chilaq/pkg/middleware"
)

type LikeHandler struct {
	likeUseCase usecase.LikeUseCase
	logger      *logger.Logger
}

func NewLikeHandler(likeUseCase usecase.LikeUseCase, logger *logger.Logger) *LikeHandler {
	return &LikeHandler{
		likeUseCase: likeUseCase,
		logger:      logger,
	}
}

func parsePostID(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil || postID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return postID, true
}

// LikePost godoc
// @Summary      Like a post
// @Description  Register a like for the viewer's identity (idempotent - repeats return the unchanged count)
// @Tags         likes
// @Accept       json
// @Produce      json
// @Param        post_id path int true "Post ID"
// @Success      200  {object}  entity.LikeResult
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{post_id}/like [post]
func (h *LikeHandler) LikePost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	identity := c.GetString(middleware.IdentityKey)

	result, err := h.likeUseCase.LikePost(c.Request.Context(), postID, identity)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidIdentity):
			c.JSON(http.StatusBadRequest, gin.H{"liked": false, "reason": entity.ReasonInvalidIdentity})
		case errors.Is(err, entity.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		default:
			h.logger.Error("Failed to like post %d: %v", postID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to like post"})
		}
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, result)
}

// GetLikes godoc
// @Summary      Get like count for a post
// @Description  Get the number of likes for a post (from Redis cache first, fallback to DB)
// @Tags         likes
// @Accept       json
// @Produce      json
// @Param        post_id path int true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id}/likes [get]
func (h *LikeHandler) GetLikes(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	likes, err := h.likeUseCase.GetLikes(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, entity.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		h.logger.Error("Failed to get likes for post %d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get likes"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{"post_id": postID, "likes": likes})
}

// HasLiked godoc
// @Summary      Check whether this viewer has liked a post
// @Tags         likes
// @Accept       json
// @Produce      json
// @Param        post_id path int true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/{post_id}/liked [get]
func (h *LikeHandler) HasLiked(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	identity := c.GetString(middleware.IdentityKey)

	liked, err := h.likeUseCase.HasLiked(postID, identity)
	if err != nil {
		h.logger.Error("Failed to check like status for post %d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check like status"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{"post_id": postID, "liked": liked})
}

// RedirectLegacyLike forwards the retired like endpoints
// (POST /p/:post_id/like, POST /api/posts/:post_id/like) to the canonical
// route. 308 keeps the method so old clients still land an actual like.
func RedirectLegacyLike(c *gin.Context) {
	c.Redirect(http.StatusPermanentRedirect, "/api/v1/posts/"+c.Param("post_id")+"/like")
}

// RedirectLegacyLikes forwards the retired count endpoint
// (GET /posts/:post_id/likes) to the canonical route.
func RedirectLegacyLikes(c *gin.Context) {
	c.Redirect(http.StatusMovedPermanently, "/api/v1/posts/"+c.Param("post_id")+"/likes")
}
