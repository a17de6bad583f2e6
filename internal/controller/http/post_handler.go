package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chilaq/internal/entity"
	"chilaq/internal/usecase"
	"chilaq/pkg/logger"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// ListPosts godoc
// @Summary      Public feed of posts
// @Tags         posts
// @Produce      json
// @Param        limit query int false "Number of posts to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	limit := 30
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	posts, err := h.postUseCase.ListPosts(limit, offset)
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts), "offset": offset})
}

// GetPost godoc
// @Summary      Get a single post
// @Tags         posts
// @Produce      json
// @Param        post_id path int true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.postUseCase.GetPost(postID)
	if err != nil {
		if errors.Is(err, entity.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		h.logger.Error("Failed to get post %d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post (admin)
// @Description  Soft-deletes the post and cascade-deletes its like records
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path int true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), postID); err != nil {
		if errors.Is(err, entity.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		h.logger.Error("Failed to delete post %d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// Stats godoc
// @Summary      Public site stats
// @Tags         posts
// @Produce      json
// @Success      200  {object}  entity.Stats
// @Router       /stats [get]
func (h *PostHandler) Stats(c *gin.Context) {
	stats, err := h.postUseCase.Stats()
	if err != nil {
		h.logger.Error("Failed to get stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
