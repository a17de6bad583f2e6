package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"chilaq/internal/entity"
	"chilaq/internal/repo/persistent"
	"chilaq/pkg/logger"
)

type PostUseCase interface {
	GetPost(postID int64) (*entity.Post, error)
	ListPosts(limit, offset int) ([]*entity.Post, error)
	// DeletePost soft-deletes the post, cascade-deletes its like records and
	// drops the cached count.
	DeletePost(ctx context.Context, postID int64) error
	Stats() (*entity.Stats, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	likeRepo    persistent.LikeRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	likeRepo persistent.LikeRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *postUseCase) GetPost(postID int64) (*entity.Post, error) {
	return uc.postRepo.GetByID(postID)
}

func (uc *postUseCase) ListPosts(limit, offset int) ([]*entity.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}
	return uc.postRepo.List(limit, offset)
}

func (uc *postUseCase) DeletePost(ctx context.Context, postID int64) error {
	if err := uc.postRepo.SoftDelete(postID); err != nil {
		if errors.Is(err, entity.ErrPostNotFound) {
			return err
		}
		uc.logger.Error("Failed to delete post %d: %v", postID, err)
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if err := uc.likeRepo.DeleteRecordsForPost(postID); err != nil {
		uc.logger.Error("Failed to cascade like records for post %d: %v", postID, err)
		return fmt.Errorf("failed to delete like records: %w", err)
	}

	uc.redisClient.Del(ctx, likeCountKey(postID))
	return nil
}

func (uc *postUseCase) Stats() (*entity.Stats, error) {
	return uc.postRepo.Stats()
}
