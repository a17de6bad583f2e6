package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"chilaq/internal/entity"
	"chilaq/internal/ratelimit"
	"chilaq/internal/repo/persistent"
	"chilaq/pkg/logger"
	"chilaq/pkg/queue"
)

type LikeUseCase interface {
	// LikePost runs one like attempt: cooldown, idempotent registration,
	// atomic increment. Repeats by the same identity are a success with the
	// unchanged count; a cooldown hit is a soft decline, never an error.
	LikePost(ctx context.Context, postID int64, identityToken string) (*entity.LikeResult, error)
	GetLikes(ctx context.Context, postID int64) (int64, error)
	HasLiked(postID int64, identityToken string) (bool, error)
}

type likeUseCase struct {
	likeRepo    persistent.LikeRepository
	postRepo    persistent.PostRepository
	limiter     ratelimit.Limiter
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewLikeUseCase(
	likeRepo persistent.LikeRepository,
	postRepo persistent.PostRepository,
	limiter ratelimit.Limiter,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) LikeUseCase {
	return &likeUseCase{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		limiter:     limiter,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func likeCountKey(postID int64) string {
	return fmt.Sprintf("post:likes:%d", postID)
}

func (uc *likeUseCase) LikePost(ctx context.Context, postID int64, identityToken string) (*entity.LikeResult, error) {
	if identityToken == "" {
		return nil, entity.ErrInvalidIdentity
	}

	// Cooldown first: no durable-store work for rapid-fire repeats. The
	// idempotency record below stays the authoritative gate.
	if !uc.limiter.Allow(ctx, identityToken, postID) {
		likes, err := uc.GetLikes(ctx, postID)
		if err != nil {
			return nil, err
		}
		return &entity.LikeResult{
			Liked:  false,
			Likes:  likes,
			Reason: entity.ReasonRateLimited,
		}, nil
	}

	created, likes, err := uc.likeRepo.Like(postID, identityToken)
	if err != nil {
		if errors.Is(err, entity.ErrPostNotFound) || errors.Is(err, entity.ErrInvalidIdentity) {
			return nil, err
		}
		uc.logger.Error("Failed to like post %d: %v", postID, err)
		return nil, fmt.Errorf("failed to like post: %w", err)
	}

	uc.redisClient.Set(ctx, likeCountKey(postID), likes, 0)

	if created && uc.queueClient != nil {
		artistID, err := uc.postRepo.GetArtistID(postID)
		if err != nil {
			artistID = 0
		}
		go func() {
			event := queue.LikeEvent{
				PostID:        postID,
				ArtistID:      artistID,
				IdentityToken: identityToken,
				Likes:         likes,
				OccurredAt:    time.Now().UTC().Format(time.RFC3339),
			}
			if err := uc.queueClient.PublishLikeEvent(event); err != nil {
				uc.logger.Error("Failed to publish like event for post %d: %v", postID, err)
			}
		}()
	}

	return &entity.LikeResult{Liked: true, Likes: likes}, nil
}

func (uc *likeUseCase) GetLikes(ctx context.Context, postID int64) (int64, error) {
	countStr, err := uc.redisClient.Get(ctx, likeCountKey(postID)).Result()
	if err == nil {
		if count, perr := strconv.ParseInt(countStr, 10, 64); perr == nil {
			return count, nil
		}
	}

	count, err := uc.likeRepo.LikeCount(postID)
	if err != nil {
		return 0, err
	}

	uc.redisClient.Set(ctx, likeCountKey(postID), count, 0)
	return count, nil
}

func (uc *likeUseCase) HasLiked(postID int64, identityToken string) (bool, error) {
	if identityToken == "" {
		return false, nil
	}
	return uc.likeRepo.HasLiked(postID, identityToken)
}
