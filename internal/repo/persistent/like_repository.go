package persistent

import (
	"chilaq/internal/entity"
	"chilaq/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	// Like registers the (post, identity) pair and, when the pair is new,
	// increments the post counter. Registration and increment commit or roll
	// back together. created reports whether this call inserted the record;
	// likes is the committed count either way.
	Like(postID int64, identityToken string) (created bool, likes int64, err error)
	LikeCount(postID int64) (int64, error)
	HasLiked(postID int64, identityToken string) (bool, error)
	DeleteRecordsForPost(postID int64) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Like(postID int64, identityToken string) (bool, int64, error) {
	if identityToken == "" {
		return false, 0, entity.ErrInvalidIdentity
	}

	var created bool
	var likes int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PostModel{}).
			Where("id = ? AND is_deleted = ?", postID, false).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return entity.ErrPostNotFound
		}

		record := &model.LikeRecordModel{
			PostID:        postID,
			IdentityToken: identityToken,
		}
		// The uniqueness constraint is the concurrency control: of N racing
		// inserts for the same pair, exactly one row is created.
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "identity_token"}},
			DoNothing: true,
		}).Create(record)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected == 1

		if created {
			inc := tx.Model(&model.PostModel{}).
				Where("id = ? AND is_deleted = ?", postID, false).
				UpdateColumn("likes", gorm.Expr("likes + ?", 1))
			if inc.Error != nil {
				return inc.Error
			}
			if inc.RowsAffected == 0 {
				// Post vanished between the check and the increment; roll the
				// record back with the transaction.
				return entity.ErrPostNotFound
			}
		}

		return tx.Model(&model.PostModel{}).
			Select("likes").
			Where("id = ?", postID).
			Scan(&likes).Error
	})
	if err != nil {
		return false, 0, err
	}

	return created, likes, nil
}

func (r *likeRepository) LikeCount(postID int64) (int64, error) {
	var post model.PostModel
	err := r.db.Select("likes").
		Where("id = ? AND is_deleted = ?", postID, false).
		First(&post).Error
	if err == gorm.ErrRecordNotFound {
		return 0, entity.ErrPostNotFound
	}
	if err != nil {
		return 0, err
	}
	return post.Likes, nil
}

func (r *likeRepository) HasLiked(postID int64, identityToken string) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeRecordModel{}).
		Where("post_id = ? AND identity_token = ?", postID, identityToken).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) DeleteRecordsForPost(postID int64) error {
	return r.db.Where("post_id = ?", postID).Delete(&model.LikeRecordModel{}).Error
}
