package persistent

import (
	"chilaq/internal/entity"
	"chilaq/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	Exists(postID int64) (bool, error)
	GetByID(postID int64) (*entity.Post, error)
	GetArtistID(postID int64) (int64, error)
	List(limit, offset int) ([]*entity.Post, error)
	SoftDelete(postID int64) error
	Stats() (*entity.Stats, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Exists(postID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).
		Where("id = ? AND is_deleted = ?", postID, false).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) GetByID(postID int64) (*entity.Post, error) {
	var post model.PostModel
	err := r.db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error
	if err == gorm.ErrRecordNotFound {
		return nil, entity.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToPostEntity(&post), nil
}

func (r *postRepository) GetArtistID(postID int64) (int64, error) {
	var artistID int64
	err := r.db.Model(&model.PostModel{}).
		Select("artist_id").
		Where("id = ?", postID).
		Scan(&artistID).Error
	return artistID, err
}

func (r *postRepository) List(limit, offset int) ([]*entity.Post, error) {
	var rows []model.PostModel
	query := r.db.Where("is_deleted = ?", false).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, ToPostEntity(&rows[i]))
	}
	return posts, nil
}

func (r *postRepository) SoftDelete(postID int64) error {
	res := r.db.Model(&model.PostModel{}).
		Where("id = ? AND is_deleted = ?", postID, false).
		UpdateColumn("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Stats() (*entity.Stats, error) {
	stats := &entity.Stats{}

	if err := r.db.Model(&model.PostModel{}).
		Where("is_deleted = ?", false).
		Count(&stats.Posts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.PostModel{}).
		Where("is_deleted = ?", false).
		Distinct("artist_id").
		Count(&stats.Artists).Error; err != nil {
		return nil, err
	}

	var likes *int64
	if err := r.db.Model(&model.PostModel{}).
		Select("SUM(likes)").
		Where("is_deleted = ?", false).
		Scan(&likes).Error; err != nil {
		return nil, err
	}
	if likes != nil {
		stats.Likes = *likes
	}

	return stats, nil
}
