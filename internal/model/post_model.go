package model

import "time"

type PostModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ArtistID   int64     `gorm:"not null;index"`
	Title      string    `gorm:"size:200;not null;index"`
	URLYouTube string    `gorm:"column:url_youtube"`
	URLSpotify string    `gorm:"column:url_spotify"`
	URLApple   string    `gorm:"column:url_apple"`
	Likes      int64     `gorm:"not null;default:0"`
	IsDeleted  bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (PostModel) TableName() string {
	return "posts"
}

type ArtistModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:200;uniqueIndex;not null"`
	Slug      string `gorm:"size:200;uniqueIndex;not null"`
	Twitter   string `gorm:"size:255"`
	Instagram string `gorm:"size:255"`
	Spotify   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ArtistModel) TableName() string {
	return "artists"
}
