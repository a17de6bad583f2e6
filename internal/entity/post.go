package entity

import "time"

type Post struct {
	ID         int64     `json:"id"`
	ArtistID   int64     `json:"artist_id"`
	Title      string    `json:"title"`
	URLYouTube string    `json:"url_youtube,omitempty"`
	URLSpotify string    `json:"url_spotify,omitempty"`
	URLApple   string    `json:"url_apple,omitempty"`
	Likes      int64     `json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
}

type Artist struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Spotify   string `json:"spotify,omitempty"`
}

// Stats aggregates over live (non-deleted) posts only.
type Stats struct {
	Posts   int64 `json:"posts"`
	Artists int64 `json:"artists"`
	Likes   int64 `json:"likes"`
}
