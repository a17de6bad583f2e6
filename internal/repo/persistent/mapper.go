package persistent

import (
	"chilaq/internal/entity"
	"chilaq/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:         m.ID,
		ArtistID:   m.ArtistID,
		Title:      m.Title,
		URLYouTube: m.URLYouTube,
		URLSpotify: m.URLSpotify,
		URLApple:   m.URLApple,
		Likes:      m.Likes,
		CreatedAt:  m.CreatedAt,
	}
}

func ToArtistEntity(m *model.ArtistModel) *entity.Artist {
	if m == nil {
		return nil
	}

	return &entity.Artist{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		Twitter:   m.Twitter,
		Instagram: m.Instagram,
		Spotify:   m.Spotify,
	}
}
