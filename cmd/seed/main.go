package main

import (
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"

	"chilaq/internal/model"
	"chilaq/pkg/config"
	"chilaq/pkg/database"
)

func main() {
	var (
		adminEmail    = flag.String("admin-email", "admin@chilaq.app", "admin account email")
		adminPassword = flag.String("admin-password", "", "admin account password (required)")
	)
	flag.Parse()

	if *adminPassword == "" {
		log.Fatal("admin-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &model.UserModel{
		Email:        *adminEmail,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(admin).Error; err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	artists := []model.ArtistModel{
		{Name: "Haru Nemuri", Slug: "haru-nemuri", Twitter: "hanemuri_japan"},
		{Name: "Ichiko Aoba", Slug: "ichiko-aoba", Spotify: "ichiko-aoba"},
	}
	for i := range artists {
		if err := db.Where("slug = ?", artists[i].Slug).FirstOrCreate(&artists[i]).Error; err != nil {
			log.Fatalf("Failed to seed artist %s: %v", artists[i].Slug, err)
		}
	}

	posts := []model.PostModel{
		{ArtistID: artists[0].ID, Title: "Narashite", URLYouTube: "https://www.youtube.com/watch?v=Urr3a-94VXo"},
		{ArtistID: artists[1].ID, Title: "Asleep Among Endives", URLSpotify: "https://open.spotify.com/track/3PZc3dWL9uJNB8FnMBQqMs"},
	}
	for i := range posts {
		if err := db.Where("artist_id = ? AND title = ?", posts[i].ArtistID, posts[i].Title).
			FirstOrCreate(&posts[i]).Error; err != nil {
			log.Fatalf("Failed to seed post %s: %v", posts[i].Title, err)
		}
	}

	log.Printf("Seeded %d artists, %d posts, admin %s", len(artists), len(posts), admin.Email)
}
