// Package seed populates the database with demo data for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"warbler/internal/auth"
	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumMessages int
	ShouldClean bool
	// Password assigned to every seeded user. Defaults to "password123".
	Password string
}

// Seed populates the database with users, messages, and a follow mesh.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 50
	}
	if opts.NumMessages <= 0 {
		opts.NumMessages = 200
	}
	if opts.Password == "" {
		opts.Password = "password123"
	}

	log.Printf("🌱 Seeding %d users and %d messages...", opts.NumUsers, opts.NumMessages)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers, opts.Password)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	messages, err := createMessages(db, users, opts.NumMessages)
	if err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}
	log.Printf("✓ %d messages created", len(messages))

	edges, err := createFollowMesh(db, users)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("✓ %d follow edges created", edges)

	log.Printf("✨ Done. Every seeded user's password is %q", opts.Password)
	return nil
}

func clearData(db *gorm.DB) error {
	for _, table := range []string{"follows", "messages", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int, password string) ([]models.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Username()
		username := fmt.Sprintf("%s%d", strings.ToLower(name), i)
		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: hashed,
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/200/200", username),
			Bio:      gofakeit.Sentence(8),
			Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		}
		users = append(users, user)
	}

	if err := db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createMessages(db *gorm.DB, users []models.User, count int) ([]models.Message, error) {
	if len(users) == 0 {
		return nil, nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	messages := make([]models.Message, 0, count)
	for i := 0; i < count; i++ {
		text := gofakeit.Sentence(r.Intn(12) + 3)
		if len(text) > models.MaxMessageLength {
			text = text[:models.MaxMessageLength]
		}
		messages = append(messages, models.Message{
			Text:      text,
			UserID:    users[r.Intn(len(users))].ID,
			Timestamp: time.Now().UTC().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		})
	}

	if err := db.CreateInBatches(&messages, 100).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// createFollowMesh gives each user a handful of follows so every feed has
// content. Self-follows and duplicate edges are skipped.
func createFollowMesh(db *gorm.DB, users []models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	seen := make(map[[2]uint]bool)
	var edges []models.Follow

	for _, follower := range users {
		n := r.Intn(8) + 1
		for j := 0; j < n; j++ {
			followed := users[r.Intn(len(users))]
			if followed.ID == follower.ID {
				continue
			}
			key := [2]uint{follower.ID, followed.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, models.Follow{
				UserFollowingID:     follower.ID,
				UserBeingFollowedID: followed.ID,
			})
		}
	}

	if len(edges) == 0 {
		return 0, nil
	}
	if err := db.CreateInBatches(&edges, 200).Error; err != nil {
		return 0, err
	}
	return len(edges), nil
}
