// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"commune/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers       int
	NumCommunities int
	NumPosts       int
	ShouldClean    bool
}

// Run populates the database with fake users, communities, memberships, and
// posts. Every seeded account uses the password "password123".
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		log.Println("Cleaning existing data...")
		for _, table := range []string{"posts", "community_members", "communities", "sessions", "users"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clean %s: %w", table, err)
			}
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := &models.User{
			Username:  fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
			Password:  string(hashed),
			Location:  gofakeit.City(),
			Latitude:  fmt.Sprintf("%.6f", gofakeit.Latitude()),
			Longitude: fmt.Sprintf("%.6f", gofakeit.Longitude()),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	communities := make([]*models.Community, 0, opts.NumCommunities)
	for i := 0; i < opts.NumCommunities; i++ {
		creator := users[r.Intn(len(users))]
		community := &models.Community{
			Name:        fmt.Sprintf("%s %s", gofakeit.HackerAdjective(), gofakeit.HackerNoun()),
			Description: gofakeit.Sentence(10),
			Thumbnail:   fmt.Sprintf("https://picsum.photos/seed/%s/400/300", gofakeit.UUID()),
			IsLocal:     r.Intn(2) == 0,
			CreatedAt:   time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
			CreatorID:   creator.ID,
		}
		if err := db.Create(community).Error; err != nil {
			return fmt.Errorf("seed community: %w", err)
		}
		communities = append(communities, community)
	}
	log.Printf("Created %d communities", len(communities))

	memberships := 0
	for _, user := range users {
		for _, community := range communities {
			if r.Intn(3) != 0 {
				continue
			}
			m := &models.Membership{UserID: user.ID, CommunityID: community.ID}
			if err := db.Create(m).Error; err != nil {
				return fmt.Errorf("seed membership: %w", err)
			}
			memberships++
		}
	}
	log.Printf("Created %d memberships", memberships)

	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		community := communities[r.Intn(len(communities))]
		post := &models.Post{
			Title:       gofakeit.Sentence(5),
			Content:     gofakeit.Paragraph(1, 3, 5, "\n"),
			CommunityID: community.ID,
			AuthorID:    author.ID,
			CreatedAt:   time.Now().Add(-time.Duration(r.Intn(60*24)) * time.Hour),
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
	}
	log.Printf("Created %d posts", opts.NumPosts)

	return nil
}
