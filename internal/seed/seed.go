package seed

import (
	"fmt"
	"log"

	"devlink/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo users, profiles, posts and likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if _, err := f.CreateProfile(user); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rand.Intn(len(users))]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}

	// Roughly two likes per post, from random users.
	for _, post := range posts {
		for i := 0; i < 2; i++ {
			liker := users[f.rand.Intn(len(users))]
			if err := f.CreateLike(liker, post); err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
		}
	}

	log.Printf("Seeding complete: %d users, %d posts (every account logs in with %q)",
		len(users), len(posts), SeedPassword)
	return nil
}

// clearData removes all seeded rows. Order matters because of foreign keys.
func clearData(db *gorm.DB) error {
	for _, stmt := range []string{
		"DELETE FROM likes",
		"DELETE FROM posts",
		"DELETE FROM experiences",
		"DELETE FROM educations",
		"DELETE FROM profiles",
		"DELETE FROM users",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
