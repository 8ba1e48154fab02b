// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devlink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the password every generated account can log in with.
const SeedPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	name := gofakeit.Name()
	email := gofakeit.Email()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Avatar:   models.GravatarURL(email),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

var seedStatuses = []string{
	"Junior Developer", "Developer", "Senior Developer",
	"Tech Lead", "Student or Learning", "Instructor",
}

var seedSkillPool = []string{
	"Go", "Python", "JavaScript", "TypeScript", "Rust", "SQL",
	"PostgreSQL", "Redis", "Docker", "Kubernetes", "React", "gRPC",
}

// CreateProfile constructs and persists a profile for the given user.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	skillCount := 2 + f.rand.Intn(4)
	skills := make([]string, 0, skillCount)
	for _, i := range f.rand.Perm(len(seedSkillPool))[:skillCount] {
		skills = append(skills, seedSkillPool[i])
	}

	githubUsername := strings.ToLower(gofakeit.Username())
	profile := &models.Profile{
		UserID:         user.ID,
		Status:         seedStatuses[f.rand.Intn(len(seedStatuses))],
		Skills:         skills,
		Company:        gofakeit.Company(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		Website:        gofakeit.URL(),
		Bio:            gofakeit.Sentence(12),
		GithubUsername: githubUsername,
		Social: map[string]string{
			"twitter": "https://twitter.com/" + githubUsername,
		},
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}

	if err := f.addHistory(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (f *Factory) addHistory(profile *models.Profile) error {
	from := time.Now().AddDate(-2-f.rand.Intn(5), 0, 0)
	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		From:        from,
		Current:     true,
		Description: gofakeit.Sentence(10),
	}
	if err := f.db.Create(exp).Error; err != nil {
		return err
	}

	eduFrom := from.AddDate(-5, 0, 0)
	eduTo := eduFrom.AddDate(4, 0, 0)
	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         eduFrom,
		To:           &eduTo,
		Description:  gofakeit.Sentence(8),
	}
	return f.db.Create(edu).Error
}

// CreatePost constructs and persists a post authored by the given user,
// with a created_at spread over the last 90 days.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:       user.ID,
		Text:         gofakeit.Paragraph(1, 3, 8, "\n"),
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		CreatedAt:    time.Now().Add(-time.Duration(f.rand.Intn(90*24)) * time.Hour),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateLike records a like; duplicate likes are silently skipped so random
// seeding does not trip the unique index.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	var count int64
	if err := f.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return f.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}
