package service

import (
	"context"
	"strings"
	"time"

	"devlink/internal/models"
	"devlink/internal/repository"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// UpsertProfileInput carries profile fields from the handler. Pointer fields
// left nil keep their stored value; pointers to empty strings clear it.
type UpsertProfileInput struct {
	UserID         uint
	Status         string
	Skills         string
	Company        *string
	Location       *string
	Website        *string
	Bio            *string
	GithubUsername *string
	Social         map[string]string
}

type ExperienceInput struct {
	UserID      uint
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type EducationInput struct {
	UserID       uint
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// splitSkills turns the comma separated skills string into a trimmed,
// order-preserving list.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// UpsertProfile creates the caller's profile or updates it in place.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	if strings.TrimSpace(in.Status) == "" {
		return nil, models.NewValidationError("Status is required")
	}
	skills := splitSkills(in.Skills)
	if len(skills) == 0 {
		return nil, models.NewValidationError("Skills is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	isNew := profile == nil
	if isNew {
		profile = &models.Profile{UserID: in.UserID}
	}

	profile.Status = strings.TrimSpace(in.Status)
	profile.Skills = skills
	if in.Company != nil {
		profile.Company = *in.Company
	}
	if in.Location != nil {
		profile.Location = *in.Location
	}
	if in.Website != nil {
		profile.Website = *in.Website
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.GithubUsername != nil {
		profile.GithubUsername = strings.TrimSpace(*in.GithubUsername)
	}
	if len(in.Social) > 0 {
		if profile.Social == nil {
			profile.Social = make(map[string]string, len(in.Social))
		}
		for k, v := range in.Social {
			profile.Social[k] = v
		}
	}

	if isNew {
		err = s.profileRepo.Create(ctx, profile)
	} else {
		err = s.profileRepo.Update(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	return s.requireProfile(ctx, in.UserID)
}

// requireProfile loads the user's profile with children and turns a missing
// profile into a NotFound error.
func (s *ProfileService) requireProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", userID)
	}
	return profile, nil
}

func (s *ProfileService) GetMyProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.requireProfile(ctx, userID)
}

// GetByUser returns another user's profile. The user must exist and have a
// profile.
func (s *ProfileService) GetByUser(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.requireProfile(ctx, userID)
}

func (s *ProfileService) ListProfiles(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	return s.profileRepo.List(ctx, limit, offset)
}

func (s *ProfileService) AddExperience(ctx context.Context, in ExperienceInput) (*models.Profile, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Company) == "" {
		return nil, models.NewValidationError("Company is required")
	}
	if in.From.IsZero() {
		return nil, models.NewValidationError("From date is required")
	}

	profile, err := s.requireProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, profile, exp); err != nil {
		return nil, err
	}

	return s.requireProfile(ctx, in.UserID)
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID uint, entryID string) (*models.Profile, error) {
	profile, err := s.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	removed, err := s.profileRepo.RemoveExperience(ctx, profile, entryID)
	if err != nil {
		return nil, err
	}
	if removed == 0 {
		return nil, models.NewNotFoundError("Experience", entryID)
	}

	return s.requireProfile(ctx, userID)
}

func (s *ProfileService) AddEducation(ctx context.Context, in EducationInput) (*models.Profile, error) {
	if strings.TrimSpace(in.School) == "" {
		return nil, models.NewValidationError("School is required")
	}
	if strings.TrimSpace(in.Degree) == "" {
		return nil, models.NewValidationError("Degree is required")
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		return nil, models.NewValidationError("Field of study is required")
	}
	if in.From.IsZero() {
		return nil, models.NewValidationError("From date is required")
	}

	profile, err := s.requireProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, profile, edu); err != nil {
		return nil, err
	}

	return s.requireProfile(ctx, in.UserID)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID uint, entryID string) (*models.Profile, error) {
	profile, err := s.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	removed, err := s.profileRepo.RemoveEducation(ctx, profile, entryID)
	if err != nil {
		return nil, err
	}
	if removed == 0 {
		return nil, models.NewNotFoundError("Education", entryID)
	}

	return s.requireProfile(ctx, userID)
}

// DeleteAccount removes the user together with their profile, posts and likes.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.profileRepo.DeleteAccount(ctx, userID)
}
