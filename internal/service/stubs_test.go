package service

import (
	"context"
	"errors"
	"testing"

	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	listFn       func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Ada Lovelace", Avatar: "https://www.gravatar.com/avatar/x"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		listFn:       func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn   func(context.Context, *models.Post) error
	getByIDFn  func(context.Context, uint) (*models.Post, error)
	listFn     func(context.Context, int, int) ([]models.Post, error)
	deleteFn   func(context.Context, uint) error
	isLikedFn  func(context.Context, uint, uint) (bool, error)
	likeFn     func(context.Context, uint, uint) error
	unlikeFn   func(context.Context, uint, uint) error
	getLikesFn func(context.Context, uint) ([]models.Like, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) GetLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	return s.getLikesFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:   func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:  func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:     func(_ context.Context, _, _ int) ([]models.Post, error) { return nil, nil },
		deleteFn:   func(_ context.Context, _ uint) error { return nil },
		isLikedFn:  func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:     func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:   func(_ context.Context, _, _ uint) error { return nil },
		getLikesFn: func(_ context.Context, _ uint) ([]models.Like, error) { return nil, nil },
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn      func(context.Context, uint) (*models.Profile, error)
	listFn             func(context.Context, int, int) ([]models.Profile, error)
	createFn           func(context.Context, *models.Profile) error
	updateFn           func(context.Context, *models.Profile) error
	addExperienceFn    func(context.Context, *models.Profile, *models.Experience) error
	removeExperienceFn func(context.Context, *models.Profile, string) (int64, error)
	addEducationFn     func(context.Context, *models.Profile, *models.Education) error
	removeEducationFn  func(context.Context, *models.Profile, string) (int64, error)
	deleteAccountFn    func(context.Context, uint) error
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) List(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) AddExperience(ctx context.Context, profile *models.Profile, exp *models.Experience) error {
	return s.addExperienceFn(ctx, profile, exp)
}
func (s *profileRepoStub) RemoveExperience(ctx context.Context, profile *models.Profile, entryID string) (int64, error) {
	return s.removeExperienceFn(ctx, profile, entryID)
}
func (s *profileRepoStub) AddEducation(ctx context.Context, profile *models.Profile, edu *models.Education) error {
	return s.addEducationFn(ctx, profile, edu)
}
func (s *profileRepoStub) RemoveEducation(ctx context.Context, profile *models.Profile, entryID string) (int64, error) {
	return s.removeEducationFn(ctx, profile, entryID)
}
func (s *profileRepoStub) DeleteAccount(ctx context.Context, userID uint) error {
	return s.deleteAccountFn(ctx, userID)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(_ context.Context, userID uint) (*models.Profile, error) {
			return &models.Profile{ID: 3, UserID: userID, Status: "Developer", Skills: []string{"go"}}, nil
		},
		listFn:             func(_ context.Context, _, _ int) ([]models.Profile, error) { return nil, nil },
		createFn:           func(_ context.Context, _ *models.Profile) error { return nil },
		updateFn:           func(_ context.Context, _ *models.Profile) error { return nil },
		addExperienceFn:    func(_ context.Context, _ *models.Profile, _ *models.Experience) error { return nil },
		removeExperienceFn: func(_ context.Context, _ *models.Profile, _ string) (int64, error) { return 1, nil },
		addEducationFn:     func(_ context.Context, _ *models.Profile, _ *models.Education) error { return nil },
		removeEducationFn:  func(_ context.Context, _ *models.Profile, _ string) (int64, error) { return 1, nil },
		deleteAccountFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
