package service

import (
	"context"
	"testing"

	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_Validation(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo())
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: ""})
	assertAppError(t, err, "VALIDATION_ERROR")

	_, err = svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: "   \n\t "})
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestCreatePost_SnapshotsAuthor(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Name: "Grace Hopper", Avatar: "https://www.gravatar.com/avatar/abc"}, nil
	}

	var created *models.Post
	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 9
		created = p
		return nil
	}
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return created, nil
	}

	svc := NewPostService(posts, users)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 2, Text: "  hello world  "})
	require.NoError(t, err)
	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, "Grace Hopper", post.AuthorName)
	assert.Equal(t, "https://www.gravatar.com/avatar/abc", post.AuthorAvatar)
	assert.Equal(t, uint(2), post.UserID)
}

func TestDeletePost_OwnershipEnforced(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}

	svc := NewPostService(posts, noopUserRepo())

	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 2, PostID: 5})
	assertAppError(t, err, "FORBIDDEN")

	err = svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 5})
	assert.NoError(t, err)
}

func TestLikePost(t *testing.T) {
	t.Run("Double like is a conflict", func(t *testing.T) {
		posts := noopPostRepo()
		posts.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }

		svc := NewPostService(posts, noopUserRepo())
		_, err := svc.LikePost(context.Background(), 1, 5)
		assertAppError(t, err, "CONFLICT")
	})

	t.Run("Like returns updated like list", func(t *testing.T) {
		posts := noopPostRepo()
		liked := false
		posts.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return liked, nil }
		posts.likeFn = func(_ context.Context, _, _ uint) error {
			liked = true
			return nil
		}
		posts.getLikesFn = func(_ context.Context, postID uint) ([]models.Like, error) {
			return []models.Like{{ID: 1, UserID: 1, PostID: postID}}, nil
		}

		svc := NewPostService(posts, noopUserRepo())
		likes, err := svc.LikePost(context.Background(), 1, 5)
		require.NoError(t, err)
		require.Len(t, likes, 1)
		assert.Equal(t, uint(1), likes[0].UserID)
	})

	t.Run("Missing post propagates not found", func(t *testing.T) {
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}

		svc := NewPostService(posts, noopUserRepo())
		_, err := svc.LikePost(context.Background(), 1, 404)
		assertAppError(t, err, "NOT_FOUND")
	})
}

func TestUnlikePost(t *testing.T) {
	t.Run("Unlike without a like is a conflict", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.UnlikePost(context.Background(), 1, 5)
		assertAppError(t, err, "CONFLICT")
	})

	t.Run("Unlike removes the like", func(t *testing.T) {
		posts := noopPostRepo()
		posts.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		unliked := false
		posts.unlikeFn = func(_ context.Context, _, _ uint) error {
			unliked = true
			return nil
		}

		svc := NewPostService(posts, noopUserRepo())
		likes, err := svc.UnlikePost(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.True(t, unliked)
		assert.Empty(t, likes)
	})
}
