package service

import (
	"context"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	t.Parallel()

	t.Run("creates edge", func(t *testing.T) {
		t.Parallel()
		follows := noopFollowRepo()
		var gotFollower, gotFollowed uint
		follows.followFn = func(_ context.Context, followerID, followedID uint) error {
			gotFollower, gotFollowed = followerID, followedID
			return nil
		}
		svc := NewFollowService(follows, noopUserRepo())
		require.NoError(t, svc.Follow(context.Background(), 1, 2))
		assert.Equal(t, uint(1), gotFollower)
		assert.Equal(t, uint(2), gotFollowed)
	})

	t.Run("rejects self-follow", func(t *testing.T) {
		t.Parallel()
		svc := NewFollowService(noopFollowRepo(), noopUserRepo())
		err := svc.Follow(context.Background(), 1, 1)
		assertValidationError(t, err)
	})

	t.Run("unknown target propagates not found", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewFollowService(noopFollowRepo(), users)
		err := svc.Follow(context.Background(), 1, 99)
		require.Error(t, err)
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("duplicate edge propagates conflict", func(t *testing.T) {
		t.Parallel()
		follows := noopFollowRepo()
		follows.followFn = func(_ context.Context, _, _ uint) error {
			return models.NewConflictError("Already following this user", nil)
		}
		svc := NewFollowService(follows, noopUserRepo())
		err := svc.Follow(context.Background(), 1, 2)
		require.Error(t, err)
		assert.True(t, models.IsConflict(err))
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	t.Parallel()

	t.Run("removes edge", func(t *testing.T) {
		t.Parallel()
		follows := noopFollowRepo()
		var gotFollower, gotFollowed uint
		follows.unfollowFn = func(_ context.Context, followerID, followedID uint) error {
			gotFollower, gotFollowed = followerID, followedID
			return nil
		}
		svc := NewFollowService(follows, noopUserRepo())
		require.NoError(t, svc.Unfollow(context.Background(), 1, 2))
		assert.Equal(t, uint(1), gotFollower)
		assert.Equal(t, uint(2), gotFollowed)
	})

	t.Run("unknown target propagates not found", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewFollowService(noopFollowRepo(), users)
		err := svc.Unfollow(context.Background(), 1, 99)
		require.Error(t, err)
		assert.True(t, models.IsNotFound(err))
	})
}

func TestFollowService_Queries(t *testing.T) {
	t.Parallel()

	follows := noopFollowRepo()
	follows.isFollowingFn = func(_ context.Context, followerID, followedID uint) (bool, error) {
		return followerID == 1 && followedID == 2, nil
	}
	follows.followingFn = func(_ context.Context, _ uint) ([]models.User, error) {
		return []models.User{{Username: "bob"}}, nil
	}
	follows.followersFn = func(_ context.Context, _ uint) ([]models.User, error) {
		return []models.User{{Username: "alice"}}, nil
	}
	svc := NewFollowService(follows, noopUserRepo())

	ok, err := svc.IsFollowing(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	following, err := svc.Following(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	followers, err := svc.Followers(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)
}
