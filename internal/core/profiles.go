package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/conduitapp/conduit/internal/auth"
	"github.com/conduitapp/conduit/internal/database"
	"github.com/conduitapp/conduit/models"
	"github.com/mdobak/go-xerrors"
)

// Follow edges are never deleted. A row holds an active flag that follow and
// unfollow toggle through a single upsert, and reading an edge that does not
// exist yet materializes it with active = false so later writes are plain
// updates. Two callers racing on the first touch both issue the
// conflict-tolerant insert and converge on one row.

func (c *Core) IsFollowing(ctx context.Context, followerID int64, followedUsername string) (bool, error) {
	followedUser, err := c.GetUserByUsername(ctx, followedUsername)
	if err != nil {
		return false, xerrors.New(err)
	}

	return c.isFollowingID(ctx, followerID, followedUser.ID)
}

func (c *Core) isFollowingID(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `
		SELECT active FROM follows
		WHERE follower_id = $1 AND followed_id = $2
	`

	active, err := database.ExecuteSingleQuery(c.sqlTemplate, ctx, query, extractActive, followerID, followedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if err := c.materializeFollowEdge(ctx, followerID, followedID); err != nil {
				return false, xerrors.New(err)
			}
			return false, nil
		}
		return false, xerrors.New(err)
	}

	return active, nil
}

func (c *Core) materializeFollowEdge(ctx context.Context, followerID, followedID int64) error {
	insertSQL := `
		INSERT INTO follows (follower_id, followed_id, active)
		VALUES ($1, $2, false)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`

	if _, err := database.ExecuteUpdate(c.sqlTemplate, ctx, insertSQL, followerID, followedID); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (c *Core) FollowUser(ctx context.Context, followerID int64, followedUsername string) (*models.Profile, error) {
	return c.setFollow(ctx, followerID, followedUsername, true)
}

func (c *Core) UnfollowUser(ctx context.Context, followerID int64, followedUsername string) (*models.Profile, error) {
	return c.setFollow(ctx, followerID, followedUsername, false)
}

func (c *Core) setFollow(ctx context.Context, followerID int64, followedUsername string, active bool) (*models.Profile, error) {
	followedUser, err := c.GetUserByUsername(ctx, followedUsername)
	if err != nil {
		return nil, xerrors.New(err)
	}

	upsertSQL := `
		INSERT INTO follows (follower_id, followed_id, active)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, followed_id) DO UPDATE SET active = EXCLUDED.active
	`

	if _, err := database.ExecuteUpdate(c.sqlTemplate, ctx, upsertSQL, followerID, followedUser.ID, active); err != nil {
		return nil, xerrors.New(err)
	}

	return &models.Profile{
		ID:        followedUser.ID,
		Username:  followedUser.Username,
		Bio:       followedUser.Bio,
		Image:     followedUser.Image,
		Following: active,
	}, nil
}

// GetProfile resolves a username to its public profile. The following flag
// reflects the viewer's edge; an anonymous viewer always sees false.
func (c *Core) GetProfile(ctx context.Context, username string, viewer *auth.User) (*models.Profile, error) {
	user, err := c.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, xerrors.New(err)
	}

	profile := &models.Profile{
		ID:       user.ID,
		Username: user.Username,
		Bio:      user.Bio,
		Image:    user.Image,
	}

	if viewer != nil {
		following, err := c.isFollowingID(ctx, viewer.ID, user.ID)
		if err != nil {
			return nil, xerrors.New(err)
		}
		profile.Following = following
	}

	return profile, nil
}

func (c *Core) GetFollowingUserList(ctx context.Context, followerID int64) ([]*auth.User, error) {
	query := `
		SELECT u.id, u.email, u.username, u.password, u.bio, u.image
		FROM users u JOIN follows f ON u.id = f.followed_id
		WHERE f.follower_id = $1 AND f.active
	`

	queryResultList, err := database.ExecuteQuery(c.sqlTemplate, ctx, query, extractUser, followerID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return queryResultList, nil
}

func extractActive(rows *sql.Rows) (bool, error) {
	var active bool
	if err := rows.Scan(&active); err != nil {
		return false, xerrors.New(err)
	}
	return active, nil
}
