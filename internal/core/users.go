package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/conduitapp/conduit/internal/auth"
	"github.com/conduitapp/conduit/internal/database"
	"github.com/conduitapp/conduit/internal/utils/stringutils"
	"github.com/mdobak/go-xerrors"
)

func (c *Core) CreateUser(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	args := []any{user.Username, user.Email, user.Password}
	_, err := database.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*auth.User, error) {
		if err := rows.Scan(&user.ID); err != nil {
			return nil, xerrors.New(err)
		}
		return user, nil
	}, args...)

	if err != nil {
		switch {
		case strings.Contains(err.Error(), `"users_email_key"`):
			return xerrors.New(ErrDuplicateEmail)
		case strings.Contains(err.Error(), `"users_username_key"`):
			return xerrors.New(ErrDuplicateUsername)
		default:
			return xerrors.New(err)
		}
	}

	return nil
}

// Authenticate verifies a username/password pair. An unknown username and a
// wrong password produce the same ErrInvalidCredentials, so callers cannot
// enumerate usernames from the failure mode.
func (c *Core) Authenticate(ctx context.Context, username, plainTextPassword string) (*auth.User, error) {
	user, err := c.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, xerrors.New(ErrInvalidCredentials)
		}
		return nil, xerrors.New(err)
	}

	match, err := user.IsPasswordMatch(plainTextPassword)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if !match {
		return nil, xerrors.New(ErrInvalidCredentials)
	}

	return user, nil
}

func (c *Core) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	query := `
		SELECT id, email, username, password, bio, image
		FROM users
		WHERE id = $1
	`

	return c.getSingleUser(ctx, query, id)
}

func (c *Core) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	query := `
		SELECT id, email, username, password, bio, image
		FROM users
		WHERE username = $1
	`

	return c.getSingleUser(ctx, query, username)
}

func (c *Core) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id, email, username, password, bio, image
		FROM users
		WHERE email = $1
	`

	return c.getSingleUser(ctx, query, email)
}

func (c *Core) getSingleUser(ctx context.Context, query string, arg any) (*auth.User, error) {
	user, err := database.ExecuteSingleQuery(c.sqlTemplate, ctx, query, extractUser, arg)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(ErrNotFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}

func (c *Core) GetUsersByIDList(ctx context.Context, userIDList []int64) ([]*auth.User, error) {
	if len(userIDList) == 0 {
		return []*auth.User{}, nil
	}

	placeholders, args := stringutils.InClause(userIDList, 1)
	query := fmt.Sprintf(`
		SELECT id, email, username, password, bio, image
		FROM users
		WHERE id IN (%s)
	`, strings.Join(placeholders, ", "))

	queryResultList, err := database.ExecuteQuery(c.sqlTemplate, ctx, query, extractUser, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return queryResultList, nil
}

// UserPatch carries the optional profile-update fields. A nil field keeps
// the stored value; a non-nil password is rehashed before persistence.
type UserPatch struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

func (c *Core) UpdateUser(ctx context.Context, id int64, patch UserPatch) (*auth.User, error) {
	user, err := c.GetUserByID(ctx, id)
	if err != nil {
		return nil, xerrors.New(err)
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Bio != nil {
		user.Bio = patch.Bio
	}
	if patch.Image != nil {
		user.Image = patch.Image
	}
	if patch.Password != nil {
		if err := user.SetPassword(*patch.Password); err != nil {
			return nil, xerrors.New(err)
		}
	}

	query := `
		UPDATE users
		SET email = $1, username = $2, password = $3, bio = $4, image = $5
		WHERE id = $6
		RETURNING id, email, username, password, bio, image
	`

	args := []any{user.Email, user.Username, user.Password, user.Bio, user.Image, user.ID}
	updatedUser, err := database.ExecuteSingleQuery(c.sqlTemplate, ctx, query, extractUser, args...)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(ErrNotFound)
		case strings.Contains(err.Error(), `"users_email_key"`):
			return nil, xerrors.New(ErrDuplicateEmail)
		case strings.Contains(err.Error(), `"users_username_key"`):
			return nil, xerrors.New(ErrDuplicateUsername)
		default:
			return nil, xerrors.New(err)
		}
	}

	c.log.Info("user updated", "user_id", updatedUser.ID, "username", updatedUser.Username)
	return updatedUser, nil
}

func extractUser(rows *sql.Rows) (*auth.User, error) {
	user := &auth.User{}

	if err := rows.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.Password,
		&user.Bio,
		&user.Image,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}
