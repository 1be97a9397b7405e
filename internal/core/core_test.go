package core

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/conduitapp/conduit/internal/auth"
	"github.com/conduitapp/conduit/internal/database"
	"github.com/conduitapp/conduit/models"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

// newTestCore connects to the database named by TEST_DATABASE_DSN, applies
// the schema and truncates all tables. Tests that need a database skip when
// the variable is unset.
func newTestCore(t *testing.T) *Core {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping database test")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	_, err = db.Exec(`TRUNCATE user_favorites_article, follows, tag_article, tags, articles, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCore(db, logger, database.NewSQLTemplate(db, 3*time.Second))
}

func createTestUser(t *testing.T, c *Core, username string) *auth.User {
	t.Helper()

	user := &auth.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
	}
	require.NoError(t, user.SetPassword("password-123"))
	require.NoError(t, c.CreateUser(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func createTestArticle(t *testing.T, c *Core, author *auth.User, title string, tags ...string) *models.Article {
	t.Helper()

	article, err := c.CreateArticle(context.Background(), author, title, nil, "body of "+title, tags)
	require.NoError(t, err)
	// Keep creation timestamps strictly ordered for the listing tests.
	time.Sleep(5 * time.Millisecond)
	return article
}
