package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArticleWithTags(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice := createTestUser(t, c, "alice")

	article, err := c.CreateArticle(ctx, alice, "Hello World", nil, "body", []string{"rust", "web"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", article.Slug)
	assert.Equal(t, []string{"rust", "web"}, article.TagList)
	assert.False(t, article.Favorited)
	assert.Zero(t, article.FavoritesCount)
	require.NotNil(t, article.Author)
	assert.Equal(t, "alice", article.Author.Username)

	tags, err := c.GetTagsByArticleID(ctx, article.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"rust", "web"}, tags)

	// A second article sharing a tag must not duplicate the tag row.
	second, err := c.CreateArticle(ctx, alice, "Second Post", nil, "body", []string{"rust"})
	require.NoError(t, err)

	var tagCount int
	err = c.db.QueryRow(`SELECT COUNT(*) FROM tags WHERE tag = 'rust'`).Scan(&tagCount)
	require.NoError(t, err)
	assert.Equal(t, 1, tagCount)

	tags, err = c.GetTagsByArticleID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"rust"}, tags)
}

func TestCreateArticleWithoutTags(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice := createTestUser(t, c, "alice")

	description := "a description"
	article, err := c.CreateArticle(ctx, alice, "No Tags Here", &description, "body", nil)
	require.NoError(t, err)
	assert.Empty(t, article.TagList)
	require.NotNil(t, article.Description)
	assert.Equal(t, description, *article.Description)

	fetched, err := c.GetArticleBySlug(ctx, "no-tags-here")
	require.NoError(t, err)
	assert.Equal(t, article.ID, fetched.ID)
	assert.Equal(t, alice.ID, fetched.AuthorID)
}

func TestCreateArticleRollsBackOnBadTag(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice := createTestUser(t, c, "alice")

	// A duplicate tag in the list violates the junction primary key inside
	// the transaction; the article row must not survive the rollback.
	_, err := c.CreateArticle(ctx, alice, "Doomed Article", nil, "body", []string{"dup", "dup"})
	require.Error(t, err)

	_, err = c.GetArticleBySlug(ctx, "doomed-article")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetArticleBySlugNotFound(t *testing.T) {
	c := newTestCore(t)

	_, err := c.GetArticleBySlug(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavorites(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice := createTestUser(t, c, "alice")
	bob := createTestUser(t, c, "bob")

	article := createTestArticle(t, c, alice, "Hello World", "intro")

	// Never-touched pair reads as false and materializes the edge.
	favorited, err := c.IsFavorited(ctx, bob, article.ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	var active bool
	err = c.db.QueryRow(`SELECT active FROM user_favorites_article WHERE user_id = $1 AND article_id = $2`, bob.ID, article.ID).Scan(&active)
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, c.SetFavorite(ctx, bob.ID, article.ID, true))

	favorited, err = c.IsFavorited(ctx, bob, article.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	count, err := c.FavoritesCount(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Unfavorite toggles the flag; the count only sees active edges.
	require.NoError(t, c.SetFavorite(ctx, bob.ID, article.ID, false))

	count, err = c.FavoritesCount(ctx, article.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Anonymous reader.
	favorited, err = c.IsFavorited(ctx, nil, article.ID)
	require.NoError(t, err)
	assert.False(t, favorited)
}

func TestDeleteArticleCascades(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice := createTestUser(t, c, "alice")
	bob := createTestUser(t, c, "bob")

	article := createTestArticle(t, c, alice, "Hello World", "intro", "greeting")
	require.NoError(t, c.SetFavorite(ctx, bob.ID, article.ID, true))

	require.NoError(t, c.DeleteArticle(ctx, article.ID))

	_, err := c.GetArticleBySlug(ctx, "hello-world")
	assert.ErrorIs(t, err, ErrNotFound)

	var junctionCount, favoriteCount int
	err = c.db.QueryRow(`SELECT COUNT(*) FROM tag_article WHERE article_id = $1`, article.ID).Scan(&junctionCount)
	require.NoError(t, err)
	assert.Zero(t, junctionCount)

	err = c.db.QueryRow(`SELECT COUNT(*) FROM user_favorites_article WHERE article_id = $1`, article.ID).Scan(&favoriteCount)
	require.NoError(t, err)
	assert.Zero(t, favoriteCount)

	// Tags are global and never deleted.
	var tagCount int
	err = c.db.QueryRow(`SELECT COUNT(*) FROM tags`).Scan(&tagCount)
	require.NoError(t, err)
	assert.Equal(t, 2, tagCount)
}

func TestBatchFavoriteLookups(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice := createTestUser(t, c, "alice")
	bob := createTestUser(t, c, "bob")

	first := createTestArticle(t, c, alice, "First")
	second := createTestArticle(t, c, alice, "Second")

	require.NoError(t, c.SetFavorite(ctx, bob.ID, first.ID, true))
	require.NoError(t, c.SetFavorite(ctx, alice.ID, first.ID, true))

	idList := []int64{first.ID, second.ID}

	favorited, err := c.FavoritedByArticleIDList(ctx, idList, bob)
	require.NoError(t, err)
	assert.True(t, favorited[first.ID])
	assert.False(t, favorited[second.ID])

	counts, err := c.FavoritesCountByArticleIDList(ctx, idList)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[first.ID])
	assert.Zero(t, counts[second.ID])
}
