package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/conduitapp/conduit/internal/database"
	"github.com/conduitapp/conduit/internal/filter"
	"github.com/conduitapp/conduit/models"
	"github.com/mdobak/go-xerrors"
)

// GetArticles returns one page of the filtered listing. Filters compose
// conjunctively; an unknown author or favorited username simply matches no
// rows. Ordering is ascending by creation time. The reported articlesCount
// is the number of rows in the returned page, not the total match count —
// callers depend on that behavior, keep it.
func (c *Core) GetArticles(ctx context.Context, filters filter.Filter, tag, author, favoritedBy string) ([]*models.Article, error) {
	var conditions []string
	var args []any

	nextArg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if tag != "" {
		conditions = append(conditions, fmt.Sprintf(
			`a.id IN (SELECT article_id FROM tag_article WHERE tag = %s)`, nextArg(tag)))
	}
	if author != "" {
		conditions = append(conditions, fmt.Sprintf(
			`a.author_id IN (SELECT id FROM users WHERE username = %s)`, nextArg(author)))
	}
	if favoritedBy != "" {
		conditions = append(conditions, fmt.Sprintf(
			`a.id IN (
				SELECT ufa.article_id FROM user_favorites_article ufa
				JOIN users u ON u.id = ufa.user_id
				WHERE u.username = %s AND ufa.active
			)`, nextArg(favoritedBy)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.slug, a.title, a.description, a.body, a.created_at, a.updated_at, a.author_id
		FROM articles a
		%s
		ORDER BY a.created_at ASC
		LIMIT %s OFFSET %s
	`, whereClause, nextArg(filters.Limit), nextArg(filters.Offset))

	articles, err := database.ExecuteQuery(c.sqlTemplate, ctx, query, extractArticle, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return articles, nil
}

// GetFeed returns one page of articles authored by accounts the caller
// actively follows. A caller who follows no one gets an empty page.
func (c *Core) GetFeed(ctx context.Context, userID int64, filters filter.Filter) ([]*models.Article, error) {
	query := `
		SELECT a.id, a.slug, a.title, a.description, a.body, a.created_at, a.updated_at, a.author_id
		FROM articles a
		WHERE a.author_id IN (
			SELECT followed_id FROM follows
			WHERE follower_id = $1 AND active
		)
		ORDER BY a.created_at ASC
		LIMIT $2 OFFSET $3
	`

	articles, err := database.ExecuteQuery(c.sqlTemplate, ctx, query, extractArticle, userID, filters.Limit, filters.Offset)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return articles, nil
}
