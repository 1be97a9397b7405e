package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/conduitapp/conduit/internal/auth"
	"github.com/conduitapp/conduit/internal/database"
	"github.com/conduitapp/conduit/internal/utils/stringutils"
	"github.com/conduitapp/conduit/models"
	"github.com/mdobak/go-xerrors"
)

// CreateArticle inserts the article row, upserts its tags and links the
// junction rows as one transaction. Either everything becomes visible or
// nothing does.
func (c *Core) CreateArticle(ctx context.Context, author *auth.User, title string, description *string, body string, tagList []string) (*models.Article, error) {
	slug := c.CreateSlug(title)

	article, err := database.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Article, error) {
		insertSQL := `
			INSERT INTO articles (slug, title, description, body, created_at, updated_at, author_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, slug, title, description, body, created_at, updated_at, author_id
		`

		now := time.Now().UTC()
		args := []any{slug, title, description, body, now, now, author.ID}
		created, err := database.ExecuteSingleQuery(c.sqlTemplate, txCtx, insertSQL, extractArticle, args...)
		if err != nil {
			switch {
			case strings.Contains(err.Error(), `"articles_slug_key"`):
				return nil, xerrors.New(ErrDuplicatedSlug)
			default:
				return nil, xerrors.New(err)
			}
		}

		if len(tagList) > 0 {
			if err := c.upsertTags(txCtx, tagList); err != nil {
				return nil, xerrors.New(err)
			}
			if err := c.linkTags(txCtx, created.ID, tagList); err != nil {
				return nil, xerrors.New(err)
			}
		}

		return created, nil
	})
	if err != nil {
		return nil, err
	}

	article.TagList = tagList
	if article.TagList == nil {
		article.TagList = []string{}
	}
	article.Author = &models.Profile{
		ID:       author.ID,
		Username: author.Username,
		Bio:      author.Bio,
		Image:    author.Image,
	}

	c.log.Info("article created", "slug", article.Slug, "author_id", author.ID)
	return article, nil
}

func (c *Core) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := `
		SELECT id, slug, title, description, body, created_at, updated_at, author_id
		FROM articles
		WHERE slug = $1
	`

	article, err := database.ExecuteSingleQuery(c.sqlTemplate, ctx, query, extractArticle, slug)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(ErrNotFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return article, nil
}

// DeleteArticle removes the article together with its junction rows and
// favorite edges so no orphaned references survive.
func (c *Core) DeleteArticle(ctx context.Context, articleID int64) error {
	return c.session.DoTransactionally(ctx, func(txCtx context.Context) error {
		statements := []string{
			`DELETE FROM tag_article WHERE article_id = $1`,
			`DELETE FROM user_favorites_article WHERE article_id = $1`,
			`DELETE FROM articles WHERE id = $1`,
		}

		for _, statement := range statements {
			if _, err := database.ExecuteUpdate(c.sqlTemplate, txCtx, statement, articleID); err != nil {
				return xerrors.New(err)
			}
		}
		return nil
	})
}

// Favorite edges follow the same lifecycle as follow edges: materialized on
// first read with active = false, toggled by upsert, never deleted.

func (c *Core) IsFavorited(ctx context.Context, user *auth.User, articleID int64) (bool, error) {
	if user == nil {
		return false, nil
	}

	query := `
		SELECT active FROM user_favorites_article
		WHERE user_id = $1 AND article_id = $2
	`

	active, err := database.ExecuteSingleQuery(c.sqlTemplate, ctx, query, extractActive, user.ID, articleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if err := c.materializeFavoriteEdge(ctx, user.ID, articleID); err != nil {
				return false, xerrors.New(err)
			}
			return false, nil
		}
		return false, xerrors.New(err)
	}

	return active, nil
}

func (c *Core) materializeFavoriteEdge(ctx context.Context, userID, articleID int64) error {
	insertSQL := `
		INSERT INTO user_favorites_article (user_id, article_id, active)
		VALUES ($1, $2, false)
		ON CONFLICT (user_id, article_id) DO NOTHING
	`

	if _, err := database.ExecuteUpdate(c.sqlTemplate, ctx, insertSQL, userID, articleID); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (c *Core) SetFavorite(ctx context.Context, userID, articleID int64, active bool) error {
	upsertSQL := `
		INSERT INTO user_favorites_article (user_id, article_id, active)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, article_id) DO UPDATE SET active = EXCLUDED.active
	`

	if _, err := database.ExecuteUpdate(c.sqlTemplate, ctx, upsertSQL, userID, articleID, active); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (c *Core) FavoritesCount(ctx context.Context, articleID int64) (int64, error) {
	query := `
		SELECT COUNT(*) FROM user_favorites_article
		WHERE article_id = $1 AND active
	`

	count, err := database.ExecuteSingleQuery(c.sqlTemplate, ctx, query, extractCount, articleID)
	if err != nil {
		return 0, xerrors.New(err)
	}
	return count, nil
}

func (c *Core) FavoritedByArticleIDList(ctx context.Context, articleIDList []int64, user *auth.User) (map[int64]bool, error) {
	result := make(map[int64]bool, len(articleIDList))
	if user == nil || len(articleIDList) == 0 {
		return result, nil
	}

	placeholders, args := stringutils.InClause(articleIDList, 2)
	query := fmt.Sprintf(`
		SELECT article_id FROM user_favorites_article
		WHERE user_id = $1 AND active AND article_id IN (%s)
	`, strings.Join(placeholders, ", "))

	args = append([]any{user.ID}, args...)
	idList, err := database.ExecuteQuery(c.sqlTemplate, ctx, query, extractID, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	for _, id := range idList {
		result[id] = true
	}
	return result, nil
}

func (c *Core) FavoritesCountByArticleIDList(ctx context.Context, articleIDList []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(articleIDList))
	if len(articleIDList) == 0 {
		return result, nil
	}

	placeholders, args := stringutils.InClause(articleIDList, 1)
	query := fmt.Sprintf(`
		SELECT article_id, COUNT(*) FROM user_favorites_article
		WHERE active AND article_id IN (%s)
		GROUP BY article_id
	`, strings.Join(placeholders, ", "))

	type articleCount struct {
		articleID int64
		count     int64
	}

	countList, err := database.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (articleCount, error) {
		var ac articleCount
		if err := rows.Scan(&ac.articleID, &ac.count); err != nil {
			return ac, xerrors.New(err)
		}
		return ac, nil
	}, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	for _, ac := range countList {
		result[ac.articleID] = ac.count
	}
	return result, nil
}

func extractArticle(rows *sql.Rows) (*models.Article, error) {
	article := &models.Article{}

	if err := rows.Scan(
		&article.ID,
		&article.Slug,
		&article.Title,
		&article.Description,
		&article.Body,
		&article.CreatedAt,
		&article.UpdatedAt,
		&article.AuthorID,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return article, nil
}

func extractID(rows *sql.Rows) (int64, error) {
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, xerrors.New(err)
	}
	return id, nil
}

func extractCount(rows *sql.Rows) (int64, error) {
	var count int64
	if err := rows.Scan(&count); err != nil {
		return 0, xerrors.New(err)
	}
	return count, nil
}
