package core

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/conduitapp/conduit/internal/database"
	"github.com/conduitapp/conduit/internal/utils/stringutils"
	"github.com/mdobak/go-xerrors"
)

// Tags are bare strings keyed on their own value. Inserting one that already
// exists is a no-op, never an error.
func (c *Core) upsertTags(ctx context.Context, tagList []string) error {
	if len(tagList) == 0 {
		return nil
	}

	valueStrings := make([]string, 0, len(tagList))
	valueArgs := make([]any, 0, len(tagList))
	for i, tag := range tagList {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d)", i+1))
		valueArgs = append(valueArgs, tag)
	}

	insertSQL := fmt.Sprintf(`
		INSERT INTO tags (tag)
		VALUES %s
		ON CONFLICT (tag) DO NOTHING
	`, strings.Join(valueStrings, ", "))

	if _, err := database.ExecuteUpdate(c.sqlTemplate, ctx, insertSQL, valueArgs...); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (c *Core) linkTags(ctx context.Context, articleID int64, tagList []string) error {
	valueStrings := make([]string, 0, len(tagList))
	valueArgs := make([]any, 0, len(tagList)+1)
	valueArgs = append(valueArgs, articleID)
	for i, tag := range tagList {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $1)", i+2))
		valueArgs = append(valueArgs, tag)
	}

	insertSQL := fmt.Sprintf(`
		INSERT INTO tag_article (tag, article_id)
		VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := database.ExecuteUpdate(c.sqlTemplate, ctx, insertSQL, valueArgs...); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (c *Core) GetTagsByArticleID(ctx context.Context, articleID int64) ([]string, error) {
	query := `
		SELECT tag FROM tag_article
		WHERE article_id = $1
		ORDER BY tag
	`

	tagList, err := database.ExecuteQuery(c.sqlTemplate, ctx, query, extractTag, articleID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return tagList, nil
}

func (c *Core) GetTagsByArticleIDList(ctx context.Context, articleIDList []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(articleIDList))
	if len(articleIDList) == 0 {
		return result, nil
	}

	placeholders, args := stringutils.InClause(articleIDList, 1)
	query := fmt.Sprintf(`
		SELECT article_id, tag FROM tag_article
		WHERE article_id IN (%s)
		ORDER BY tag
	`, strings.Join(placeholders, ", "))

	type articleTag struct {
		articleID int64
		tag       string
	}

	rowsList, err := database.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (articleTag, error) {
		var at articleTag
		if err := rows.Scan(&at.articleID, &at.tag); err != nil {
			return at, xerrors.New(err)
		}
		return at, nil
	}, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	for _, at := range rowsList {
		result[at.articleID] = append(result[at.articleID], at.tag)
	}
	return result, nil
}

func (c *Core) GetAllTags(ctx context.Context) ([]string, error) {
	query := `
		SELECT tag FROM tags
		ORDER BY tag
	`

	tagList, err := database.ExecuteQuery(c.sqlTemplate, ctx, query, extractTag)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if tagList == nil {
		tagList = []string{}
	}
	return tagList, nil
}

func extractTag(rows *sql.Rows) (string, error) {
	var tag string
	if err := rows.Scan(&tag); err != nil {
		return "", xerrors.New(err)
	}
	return tag, nil
}
