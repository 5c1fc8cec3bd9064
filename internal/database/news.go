package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/newsdeck/newsdeck/internal/models"
	"github.com/newsdeck/newsdeck/internal/news"
)

var _ news.Repository = (*DB)(nil)

const newsColumns = `id, source, title, summary, link, image_url, category, user_id,
	is_public, status, is_favorite, created_at, updated_at`

// CreateNews inserts a news item, assigning an ID when unset. A violation of
// the (link, user_id) uniqueness constraint is reported as a
// news.DuplicateNewsError so concurrent creates of the same link resolve to
// exactly one stored item.
func (db *DB) CreateNews(item *models.NewsItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	_, err := db.conn.Exec(`
		INSERT INTO news (id, source, title, summary, link, image_url, category, user_id, is_public, status, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Source, item.Title, item.Summary, item.Link, item.ImageURL,
		string(item.Category), item.UserID, boolToInt(item.IsPublic),
		string(item.Status), boolToInt(item.IsFavorite))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return &news.DuplicateNewsError{Link: item.Link, UserID: item.UserID}
		}
		return fmt.Errorf("create news: %w", err)
	}

	stored, err := db.GetNewsByID(item.ID)
	if err != nil {
		return fmt.Errorf("read back news: %w", err)
	}
	*item = *stored
	return nil
}

// GetNewsByID retrieves one news item, or nil when absent.
func (db *DB) GetNewsByID(id string) (*models.NewsItem, error) {
	row := db.conn.QueryRow(`SELECT `+newsColumns+` FROM news WHERE id = ?`, id)
	item, err := scanNewsItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetNewsByUser returns a user's items, newest first, honoring the filter.
func (db *DB) GetNewsByUser(userID string, f news.Filter) ([]models.NewsItem, error) {
	q := builder.Select(newsColumns).From("news").Where(sq.Eq{"user_id": userID})
	return db.queryNews(applyFilter(q, f))
}

// GetPublicNews returns publicly shared items, newest first.
func (db *DB) GetPublicNews(f news.Filter) ([]models.NewsItem, error) {
	q := builder.Select(newsColumns).From("news").Where(sq.Eq{"is_public": 1})
	return db.queryNews(applyFilter(q, f))
}

func applyFilter(q sq.SelectBuilder, f news.Filter) sq.SelectBuilder {
	if f.Status != nil {
		q = q.Where(sq.Eq{"status": string(*f.Status)})
	}
	if f.Category != nil {
		q = q.Where(sq.Eq{"category": string(*f.Category)})
	}
	if f.IsFavorite != nil {
		q = q.Where(sq.Eq{"is_favorite": boolToInt(*f.IsFavorite)})
	}
	q = q.OrderBy("created_at DESC", "id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return q
}

func (db *DB) queryNews(q sq.SelectBuilder) ([]models.NewsItem, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build news query: %w", err)
	}

	rows, err := db.conn.Query(sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.NewsItem
	for rows.Next() {
		item, err := scanNewsItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateNews persists mutable fields of an existing item.
func (db *DB) UpdateNews(item *models.NewsItem) error {
	_, err := db.conn.Exec(`
		UPDATE news SET status = ?, is_favorite = ?, is_public = ?, category = ?,
		       updated_at = datetime('now')
		WHERE id = ?`,
		string(item.Status), boolToInt(item.IsFavorite), boolToInt(item.IsPublic),
		string(item.Category), item.ID)
	if err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	return nil
}

// DeleteNews removes one item and reports whether it existed.
func (db *DB) DeleteNews(id string) (bool, error) {
	result, err := db.conn.Exec(`DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// DeleteAllByUser removes every item a user owns, returning the count.
func (db *DB) DeleteAllByUser(userID string) (int64, error) {
	result, err := db.conn.Exec(`DELETE FROM news WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ExistsByLinkAndUser reports whether a user already saved a link.
func (db *DB) ExistsByLinkAndUser(link, userID string) (bool, error) {
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM news WHERE link = ? AND user_id = ?`, link, userID,
	).Scan(&count)
	return count > 0, err
}

// NewsStats aggregates per-status counts for a user.
func (db *DB) NewsStats(userID string) (models.NewsStats, error) {
	var s models.NewsStats
	err := db.conn.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'reading' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'read' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(is_favorite), 0)
		FROM news WHERE user_id = ?`, userID,
	).Scan(&s.Total, &s.Pending, &s.Reading, &s.Read, &s.Favorites)
	return s, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNewsItem(row rowScanner) (*models.NewsItem, error) {
	var item models.NewsItem
	var category, status string
	var createdAt, updatedAt string

	err := row.Scan(
		&item.ID, &item.Source, &item.Title, &item.Summary, &item.Link,
		&item.ImageURL, &category, &item.UserID, &item.IsPublic,
		&status, &item.IsFavorite, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Category = models.NewsCategory(category)
	item.Status = models.NewsStatus(status)
	item.CreatedAt, _ = parseTime(createdAt)
	item.UpdatedAt, _ = parseTime(updatedAt)
	return &item, nil
}
