package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"linkfeed/internal/models"

	sq "github.com/Masterminds/squirrel"
)

type LinkRepository struct {
	db *sql.DB
}

func NewLinkRepository(db *sql.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

var _ Links = (*LinkRepository)(nil)

const insertLinkSQL = `INSERT INTO links (url, description, created_at, posted_by) VALUES (?, ?, ?, ?)`

// linkColumns are the columns selected for every link read: the link
// row, the resolved poster, and the current vote count.
var linkColumns = []string{
	"l.id", "l.url", "l.description", "l.created_at",
	"u.id", "u.email", "u.name", "u.created_at",
	"(SELECT COUNT(*) FROM votes v WHERE v.link_id = l.id) AS votes",
}

// Create inserts a new link owned by postedBy and returns the stored
// record with its poster resolved.
func (r *LinkRepository) Create(ctx context.Context, url, description string, postedBy int64) (models.Link, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertLinkSQL, url, description, now, postedBy)
	if err != nil {
		return models.Link{}, fmt.Errorf("insert link %q: %w", url, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Link{}, fmt.Errorf("get last insert id for link %q: %w", url, err)
	}
	return r.GetByID(ctx, lastID)
}

// GetByID fetches a link with its poster. Returns ErrNotFound if absent.
func (r *LinkRepository) GetByID(ctx context.Context, id int64) (models.Link, error) {
	query, args, err := selectLinks().Where(sq.Eq{"l.id": id}).ToSql()
	if err != nil {
		return models.Link{}, fmt.Errorf("build link query: %w", err)
	}
	row := r.db.QueryRowContext(ctx, query, args...)
	link, err := scanLink(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Link{}, fmt.Errorf("select link id=%d: %w", id, ErrNotFound)
		}
		return models.Link{}, fmt.Errorf("select link id=%d: %w", id, err)
	}
	return link, nil
}

// FindMany returns the links matching q with skip/take/orderBy applied.
// Ordering is limited to stored columns; ranking by vote count is a
// caller concern, not a store query (callers fetch a batch and rank).
func (r *LinkRepository) FindMany(ctx context.Context, q FeedQuery) ([]models.Link, error) {
	b := selectLinks()
	if q.Filter != "" {
		b = b.Where(filterClause(q.Filter))
	}
	b, err := applyOrder(b, q)
	if err != nil {
		return nil, err
	}
	b = applyPagination(b, q)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feed query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select links: %w", err)
	}
	defer func() { _ = rows.Close() }()

	links := make([]models.Link, 0)
	for rows.Next() {
		link, err := scanLink(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return links, nil
}

// Count returns the total number of links matching filter, independent
// of any pagination.
func (r *LinkRepository) Count(ctx context.Context, filter string) (int64, error) {
	b := sq.Select("COUNT(*)").From("links l")
	if filter != "" {
		b = b.Where(filterClause(filter))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return count, nil
}

func selectLinks() sq.SelectBuilder {
	return sq.Select(linkColumns...).
		From("links l").
		Join("users u ON u.id = l.posted_by")
}

// filterClause matches links whose url OR description contains the
// filter text. instr is case-sensitive, unlike SQLite's default LIKE.
func filterClause(filter string) sq.Sqlizer {
	return sq.Or{
		sq.Expr("instr(l.url, ?) > 0", filter),
		sq.Expr("instr(l.description, ?) > 0", filter),
	}
}

var orderableColumns = map[string]string{
	"created_at":  "l.created_at",
	"url":         "l.url",
	"description": "l.description",
}

func applyOrder(b sq.SelectBuilder, q FeedQuery) (sq.SelectBuilder, error) {
	if q.OrderBy == "" {
		return b, nil
	}
	col, ok := orderableColumns[q.OrderBy]
	if !ok {
		return b, fmt.Errorf("unsupported order field %q", q.OrderBy)
	}
	dir := "ASC"
	switch q.OrderDir {
	case "", "asc":
	case "desc":
		dir = "DESC"
	default:
		return b, fmt.Errorf("unsupported order direction %q", q.OrderDir)
	}
	return b.OrderBy(col + " " + dir), nil
}

func applyPagination(b sq.SelectBuilder, q FeedQuery) sq.SelectBuilder {
	switch {
	case q.Take > 0:
		b = b.Limit(q.Take)
		if q.Skip > 0 {
			b = b.Offset(q.Skip)
		}
	case q.Skip > 0:
		// SQLite requires a LIMIT before OFFSET; -1 means unbounded.
		b = b.Suffix("LIMIT -1 OFFSET ?", q.Skip)
	}
	return b
}

func scanLink(scan func(dest ...any) error) (models.Link, error) {
	var l models.Link
	err := scan(
		&l.ID, &l.URL, &l.Description, &l.CreatedAt,
		&l.PostedBy.ID, &l.PostedBy.Email, &l.PostedBy.Name, &l.PostedBy.CreatedAt,
		&l.Votes,
	)
	return l, err
}
