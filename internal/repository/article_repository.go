package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/cms-service/internal/domain"
)

// ArticleFilter narrows article listings. A nil Status means all statuses.
type ArticleFilter struct {
	Status     *domain.ArticleStatus
	CategoryID *int64
	AuthorID   *int64
	Limit      int
	Offset     int
}

// ArticleRepository defines persistence access for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	List(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)
	CountTotal(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.ArticleStatus]int64, error)
}

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository returns a Postgres-backed implementation.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	const query = `
        INSERT INTO articles (external_key, title, content, status, category_id, author_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		article.ExternalKey,
		article.Title,
		article.Content,
		article.Status,
		article.CategoryID,
		article.AuthorID,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

// Update never touches author_id: ownership is fixed at creation.
func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	const query = `
        UPDATE articles SET title=$1, content=$2, status=$3, category_id=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		article.Title,
		article.Content,
		article.Status,
		article.CategoryID,
		article.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	const query = `
        SELECT id, external_key, title, content, status, category_id, author_id, created_at, updated_at
        FROM articles WHERE id=$1`

	var article domain.Article
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&article.ID,
		&article.ExternalKey,
		&article.Title,
		&article.Content,
		&article.Status,
		&article.CategoryID,
		&article.AuthorID,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]domain.Article, error) {
	query := `
        SELECT id, external_key, title, content, status, category_id, author_id, created_at, updated_at
        FROM articles WHERE 1=1`
	args := []any{}
	idx := 1

	if filter.Status != nil {
		query += ` AND status=$` + strconv.Itoa(idx)
		args = append(args, *filter.Status)
		idx++
	}
	if filter.CategoryID != nil {
		query += ` AND category_id=$` + strconv.Itoa(idx)
		args = append(args, *filter.CategoryID)
		idx++
	}
	if filter.AuthorID != nil {
		query += ` AND author_id=$` + strconv.Itoa(idx)
		args = append(args, *filter.AuthorID)
		idx++
	}

	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(idx)
		args = append(args, filter.Limit)
		idx++
	}
	if filter.Offset > 0 {
		query += ` OFFSET $` + strconv.Itoa(idx)
		args = append(args, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var article domain.Article
		if err := rows.Scan(
			&article.ID,
			&article.ExternalKey,
			&article.Title,
			&article.Content,
			&article.Status,
			&article.CategoryID,
			&article.AuthorID,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (r *articleRepository) CountTotal(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *articleRepository) CountByStatus(ctx context.Context) (map[domain.ArticleStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM articles GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ArticleStatus]int64)
	for rows.Next() {
		var status domain.ArticleStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
