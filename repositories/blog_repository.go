package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/chessmate-central/models"
)

var (
	ErrBlogPostNotFound = errors.New("blog post not found")
	ErrBlogSlugConflict = errors.New("blog post slug already exists")
)

type BlogRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	List(ctx context.Context) ([]models.BlogPost, error)
}

type postgresBlogRepository struct {
	db *sql.DB
}

func NewPostgresBlogRepository(db *sql.DB) BlogRepository {
	return &postgresBlogRepository{db: db}
}

const blogColumns = `id, title, slug, image_url, category, tags, content, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...interface{}) error }, p *models.BlogPost) error {
	var tags pq.StringArray
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.ImageURL, &p.Category, &tags, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	p.Tags = []string(tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return nil
}

func (r *postgresBlogRepository) Create(ctx context.Context, p *models.BlogPost) error {
	query := `
		INSERT INTO blog_posts (id, title, slug, image_url, category, tags, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Slug, p.ImageURL, p.Category, pq.Array(p.Tags), p.Content,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if code, constraint := pqCode(err); code == pqUniqueViolation && constraint == "blog_posts_slug_key" {
			return ErrBlogSlugConflict
		}
		return fmt.Errorf("failed to insert blog post: %w", err)
	}
	return nil
}

func (r *postgresBlogRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE slug = $1`

	p := &models.BlogPost{}
	if err := scanBlogPost(r.db.QueryRowContext(ctx, query, slug), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlogPostNotFound
		}
		return nil, fmt.Errorf("failed to get blog post %q: %w", slug, err)
	}
	return p, nil
}

func (r *postgresBlogRepository) List(ctx context.Context) ([]models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.BlogPost, 0)
	for rows.Next() {
		var p models.BlogPost
		if err := scanBlogPost(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during blog rows iteration: %w", err)
	}
	return posts, nil
}
