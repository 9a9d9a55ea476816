package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/Dosada05/chessmate-central/models"
	"github.com/Dosada05/chessmate-central/repositories"
)

// TagList accepts tags either as a JSON array or as one comma separated string.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = cleanTags(list)
		return nil
	}
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("tags must be an array of strings or a comma separated string")
	}
	*t = splitTags(derefString(raw))
	return nil
}

type CreateBlogPostInput struct {
	Title    string              `json:"title"`
	Slug     string              `json:"slug"`
	ImageURL *string             `json:"imageUrl"`
	Category models.BlogCategory `json:"category"`
	Tags     TagList             `json:"tags"`
	Content  string              `json:"content"`
}

type BlogService interface {
	Create(ctx context.Context, input CreateBlogPostInput) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	List(ctx context.Context) ([]models.BlogPost, error)
}

type blogService struct {
	repo   repositories.BlogRepository
	logger *slog.Logger
}

func NewBlogService(repo repositories.BlogRepository, logger *slog.Logger) BlogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &blogService{repo: repo, logger: logger}
}

func (s *blogService) Create(ctx context.Context, input CreateBlogPostInput) (*models.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrBlogTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrBlogContentRequired
	}
	if !input.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrBlogInvalidCategory, input.Category)
	}

	source := strings.TrimSpace(input.Slug)
	if source == "" {
		source = title
	}
	postSlug := slug.Make(source)
	if postSlug == "" {
		return nil, ErrBlogInvalidSlug
	}

	tags := []string(input.Tags)
	if tags == nil {
		tags = []string{}
	}

	post := &models.BlogPost{
		ID:       uuid.NewString(),
		Title:    title,
		Slug:     postSlug,
		ImageURL: trimmedOrNil(input.ImageURL),
		Category: input.Category,
		Tags:     tags,
		Content:  input.Content,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrBlogSlugConflict) {
			return nil, fmt.Errorf("%w: %q", ErrBlogSlugConflict, postSlug)
		}
		return nil, storeError("failed to create blog post", err)
	}
	s.logger.InfoContext(ctx, "Blog post published", slog.String("slug", post.Slug))
	return post, nil
}

func (s *blogService) GetBySlug(ctx context.Context, postSlug string) (*models.BlogPost, error) {
	post, err := s.repo.GetBySlug(ctx, postSlug)
	if err != nil {
		if errors.Is(err, repositories.ErrBlogPostNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, storeError("failed to get blog post", err)
	}
	return post, nil
}

func (s *blogService) List(ctx context.Context) ([]models.BlogPost, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError("failed to list blog posts", err)
	}
	return posts, nil
}
