package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/chessmate-central/models"
)

func TestTagList_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want TagList
	}{
		{`["openings", " sicilian ", ""]`, TagList{"openings", "sicilian"}},
		{`"endgames, rook ,,pawns"`, TagList{"endgames", "rook", "pawns"}},
		{`""`, TagList{}},
	}
	for _, tc := range cases {
		var got TagList
		require.NoError(t, json.Unmarshal([]byte(tc.in), &got), tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	var got TagList
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestBlogService_Create(t *testing.T) {
	repo := &fakeBlogRepo{}
	svc := NewBlogService(repo, nil)

	var input CreateBlogPostInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "  Spring Open: Round 5 Report! ",
		"category": "Tournament News",
		"tags": "report, spring",
		"content": "<p>Upsets everywhere.</p>"
	}`), &input))

	post, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "spring-open-round-5-report", post.Slug)
	assert.Equal(t, "Spring Open: Round 5 Report!", post.Title)
	assert.Equal(t, []string{"report", "spring"}, post.Tags)
	assert.False(t, post.CreatedAt.IsZero())

	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrBlogSlugConflict)

	explicit, err := svc.Create(context.Background(), CreateBlogPostInput{
		Title: "Another", Slug: "Caro Kann Tips", Category: models.CategoryChessTips, Content: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "caro-kann-tips", explicit.Slug)
	assert.NotNil(t, explicit.Tags)
}

func TestBlogService_CreateValidation(t *testing.T) {
	svc := NewBlogService(&fakeBlogRepo{}, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBlogPostInput{Content: "x", Category: models.CategoryGeneral})
	assert.ErrorIs(t, err, ErrBlogTitleRequired)
	_, err = svc.Create(ctx, CreateBlogPostInput{Title: "T", Category: models.CategoryGeneral})
	assert.ErrorIs(t, err, ErrBlogContentRequired)
	_, err = svc.Create(ctx, CreateBlogPostInput{Title: "T", Content: "x", Category: "Gossip"})
	assert.ErrorIs(t, err, ErrBlogInvalidCategory)
	_, err = svc.Create(ctx, CreateBlogPostInput{Title: "T", Slug: "!!!", Content: "x", Category: models.CategoryGeneral})
	assert.ErrorIs(t, err, ErrBlogInvalidSlug)
}

func TestBlogService_CreateStoreFailure(t *testing.T) {
	svc := NewBlogService(&fakeBlogRepo{createErr: errors.New("read-only transaction")}, nil)

	_, err := svc.Create(context.Background(), CreateBlogPostInput{Title: "T", Content: "x", Category: models.CategoryGeneral})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestBlogService_GetBySlug(t *testing.T) {
	repo := &fakeBlogRepo{posts: []models.BlogPost{{ID: "b1", Slug: "hello", Title: "Hello"}}}
	svc := NewBlogService(repo, nil)

	post, err := svc.GetBySlug(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)

	_, err = svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBlogPostNotFound)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
