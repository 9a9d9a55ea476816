package handlers

import (
	"net/http"

	"github.com/Dosada05/chessmate-central/services"
)

type BlogHandler struct {
	blogService services.BlogService
}

func NewBlogHandler(bs services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: bs}
}

// List godoc
// @Summary Посты блога, новые сверху
// @Tags blog
// @Produce json
// @Success 200 {array} models.BlogPost
// @Router /blog/posts [get]
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, posts)
}

// GetBySlug godoc
// @Summary Пост по slug
// @Tags blog
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} map[string]string "Пост не найден"
// @Router /blog/posts/{slug} [get]
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	postSlug, err := requiredURLParam(r, "slug")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	post, err := h.blogService.GetBySlug(r.Context(), postSlug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, post)
}

// Create godoc
// @Summary Опубликовать пост
// @Tags blog
// @Accept json
// @Produce json
// @Param body body services.CreateBlogPostInput true "Пост; tags массивом или строкой через запятую"
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 409 {object} map[string]string "Slug занят"
// @Security BearerAuth
// @Router /blog/posts [post]
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateBlogPostInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	post, err := h.blogService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, post)
}
