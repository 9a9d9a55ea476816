package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/chessmate-central/services"
)

// multipartOverhead покрывает заголовки и границы формы сверх самого файла.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(us services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: us}
}

// Upload godoc
// @Summary Загрузить изображение
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл"
// @Success 200 {object} map[string]interface{} "success, url"
// @Failure 400 {object} map[string]interface{} "Файл не передан"
// @Failure 413 {object} map[string]interface{} "Файл слишком большой"
// @Router /upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			uploadFailure(w, r, http.StatusRequestEntityTooLarge, services.ErrFileTooLarge.Error())
			return
		}
		uploadFailure(w, r, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	url, err := h.uploadService.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	switch {
	case err == nil:
		respond(w, r, http.StatusOK, jsonResponse{"success": true, "url": url})
	case errors.Is(err, services.ErrFileRequired):
		uploadFailure(w, r, http.StatusBadRequest, "No file uploaded")
	case errors.Is(err, services.ErrFileTooLarge):
		uploadFailure(w, r, http.StatusRequestEntityTooLarge, err.Error())
	default:
		mapServiceErrorToHTTP(w, r, err)
	}
}

func uploadFailure(w http.ResponseWriter, r *http.Request, status int, message string) {
	respond(w, r, status, jsonResponse{"success": false, "error": message})
}
