package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movierama/internal/application"
	"github.com/oksasatya/movierama/pkg/response"
	"github.com/oksasatya/movierama/pkg/validation"
)

const maxPosterBytes = 5 << 20

type MovieHandler struct {
	Svc    *application.MovieService
	Logger *logrus.Logger
}

func NewMovieHandler(svc *application.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{Svc: svc, Logger: logger}
}

type registerMovieRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	UserID      int64  `json:"user_id" binding:"gte=0"`
}

// Register POST /api/movies
func (h *MovieHandler) Register(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req registerMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	m, err := h.Svc.Register(c.Request.Context(), p, req.Title, req.Description, req.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, m)
}

// FindByTitle GET /api/movies/:name
func (h *MovieHandler) FindByTitle(c *gin.Context) {
	m, err := h.Svc.FindByTitle(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if m == nil {
		response.Error(c, http.StatusNotFound, "movie not found")
		return
	}
	response.JSON(c, http.StatusOK, m)
}

// FindAll GET /api/movies
func (h *MovieHandler) FindAll(c *gin.Context) {
	movies, err := h.Svc.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, movies)
}

// FindAllByUser GET /api/movies/:name/all, where :name is the poster's user id.
func (h *MovieHandler) FindAllByUser(c *gin.Context) {
	uid, err := strconv.ParseInt(c.Param("name"), 10, 64)
	if err != nil || uid <= 0 {
		response.Error(c, http.StatusBadRequest, "user id must be a positive number")
		return
	}
	movies, err := h.Svc.FindAllByUser(c.Request.Context(), uid)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, movies)
}

// Search GET /api/movies/search?q=&size=
func (h *MovieHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, hits)
}

// UploadPoster POST /api/movies/:name/poster (multipart field "file")
func (h *MovieHandler) UploadPoster(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required")
		return
	}
	if fh.Size > maxPosterBytes {
		response.Error(c, http.StatusBadRequest, "file must be at most 5MB")
		return
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer func() { _ = f.Close() }()

	m, err := h.Svc.UploadPoster(c.Request.Context(), p, c.Param("name"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, m)
}
