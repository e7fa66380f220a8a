package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/movierama/internal/application"
	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/pkg/response"
	"github.com/oksasatya/movierama/pkg/validation"
)

type OpinionHandler struct {
	Svc *application.OpinionService
}

func NewOpinionHandler(svc *application.OpinionService) *OpinionHandler {
	return &OpinionHandler{Svc: svc}
}

type opinionRequest struct {
	Title   string `json:"title" binding:"required"`
	Opinion string `json:"opinion" binding:"required,opinion"`
}

func bindOpinion(c *gin.Context) (string, entity.Opinion, bool) {
	var req opinionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return "", "", false
	}
	tag, err := entity.ParseOpinion(req.Opinion)
	if err != nil {
		response.Error(c, http.StatusBadRequest, application.ErrInvalidOpinion.Message)
		return "", "", false
	}
	return req.Title, tag, true
}

// Post POST /api/movies/opinion
func (h *OpinionHandler) Post(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	title, tag, ok := bindOpinion(c)
	if !ok {
		return
	}
	if err := h.Svc.PostOpinion(c.Request.Context(), p, title, tag); err != nil {
		_ = c.Error(err)
		return
	}
	response.Empty(c, http.StatusOK)
}

// Retract POST /api/movies/opinion/retract
func (h *OpinionHandler) Retract(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	title, tag, ok := bindOpinion(c)
	if !ok {
		return
	}
	if err := h.Svc.RetractOpinion(c.Request.Context(), p, title, tag); err != nil {
		_ = c.Error(err)
		return
	}
	response.Empty(c, http.StatusOK)
}

// List GET /api/movies/opinions/all
func (h *OpinionHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	list, err := h.Svc.ListOpinions(c.Request.Context(), p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}
