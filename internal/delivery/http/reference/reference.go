package http_reference

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lpr1983/filmorate/internal/model"
	usecase_reference "github.com/lpr1983/filmorate/internal/usecase/reference"
)

type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MpaDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

type Controller struct {
	uc     *usecase_reference.Usecase
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_reference.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/genres", c.listGenres)
	router.GET("/genres/:genre_id", c.getGenre)
	router.GET("/mpa", c.listMpa)
	router.GET("/mpa/:mpa_id", c.getMpa)
}

func (c *Controller) listGenres(ctx *gin.Context) {
	genres, err := c.uc.Genres(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, err, "Failed to load genres")
		return
	}

	dtos := make([]GenreDTO, len(genres))
	for i, g := range genres {
		dtos[i] = GenreDTO{ID: g.ID, Name: g.Name}
	}
	ctx.JSON(http.StatusOK, dtos)
}

func (c *Controller) getGenre(ctx *gin.Context) {
	id, ok := c.pathID(ctx, "genre_id")
	if !ok {
		return
	}

	genre, err := c.uc.GenreByID(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err, "Failed to load genre")
		return
	}

	ctx.JSON(http.StatusOK, GenreDTO{ID: genre.ID, Name: genre.Name})
}

func (c *Controller) listMpa(ctx *gin.Context) {
	ratings, err := c.uc.MpaRatings(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, err, "Failed to load mpa ratings")
		return
	}

	dtos := make([]MpaDTO, len(ratings))
	for i, m := range ratings {
		dtos[i] = MpaDTO{ID: m.ID, Name: m.Name, Age: m.Age}
	}
	ctx.JSON(http.StatusOK, dtos)
}

func (c *Controller) getMpa(ctx *gin.Context) {
	id, ok := c.pathID(ctx, "mpa_id")
	if !ok {
		return
	}

	rating, err := c.uc.MpaByID(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err, "Failed to load mpa rating")
		return
	}

	ctx.JSON(http.StatusOK, MpaDTO{ID: rating.ID, Name: rating.Name, Age: rating.Age})
}

func (c *Controller) pathID(ctx *gin.Context, param string) (int, bool) {
	idParam := ctx.Param(param)
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		c.logger.Warn("invalid path id",
			slog.String("param", param),
			slog.String("value", idParam),
		)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid " + param,
			Code:  http.StatusBadRequest,
		})
		return 0, false
	}
	return id, true
}

func (c *Controller) respondError(ctx *gin.Context, err error, what string) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrNotFound) {
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		c.logger.Error(what, slog.String("error", err.Error()))
	} else {
		c.logger.Warn(what, slog.String("error", err.Error()))
	}

	ctx.JSON(status, ErrorResponse{
		Error:   what,
		Message: err.Error(),
		Code:    status,
	})
}
