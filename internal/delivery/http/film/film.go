package http_film

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lpr1983/filmorate/internal/model"
	usecase_film "github.com/lpr1983/filmorate/internal/usecase/film"
)

const dateLayout = "2006-01-02"

// CreateFilmRequestDTO carries the shape-validated film payload. The
// core re-checks only what needs stored state (reference existence,
// the release-date floor).
type CreateFilmRequestDTO struct {
	Name        string        `json:"name" binding:"required" example:"Interstellar"`
	Description string        `json:"description" binding:"omitempty,max=200" example:"A voyage through a wormhole"`
	ReleaseDate string        `json:"releaseDate" binding:"omitempty,datetime=2006-01-02" example:"2014-11-07"`
	Duration    int           `json:"duration" binding:"required,gt=0" example:"169"`
	Mpa         *MpaRefDTO    `json:"mpa" binding:"omitempty"`
	Genres      []GenreRefDTO `json:"genres" binding:"omitempty,dive"`
}

type UpdateFilmRequestDTO struct {
	ID          int           `json:"id" binding:"required" example:"1"`
	Name        string        `json:"name" binding:"required" example:"Interstellar"`
	Description string        `json:"description" binding:"omitempty,max=200"`
	ReleaseDate string        `json:"releaseDate" binding:"omitempty,datetime=2006-01-02"`
	Duration    int           `json:"duration" binding:"required,gt=0"`
	Mpa         *MpaRefDTO    `json:"mpa" binding:"omitempty"`
	Genres      []GenreRefDTO `json:"genres" binding:"omitempty,dive"`
}

type MpaRefDTO struct {
	ID int `json:"id" binding:"required"`
}

type GenreRefDTO struct {
	ID int `json:"id" binding:"required"`
}

type FilmResponseDTO struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ReleaseDate string          `json:"releaseDate,omitempty"`
	Duration    int             `json:"duration"`
	Mpa         *MpaResponseDTO `json:"mpa,omitempty"`
	Genres      []GenreDTO      `json:"genres"`
}

type MpaResponseDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

func (r *CreateFilmRequestDTO) ConvertToFilm() model.Film {
	return buildFilm(0, r.Name, r.Description, r.ReleaseDate, r.Duration, r.Mpa, r.Genres)
}

func (r *UpdateFilmRequestDTO) ConvertToFilm() model.Film {
	return buildFilm(r.ID, r.Name, r.Description, r.ReleaseDate, r.Duration, r.Mpa, r.Genres)
}

func buildFilm(id int, name, description, releaseDate string, duration int, mpa *MpaRefDTO, genres []GenreRefDTO) model.Film {
	film := model.Film{
		ID:          id,
		Name:        name,
		Description: description,
		Duration:    duration,
	}
	if releaseDate != "" {
		// The datetime binding tag already proved the format.
		date, _ := time.Parse(dateLayout, releaseDate)
		film.ReleaseDate = &date
	}
	if mpa != nil {
		film.Mpa = &model.MpaRating{ID: mpa.ID}
	}
	for _, g := range genres {
		film.Genres = append(film.Genres, model.Genre{ID: g.ID})
	}
	return film
}

func ConvertFromFilm(film model.Film) FilmResponseDTO {
	dto := FilmResponseDTO{
		ID:          film.ID,
		Name:        film.Name,
		Description: film.Description,
		Duration:    film.Duration,
		Genres:      make([]GenreDTO, 0, len(film.Genres)),
	}
	if film.ReleaseDate != nil {
		dto.ReleaseDate = film.ReleaseDate.Format(dateLayout)
	}
	if film.Mpa != nil {
		dto.Mpa = &MpaResponseDTO{ID: film.Mpa.ID, Name: film.Mpa.Name, Age: film.Mpa.Age}
	}
	for _, g := range film.Genres {
		dto.Genres = append(dto.Genres, GenreDTO{ID: g.ID, Name: g.Name})
	}
	return dto
}

func ConvertFromFilmList(films []model.Film) []FilmResponseDTO {
	dtos := make([]FilmResponseDTO, len(films))
	for i, f := range films {
		dtos[i] = ConvertFromFilm(f)
	}
	return dtos
}

type Controller struct {
	uc     *usecase_film.Usecase
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_film.Usecase, opts ...ControllerOption) *Controller {
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
	films := router.Group("/films")
	films.GET("", c.listFilms)
	films.POST("", c.createFilm)
	films.PUT("", c.updateFilm)
	films.GET("/popular", c.popularFilms)
	films.DELETE("/:film_id", c.deleteFilm)
	films.PUT("/:film_id/like/:user_id", c.likeFilm)
	films.DELETE("/:film_id/like/:user_id", c.unlikeFilm)
}

func (c *Controller) listFilms(ctx *gin.Context) {
	films, err := c.uc.All(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, err, "Failed to load films")
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromFilmList(films))
}

func (c *Controller) createFilm(ctx *gin.Context) {
	var req CreateFilmRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	film, err := c.uc.Create(ctx.Request.Context(), req.ConvertToFilm())
	if err != nil {
		c.respondError(ctx, err, "Failed to create film")
		return
	}

	ctx.JSON(http.StatusCreated, ConvertFromFilm(film))
}

func (c *Controller) updateFilm(ctx *gin.Context) {
	var req UpdateFilmRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	film, err := c.uc.Update(ctx.Request.Context(), req.ConvertToFilm())
	if err != nil {
		c.respondError(ctx, err, "Failed to update film")
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromFilm(film))
}

func (c *Controller) deleteFilm(ctx *gin.Context) {
	filmID, ok := c.pathID(ctx, "film_id")
	if !ok {
		return
	}

	if err := c.uc.Delete(ctx.Request.Context(), filmID); err != nil {
		c.respondError(ctx, err, "Failed to delete film")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) likeFilm(ctx *gin.Context) {
	filmID, ok := c.pathID(ctx, "film_id")
	if !ok {
		return
	}
	userID, ok := c.pathID(ctx, "user_id")
	if !ok {
		return
	}

	if err := c.uc.AddLike(ctx.Request.Context(), filmID, userID); err != nil {
		c.respondError(ctx, err, "Failed to add like")
		return
	}

	ctx.Status(http.StatusOK)
}

func (c *Controller) unlikeFilm(ctx *gin.Context) {
	filmID, ok := c.pathID(ctx, "film_id")
	if !ok {
		return
	}
	userID, ok := c.pathID(ctx, "user_id")
	if !ok {
		return
	}

	if err := c.uc.RemoveLike(ctx.Request.Context(), filmID, userID); err != nil {
		c.respondError(ctx, err, "Failed to remove like")
		return
	}

	ctx.Status(http.StatusOK)
}

func (c *Controller) popularFilms(ctx *gin.Context) {
	countParam := ctx.DefaultQuery("count", "10")
	count, err := strconv.Atoi(countParam)
	if err != nil {
		c.logger.Warn("invalid count param", slog.String("count", countParam))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid count parameter",
			Code:  http.StatusBadRequest,
		})
		return
	}

	films, err := c.uc.Popular(ctx.Request.Context(), count)
	if err != nil {
		c.respondError(ctx, err, "Failed to load popular films")
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromFilmList(films))
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
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
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
