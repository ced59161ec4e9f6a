package http_user

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lpr1983/filmorate/internal/model"
	usecase_user "github.com/lpr1983/filmorate/internal/usecase/user"
)

const dateLayout = "2006-01-02"

type CreateUserRequestDTO struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Login    string `json:"login" binding:"required,excludesall=0x20" example:"alice"`
	Name     string `json:"name" example:"Alice"`
	Birthday string `json:"birthday" binding:"required,datetime=2006-01-02" example:"1990-05-01"`
}

type UpdateUserRequestDTO struct {
	ID       int    `json:"id" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Login    string `json:"login" binding:"required,excludesall=0x20"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" binding:"required,datetime=2006-01-02"`
}

type UserResponseDTO struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

func (r *CreateUserRequestDTO) ConvertToUser() model.User {
	return buildUser(0, r.Email, r.Login, r.Name, r.Birthday)
}

func (r *UpdateUserRequestDTO) ConvertToUser() model.User {
	return buildUser(r.ID, r.Email, r.Login, r.Name, r.Birthday)
}

func buildUser(id int, email, login, name, birthday string) model.User {
	// The datetime binding tag already proved the format.
	date, _ := time.Parse(dateLayout, birthday)
	return model.User{
		ID:       id,
		Email:    email,
		Login:    login,
		Name:     name,
		Birthday: date,
	}
}

func ConvertFromUser(user model.User) UserResponseDTO {
	return UserResponseDTO{
		ID:       user.ID,
		Email:    user.Email,
		Login:    user.Login,
		Name:     user.Name,
		Birthday: user.Birthday.Format(dateLayout),
	}
}

func ConvertFromUserList(users []model.User) []UserResponseDTO {
	dtos := make([]UserResponseDTO, len(users))
	for i, u := range users {
		dtos[i] = ConvertFromUser(u)
	}
	return dtos
}

type Controller struct {
	uc     *usecase_user.Usecase
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_user.Usecase, opts ...ControllerOption) *Controller {
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
	users := router.Group("/users")
	users.GET("", c.listUsers)
	users.POST("", c.createUser)
	users.PUT("", c.updateUser)
	users.DELETE("/:user_id", c.deleteUser)
	users.PUT("/:user_id/friends/:friend_id", c.addFriend)
	users.DELETE("/:user_id/friends/:friend_id", c.removeFriend)
	users.GET("/:user_id/friends", c.listFriends)
	users.GET("/:user_id/friends/common/:other_id", c.commonFriends)
}

func (c *Controller) listUsers(ctx *gin.Context) {
	users, err := c.uc.All(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, err, "Failed to load users")
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUserList(users))
}

func (c *Controller) createUser(ctx *gin.Context) {
	req, ok := c.bindUser(ctx)
	if !ok {
		return
	}

	user, err := c.uc.Create(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err, "Failed to create user")
		return
	}

	ctx.JSON(http.StatusCreated, ConvertFromUser(user))
}

func (c *Controller) updateUser(ctx *gin.Context) {
	var req UpdateUserRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	user := req.ConvertToUser()
	if user.Birthday.After(time.Now()) {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Birthday must not be in the future",
			Code:  http.StatusBadRequest,
		})
		return
	}

	updated, err := c.uc.Update(ctx.Request.Context(), user)
	if err != nil {
		c.respondError(ctx, err, "Failed to update user")
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUser(updated))
}

func (c *Controller) deleteUser(ctx *gin.Context) {
	userID, ok := c.pathID(ctx, "user_id")
	if !ok {
		return
	}

	if err := c.uc.Delete(ctx.Request.Context(), userID); err != nil {
		c.respondError(ctx, err, "Failed to delete user")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) addFriend(ctx *gin.Context) {
	userID, ok := c.pathID(ctx, "user_id")
	if !ok {
		return
	}
	friendID, ok := c.pathID(ctx, "friend_id")
	if !ok {
		return
	}

	if err := c.uc.AddFriend(ctx.Request.Context(), userID, friendID); err != nil {
		c.respondError(ctx, err, "Failed to add friend")
		return
	}

	ctx.Status(http.StatusOK)
}

func (c *Controller) removeFriend(ctx *gin.Context) {
	userID, ok := c.pathID(ctx, "user_id")
	if !ok {
		return
	}
	friendID, ok := c.pathID(ctx, "friend_id")
	if !ok {
		return
	}

	if err := c.uc.RemoveFriend(ctx.Request.Context(), userID, friendID); err != nil {
		c.respondError(ctx, err, "Failed to remove friend")
		return
	}

	ctx.Status(http.StatusOK)
}

func (c *Controller) listFriends(ctx *gin.Context) {
	userID, ok := c.pathID(ctx, "user_id")
	if !ok {
		return
	}

	friends, err := c.uc.Friends(ctx.Request.Context(), userID)
	if err != nil {
		c.respondError(ctx, err, "Failed to load friends")
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUserList(friends))
}

func (c *Controller) commonFriends(ctx *gin.Context) {
	userID, ok := c.pathID(ctx, "user_id")
	if !ok {
		return
	}
	otherID, ok := c.pathID(ctx, "other_id")
	if !ok {
		return
	}

	common, err := c.uc.CommonFriends(ctx.Request.Context(), userID, otherID)
	if err != nil {
		c.respondError(ctx, err, "Failed to load common friends")
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUserList(common))
}

func (c *Controller) bindUser(ctx *gin.Context) (model.User, bool) {
	var req CreateUserRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return model.User{}, false
	}

	user := req.ConvertToUser()
	if user.Birthday.After(time.Now()) {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Birthday must not be in the future",
			Code:  http.StatusBadRequest,
		})
		return model.User{}, false
	}
	return user, true
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
