package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bancohq/banco-api/internal/apperr"
	"github.com/bancohq/banco-api/internal/middleware"
	"github.com/bancohq/banco-api/internal/models"
)

// AuthServicer defines the operations used by AuthHandler.
type AuthServicer interface {
	Register(username, password, email string) (*models.UserView, error)
	Login(username, password string) (string, *models.UserView, error)
}

type AuthHandler struct {
	auth AuthServicer
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,alphanum"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Message string           `json:"message"`
	User    *models.UserView `json:"user"`
}

type LoginResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    *models.UserView `json:"user"`
}

func NewAuthHandler(auth AuthServicer) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.auth.Register(req.Username, req.Password, req.Email)
	if err != nil {
		respondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	token, user, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		// Any credential failure is a 401; internal failures stay generic.
		if _, ok := apperr.KindOf(err); ok {
			middleware.RespondWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// VerifyToken echoes the authenticated identity. Reaching this handler means
// the auth middleware already accepted the token.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	username, _ := middleware.GetUsername(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Valid token",
		"user": gin.H{
			"userId":   userID,
			"username": username,
		},
	})
}
