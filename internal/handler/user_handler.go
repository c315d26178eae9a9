package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/middleware"
	"github.com/bancohq/banco-api/internal/models"
	"github.com/bancohq/banco-api/internal/service"
)

// UserServicer defines the operations used by UserHandler.
type UserServicer interface {
	GetAllUsers() []models.UserView
	GetUserByID(id string) (*models.UserView, error)
	UpdateUser(id string, req service.UpdateUserRequest) (*models.UserView, error)
	AddBeneficiary(userID, beneficiaryID string) (*models.UserView, error)
	RemoveBeneficiary(userID, beneficiaryID string) (*models.UserView, error)
	GetBalance(userID string) (decimal.Decimal, error)
}

type UserHandler struct {
	users UserServicer
}

type UpdateUserRequest struct {
	Email         *string   `json:"email" validate:"omitempty,email"`
	Beneficiaries *[]string `json:"beneficiaries"`
}

type AddBeneficiaryRequest struct {
	BeneficiaryID string `json:"beneficiaryId" validate:"required"`
}

type UserResponse struct {
	Message string           `json:"message"`
	User    *models.UserView `json:"user"`
}

type ListUsersResponse struct {
	Message string            `json:"message"`
	Users   []models.UserView `json:"users"`
	Total   int               `json:"total"`
}

type BalanceResponse struct {
	Message string          `json:"message"`
	Balance decimal.Decimal `json:"balance"`
}

func NewUserHandler(users UserServicer) *UserHandler {
	return &UserHandler{users: users}
}

// GetAllUsers is the administrative listing; routing gates it behind
// RequireAdmin.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users := h.users.GetAllUsers()
	c.JSON(http.StatusOK, ListUsersResponse{
		Message: "Users found",
		Users:   users,
		Total:   len(users),
	})
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.users.GetUserByID(c.Param("id"))
	if err != nil {
		respondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Message: "User found", User: user})
}

func (h *UserHandler) GetMyProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	user, err := h.users.GetUserByID(userID)
	if err != nil {
		respondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Message: "User profile", User: user})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	targetID := c.Param("id")
	if userID != targetID {
		middleware.RespondWithError(c, http.StatusForbidden, "Access denied. You can only update your own profile")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.users.UpdateUser(targetID, service.UpdateUserRequest{
		Email:         req.Email,
		Beneficiaries: req.Beneficiaries,
	})
	if err != nil {
		respondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Message: "User updated successfully", User: user})
}

func (h *UserHandler) AddBeneficiary(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req AddBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Beneficiary ID is required")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.users.AddBeneficiary(userID, req.BeneficiaryID)
	if err != nil {
		respondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Message: "Beneficiary added successfully", User: user})
}

func (h *UserHandler) RemoveBeneficiary(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	beneficiaryID := c.Param("beneficiaryId")

	user, err := h.users.RemoveBeneficiary(userID, beneficiaryID)
	if err != nil {
		respondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Message: "Beneficiary removed successfully", User: user})
}

func (h *UserHandler) GetBalance(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	balance, err := h.users.GetBalance(userID)
	if err != nil {
		respondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{
		Message: "Balance retrieved successfully",
		Balance: balance,
	})
}
