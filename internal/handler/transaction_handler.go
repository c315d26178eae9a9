package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/middleware"
	"github.com/bancohq/banco-api/internal/models"
)

const maxStatementLimit = 100

// Transferer defines the write-side operation used by TransactionHandler.
type Transferer interface {
	ExecuteTransfer(senderID, beneficiaryID string, amount decimal.Decimal, description string) (*models.TransferResult, error)
}

// StatementQuerier defines the read-side operations used by TransactionHandler.
type StatementQuerier interface {
	GetStatement(userID string, limit int) (*models.Statement, error)
	GetTransactionByID(transactionID, userID string) (*models.TransactionView, error)
	GetAllTransactions() []models.TransactionView
	GetStats(userID string) (*models.StatementUser, *models.Stats, error)
}

type TransactionHandler struct {
	transfers Transferer
	queries   StatementQuerier
}

type TransferRequest struct {
	BeneficiaryID string          `json:"beneficiaryId" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description" validate:"max=255"`
}

type TransferResponse struct {
	Message string `json:"message"`
	*models.TransferResult
}

type StatementResponse struct {
	Message string `json:"message"`
	*models.Statement
}

type TransactionResponse struct {
	Message     string                  `json:"message"`
	Transaction *models.TransactionView `json:"transaction"`
}

type ListTransactionsResponse struct {
	Message      string                   `json:"message"`
	Transactions []models.TransactionView `json:"transactions"`
	Total        int                      `json:"total"`
}

type StatsResponse struct {
	Message    string                `json:"message"`
	User       *models.StatementUser `json:"user"`
	Statistics *models.Stats         `json:"statistics"`
}

func NewTransactionHandler(transfers Transferer, queries StatementQuerier) *TransactionHandler {
	return &TransactionHandler{transfers: transfers, queries: queries}
}

func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	senderID, _ := middleware.GetUserID(c)

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.transfers.ExecuteTransfer(senderID, req.BeneficiaryID, req.Amount, req.Description)
	if err != nil {
		respondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransferResponse{
		Message:        "Transfer completed successfully",
		TransferResult: result,
	})
}

func (h *TransactionHandler) GetStatement(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > maxStatementLimit {
		middleware.RespondWithError(c, http.StatusBadRequest, "Limit must be a number between 1 and 100")
		return
	}

	statement, err := h.queries.GetStatement(userID, limit)
	if err != nil {
		respondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatementResponse{
		Message:   "Statement retrieved successfully",
		Statement: statement,
	})
}

func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetTransactionByID(c.Param("id"), userID)
	if err != nil {
		respondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{
		Message:     "Transaction found",
		Transaction: view,
	})
}

// GetAllTransactions is the administrative listing; routing gates it behind
// RequireAdmin.
func (h *TransactionHandler) GetAllTransactions(c *gin.Context) {
	views := h.queries.GetAllTransactions()
	c.JSON(http.StatusOK, ListTransactionsResponse{
		Message:      "Transactions retrieved",
		Transactions: views,
		Total:        len(views),
	})
}

func (h *TransactionHandler) GetStats(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, stats, err := h.queries.GetStats(userID)
	if err != nil {
		respondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		Message:    "Statistics calculated",
		User:       user,
		Statistics: stats,
	})
}
