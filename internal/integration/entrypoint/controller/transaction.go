package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/usecase/analytics"
	"github.com/finance-tracker/dashboard/internal/application/usecase/transaction"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase    *transaction.ListTransactionsUseCase
	createUseCase  *transaction.CreateTransactionUseCase
	getUseCase     *transaction.GetTransactionUseCase
	updateUseCase  *transaction.UpdateTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
	summaryUseCase *analytics.GetTransactionSummaryUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	summaryUseCase *analytics.GetTransactionSummaryUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		summaryUseCase: summaryUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to retrieve transactions",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input := transaction.CreateTransactionInput{
		UserID: userID,
		Title:  req.Title,
		Shop:   req.Shop,
		Method: req.Method,
		Type:   entity.TransactionType(req.Type),
		Amount: req.Amount,
	}

	if req.Account != "" {
		accountID, err := uuid.Parse(req.Account)
		if err != nil {
			badRequest(ctx, "Invalid account ID format", string(domainerror.ErrCodeTransactionAccountNotFound))
			return
		}
		input.AccountID = accountID
	}

	if req.Date != "" {
		date, err := dto.ParseDate(req.Date)
		if err != nil {
			badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidTransactionDate))
			return
		}
		input.Date = date
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	accountResponse := dto.ToAccountResponse(output.Account)
	ctx.JSON(http.StatusCreated, dto.NewTransactionResponse{
		NewTransaction: dto.ToTransactionResponse(output.Transaction),
		Account:        &accountResponse,
	})
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionEnvelope{Transaction: dto.ToTransactionResponse(output.Transaction)})
}

// Update handles PUT /transactions/:id requests. The updated transaction is the root of the reply.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Title:         req.Title,
		Shop:          req.Shop,
		Method:        req.Method,
		Amount:        req.Amount,
	}

	if req.Account != nil {
		accountID, err := uuid.Parse(*req.Account)
		if err != nil {
			badRequest(ctx, "Invalid account ID format", string(domainerror.ErrCodeTransactionAccountNotFound))
			return
		}
		input.AccountID = &accountID
	}

	if req.Type != nil {
		t := entity.TransactionType(*req.Type)
		input.Type = &t
	}

	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidTransactionDate))
		return
	}
	input.Date = date

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Summary handles GET /transactions/summary requests. The summary is the root of the reply.
func (c *TransactionController) Summary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	summary, err := c.summaryUseCase.Execute(ctx.Request.Context(), analytics.GetTransactionSummaryInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to compute transaction summary",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionSummaryResponse(summary))
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(c.getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Message: txnErr.Message,
			Code:    string(txnErr.Code),
		})
		return
	}

	internalError(ctx)
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound, domainerror.ErrCodeTransactionAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedTransaction:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
