package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/dashboard/internal/application/usecase/analytics"
	"github.com/finance-tracker/dashboard/internal/application/usecase/expense"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense and expense analytics endpoints.
type ExpenseController struct {
	listUseCase       *expense.ListExpensesUseCase
	createUseCase     *expense.CreateExpenseUseCase
	getUseCase        *expense.GetExpenseUseCase
	updateUseCase     *expense.UpdateExpenseUseCase
	deleteUseCase     *expense.DeleteExpenseUseCase
	comparisonUseCase *analytics.GetExpenseComparisonUseCase
	breakdownUseCase  *analytics.GetExpenseBreakdownUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	listUseCase *expense.ListExpensesUseCase,
	createUseCase *expense.CreateExpenseUseCase,
	getUseCase *expense.GetExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	comparisonUseCase *analytics.GetExpenseComparisonUseCase,
	breakdownUseCase *analytics.GetExpenseBreakdownUseCase,
) *ExpenseController {
	return &ExpenseController{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		comparisonUseCase: comparisonUseCase,
		breakdownUseCase:  breakdownUseCase,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), expense.ListExpensesInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to retrieve expenses",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output.Expenses))
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingExpenseFields))
		return
	}

	input := expense.CreateExpenseInput{
		UserID:   userID,
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
	}

	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeMissingExpenseFields))
		return
	}
	if date != nil {
		input.Date = *date
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ExpenseEnvelope{Expense: dto.ToExpenseResponse(output.Expense)})
}

// Get handles GET /expenses/:id requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(ctx, "expense")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), expense.GetExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ExpenseEnvelope{Expense: dto.ToExpenseResponse(output.Expense)})
}

// Update handles PUT /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(ctx, "expense")
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingExpenseFields))
		return
	}

	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeMissingExpenseFields))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), expense.UpdateExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
		Title:     req.Title,
		Amount:    req.Amount,
		Category:  req.Category,
		Date:      date,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ExpenseEnvelope{Expense: dto.ToExpenseResponse(output.Expense)})
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(ctx, "expense")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Comparison handles GET /expenses/analytics/comparison?filter= requests.
func (c *ExpenseController) Comparison(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.comparisonUseCase.Execute(ctx.Request.Context(), analytics.GetExpenseComparisonInput{
		UserID: userID,
		Filter: ctx.Query("filter"),
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToComparisonResponse(output))
}

// Breakdown handles GET /expenses/analytics/breakdown?filter= requests.
func (c *ExpenseController) Breakdown(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), analytics.GetExpenseBreakdownInput{
		UserID: userID,
		Filter: ctx.Query("filter"),
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBreakdownResponse(output))
}

// handleExpenseError handles expense errors and returns appropriate HTTP responses.
func (c *ExpenseController) handleExpenseError(ctx *gin.Context, err error) {
	var expenseErr *domainerror.ExpenseError
	if errors.As(err, &expenseErr) {
		ctx.JSON(c.getStatusCodeForExpenseError(expenseErr.Code), dto.ErrorResponse{
			Message: expenseErr.Message,
			Code:    string(expenseErr.Code),
		})
		return
	}

	internalError(ctx)
}

// getStatusCodeForExpenseError maps expense error codes to HTTP status codes.
func (c *ExpenseController) getStatusCodeForExpenseError(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedExpenseAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidExpenseAmount,
		domainerror.ErrCodeMissingExpenseFields,
		domainerror.ErrCodeInvalidAnalyticsFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
