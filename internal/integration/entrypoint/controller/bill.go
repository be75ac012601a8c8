package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/dashboard/internal/application/usecase/bill"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
)

// BillController handles bill endpoints. Create and update accept multipart forms with a logo file.
type BillController struct {
	listUseCase   *bill.ListBillsUseCase
	createUseCase *bill.CreateBillUseCase
	getUseCase    *bill.GetBillUseCase
	updateUseCase *bill.UpdateBillUseCase
	deleteUseCase *bill.DeleteBillUseCase
}

// NewBillController creates a new bill controller instance.
func NewBillController(
	listUseCase *bill.ListBillsUseCase,
	createUseCase *bill.CreateBillUseCase,
	getUseCase *bill.GetBillUseCase,
	updateUseCase *bill.UpdateBillUseCase,
	deleteUseCase *bill.DeleteBillUseCase,
) *BillController {
	return &BillController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /bills requests.
func (c *BillController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), bill.ListBillsInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to retrieve bills",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillListResponse(output.Bills))
}

// Create handles POST /bills requests.
func (c *BillController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := bill.CreateBillInput{
		UserID:      userID,
		Vendor:      ctx.PostForm(dto.BillFieldVendor),
		Plan:        ctx.PostForm(dto.BillFieldPlan),
		Description: ctx.PostForm(dto.BillFieldDescription),
	}

	amount, err := dto.ParseAmount(ctx.PostForm(dto.BillFieldAmount))
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidBillAmount))
		return
	}
	input.Amount = amount

	dueDate, err := dto.ParseDate(ctx.PostForm(dto.BillFieldDueDate))
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidDueDate))
		return
	}
	input.DueDate = dueDate

	lastCharge, err := parseOptionalFormDate(ctx, dto.BillFieldLastChargeDate)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeMissingBillFields))
		return
	}
	input.LastChargeDate = lastCharge

	logo, closer, err := formFile(ctx, dto.BillFieldLogo)
	if err != nil {
		badRequest(ctx, "Invalid logo upload: "+err.Error(), string(domainerror.ErrCodeInvalidLogo))
		return
	}
	defer closeUpload(closer)
	input.Logo = logo

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.BillEnvelope{Bill: dto.ToBillResponse(output.Bill)})
}

// Get handles GET /bills/:id requests.
func (c *BillController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	billID, ok := parseIDParam(ctx, "bill")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), bill.GetBillInput{
		BillID: billID,
		UserID: userID,
	})
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BillEnvelope{Bill: dto.ToBillResponse(output.Bill)})
}

// Update handles PUT /bills/:id requests. Fields absent from the form are unchanged.
func (c *BillController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	billID, ok := parseIDParam(ctx, "bill")
	if !ok {
		return
	}

	input := bill.UpdateBillInput{
		BillID:      billID,
		UserID:      userID,
		Vendor:      optionalFormValue(ctx, dto.BillFieldVendor),
		Plan:        optionalFormValue(ctx, dto.BillFieldPlan),
		Description: optionalFormValue(ctx, dto.BillFieldDescription),
	}

	if raw := optionalFormValue(ctx, dto.BillFieldAmount); raw != nil {
		amount, err := dto.ParseAmount(*raw)
		if err != nil {
			badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidBillAmount))
			return
		}
		input.Amount = &amount
	}

	dueDate, err := parseOptionalFormDate(ctx, dto.BillFieldDueDate)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidDueDate))
		return
	}
	input.DueDate = dueDate

	lastCharge, err := parseOptionalFormDate(ctx, dto.BillFieldLastChargeDate)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeMissingBillFields))
		return
	}
	input.LastChargeDate = lastCharge

	logo, closer, err := formFile(ctx, dto.BillFieldLogo)
	if err != nil {
		badRequest(ctx, "Invalid logo upload: "+err.Error(), string(domainerror.ErrCodeInvalidLogo))
		return
	}
	defer closeUpload(closer)
	input.Logo = logo

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BillEnvelope{Bill: dto.ToBillResponse(output.Bill)})
}

// Delete handles DELETE /bills/:id requests.
func (c *BillController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	billID, ok := parseIDParam(ctx, "bill")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), bill.DeleteBillInput{
		BillID: billID,
		UserID: userID,
	})
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleBillError handles bill errors and returns appropriate HTTP responses.
func (c *BillController) handleBillError(ctx *gin.Context, err error) {
	var billErr *domainerror.BillError
	if errors.As(err, &billErr) {
		ctx.JSON(c.getStatusCodeForBillError(billErr.Code), dto.ErrorResponse{
			Message: billErr.Message,
			Code:    string(billErr.Code),
		})
		return
	}

	internalError(ctx)
}

// getStatusCodeForBillError maps bill error codes to HTTP status codes.
func (c *BillController) getStatusCodeForBillError(code domainerror.BillErrorCode) int {
	switch code {
	case domainerror.ErrCodeBillNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedBillAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidBillAmount,
		domainerror.ErrCodeInvalidDueDate,
		domainerror.ErrCodeInvalidLogo,
		domainerror.ErrCodeMissingBillFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseOptionalFormDate parses a date field, returning nil when it is absent or blank.
func parseOptionalFormDate(ctx *gin.Context, key string) (*time.Time, error) {
	raw := optionalFormValue(ctx, key)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	return dto.ParseOptionalDate(raw)
}

func closeUpload(closer io.Closer) {
	if err := closer.Close(); err != nil {
		slog.Warn("Failed to close uploaded file", "error", err)
	}
}
