package dto

import (
	"time"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// Multipart field names of the bill form.
const (
	BillFieldVendor         = "vendor"
	BillFieldPlan           = "plan"
	BillFieldDescription    = "description"
	BillFieldDueDate        = "dueDate"
	BillFieldLastChargeDate = "lastChargeDate"
	BillFieldAmount         = "amount"
	BillFieldLogo           = "logo"
)

// BillResponse represents a single bill in API responses.
type BillResponse struct {
	ID             string    `json:"_id"`
	User           string    `json:"user"`
	Vendor         string    `json:"vendor"`
	Plan           string    `json:"plan"`
	Description    string    `json:"description"`
	DueDate        string    `json:"dueDate"`
	LastChargeDate *string   `json:"lastChargeDate"`
	Amount         float64   `json:"amount"`
	Logo           string    `json:"logo"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BillEnvelope wraps a bill under the "bill" key.
type BillEnvelope struct {
	Bill BillResponse `json:"bill"`
}

// BillListResponse represents the response for listing bills.
type BillListResponse struct {
	Bills []BillResponse `json:"bills"`
}

// ToBillResponse converts a domain Bill entity to a BillResponse DTO.
func ToBillResponse(b *entity.Bill) BillResponse {
	return BillResponse{
		ID:             b.ID.String(),
		User:           b.UserID.String(),
		Vendor:         b.Vendor,
		Plan:           b.Plan,
		Description:    b.Description,
		DueDate:        formatDate(b.DueDate),
		LastChargeDate: formatOptionalDate(b.LastChargeDate),
		Amount:         money(b.Amount),
		Logo:           b.Logo,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// ToBillListResponse converts a list of bills to BillListResponse.
func ToBillListResponse(bills []*entity.Bill) BillListResponse {
	items := make([]BillResponse, len(bills))
	for i, b := range bills {
		items[i] = ToBillResponse(b)
	}
	return BillListResponse{Bills: items}
}
