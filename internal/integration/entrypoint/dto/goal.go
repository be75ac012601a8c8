package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline"`
}

// UpdateGoalRequest represents the request body for goal update. Omitted fields are unchanged.
type UpdateGoalRequest struct {
	Title         *string          `json:"title,omitempty"`
	TargetAmount  *decimal.Decimal `json:"targetAmount,omitempty"`
	CurrentAmount *decimal.Decimal `json:"currentAmount,omitempty"`
	Deadline      *string          `json:"deadline,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID            string    `json:"_id"`
	User          string    `json:"user"`
	Title         string    `json:"title"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Deadline      string    `json:"deadline"`
	Progress      float64   `json:"progress"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GoalEnvelope wraps a goal under the "goal" key.
type GoalEnvelope struct {
	Goal GoalResponse `json:"goal"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID.String(),
		User:          g.UserID.String(),
		Title:         g.Title,
		TargetAmount:  money(g.TargetAmount),
		CurrentAmount: money(g.CurrentAmount),
		Deadline:      formatDate(g.Deadline),
		Progress:      g.Progress(),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// ToGoalListResponse converts a list of goals to GoalListResponse.
func ToGoalListResponse(goals []*entity.Goal) GoalListResponse {
	items := make([]GoalResponse, len(goals))
	for i, g := range goals {
		items[i] = ToGoalResponse(g)
	}
	return GoalListResponse{Goals: items}
}
