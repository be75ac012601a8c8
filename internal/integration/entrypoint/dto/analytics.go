package dto

import (
	"github.com/finance-tracker/dashboard/internal/application/usecase/analytics"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// DayTotalResponse is the spending of one day.
type DayTotalResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// PeriodResponse is the spending of one period of the comparison.
type PeriodResponse struct {
	Label string             `json:"label"`
	Start string             `json:"start"`
	End   string             `json:"end"`
	Total float64            `json:"total"`
	Days  []DayTotalResponse `json:"days,omitempty"`
}

// ComparisonResponse carries the periods under "data", oldest first.
type ComparisonResponse struct {
	Filter string           `json:"filter"`
	Data   []PeriodResponse `json:"data"`
}

// CategoryResponse is the spending of one category.
type CategoryResponse struct {
	Category   string            `json:"category"`
	Total      float64           `json:"total"`
	Count      int               `json:"count"`
	Percentage float64           `json:"percentage"`
	Items      []ExpenseResponse `json:"items"`
}

// BreakdownResponse carries the categories under "data", largest first.
type BreakdownResponse struct {
	Filter string             `json:"filter"`
	Start  string             `json:"start"`
	End    string             `json:"end"`
	Total  float64            `json:"total"`
	Data   []CategoryResponse `json:"data"`
}

// ToComparisonResponse converts the comparison output to its DTO.
func ToComparisonResponse(output *analytics.GetExpenseComparisonOutput) ComparisonResponse {
	periods := make([]PeriodResponse, len(output.Periods))
	for i, p := range output.Periods {
		periods[i] = toPeriodResponse(p)
	}
	return ComparisonResponse{
		Filter: string(output.Granularity),
		Data:   periods,
	}
}

// ToBreakdownResponse converts the breakdown output to its DTO.
func ToBreakdownResponse(output *analytics.GetExpenseBreakdownOutput) BreakdownResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryResponse{
			Category:   c.Category,
			Total:      money(c.Total),
			Count:      c.Count,
			Percentage: c.Percentage.InexactFloat64(),
			Items:      toExpenseResponses(c.Items),
		}
	}
	return BreakdownResponse{
		Filter: string(output.Granularity),
		Start:  formatDate(output.Start),
		End:    formatDate(output.End),
		Total:  money(output.Total),
		Data:   categories,
	}
}

func toPeriodResponse(p entity.PeriodTotal) PeriodResponse {
	var days []DayTotalResponse
	if len(p.Days) > 0 {
		days = make([]DayTotalResponse, len(p.Days))
		for i, d := range p.Days {
			days[i] = DayTotalResponse{Date: formatDate(d.Date), Total: money(d.Total)}
		}
	}
	return PeriodResponse{
		Label: p.Label,
		Start: formatDate(p.Start),
		End:   formatDate(p.End),
		Total: money(p.Total),
		Days:  days,
	}
}
