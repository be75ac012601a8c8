package model

import "testing"

func TestGoal_Progress(t *testing.T) {
	tests := []struct {
		name    string
		target  float64
		current float64
		want    float64
	}{
		{name: "ten percent", target: 500000, current: 50000, want: 10},
		{name: "clamped above", target: 100, current: 250, want: 100},
		{name: "clamped below", target: 100, current: -5, want: 0},
		{name: "zero target", target: 0, current: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{TargetAmount: tt.target, CurrentAmount: tt.current}
			if got := g.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	for _, name := range []string{"daily", "weekly", "monthly", "yearly"} {
		if f, err := ParseFilter(name); err != nil || string(f) != name {
			t.Errorf("ParseFilter(%q) = %q, %v", name, f, err)
		}
	}
	if _, err := ParseFilter("hourly"); err == nil {
		t.Error("ParseFilter(hourly) error = nil, want error")
	}
}

func TestTransaction_Signed(t *testing.T) {
	income := Transaction{Type: TransactionIncome, Amount: 20}
	expense := Transaction{Type: TransactionExpense, Amount: 20}
	if income.Signed() != 20 || expense.Signed() != -20 {
		t.Errorf("Signed() = %v, %v; want 20, -20", income.Signed(), expense.Signed())
	}
}
