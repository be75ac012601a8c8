package model

// All returns every model managed by AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&PasswordResetTokenModel{},
		&AccountModel{},
		&TransactionModel{},
		&BillModel{},
		&ExpenseModel{},
		&GoalModel{},
	}
}
