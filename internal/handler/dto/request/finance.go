package request

import "rental-backoffice/internal/usecase/commands"

type UpdateFinanceRecordRequest struct {
	Status        string  `json:"status" binding:"required,oneof=pending paid"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,max=50"`
}

func (r UpdateFinanceRecordRequest) ToInput() commands.SettleFinanceInput {
	return commands.SettleFinanceInput(r)
}
