package request

import "rental-backoffice/internal/usecase/commands"

type CreateGuestRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"max=50"`
	Nationality string `json:"nationality" binding:"max=100"`
	Notes       string `json:"notes" binding:"max=2000"`
}

func (r CreateGuestRequest) ToInput() commands.CreateGuestInput {
	return commands.CreateGuestInput(r)
}

type UpdateGuestRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Nationality *string `json:"nationality" binding:"omitempty,max=100"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
	Blacklisted *bool   `json:"blacklisted"`
}

func (r UpdateGuestRequest) ToInput() commands.UpdateGuestInput {
	return commands.UpdateGuestInput(r)
}
