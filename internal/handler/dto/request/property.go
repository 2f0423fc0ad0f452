package request

import "rental-backoffice/internal/usecase/commands"

type CreatePropertyRequest struct {
	Code    string `json:"code" binding:"required,max=32"`
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"max=500"`
}

func (r CreatePropertyRequest) ToInput() commands.CreatePropertyInput {
	return commands.CreatePropertyInput(r)
}

type SetPropertyStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type AddUnitRequest struct {
	UnitCode string `json:"unit_code" binding:"required,max=32"`
	Name     string `json:"name" binding:"max=200"`
}

func (r AddUnitRequest) ToInput() commands.AddUnitInput {
	return commands.AddUnitInput(r)
}
