package income

import "github.com/shopspring/decimal"

type CreateIncomeRequest struct {
	IncomeDate        string          `json:"income_date" binding:"required"`
	Description       string          `json:"description" binding:"required"`
	Category          string          `json:"category" binding:"required"`
	Amount            decimal.Decimal `json:"amount"`
	ContractImagePath *string         `json:"contract_image_path"`
}

type UpdateIncomeRequest struct {
	IncomeDate        *string          `json:"income_date"`
	Description       *string          `json:"description"`
	Category          *string          `json:"category"`
	Amount            *decimal.Decimal `json:"amount"`
	ContractImagePath *string          `json:"contract_image_path"`
}

type IncomeResponse struct {
	ID                uint            `json:"id"`
	IncomeDate        string          `json:"income_date"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	ContractImagePath *string         `json:"contract_image_path"`
}
