package movement

import (
	"time"

	"github.com/google/uuid"

	"github.com/ebenezer-app/ebenezer/internal/movement"
)

type movementResponse struct {
	ID            uuid.UUID              `json:"id"`
	Type          movement.Type          `json:"tipo"`
	Sector        movement.Sector        `json:"settore"`
	PaymentMethod movement.PaymentMethod `json:"metodo_pagamento"`
	Category      movement.Category      `json:"categoria"`
	Description   string                 `json:"descrizione"`
	Amount        int64                  `json:"importo"`
	Formatted     string                 `json:"importo_formattato"`
	Date          string                 `json:"data"`
	CreatedAt     time.Time              `json:"created_at"`
}

func toResponse(m *movement.Movement) movementResponse {
	return movementResponse{
		ID:            m.ID,
		Type:          m.Type,
		Sector:        m.Sector,
		PaymentMethod: m.PaymentMethod,
		Category:      m.Category,
		Description:   m.Description,
		Amount:        m.Amount,
		Formatted:     movement.FormatAmount(m.Amount),
		Date:          m.Date.Format(time.DateOnly),
		CreatedAt:     m.CreatedAt,
	}
}

func toResponseList(ms []*movement.Movement) []movementResponse {
	resp := make([]movementResponse, len(ms))
	for i, m := range ms {
		resp[i] = toResponse(m)
	}

	return resp
}
