package domain

import (
	"slices"
	"time"
)

type EscrowStatus string

const (
	EscrowStatusPending   EscrowStatus = "pending"
	EscrowStatusActive    EscrowStatus = "active"
	EscrowStatusDelivered EscrowStatus = "delivered"
	EscrowStatusCompleted EscrowStatus = "completed"
	EscrowStatusDisputed  EscrowStatus = "disputed"
	EscrowStatusCancelled EscrowStatus = "cancelled"
)

var escrowStatuses = []EscrowStatus{
	EscrowStatusPending,
	EscrowStatusActive,
	EscrowStatusDelivered,
	EscrowStatusCompleted,
	EscrowStatusDisputed,
	EscrowStatusCancelled,
}

func (s EscrowStatus) IsValid() bool {
	return slices.Contains(escrowStatuses, s)
}

type EscrowTransaction struct {
	ID          string       `json:"id"`
	Reference   string       `json:"reference"`
	WorkspaceID string       `json:"workspace_id"`
	Title       string       `json:"title"`
	AmountCents int64        `json:"amount_cents"`
	Currency    string       `json:"currency"`
	Status      EscrowStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type CreateEscrowRequest struct {
	Title       string `json:"title"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type EscrowFilters struct {
	Status    EscrowStatus
	StartDate *time.Time
	EndDate   *time.Time
	Limit     uint64
	Offset    uint64
}

type EscrowPage struct {
	Transactions []*EscrowTransaction `json:"transactions"`
	Total        int64                `json:"total"`
	Limit        uint64               `json:"limit"`
	Offset       uint64               `json:"offset"`
}
