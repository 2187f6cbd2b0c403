package domain

import (
	"slices"
	"time"
)

type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusResolved TicketStatus = "resolved"
	TicketStatusClosed   TicketStatus = "closed"
)

var ticketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusPending,
	TicketStatusResolved,
	TicketStatusClosed,
}

func (s TicketStatus) IsValid() bool {
	return slices.Contains(ticketStatuses, s)
}

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

func (p TicketPriority) IsValid() bool {
	return slices.Contains([]TicketPriority{
		TicketPriorityLow,
		TicketPriorityNormal,
		TicketPriorityHigh,
		TicketPriorityUrgent,
	}, p)
}

type Ticket struct {
	ID          string         `json:"id"`
	Reference   string         `json:"reference"`
	WorkspaceID string         `json:"workspace_id"`
	Subject     string         `json:"subject"`
	Body        string         `json:"body"`
	Priority    TicketPriority `json:"priority"`
	Status      TicketStatus   `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type CreateTicketRequest struct {
	Subject  string         `json:"subject"`
	Body     string         `json:"body"`
	Priority TicketPriority `json:"priority"`
}

type TicketFilters struct {
	Status    TicketStatus
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     uint64
	Offset    uint64
}

type TicketPage struct {
	Tickets []*Ticket `json:"tickets"`
	Total   int64     `json:"total"`
	Limit   uint64    `json:"limit"`
	Offset  uint64    `json:"offset"`
}
