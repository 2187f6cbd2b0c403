package domain

import (
	"slices"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusSending   CampaignStatus = "sending"
	CampaignStatusSent      CampaignStatus = "sent"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

var campaignStatuses = []CampaignStatus{
	CampaignStatusDraft,
	CampaignStatusScheduled,
	CampaignStatusSending,
	CampaignStatusSent,
	CampaignStatusCancelled,
}

// IsValid verifica se o status pertence ao vocabulário conhecido.
// Não há máquina de estados: qualquer status válido pode sobrescrever outro.
func (s CampaignStatus) IsValid() bool {
	return slices.Contains(campaignStatuses, s)
}

type Campaign struct {
	ID              string         `json:"id"`
	WorkspaceID     string         `json:"workspace_id"`
	Name            string         `json:"name"`
	Subject         string         `json:"subject"`
	Body            string         `json:"body"`
	RecipientListID string         `json:"recipient_list_id"`
	Status          CampaignStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type CreateCampaignRequest struct {
	Name            string `json:"name"`
	Subject         string `json:"subject"`
	Body            string `json:"body"`
	RecipientListID string `json:"recipient_list_id"`
}

type CampaignFilters struct {
	Status    CampaignStatus
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     uint64
	Offset    uint64
}

type CampaignPage struct {
	Campaigns []*Campaign `json:"campaigns"`
	Total     int64       `json:"total"`
	Limit     uint64      `json:"limit"`
	Offset    uint64      `json:"offset"`
}
