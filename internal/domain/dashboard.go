package domain

// DashboardOverview é o painel geral do workspace. Os valores vêm do
// resolvedor de métricas e sempre estão dentro das faixas configuradas,
// mesmo quando o banco está indisponível.
type DashboardOverview struct {
	TotalActivities int64   `json:"total_activities"`
	EngagementRate  float64 `json:"engagement_rate"`
	TopChannel      string  `json:"top_channel"`
}

type MarketingDashboard struct {
	CampaignActivities int64   `json:"campaign_activities"`
	EngagementRate     float64 `json:"engagement_rate"`
	BestChannel        string  `json:"best_channel"`
}

type SupportDashboard struct {
	TicketActivities int64   `json:"ticket_activities"`
	ResolutionRate   float64 `json:"resolution_rate"`
}

type EscrowDashboard struct {
	EscrowActivities int64   `json:"escrow_activities"`
	CompletionRate   float64 `json:"completion_rate"`
}

type LogActivityRequest struct {
	Category string `json:"category"`
	Source   string `json:"source"`
}
