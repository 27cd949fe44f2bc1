package sheets

// AppendRowInput mirrors the column layout of the buyer-facing spreadsheet.
type AppendRowInput struct {
	LeadID       string `json:"lead_id"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Tier         string `json:"tier"`
	Score        int    `json:"score"`
	EstimateLow  int    `json:"estimate_low"`
	EstimateHigh int    `json:"estimate_high"`
	IncidentType string `json:"incident_type"`
	InjuryType   string `json:"injury_type"`
	CreatedAt    string `json:"created_at"`
}

type appendRowResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
