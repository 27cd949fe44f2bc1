package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type LeadEmailData struct {
	LeadID       string
	Phone        string
	Email        string
	Tier         string
	Score        int
	EstimateLow  int
	EstimateHigh int
	IncidentType string
	InjuryType   string
}
