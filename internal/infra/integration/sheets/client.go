package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claimconnect/leadcore/internal/entity"
)

// Client pushes delivered leads to a buyer's spreadsheet through their
// configured Apps Script webhook. Each client account carries its own URL;
// there is no global spreadsheet.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) PushLead(ctx context.Context, sheetURL string, lead *entity.Lead) error {
	if sheetURL == "" {
		return fmt.Errorf("sheets: no destination configured")
	}

	input := AppendRowInput{
		LeadID:       lead.ID,
		Phone:        lead.Phone,
		Email:        lead.Email,
		Tier:         string(lead.Tier),
		Score:        lead.Score,
		EstimateLow:  lead.EstimateLow,
		EstimateHigh: lead.EstimateHigh,
		IncidentType: string(lead.Answers.IncidentType),
		InjuryType:   string(lead.Answers.InjuryType),
		CreatedAt:    lead.CreatedAt.Format(time.RFC3339),
	}

	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("sheets: marshal row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sheetURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sheets: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets: push lead: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sheets: push rejected with status %d: %s", resp.StatusCode, raw)
	}

	var out appendRowResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Error != "" {
		return fmt.Errorf("sheets: push failed: %s", out.Error)
	}

	return nil
}
