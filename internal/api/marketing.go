package api

import "context"

// Campaign is a marketing campaign.
type Campaign struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Channel   string  `json:"channel,omitempty"`
	Budget    float64 `json:"budget,omitempty"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   string  `json:"end_date,omitempty"`
	Status    string  `json:"status,omitempty"`
}

// CampaignInput creates a campaign.
type CampaignInput struct {
	Name      string  `json:"name"`
	Channel   string  `json:"channel,omitempty"`
	Budget    float64 `json:"budget,omitempty"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   string  `json:"end_date,omitempty"`
}

const pathMarketing = APIPrefix + "/marketing"

// ListCampaigns fetches all marketing campaigns.
func (c *Client) ListCampaigns(ctx context.Context) (Page[Campaign], error) {
	return list[Campaign](ctx, c, pathMarketing+"/campaigns")
}

// CreateCampaign creates a marketing campaign.
func (c *Client) CreateCampaign(ctx context.Context, in CampaignInput) (Campaign, error) {
	return postObject[Campaign](ctx, c, pathMarketing+"/campaigns", in)
}
