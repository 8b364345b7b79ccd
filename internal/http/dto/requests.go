package dto

// Wizard

type SubmitMessageRequest struct {
	Text string `json:"text"`
}

// Campaigns

type UpdateCampaignRequest struct {
	Name           *string  `json:"name,omitempty"`
	Advertiser     *string  `json:"advertiser,omitempty"`
	Budget         *float64 `json:"budget,omitempty"`
	StartDate      *string  `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate        *string  `json:"end_date,omitempty"`
	Objective      *string  `json:"objective,omitempty"`
	Platforms      []string `json:"platforms,omitempty"`
	TargetAudience *string  `json:"target_audience,omitempty"`
	Status         *string  `json:"status,omitempty"`
	Progress       *int     `json:"progress,omitempty"`
}

// Creative studio

type UpdateAssetRequest struct {
	Headline    *string `json:"headline,omitempty"`
	Description *string `json:"description,omitempty"`
	CTA         *string `json:"cta,omitempty"`
	Status      *string `json:"status,omitempty"`
}
