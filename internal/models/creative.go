package models

// Creative asset types
const (
	AssetTypeBanner           = "Banner"
	AssetTypeSponsoredProduct = "Sponsored Product"
	AssetTypeVideo            = "Video"
)

// Creative asset statuses
const (
	AssetStatusGenerated = "Generated"
	AssetStatusApproved  = "Approved"
	AssetStatusRejected  = "Rejected"
)

// CreativeAsset is one generated ad unit for a single platform. The campaign
// reference is weak: campaigns are never deleted, so no cascade exists.
type CreativeAsset struct {
	ID               string   `json:"id"`
	CampaignID       string   `json:"campaign_id"`
	Platform         Platform `json:"platform"`
	Type             string   `json:"type"`
	Headline         string   `json:"headline"`
	Description      string   `json:"description"`
	CTA              string   `json:"cta"`
	ImageURL         string   `json:"image_url"`
	ComplianceScore  int      `json:"compliance_score"` // 0-100
	ComplianceIssues []string `json:"compliance_issues"`
	Status           string   `json:"status"`
}
