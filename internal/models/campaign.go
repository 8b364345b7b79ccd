package models

import "time"

// Brand is the closed set of advertisers the platform serves.
type Brand string

const (
	BrandNike     Brand = "Nike"
	BrandCocaCola Brand = "Coca-Cola"
	BrandSamsung  Brand = "Samsung"
)

var AllBrands = []Brand{BrandNike, BrandCocaCola, BrandSamsung}

func IsValidBrand(b string) bool {
	for _, known := range AllBrands {
		if string(known) == b {
			return true
		}
	}
	return false
}

// BrandGuidelines feed both the meta endpoint and the generation prompts.
var BrandGuidelines = map[Brand]string{
	BrandNike:     "Use active, inspirational language. 'Just Do It' tone. High contrast visuals.",
	BrandCocaCola: "Happiness, sharing, refreshment. Red and White dominant colors.",
	BrandSamsung:  "Innovation, premium technology, sleek and modern phrasing.",
}

// Platform is a retail ad-placement destination.
type Platform string

const (
	PlatformAmazonDSP      Platform = "Amazon DSP"
	PlatformWalmartConnect Platform = "Walmart Connect"
	PlatformInstacart      Platform = "Instacart"
	PlatformTargetRoundel  Platform = "Target Roundel"
)

var AllPlatforms = []Platform{
	PlatformAmazonDSP,
	PlatformWalmartConnect,
	PlatformInstacart,
	PlatformTargetRoundel,
}

func IsValidPlatform(p string) bool {
	for _, known := range AllPlatforms {
		if string(known) == p {
			return true
		}
	}
	return false
}

var PlatformRules = map[Platform]string{
	PlatformAmazonDSP:      "No claims of 'Best Seller' allowed. Text overlay max 20%.",
	PlatformWalmartConnect: "Must emphasize value/savings. Clear product imagery on white background.",
	PlatformInstacart:      "Focus on utility and speed. Keep copy under 50 chars.",
	PlatformTargetRoundel:  "Lifestyle focus. Joyful and inclusive imagery.",
}

// Campaign statuses
const (
	CampaignStatusDraft           = "Draft"
	CampaignStatusPendingApproval = "Pending Approval"
	CampaignStatusApproved        = "Approved"
	CampaignStatusLive            = "Live"
	CampaignStatusPaused          = "Paused"
)

// Valid status transitions: from -> []to
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusDraft:           {CampaignStatusPendingApproval},
	CampaignStatusPendingApproval: {CampaignStatusDraft, CampaignStatusApproved},
	CampaignStatusApproved:        {CampaignStatusLive},
	CampaignStatusLive:            {CampaignStatusPaused},
	CampaignStatusPaused:          {CampaignStatusLive},
}

func IsValidTransition(from, to string) bool {
	allowed, ok := ValidCampaignTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Workflow actions exposed by the approval screen.
const (
	WorkflowActionSubmit  = "submit"
	WorkflowActionReject  = "reject"
	WorkflowActionApprove = "approve"
	WorkflowActionPublish = "publish"
	WorkflowActionPause   = "pause"
	WorkflowActionResume  = "resume"
)

// WorkflowEdge binds an action name to the single transition it performs.
type WorkflowEdge struct {
	From string
	To   string
}

var WorkflowActions = map[string]WorkflowEdge{
	WorkflowActionSubmit:  {From: CampaignStatusDraft, To: CampaignStatusPendingApproval},
	WorkflowActionReject:  {From: CampaignStatusPendingApproval, To: CampaignStatusDraft},
	WorkflowActionApprove: {From: CampaignStatusPendingApproval, To: CampaignStatusApproved},
	WorkflowActionPublish: {From: CampaignStatusApproved, To: CampaignStatusLive},
	WorkflowActionPause:   {From: CampaignStatusLive, To: CampaignStatusPaused},
	WorkflowActionResume:  {From: CampaignStatusPaused, To: CampaignStatusLive},
}

// AllowedActions lists the workflow actions enabled for a status, in a fixed order.
func AllowedActions(status string) []string {
	order := []string{
		WorkflowActionSubmit, WorkflowActionReject, WorkflowActionApprove,
		WorkflowActionPublish, WorkflowActionPause, WorkflowActionResume,
	}
	var actions []string
	for _, a := range order {
		if WorkflowActions[a].From == status {
			actions = append(actions, a)
		}
	}
	return actions
}

// WorkflowStep is one entry of the fixed approval timeline.
type WorkflowStep struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

var WorkflowSteps = []WorkflowStep{
	{Name: "Draft Creation", Role: "Campaign Manager"},
	{Name: "AI Generation", Role: "System"},
	{Name: "Approval Review", Role: "Brand Manager"},
	{Name: "Ready to Launch", Role: "System"},
	{Name: "Campaign Live", Role: "Ad Platform"},
}

// WorkflowStepIndex maps a status onto the timeline. Paused shares the
// terminal step with Live: the dashboard has always rendered a paused
// campaign at "Campaign Live", and stakeholders chose to keep that rather
// than add a sixth display state.
func WorkflowStepIndex(status string) int {
	switch status {
	case CampaignStatusDraft:
		return 0
	case CampaignStatusPendingApproval:
		return 2
	case CampaignStatusApproved:
		return 3
	case CampaignStatusLive:
		return 4
	case CampaignStatusPaused:
		return 4
	default:
		return 0
	}
}

type Campaign struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Advertiser     Brand      `json:"advertiser"`
	Budget         float64    `json:"budget"`
	StartDate      string     `json:"start_date"`         // YYYY-MM-DD
	EndDate        string     `json:"end_date,omitempty"` // may be unset
	Objective      string     `json:"objective"`
	Platforms      []Platform `json:"platforms"`
	TargetAudience string     `json:"target_audience"`
	Status         string     `json:"status"`
	Progress       int        `json:"progress"` // 0-100, advisory, not derived from status
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
