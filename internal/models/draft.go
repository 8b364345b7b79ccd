package models

import "time"

// CampaignDraft is the partial campaign the wizard accumulates across turns.
// Every recognized field is optional; a nil pointer (or nil slice) means the
// field has not been extracted yet. Keeping the fields typed instead of a
// free-form map stops unvalidated model output from reaching the stores.
type CampaignDraft struct {
	Advertiser     *Brand     `json:"advertiser,omitempty"`
	Name           *string    `json:"name,omitempty"`
	Budget         *float64   `json:"budget,omitempty"`
	StartDate      *string    `json:"start_date,omitempty"`
	EndDate        *string    `json:"end_date,omitempty"`
	Objective      *string    `json:"objective,omitempty"`
	Platforms      []Platform `json:"platforms,omitempty"`
	TargetAudience *string    `json:"target_audience,omitempty"`
}

// Merge overwrites every field present in patch, last write wins. The
// platform list replaces the previous one wholesale; there is no set union.
func (d *CampaignDraft) Merge(patch CampaignDraft) {
	if patch.Advertiser != nil {
		d.Advertiser = patch.Advertiser
	}
	if patch.Name != nil {
		d.Name = patch.Name
	}
	if patch.Budget != nil {
		d.Budget = patch.Budget
	}
	if patch.StartDate != nil {
		d.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		d.EndDate = patch.EndDate
	}
	if patch.Objective != nil {
		d.Objective = patch.Objective
	}
	if patch.Platforms != nil {
		d.Platforms = patch.Platforms
	}
	if patch.TargetAudience != nil {
		d.TargetAudience = patch.TargetAudience
	}
}

// draftFieldCount is the number of user-meaningful fields shown in the live
// draft panel. The start/end dates count as one field there.
const draftFieldCount = 7

// Completeness is the informational populated-fields ratio shown next to the
// draft. It does not gate finalization; that is CanFinalize's two-field rule.
func (d *CampaignDraft) Completeness() float64 {
	populated := 0
	if d.Advertiser != nil {
		populated++
	}
	if d.Name != nil {
		populated++
	}
	if d.Budget != nil {
		populated++
	}
	if d.StartDate != nil {
		populated++
	}
	if d.Platforms != nil {
		populated++
	}
	if d.TargetAudience != nil {
		populated++
	}
	if d.Objective != nil {
		populated++
	}
	return float64(populated) / draftFieldCount
}

// CanFinalize reports whether the two mandatory fields are present.
func (d *CampaignDraft) CanFinalize() bool {
	return d.Advertiser != nil && d.Name != nil
}

// Finalize constructs a full campaign from the draft, defaulting every unset
// optional field. It is a pure construction: the caller persists the result
// and resets the wizard session.
func (d *CampaignDraft) Finalize(now time.Time) *Campaign {
	c := &Campaign{
		ID:             NewCampaignID(),
		Name:           *d.Name,
		Advertiser:     *d.Advertiser,
		Budget:         0,
		StartDate:      now.Format("2006-01-02"),
		EndDate:        "",
		Objective:      "Awareness",
		Platforms:      []Platform{},
		TargetAudience: "General",
		Status:         CampaignStatusDraft,
		Progress:       0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if d.Budget != nil {
		c.Budget = *d.Budget
	}
	if d.StartDate != nil {
		c.StartDate = *d.StartDate
	}
	if d.EndDate != nil {
		c.EndDate = *d.EndDate
	}
	if d.Objective != nil {
		c.Objective = *d.Objective
	}
	if d.Platforms != nil {
		c.Platforms = d.Platforms
	}
	if d.TargetAudience != nil {
		c.TargetAudience = *d.TargetAudience
	}
	return c
}
