package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newID combines a millisecond timestamp with a random suffix. The suffix
// keeps ids unique within a burst of creations in the same millisecond; there
// is no ordering guarantee between such ids.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

func NewCampaignID() string { return newID("c") }
func NewAssetID() string    { return newID("asset") }
func NewActivityID() string { return newID("act") }
func NewSessionID() string  { return newID("wiz") }
func NewMessageID() string  { return newID("msg") }
