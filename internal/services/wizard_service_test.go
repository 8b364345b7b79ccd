package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adpulse/backend/internal/models"
	"go.uber.org/zap"
)

// stubExtractor returns a fixed result or error; block, when set, holds the
// call open until released so overlap behavior can be exercised.
type stubExtractor struct {
	result *ExtractionResult
	err    error
	block  chan struct{}
}

func (s *stubExtractor) ExtractCampaignFields(ctx context.Context, userText string, draft models.CampaignDraft) (*ExtractionResult, error) {
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newWizard(ex CampaignExtractor) *WizardService {
	return NewWizardService(ex, zap.NewNop())
}

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func TestCreateSessionStartsWithGreeting(t *testing.T) {
	svc := newWizard(&stubExtractor{})
	session := svc.CreateSession()

	if len(session.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(session.Messages))
	}
	greeting := session.Messages[0]
	if greeting.Role != models.ChatRoleAssistant {
		t.Errorf("role = %q, want assistant", greeting.Role)
	}
	if greeting.Text != wizardGreeting {
		t.Errorf("text = %q", greeting.Text)
	}
	if session.Draft.Name != nil || session.Draft.Advertiser != nil {
		t.Errorf("draft not empty: %+v", session.Draft)
	}
}

func TestSubmitRejectsEmptyText(t *testing.T) {
	svc := newWizard(&stubExtractor{})
	session := svc.CreateSession()

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Submit(context.Background(), session.ID, text); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Submit(%q) err = %v, want ErrEmptyMessage", text, err)
		}
	}

	got, err := svc.GetSession(session.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(got.Messages) != 1 {
		t.Errorf("rejected submissions appended messages: %d", len(got.Messages))
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	svc := newWizard(&stubExtractor{})
	if _, err := svc.Submit(context.Background(), "wiz-0-missing", "hi"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSubmitMergesExtractedFields(t *testing.T) {
	nike := models.BrandNike
	first := &stubExtractor{result: &ExtractionResult{
		Fields: models.CampaignDraft{Advertiser: &nike, Budget: numPtr(100)},
		Reply:  "Got Nike with a $100 budget.",
	}}
	svc := newWizard(first)
	session := svc.CreateSession()

	got, err := svc.Submit(context.Background(), session.ID, "Nike campaign, $100")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Draft.Advertiser == nil || *got.Draft.Advertiser != models.BrandNike {
		t.Errorf("advertiser = %v", got.Draft.Advertiser)
	}
	if got.Draft.Budget == nil || *got.Draft.Budget != 100 {
		t.Errorf("budget = %v", got.Draft.Budget)
	}
	if len(got.Messages) != 3 {
		t.Fatalf("messages = %d, want greeting+user+assistant", len(got.Messages))
	}
	if got.Messages[1].Role != models.ChatRoleUser || got.Messages[1].Text != "Nike campaign, $100" {
		t.Errorf("user turn = %+v", got.Messages[1])
	}
	if got.Messages[2].Text != "Got Nike with a $100 budget." {
		t.Errorf("assistant turn = %+v", got.Messages[2])
	}
	if got.Completeness != 2.0/7 {
		t.Errorf("completeness = %v, want 2/7", got.Completeness)
	}

	// A later turn overwrites only the fields it mentions.
	first.result = &ExtractionResult{
		Fields: models.CampaignDraft{Budget: numPtr(200)},
		Reply:  "Updated the budget to $200.",
	}
	got, err = svc.Submit(context.Background(), session.ID, "make it $200")
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if got.Draft.Budget == nil || *got.Draft.Budget != 200 {
		t.Errorf("budget after update = %v, want 200", got.Draft.Budget)
	}
	if got.Draft.Advertiser == nil || *got.Draft.Advertiser != models.BrandNike {
		t.Errorf("advertiser lost on partial update: %v", got.Draft.Advertiser)
	}
}

func TestSubmitExtractionFailureKeepsDraft(t *testing.T) {
	nike := models.BrandNike
	ex := &stubExtractor{result: &ExtractionResult{
		Fields: models.CampaignDraft{Advertiser: &nike},
		Reply:  "ok",
	}}
	svc := newWizard(ex)
	session := svc.CreateSession()

	if _, err := svc.Submit(context.Background(), session.ID, "Nike"); err != nil {
		t.Fatalf("seed submit: %v", err)
	}

	ex.result = nil
	ex.err = errors.New("upstream exploded")
	got, err := svc.Submit(context.Background(), session.ID, "and make it huge")
	if err != nil {
		t.Fatalf("failed extraction must not error the submit: %v", err)
	}

	if got.Draft.Advertiser == nil || *got.Draft.Advertiser != models.BrandNike {
		t.Errorf("draft changed on failure: %+v", got.Draft)
	}
	last := got.Messages[len(got.Messages)-1]
	if last.Role != models.ChatRoleAssistant || last.Text != ExtractionFallbackReply {
		t.Errorf("last message = %+v, want fallback reply", last)
	}
	if got.Busy {
		t.Error("busy flag not cleared after failure")
	}
}

func TestSubmitRejectsOverlap(t *testing.T) {
	ex := &stubExtractor{
		result: &ExtractionResult{Reply: "ok"},
		block:  make(chan struct{}),
	}
	svc := newWizard(ex)
	session := svc.CreateSession()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), session.ID, "first")
		done <- err
	}()

	// Wait for the first submission to take the busy flag.
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := svc.GetSession(session.ID)
		if err != nil {
			t.Fatalf("get session: %v", err)
		}
		if got.Busy {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("session never became busy")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := svc.Submit(context.Background(), session.ID, "second"); !errors.Is(err, ErrSessionBusy) {
		t.Errorf("overlapping submit err = %v, want ErrSessionBusy", err)
	}

	close(ex.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}

	got, err := svc.GetSession(session.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Busy {
		t.Error("busy flag not cleared")
	}
	// The rejected turn must not appear in the transcript.
	for _, m := range got.Messages {
		if m.Text == "second" {
			t.Error("rejected submission was appended")
		}
	}
}

func TestFinalizeRequiresNameAndAdvertiser(t *testing.T) {
	nike := models.BrandNike
	ex := &stubExtractor{result: &ExtractionResult{
		Fields: models.CampaignDraft{Advertiser: &nike},
		Reply:  "ok",
	}}
	svc := newWizard(ex)
	session := svc.CreateSession()

	if _, err := svc.Finalize(session.ID); !errors.Is(err, ErrDraftIncomplete) {
		t.Errorf("finalize on empty draft err = %v, want ErrDraftIncomplete", err)
	}

	if _, err := svc.Submit(context.Background(), session.ID, "Nike"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Finalize(session.ID); !errors.Is(err, ErrDraftIncomplete) {
		t.Errorf("finalize without a name err = %v, want ErrDraftIncomplete", err)
	}
}

func TestFinalizeBuildsCampaignAndResetsSession(t *testing.T) {
	nike := models.BrandNike
	ex := &stubExtractor{result: &ExtractionResult{
		Fields: models.CampaignDraft{
			Name:       strPtr("Summer Sprint"),
			Advertiser: &nike,
		},
		Reply: "ok",
	}}
	svc := newWizard(ex)
	session := svc.CreateSession()

	if _, err := svc.Submit(context.Background(), session.ID, "Nike Summer Sprint"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	campaign, err := svc.Finalize(session.ID)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if campaign.Name != "Summer Sprint" || campaign.Advertiser != models.BrandNike {
		t.Errorf("campaign = %+v", campaign)
	}
	if campaign.Status != models.CampaignStatusDraft {
		t.Errorf("status = %q, want Draft", campaign.Status)
	}
	if campaign.Budget != 0 || campaign.Objective != "Awareness" {
		t.Errorf("defaults not applied: budget=%v objective=%q", campaign.Budget, campaign.Objective)
	}

	got, err := svc.GetSession(session.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Text != wizardGreeting {
		t.Errorf("session not reset: %d messages", len(got.Messages))
	}
	if got.Draft.Name != nil || got.Draft.Advertiser != nil {
		t.Errorf("draft not cleared: %+v", got.Draft)
	}
}

func TestResetClearsDraftAndTranscript(t *testing.T) {
	nike := models.BrandNike
	ex := &stubExtractor{result: &ExtractionResult{
		Fields: models.CampaignDraft{Advertiser: &nike},
		Reply:  "ok",
	}}
	svc := newWizard(ex)
	session := svc.CreateSession()

	if _, err := svc.Submit(context.Background(), session.ID, "Nike"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := svc.Reset(session.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Text != wizardGreeting {
		t.Errorf("transcript not reset: %d messages", len(got.Messages))
	}
	if got.Draft.Advertiser != nil {
		t.Errorf("draft not cleared: %+v", got.Draft)
	}
}
