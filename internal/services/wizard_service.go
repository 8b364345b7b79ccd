package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/adpulse/backend/internal/models"
	"go.uber.org/zap"
)

const wizardGreeting = "Hello! I am your AdPulse AI assistant. Tell me about the retail media campaign you want to launch. For example: \"I want to run a Nike summer sale on Amazon and Walmart with a $50k budget.\""

var (
	ErrSessionNotFound = errors.New("wizard session not found")
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrSessionBusy     = errors.New("an extraction is already in progress")
	ErrDraftIncomplete = errors.New("draft needs both a name and an advertiser before finalization")
)

// CampaignExtractor is the slice of the AI client the wizard depends on.
type CampaignExtractor interface {
	ExtractCampaignFields(ctx context.Context, userText string, draft models.CampaignDraft) (*ExtractionResult, error)
}

// WizardSession holds one conversation: the transcript, the accumulating
// draft, and the busy flag that rejects overlapping submissions. A rejected
// submission is dropped, not queued.
type WizardSession struct {
	ID        string               `json:"id"`
	Messages  []models.ChatMessage `json:"messages"`
	Draft     models.CampaignDraft `json:"draft"`
	Busy      bool                 `json:"busy"`
	CreatedAt time.Time            `json:"created_at"`

	// Completeness is the informational populated-fields ratio, recomputed on
	// every snapshot. It never gates finalization.
	Completeness float64 `json:"completeness"`
}

// WizardService owns every wizard session. Sessions are in-memory and die
// with the process, like the rest of the dashboard state.
type WizardService struct {
	extractor CampaignExtractor
	log       *zap.Logger

	mu       sync.Mutex
	sessions map[string]*WizardSession
}

func NewWizardService(extractor CampaignExtractor, log *zap.Logger) *WizardService {
	return &WizardService{
		extractor: extractor,
		log:       log,
		sessions:  make(map[string]*WizardSession),
	}
}

func newGreetingMessage() models.ChatMessage {
	return models.ChatMessage{
		ID:        models.NewMessageID(),
		Role:      models.ChatRoleAssistant,
		Text:      wizardGreeting,
		Timestamp: time.Now(),
	}
}

func (s *WizardService) CreateSession() *WizardSession {
	session := &WizardSession{
		ID:        models.NewSessionID(),
		Messages:  []models.ChatMessage{newGreetingMessage()},
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session.snapshot()
}

func (s *WizardService) GetSession(id string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.snapshot(), nil
}

// Submit appends the user turn, runs the extraction, merges recognized
// fields into the draft, and appends the assistant reply. On extraction
// failure the draft stays untouched and a fixed fallback reply is appended.
// The busy flag is always cleared, success or failure.
func (s *WizardService) Submit(ctx context.Context, sessionID, text string) (*WizardSession, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if session.Busy {
		s.mu.Unlock()
		return nil, ErrSessionBusy
	}
	session.Busy = true
	session.Messages = append(session.Messages, models.ChatMessage{
		ID:        models.NewMessageID(),
		Role:      models.ChatRoleUser,
		Text:      text,
		Timestamp: time.Now(),
	})
	draft := session.Draft
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		session.Busy = false
		s.mu.Unlock()
	}()

	result, err := s.extractor.ExtractCampaignFields(ctx, text, draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.log.Warn("campaign extraction failed", zap.String("session_id", sessionID), zap.Error(err))
		session.Messages = append(session.Messages, models.ChatMessage{
			ID:        models.NewMessageID(),
			Role:      models.ChatRoleAssistant,
			Text:      ExtractionFallbackReply,
			Timestamp: time.Now(),
		})
		return session.snapshot(), nil
	}

	session.Draft.Merge(result.Fields)
	session.Messages = append(session.Messages, models.ChatMessage{
		ID:        models.NewMessageID(),
		Role:      models.ChatRoleAssistant,
		Text:      result.Reply,
		Timestamp: time.Now(),
	})

	return session.snapshot(), nil
}

// Finalize turns the draft into a full campaign and resets the session for a
// new conversation. Persisting the campaign is the caller's job; this is a
// pure construction plus the session reset.
func (s *WizardService) Finalize(sessionID string) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Busy {
		return nil, ErrSessionBusy
	}
	if !session.Draft.CanFinalize() {
		return nil, ErrDraftIncomplete
	}

	campaign := session.Draft.Finalize(time.Now())

	session.Draft = models.CampaignDraft{}
	session.Messages = []models.ChatMessage{newGreetingMessage()}

	return campaign, nil
}

// Reset clears the draft and transcript without producing a campaign.
func (s *WizardService) Reset(sessionID string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Busy {
		return nil, ErrSessionBusy
	}

	session.Draft = models.CampaignDraft{}
	session.Messages = []models.ChatMessage{newGreetingMessage()}

	return session.snapshot(), nil
}

// snapshot copies the session so callers never hold live internal state.
// Callers must hold s.mu, except on freshly constructed sessions.
func (w *WizardSession) snapshot() *WizardSession {
	copied := *w
	copied.Messages = make([]models.ChatMessage, len(w.Messages))
	copy(copied.Messages, w.Messages)
	copied.Completeness = w.Draft.Completeness()
	return &copied
}
