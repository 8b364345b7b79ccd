package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adpulse/backend/internal/config"
	"github.com/adpulse/backend/internal/models"
	"go.uber.org/zap"
)

// Canned messages for degraded AI operations.
const (
	MissingKeyReply         = "API Key is missing. Please check your deployment settings."
	ExtractionFallbackReply = "I'm having trouble connecting to the AI brain right now. Please try again."
)

// ErrAIUnavailable is returned by operations that cannot degrade to a canned
// reply when the generation credential is missing.
var ErrAIUnavailable = errors.New("AI service unavailable: missing API key")

// GeminiClient talks to the Gemini generateContent REST API. Each call
// requests structured JSON output against a response schema, so results
// decode into typed structs instead of free-form text.
type GeminiClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *zap.Logger
}

func NewGeminiClient(cfg *config.Config, log *zap.Logger) *GeminiClient {
	return &GeminiClient{
		baseURL: strings.TrimRight(cfg.GeminiBaseURL, "/"),
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		httpClient: &http.Client{
			Timeout: cfg.AITimeout,
		},
		log: log,
	}
}

// Enabled reports whether the credential is configured.
func (c *GeminiClient) Enabled() bool {
	return c.apiKey != ""
}

// ExtractionResult is what one wizard turn gets back from the model: the
// recognized draft fields, the fields still missing, and the reply to show.
type ExtractionResult struct {
	Fields      models.CampaignDraft
	MissingInfo []string
	Reply       string
}

// AdCopy is the generated creative text for one platform. Fields the model
// omits stay empty; the studio applies display defaults, not this layer.
type AdCopy struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	CTA         string `json:"cta"`
	Reasoning   string `json:"reasoning"`
}

// ComplianceResult is the policy verdict for one creative.
type ComplianceResult struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

// Gemini wire format

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate runs one structured-output call and decodes the JSON answer into out.
func (c *GeminiClient) generate(ctx context.Context, system, prompt string, schema map[string]any, temperature *float64, out any) error {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
			Temperature:      temperature,
		},
	}
	if system != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gemini returned %d: %s", resp.StatusCode, string(b))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("gemini returned no candidates")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("parse structured output: %w", err)
	}
	return nil
}

func stringEnum[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// ExtractCampaignFields parses a natural-language request into draft fields.
// A missing credential fails closed with the canned reply and no remote call;
// transport and parse errors surface to the caller, which substitutes the
// fixed fallback message.
func (c *GeminiClient) ExtractCampaignFields(ctx context.Context, userText string, draft models.CampaignDraft) (*ExtractionResult, error) {
	if !c.Enabled() {
		return &ExtractionResult{Reply: MissingKeyReply}, nil
	}

	schema := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"advertiser": map[string]any{"type": "STRING", "enum": stringEnum(models.AllBrands)},
			"name":       map[string]any{"type": "STRING"},
			"budget":     map[string]any{"type": "NUMBER"},
			"startDate":  map[string]any{"type": "STRING", "description": "YYYY-MM-DD format"},
			"endDate":    map[string]any{"type": "STRING", "description": "YYYY-MM-DD format"},
			"platforms": map[string]any{
				"type":  "ARRAY",
				"items": map[string]any{"type": "STRING", "enum": stringEnum(models.AllPlatforms)},
			},
			"objective":      map[string]any{"type": "STRING"},
			"targetAudience": map[string]any{"type": "STRING"},
			"missingInfo": map[string]any{
				"type":        "ARRAY",
				"items":       map[string]any{"type": "STRING"},
				"description": "List of fields required for a campaign that are missing from the request",
			},
			"conversationalResponse": map[string]any{
				"type":        "STRING",
				"description": "A natural language response to the user confirming what was understood and asking for missing info.",
			},
		},
		"required": []string{"conversationalResponse", "missingInfo"},
	}

	draftJSON, _ := json.Marshal(draft)
	prompt := fmt.Sprintf(
		"You are an expert Retail Media AI Assistant.\nCurrent Context: %s\nUser Input: %q\n\nExtract campaign details. If details are missing, list them in 'missingInfo'.\nToday's date is %s.",
		string(draftJSON), userText, time.Now().Format("2006-01-02"),
	)
	system := "You are a helpful assistant for a Retail Media Ad Platform. Your goal is to help users configure ad campaigns for brands like Nike, Coca-Cola, and Samsung."

	var raw struct {
		Advertiser             *string  `json:"advertiser"`
		Name                   *string  `json:"name"`
		Budget                 *float64 `json:"budget"`
		StartDate              *string  `json:"startDate"`
		EndDate                *string  `json:"endDate"`
		Platforms              []string `json:"platforms"`
		Objective              *string  `json:"objective"`
		TargetAudience         *string  `json:"targetAudience"`
		MissingInfo            []string `json:"missingInfo"`
		ConversationalResponse string   `json:"conversationalResponse"`
	}
	if err := c.generate(ctx, system, prompt, schema, nil, &raw); err != nil {
		return nil, err
	}

	result := &ExtractionResult{
		MissingInfo: raw.MissingInfo,
		Reply:       raw.ConversationalResponse,
	}

	// Only values from the closed sets make it into the draft; anything else
	// the model hallucinated is dropped here.
	if raw.Advertiser != nil && models.IsValidBrand(*raw.Advertiser) {
		brand := models.Brand(*raw.Advertiser)
		result.Fields.Advertiser = &brand
	}
	if raw.Name != nil && *raw.Name != "" {
		result.Fields.Name = raw.Name
	}
	if raw.Budget != nil {
		result.Fields.Budget = raw.Budget
	}
	if raw.StartDate != nil && *raw.StartDate != "" {
		result.Fields.StartDate = raw.StartDate
	}
	if raw.EndDate != nil && *raw.EndDate != "" {
		result.Fields.EndDate = raw.EndDate
	}
	if raw.Platforms != nil {
		platforms := make([]models.Platform, 0, len(raw.Platforms))
		for _, p := range raw.Platforms {
			if models.IsValidPlatform(p) {
				platforms = append(platforms, models.Platform(p))
			}
		}
		result.Fields.Platforms = platforms
	}
	if raw.Objective != nil && *raw.Objective != "" {
		result.Fields.Objective = raw.Objective
	}
	if raw.TargetAudience != nil && *raw.TargetAudience != "" {
		result.Fields.TargetAudience = raw.TargetAudience
	}

	return result, nil
}

// GenerateAdCopy drafts creative text for one platform. Failures propagate:
// the studio decides what a failed platform means for the batch.
func (c *GeminiClient) GenerateAdCopy(ctx context.Context, advertiser models.Brand, platform models.Platform, product, audience, objective string) (*AdCopy, error) {
	if !c.Enabled() {
		return nil, ErrAIUnavailable
	}

	schema := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"headline":    map[string]any{"type": "STRING"},
			"description": map[string]any{"type": "STRING"},
			"cta":         map[string]any{"type": "STRING"},
			"reasoning":   map[string]any{"type": "STRING", "description": "Why this copy works for this platform and audience"},
		},
	}

	brandRules := models.BrandGuidelines[advertiser]
	if brandRules == "" {
		brandRules = "Standard professional tone."
	}
	platformRules := models.PlatformRules[platform]
	if platformRules == "" {
		platformRules = "Standard ad compliance."
	}

	prompt := fmt.Sprintf(
		"Generate ad copy for:\nBrand: %s\nProduct: %s\nPlatform: %s\nAudience: %s\nObjective: %s\n\nBrand Guidelines: %s\nPlatform Rules: %s",
		advertiser, product, platform, audience, objective, brandRules, platformRules,
	)

	temperature := 0.7
	var copyData AdCopy
	if err := c.generate(ctx, "", prompt, schema, &temperature, &copyData); err != nil {
		return nil, fmt.Errorf("generate creative for %s: %w", platform, err)
	}
	return &copyData, nil
}

// ScoreCompliance checks a creative against platform policy. This call never
// fails: any error degrades to a zero score with a fixed issue marker, since
// a scoring outage should not block the creative itself.
func (c *GeminiClient) ScoreCompliance(ctx context.Context, platform models.Platform, headline, description string, advertiser models.Brand) ComplianceResult {
	degraded := ComplianceResult{Score: 0, Issues: []string{"AI Validation Failed"}}
	if !c.Enabled() {
		return degraded
	}

	schema := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"score": map[string]any{"type": "NUMBER", "description": "0 to 100 compliance score"},
			"issues": map[string]any{
				"type":        "ARRAY",
				"items":       map[string]any{"type": "STRING"},
				"description": "List of specific policy violations or warnings",
			},
			"isCompliant": map[string]any{"type": "BOOLEAN"},
		},
	}

	prompt := fmt.Sprintf(
		"Analyze this creative for compliance.\nPlatform: %s\nRules: %s\n\nCreative Content:\nHeadline: %q\nDescription: %q",
		platform, models.PlatformRules[platform], headline, description,
	)

	var raw struct {
		Score       *int     `json:"score"`
		Issues      []string `json:"issues"`
		IsCompliant bool     `json:"isCompliant"`
	}
	if err := c.generate(ctx, "", prompt, schema, nil, &raw); err != nil {
		c.log.Warn("compliance scoring degraded", zap.String("platform", string(platform)), zap.Error(err))
		return degraded
	}

	result := ComplianceResult{Score: defaultComplianceScore, Issues: []string{}}
	if raw.Score != nil {
		result.Score = *raw.Score
	}
	if raw.Issues != nil {
		result.Issues = raw.Issues
	}
	return result
}
