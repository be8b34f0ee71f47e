package content

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

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/spacehole-rogue/nebula_nexus/internal/game"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTries   = 3
)

var (
	// ErrNoAPIKey is returned by NewGemini without a key.
	ErrNoAPIKey = errors.New("gemini api key is required")
	// ErrEmptyResponse means the endpoint answered without any candidate text.
	ErrEmptyResponse = errors.New("empty generation response")
)

const (
	eventInstruction   = "You are an intense Sci-Fi RPG Game Master. Be concise but atmospheric. Use terminology like 'Warp Core', 'Quantum Flux', 'Pirate Raiders'."
	combatInstruction  = "You are a tactical combat computer analysis system. Brief, uppercase, choppy sentences."
	resolveInstruction = "You are a master Sci-Fi Storyteller. Outcomes should have emotional weight and vivid descriptions. Diplomacy involves complex dialogue results. Failure should be punishing but fair."
)

// GeminiConfig configures the generateContent endpoint and HTTP behavior.
type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	MaxTries   uint
}

// Gemini is a Narrator backed by a Gemini-style JSON generation endpoint.
type Gemini struct {
	cfg GeminiConfig
}

// NewGemini builds a client. Only the API key is mandatory.
func NewGemini(cfg GeminiConfig) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.MaxTries == 0 {
		cfg.MaxTries = defaultTries
	}
	return &Gemini{cfg: cfg}, nil
}

var eventSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"title":       map[string]any{"type": "STRING"},
		"description": map[string]any{"type": "STRING"},
		"choices": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"text": map[string]any{"type": "STRING"},
					"type": map[string]any{"type": "STRING", "enum": []string{"aggressive", "diplomatic", "scientific", "evasive"}},
					"risk": map[string]any{"type": "STRING", "enum": []string{"low", "medium", "high", "extreme"}},
				},
				"required": []string{"text", "type", "risk"},
			},
		},
	},
	"required": []string{"title", "description", "choices"},
}

var combatSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"enemyName":   map[string]any{"type": "STRING"},
		"enemyClass":  map[string]any{"type": "STRING"},
		"description": map[string]any{"type": "STRING"},
		"weakness":    map[string]any{"type": "STRING"},
		"threatLevel": map[string]any{"type": "STRING", "enum": []string{"LOW", "MODERATE", "CRITICAL", "EXTREME"}},
	},
	"required": []string{"enemyName", "enemyClass", "description", "weakness", "threatLevel"},
}

var resolveSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"outcomeText":   map[string]any{"type": "STRING"},
		"success":       map[string]any{"type": "BOOLEAN"},
		"hullChange":    map[string]any{"type": "INTEGER"},
		"energyChange":  map[string]any{"type": "INTEGER"},
		"crewChange":    map[string]any{"type": "INTEGER"},
		"creditsChange": map[string]any{"type": "INTEGER"},
		"itemFoundName": map[string]any{"type": "STRING", "nullable": true},
		"itemFoundDesc": map[string]any{"type": "STRING", "nullable": true},
	},
	"required": []string{"outcomeText", "success"},
}

// GenerateEvent asks for the next scenario.
func (g *Gemini) GenerateEvent(ctx context.Context, req game.EventRequest) (game.GameEvent, error) {
	text, err := g.generate(ctx, eventInstruction, eventPrompt(req), eventSchema)
	if err != nil {
		return game.GameEvent{}, fmt.Errorf("generate event: %w", err)
	}
	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Choices     []struct {
			Text string          `json:"text"`
			Type game.ChoiceType `json:"type"`
			Risk game.Risk       `json:"risk"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return game.GameEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if len(payload.Choices) == 0 {
		return game.GameEvent{}, fmt.Errorf("decode event: no choices")
	}

	ev := game.GameEvent{
		ID:          "evt-" + uuid.NewString(),
		Title:       payload.Title,
		Description: payload.Description,
	}
	for i, c := range payload.Choices {
		if !c.Type.Valid() {
			return game.GameEvent{}, fmt.Errorf("decode event: choice %d has type %q", i, c.Type)
		}
		if !c.Risk.Valid() {
			c.Risk = game.RiskLow
		}
		ev.Choices = append(ev.Choices, game.Choice{
			ID:   fmt.Sprintf("choice-%d", i),
			Text: c.Text,
			Type: c.Type,
			Risk: c.Risk,
		})
	}
	return ev, nil
}

// GenerateCombatDetails asks for a scanner readout of the enemy.
func (g *Gemini) GenerateCombatDetails(ctx context.Context, description string) (game.CombatDetails, error) {
	text, err := g.generate(ctx, combatInstruction, combatPrompt(description), combatSchema)
	if err != nil {
		return game.CombatDetails{}, fmt.Errorf("generate combat details: %w", err)
	}
	var d game.CombatDetails
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return game.CombatDetails{}, fmt.Errorf("decode combat details: %w", err)
	}
	if d.ThreatLevel == "" {
		d.ThreatLevel = game.ThreatModerate
	}
	return d, nil
}

// ResolveAction asks for the outcome of a choice.
func (g *Gemini) ResolveAction(ctx context.Context, req game.ActionRequest) (game.Resolution, error) {
	text, err := g.generate(ctx, resolveInstruction, resolvePrompt(req), resolveSchema)
	if err != nil {
		return game.Resolution{}, fmt.Errorf("resolve action: %w", err)
	}
	var payload struct {
		OutcomeText   string  `json:"outcomeText"`
		Success       bool    `json:"success"`
		HullChange    int     `json:"hullChange"`
		EnergyChange  int     `json:"energyChange"`
		CrewChange    int     `json:"crewChange"`
		CreditsChange int     `json:"creditsChange"`
		ItemFoundName *string `json:"itemFoundName"`
		ItemFoundDesc *string `json:"itemFoundDesc"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return game.Resolution{}, fmt.Errorf("decode resolution: %w", err)
	}

	res := game.Resolution{
		OutcomeText: payload.OutcomeText,
		Success:     payload.Success,
		ResourceChanges: game.ResourceDelta{
			Hull:    payload.HullChange,
			Energy:  payload.EnergyChange,
			Crew:    payload.CrewChange,
			Credits: payload.CreditsChange,
		},
	}
	if payload.Success && payload.ItemFoundName != nil && strings.TrimSpace(*payload.ItemFoundName) != "" {
		item := game.Item{
			ID:          "item-" + uuid.NewString(),
			Name:        strings.TrimSpace(*payload.ItemFoundName),
			Description: game.DefaultItemDescription,
			Icon:        game.DefaultItemIcon,
		}
		if payload.ItemFoundDesc != nil && strings.TrimSpace(*payload.ItemFoundDesc) != "" {
			item.Description = *payload.ItemFoundDesc
		}
		res.ItemReward = &item
	}
	return res, nil
}

func eventPrompt(req game.EventRequest) string {
	names := game.Inventory{Items: req.Inventory}.Names()
	ship := ""
	if req.Ship != nil {
		ship = fmt.Sprintf("Commanding a %s class ship.\n", req.Ship.Name)
	}
	r := req.Resources
	return fmt.Sprintf(`Turn: %d.
%sCurrent Status: Hull %d%%, Energy %d%%, Crew %d, Credits %d.
Inventory Artifacts: [%s].

Generate a highly engaging Sci-Fi RPG scenario.
If the player has specific items, occasionally reference them in the situation.

Create 3 distinct choices.
- Aggressive (Combat/Force)
- Diplomatic (Talk/Trade)
- Scientific (Scan/Hack)
- Evasive (Run/Stealth)`, req.Turn, ship, r.Hull, r.Energy, r.Crew, r.Credits, strings.Join(names, ", "))
}

func combatPrompt(description string) string {
	return fmt.Sprintf(`Context: The player has chosen to ATTACK in this situation: %q.

Generate tactical details about the enemy.
Make it sound like a military scanner output.

Output JSON.`, description)
}

func resolvePrompt(req game.ActionRequest) string {
	bonus := ""
	if req.Ship != nil {
		bonus = fmt.Sprintf("Ship Bonus: %s\n", req.Ship.Bonus)
	}
	return fmt.Sprintf(`Situation: %s
Action: %s (%s, Risk: %s).
%s
Determine outcome.
- If 'Diplomatic' was chosen, describe the negotiation or alien reaction in detail. Did they get offended? Impressed?
- If 'Scientific' was chosen, describe the data or anomaly found.
- If success is TRUE, there is a 30%% chance to find a sci-fi item (Loot).

Output JSON:
- outcomeText: Deep narrative result describing the consequences.
- success: boolean.
- hull/energy/crew/creditsChange: integers (negative for loss).
- itemFoundName: Name of item if found (or null).
- itemFoundDesc: Short description of item if found (or null).`,
		req.Event.Description, req.Choice.Text, req.Choice.Type, req.Choice.Risk, bonus)
}

// generate posts one generateContent call, retrying transient failures,
// and returns the first candidate's text.
func (g *Gemini) generate(ctx context.Context, instruction, prompt string, schema map[string]any) (string, error) {
	body, err := json.Marshal(map[string]any{
		"systemInstruction": map[string]any{
			"parts": []map[string]string{{"text": instruction}},
		},
		"contents": []map[string]any{{
			"role":  "user",
			"parts": []map[string]string{{"text": prompt}},
		}},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   schema,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.cfg.BaseURL, g.cfg.Model)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	return backoff.Retry(ctx, func() (string, error) {
		return g.post(ctx, endpoint, body)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(g.cfg.MaxTries))
}

func (g *Gemini) post(ctx context.Context, endpoint string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	// The key travels only in this header so it never shows up in URLs or
	// error strings.
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	res, err := g.cfg.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", backoff.Permanent(fmt.Errorf("request failed: %w", err))
		}
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := gjson.GetBytes(data, "error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(data[:min(len(data), 4096)]))
		}
		err := fmt.Errorf("request status %d: %s", res.StatusCode, msg)
		if res.StatusCode >= 400 && res.StatusCode < 500 && res.StatusCode != http.StatusTooManyRequests {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	text := gjson.GetBytes(data, "candidates.0.content.parts.0.text")
	if !text.Exists() || strings.TrimSpace(text.String()) == "" {
		return "", backoff.Permanent(ErrEmptyResponse)
	}
	return text.String(), nil
}
