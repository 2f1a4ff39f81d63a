package player

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/game"
	"github.com/ratel-online/landlord/rule"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMPlayer asks an OpenAI compatible chat completions endpoint for every decision. Any failure,
// timeout or illegal answer falls back to the rule player.
type LLMPlayer struct {
	character string
	config    LLMConfig
	client    *http.Client
	fallback  game.Strategy
}

func NewLLMPlayer(character string, config LLMConfig) *LLMPlayer {
	if config.BaseURL == "" {
		config.BaseURL = consts.DefaultLLMBaseURL
	}
	if config.Model == "" {
		config.Model = consts.DefaultLLMModel
	}
	if config.Timeout <= 0 {
		config.Timeout = consts.LLMTimeout
	}
	if config.APIKey == "" {
		log.Infof("%s has no api key, using rule decisions\n", character)
	}
	return &LLMPlayer{
		character: character,
		config:    config,
		client:    &http.Client{},
		fallback:  NewRulePlayer(),
	}
}

func (p *LLMPlayer) Enabled() bool {
	return p.config.APIKey != ""
}

type bidReply struct {
	Bid      float64 `json:"bid"`
	Strategy string  `json:"strategy"`
}

type playReply struct {
	Action   string   `json:"action"`
	Cards    []string `json:"cards"`
	Strategy string   `json:"strategy"`
}

func (p *LLMPlayer) DecideBid(view game.View) int {
	var reply bidReply
	if err := p.ask(bidPrompt(p.character, view), &reply); err != nil {
		log.Errorf("%s bid: %v\n", p.character, err)
		return p.fallback.DecideBid(view)
	}
	bid := int(reply.Bid)
	if reply.Bid < consts.MinBid || reply.Bid > consts.MaxBid || (bid != 0 && bid <= view.HighestBid) {
		log.Errorf("%s bid: %v %v\n", p.character, consts.ErrorsProviderReply, reply.Bid)
		return p.fallback.DecideBid(view)
	}
	p.remark(reply.Strategy)
	return bid
}

func (p *LLMPlayer) DecidePlay(view game.View) []card.Card {
	var reply playReply
	err := p.ask(playPrompt(p.character, view), &reply)
	if err == nil {
		var cards []card.Card
		cards, err = validatePlay(reply, view)
		if err == nil {
			p.remark(reply.Strategy)
			return cards
		}
	}
	log.Errorf("%s play: %v\n", p.character, err)
	return p.fallback.DecidePlay(view)
}

func (p *LLMPlayer) remark(strategy string) {
	if strategy != "" {
		log.Infof("%s: %s\n", p.character, strategy)
	}
}

// validatePlay turns a reply into cards the controller will accept: held, a legal shape and
// beating the table. Passing on an open table is refused.
func validatePlay(reply playReply, view game.View) ([]card.Card, error) {
	switch strings.ToLower(reply.Action) {
	case "pass":
		if view.Open() {
			return nil, fmt.Errorf("%w: pass on an open table", consts.ErrorsProviderReply)
		}
		return nil, nil
	case "play":
	default:
		return nil, fmt.Errorf("%w: unknown action '%s'", consts.ErrorsProviderReply, reply.Action)
	}
	if len(reply.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards", consts.ErrorsProviderReply)
	}
	cards := make([]card.Card, 0, len(reply.Cards))
	for _, text := range reply.Cards {
		c, err := card.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", consts.ErrorsProviderReply, err)
		}
		cards = append(cards, c)
	}
	if !holds(view.Hand, cards) {
		return nil, fmt.Errorf("%w: cards not in hand", consts.ErrorsProviderReply)
	}
	hand, ok := rule.Classify(cards)
	if !ok {
		return nil, fmt.Errorf("%w: illegal shape", consts.ErrorsProviderReply)
	}
	if !view.Open() && !rule.Beats(hand, *view.Incumbent) {
		return nil, fmt.Errorf("%w: %s does not beat %s", consts.ErrorsProviderReply, hand, view.Incumbent)
	}
	return cards, nil
}

func holds(hand, cards []card.Card) bool {
	h := game.NewHand()
	h.AddCards(hand)
	return h.Contains(cards)
}

func (p *LLMPlayer) ask(prompt string, reply interface{}) error {
	if !p.Enabled() {
		return consts.ErrorsProviderDisabled
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.config.Timeout)
	defer cancel()
	content, err := p.complete(ctx, prompt)
	if err != nil {
		return err
	}
	return extractJSON(content, reply)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *LLMPlayer) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       p.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   consts.LLMMaxTokens,
	})
	if err != nil {
		return "", err
	}
	url := strings.TrimRight(p.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", consts.ErrorsProviderReply, resp.StatusCode)
	}
	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", consts.ErrorsProviderReply)
	}
	return completion.Choices[0].Message.Content, nil
}

// extractJSON decodes the first JSON object of a reply, tolerating markdown fences and chatter around it.
func extractJSON(text string, v interface{}) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if !strings.HasPrefix(strings.TrimSpace(line), "```") {
				kept = append(kept, line)
			}
		}
		text = strings.TrimSpace(strings.Join(kept, "\n"))
	}
	if err := json.UnmarshalFromString(text, v); err == nil {
		return nil
	}
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return fmt.Errorf("%w: no json object", consts.ErrorsProviderReply)
	}
	if err := json.UnmarshalFromString(text[start:end+1], v); err != nil {
		return fmt.Errorf("%w: %v", consts.ErrorsProviderReply, err)
	}
	return nil
}
