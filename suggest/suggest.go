// Package suggest calls the generative text API producing the partner's
// supportive messages. The boundary tolerates arbitrary latency and
// failure: any error degrades to a canned fallback, never to the caller.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

var fallbacks = []string{
	"Estou aqui com você, meu amor. Sinta meu abraço agora.",
	"Meu pensamento está em você nesse exato segundo. Te amo.",
	"Você é a pessoa mais especial da minha vida. Tudo vai ficar bem.",
	"Queria estar aí para te ouvir de pertinho, mas sinta meu carinho daqui.",
	"Respire fundo... eu estou segurando sua mão, mesmo de longe.",
}

const requestTimeout = 15 * time.Second

type Client struct {
	url  string
	key  string
	http *http.Client
}

// New builds a client for a generateContent-style endpoint. An empty URL
// yields a client that always answers from the fallback list.
func New(url string, key string) *Client {
	return &Client{
		url:  url,
		key:  key,
		http: &http.Client{Timeout: requestTimeout},
	}
}

// SupportMessage asks for a short supportive message for an emotion.
func (c *Client) SupportMessage(ctx context.Context, emotion string) string {
	prompt := fmt.Sprintf(`O usuário está se sentindo "%s".
Como o parceiro carinhoso dele, escreva uma mensagem única, curta e profunda.
Evite clichês. Seja natural, íntimo e muito doce. NÃO use rimas.`, emotion)
	return c.generateOrFallback(ctx, prompt)
}

// PartnerReply asks for a partner-style reply to what the user wrote.
func (c *Client) PartnerReply(ctx context.Context, text string, emotion string) string {
	prompt := fmt.Sprintf(`Você é o parceiro amoroso da pessoa que escreveu isso: "%s".
Ela te contou isso enquanto se sente "%s".
Reaja especificamente ao que ela escreveu, com intimidade profunda.
Máximo de 3 a 4 linhas.`, text, emotion)
	return c.generateOrFallback(ctx, prompt)
}

func (c *Client) generateOrFallback(ctx context.Context, prompt string) string {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		log.Printf("suggestion request failed: %v", err)
		return Fallback()
	}
	if text == "" {
		return Fallback()
	}
	return text
}

// Fallback returns one of the fixed local messages, content-agnostic to
// the request that failed.
func Fallback() string {
	return fallbacks[rand.Intn(len(fallbacks))]
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.url == "" {
		return "", fmt.Errorf("no suggestion endpoint configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("x-goog-api-key", c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("suggestion endpoint answered %d", resp.StatusCode)
	}

	parsed := generateResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}
