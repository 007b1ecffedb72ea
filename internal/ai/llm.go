package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Provider generates one assistant reply for a prompt pair.
type Provider interface {
	Name() string
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// DegradedReply is returned to the user when every provider is down.
// The chat endpoint never fails on an LLM outage.
const DegradedReply = "The assistant is temporarily unavailable. " +
	"Please try again in a few minutes, or contact the event help desk for urgent questions."

type OllamaClient struct {
	baseURL string
	model   string
	http    *http.Client
}

func NewOllamaClient(baseURL, model string) *OllamaClient {
	return &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *OllamaClient) Name() string { return "ollama" }

func (c *OllamaClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	start := time.Now()
	body, err := json.Marshal(map[string]interface{}{
		"model":  c.model,
		"system": system,
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("[llm] provider=ollama stage=start model=%s", c.model)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[llm] provider=ollama stage=fail err=%v", err)
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[llm] provider=ollama stage=fail status=%d body=%q", resp.StatusCode, string(b))
		return "", fmt.Errorf("ollama generate: status %d", resp.StatusCode)
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ollama generate: decode: %w", err)
	}
	log.Printf("[llm] provider=ollama stage=done ms=%d len=%d", time.Since(start).Milliseconds(), len(out.Response))
	return strings.TrimSpace(out.Response), nil
}

// Available probes the Ollama daemon without generating anything.
func (c *OllamaClient) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type GeminiClient struct {
	model string
}

func NewGeminiClient(model string) *GeminiClient {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{model: model}
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	start := time.Now()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("[llm] provider=gemini stage=client_init err=%v", err)
		return "", err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(system),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	log.Printf("[llm] provider=gemini stage=start model=%s", c.model)
	res, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[llm] provider=gemini stage=fail model=%s err=%v", c.model, err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(res.Text())
	log.Printf("[llm] provider=gemini stage=done ms=%d len=%d", time.Since(start).Milliseconds(), len(text))
	return text, nil
}

// FallbackProvider tries each provider in order and returns the first
// successful reply.
type FallbackProvider struct {
	providers []Provider
}

func NewFallbackProvider(providers ...Provider) *FallbackProvider {
	return &FallbackProvider{providers: providers}
}

func (f *FallbackProvider) Name() string {
	names := make([]string, 0, len(f.providers))
	for _, p := range f.providers {
		names = append(names, p.Name())
	}
	return strings.Join(names, "+")
}

func (f *FallbackProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	var lastErr error
	for _, p := range f.providers {
		text, err := p.Generate(ctx, system, prompt)
		if err == nil && text != "" {
			return text, nil
		}
		lastErr = err
		log.Printf("[llm] provider=%s stage=fallback err=%v", p.Name(), err)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no provider configured")
	}
	return "", lastErr
}
