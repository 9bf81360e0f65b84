//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package nlq translates natural-language questions into read-only SQL
// using an OpenAI-compatible chat-completions endpoint.
package nlq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/salesdash/salesdash/internal/logging"
)

// schemaDescription is embedded in every prompt so the model targets the
// normalized schema.
const schemaDescription = `Tables:
- Region(RegionID, Region)
- Country(CountryID, Country, RegionID)
- Customer(CustomerID, FirstName, LastName, Address, City, CountryID)
- ProductCategory(ProductCategoryID, ProductCategory, ProductCategoryDescription)
- Product(ProductID, ProductName, ProductUnitPrice, ProductCategoryID)
- OrderDetail(OrderID, CustomerID, ProductID, OrderDate, QuantityOrdered)`

const systemPrompt = "You are an assistant that writes SQL for a SQLite database. " +
	"Return ONLY a valid SQL SELECT statement. " +
	"Do not include explanations, comments, or markdown."

// Translator converts questions to SQL via a chat-completions API.
type Translator struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewTranslator creates a Translator. apiKey is required at Translate
// time; an unconfigured translator fails explicitly rather than guessing.
func NewTranslator(apiKey, baseURL, model string) *Translator {
	return &Translator{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Translate sends the question to the completion endpoint and returns the
// generated SQL with any markdown fencing stripped. The result is not yet
// validated; callers run Guard before executing it.
func (t *Translator) Translate(ctx context.Context, question string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("translator API key is not configured")
	}
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question must not be empty")
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: t.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("%s\n\nQuestion:\n%s\n\nSQL:", schemaDescription, question)},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion API error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	sql := StripFences(parsed.Choices[0].Message.Content)

	logging.Debug().
		Str("model", t.model).
		Str("sql", sql).
		Msg("Translated question")
	return sql, nil
}

// StripFences removes markdown code fencing and an optional leading "sql"
// language tag from a model reply.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.Trim(s, "`")
		s = strings.TrimSpace(s)
		if len(s) >= 3 && strings.EqualFold(s[:3], "sql") {
			s = strings.TrimSpace(s[3:])
		}
	}
	return s
}

// Guard rejects anything that is not a single read-only statement. Only
// SELECT and WITH statements pass, and stacked statements are refused.
// Semicolons inside quoted text do not count as separators, so queries
// over the semicolon-joined raw fields still pass.
func Guard(sql string) error {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return fmt.Errorf("empty SQL statement")
	}
	trimmed = strings.TrimSuffix(trimmed, ";")
	if hasStatementSeparator(trimmed) {
		return fmt.Errorf("multiple SQL statements are not allowed")
	}
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("only read-only SELECT statements are allowed")
	}
	return nil
}

// hasStatementSeparator reports whether a semicolon appears outside
// single- or double-quoted text. A doubled quote inside a literal reads
// as close-and-reopen, which still keeps the semicolon quoted.
func hasStatementSeparator(s string) bool {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			return true
		}
	}
	return false
}
