package nlq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare statement", "SELECT 1", "SELECT 1"},
		{"fenced", "```\nSELECT 1\n```", "SELECT 1"},
		{"fenced with language tag", "```sql\nSELECT 1\n```", "SELECT 1"},
		{"uppercase tag", "```SQL\nSELECT 1\n```", "SELECT 1"},
		{"surrounding whitespace", "  SELECT 1  ", "SELECT 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantErr bool
	}{
		{"select", "SELECT * FROM Customer", false},
		{"lowercase select", "select 1", false},
		{"cte", "WITH T AS (SELECT 1) SELECT * FROM T", false},
		{"trailing semicolon", "SELECT 1;", false},
		{"semicolon in string literal", "SELECT * FROM Customer WHERE Address LIKE '%;%'", false},
		{"escaped quote before semicolon", "SELECT * FROM Customer WHERE LastName = 'O''Brien;'", false},
		{"semicolon in quoted identifier", `SELECT ';' AS "a;b" FROM Customer`, false},
		{"empty", "   ", true},
		{"delete", "DELETE FROM Customer", true},
		{"drop", "DROP TABLE Customer", true},
		{"stacked statements", "SELECT 1; DROP TABLE Customer", true},
		{"stacked after string literal", "SELECT ';'; DROP TABLE Customer", true},
		{"pragma", "PRAGMA foreign_keys", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Guard(tt.sql)
			if tt.wantErr && err == nil {
				t.Errorf("Expected %q to be rejected", tt.sql)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected %q to pass, got: %v", tt.sql, err)
			}
		})
	}
}

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Unexpected authorization header %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("Expected system+user messages, got %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[1].Content, "OrderDetail") {
			t.Error("Expected the schema description in the user message")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": chatMessage{Role: "assistant", Content: content}},
			},
		})
	}))
}

func TestTranslate(t *testing.T) {
	srv := completionServer(t, "```sql\nSELECT COUNT(*) FROM Customer\n```")
	defer srv.Close()

	tr := NewTranslator("test-key", srv.URL, "test-model")
	sql, err := tr.Translate(context.Background(), "How many customers are there?")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if sql != "SELECT COUNT(*) FROM Customer" {
		t.Errorf("Expected fences stripped, got %q", sql)
	}
}

func TestTranslateRequiresKey(t *testing.T) {
	tr := NewTranslator("", "http://unused", "test-model")
	if _, err := tr.Translate(context.Background(), "anything"); err == nil {
		t.Error("Expected an error when the API key is missing")
	}
}

func TestTranslateRequiresQuestion(t *testing.T) {
	tr := NewTranslator("test-key", "http://unused", "test-model")
	if _, err := tr.Translate(context.Background(), "   "); err == nil {
		t.Error("Expected an error for an empty question")
	}
}

func TestTranslateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key"},
		})
	}))
	defer srv.Close()

	tr := NewTranslator("test-key", srv.URL, "test-model")
	_, err := tr.Translate(context.Background(), "How many customers?")
	if err == nil {
		t.Fatal("Expected an error from the API")
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("Expected the API message in the error, got: %v", err)
	}
}

func TestTranslateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	tr := NewTranslator("test-key", srv.URL, "test-model")
	if _, err := tr.Translate(context.Background(), "How many customers?"); err == nil {
		t.Error("Expected an error when the API returns no choices")
	}
}
