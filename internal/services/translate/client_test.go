package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func completionBody(content string) string {
	return `{"choices":[{"message":{"content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func TestTranslateSendsChatCompletion(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(completionBody("Hola mundo"))); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL, Model: "translategemma"},
		WithHTTPClient(server.Client()))
	out, err := client.Translate(context.Background(), Request{
		Text:          "Hello world",
		SourceLang:    "en",
		TargetLang:    "es",
		BudgetSeconds: 2.5,
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "Hola mundo" {
		t.Fatalf("out = %q", out)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotReq.Model != "translategemma" || len(gotReq.Messages) != 2 {
		t.Fatalf("request = %+v", gotReq)
	}
	system := gotReq.Messages[0].Content
	if !strings.Contains(system, "Spanish") {
		t.Fatalf("system prompt missing target language: %s", system)
	}
	if !strings.Contains(system, "2.5 seconds") {
		t.Fatalf("system prompt missing time budget: %s", system)
	}
	if gotReq.Messages[1].Content != "Hello world" {
		t.Fatalf("user message = %q", gotReq.Messages[1].Content)
	}
}

func TestTranslateBlankTextSkipsNetwork(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	out, err := client.Translate(context.Background(), Request{Text: "   ", TargetLang: "es"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "" {
		t.Fatalf("out = %q", out)
	}
}

func TestTranslateRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(completionBody("Bonjour"))); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "m"},
		WithRetry(3, time.Millisecond),
		WithSleeper(func(time.Duration) {}),
	)
	out, err := client.Translate(context.Background(), Request{Text: "Hello", TargetLang: "fr"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "Bonjour" || attempts != 3 {
		t.Fatalf("out=%q attempts=%d", out, attempts)
	}
}

func TestTranslateDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "m"}, WithSleeper(func(time.Duration) {}))
	if _, err := client.Translate(context.Background(), Request{Text: "Hello", TargetLang: "fr"}); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d", attempts)
	}
}

func TestCleanTranslation(t *testing.T) {
	cases := map[string]string{
		"Hola":                        "Hola",
		"\"Hola\"":                    "Hola",
		"```\nHola\n```":              "Hola",
		"Translation: Hola":           "Hola",
		"  Hola mundo  ":              "Hola mundo",
		"'Quoted line'":               "Quoted line",
		"```json\n\"ignored\"\n```\n": "ignored",
	}
	for in, want := range cases {
		if got := cleanTranslation(in); got != want {
			t.Errorf("cleanTranslation(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSystemPromptTraditionalChineseRules(t *testing.T) {
	prompt := systemPrompt("en", "zh-TW", 3)
	if !strings.Contains(prompt, "Traditional Chinese characters") {
		t.Fatalf("missing script rule: %s", prompt)
	}
	if !strings.Contains(prompt, "Taiwan") {
		t.Fatalf("missing regional rule: %s", prompt)
	}

	plain := systemPrompt("en", "es", 0)
	if strings.Contains(plain, "Traditional") {
		t.Fatalf("spanish prompt must not carry chinese rules: %s", plain)
	}
	if strings.Contains(plain, "seconds") {
		t.Fatalf("zero budget must omit the time hint: %s", plain)
	}
}
