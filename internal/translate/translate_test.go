package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeepLTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("text"); got != "Hund" {
			t.Errorf("got text %q, want \"Hund\"", got)
		}
		if got := r.URL.Query().Get("target_lang"); got != "en" {
			t.Errorf("got target_lang %q, want \"en\"", got)
		}
		if got := r.URL.Query().Get("auth_key"); got != "test-key" {
			t.Errorf("got auth_key %q, want \"test-key\"", got)
		}
		w.Write([]byte(`{"translations":[{"text":"dog"}]}`))
	}))
	defer server.Close()

	c := NewDeepLClient("test-key")
	c.baseURL = server.URL

	got, err := c.Translate(context.Background(), "Hund", "de", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "dog" {
		t.Errorf("got %q, want \"dog\"", got)
	}
}

func TestDeepLTranslateEmptyInput(t *testing.T) {
	c := NewDeepLClient("test-key")
	c.baseURL = "http://127.0.0.1:0" // must not be contacted

	got, err := c.Translate(context.Background(), "", "de", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestDeepLTranslateErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	c := NewDeepLClient("test-key")
	c.baseURL = server.URL

	if _, err := c.Translate(context.Background(), "Hund", "de", "en"); err == nil {
		t.Error("expected error on non-200 response")
	}
}

func TestExamples(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("got auth header %q", got)
		}
		// Reply wraps the array in prose, as the model tends to.
		w.Write([]byte(`{"choices":[{"message":{"content":"Here you go:\n[{\"question\":\"Der Hund bellt.\",\"answer\":\"The dog barks.\"}]\nEnjoy!"}}]}`))
	}))
	defer server.Close()

	c := NewExampleClient("test-key")
	c.baseURL = server.URL

	examples, err := c.Examples(context.Background(), "Hund", "de", "en")
	if err != nil {
		t.Fatalf("Examples failed: %v", err)
	}
	if len(examples) != 1 {
		t.Fatalf("got %d examples, want 1", len(examples))
	}
	if examples[0].Question != "Der Hund bellt." || examples[0].Answer != "The dog barks." {
		t.Errorf("got %+v", examples[0])
	}
}

func TestExtractExamples(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			name:    "bare array",
			content: `[{"question":"q","answer":"a"}]`,
			want:    1,
		},
		{
			name:    "code fence",
			content: "```json\n[{\"question\":\"q\",\"answer\":\"a\"},{\"question\":\"q2\",\"answer\":\"a2\"}]\n```",
			want:    2,
		},
		{
			name:    "no array",
			content: "Sorry, I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "malformed json",
			content: "[{broken]",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			examples, err := extractExamples(tc.content)
			if tc.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("extractExamples failed: %v", err)
			}
			if len(examples) != tc.want {
				t.Errorf("got %d examples, want %d", len(examples), tc.want)
			}
		})
	}
}
