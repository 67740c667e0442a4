package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wortkarte/wortkarte/internal/domain"
)

const openAIBaseURL = "https://api.openai.com/v1/chat/completions"

// ExampleClient generates usage examples for a single word through a
// chat-completion API.
type ExampleClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// NewExampleClient returns a client using the given API key.
func NewExampleClient(apiKey string) *ExampleClient {
	return &ExampleClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    openAIBaseURL,
		model:      "gpt-4o-mini",
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Examples asks the model for five usage examples of word: question in the
// source language containing the word, answer the same sentence in the
// target language. Empty input returns no examples without a request.
func (c *ExampleClient) Examples(ctx context.Context, word, sourceLang, targetLang string) ([]domain.Example, error) {
	if word == "" {
		return nil, nil
	}

	prompt := fmt.Sprintf(`I want you to generate 5 flashcards. Generate these flashcards in a json format.
The first field is called "question" and will be in %s, this field MUST contain the word %q (and NOT be conjugated differently) with a surrounding context created for it.
The second field is called "answer". This field will contain the same sentence as is contained in "question" HOWEVER, it must be in %s.
If possible vary the context provided in the question field.
Provide the response only in json.`,
		strings.ToUpper(LanguageName(sourceLang)), word, strings.ToUpper(LanguageName(targetLang)))

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("example service returned status %d", resp.StatusCode)
	}

	var data chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode example response: %w", err)
	}
	if len(data.Choices) == 0 {
		return nil, fmt.Errorf("example service returned no choices")
	}

	examples, err := extractExamples(data.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated examples: %w", err)
	}
	return examples, nil
}

// extractExamples pulls the JSON array out of the model reply. The model
// still wraps the array in prose or a code fence now and then, so anything
// outside the outermost brackets is discarded.
func extractExamples(content string) ([]domain.Example, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in reply")
	}

	var examples []domain.Example
	if err := json.Unmarshal([]byte(content[start:end+1]), &examples); err != nil {
		return nil, err
	}
	return examples, nil
}
