// Package translate holds the clients for the two external collaborators:
// the translation service and the usage-example generator. Both are
// best-effort, single-attempt calls; nothing here is retried or cached, and
// failures are for the boundary to log and render as "no result".
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const deeplBaseURL = "https://api-free.deepl.com/v2/translate"

// DeepLClient translates text through the DeepL REST API.
type DeepLClient struct {
	httpClient *http.Client
	authKey    string
	baseURL    string
}

// NewDeepLClient returns a client using the given auth key.
func NewDeepLClient(authKey string) *DeepLClient {
	return &DeepLClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		authKey:    authKey,
		baseURL:    deeplBaseURL,
	}
}

type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate returns text rendered in the target language. Empty input
// translates to empty output without a request.
func (c *DeepLClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if text == "" {
		return "", nil
	}

	params := url.Values{}
	params.Set("auth_key", c.authKey)
	params.Set("text", text)
	params.Set("source_lang", sourceLang)
	params.Set("target_lang", targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation service returned status %d", resp.StatusCode)
	}

	var data deeplResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}
	if len(data.Translations) == 0 {
		return "", fmt.Errorf("translation service returned no translations")
	}
	return data.Translations[0].Text, nil
}
