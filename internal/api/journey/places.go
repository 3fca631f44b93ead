package journey

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var uicPattern = regexp.MustCompile(`^\d{6,8}$`)

// IsUIC reports whether s already is a numeric UIC stop-place code.
func IsUIC(s string) bool {
	return uicPattern.MatchString(s)
}

type placesResponse struct {
	Places []place `json:"places"`
}

type place struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ResolveStopPlace resolves a free-text place name to a stop-place UIC code
// using the first match. Inputs that already look like a UIC code are
// returned unchanged without a lookup.
func (c *Client) ResolveStopPlace(ctx context.Context, name string) (string, error) {
	if IsUIC(name) {
		return name, nil
	}

	query := url.Values{}
	query.Set("nameMatch", name)
	query.Set("type", "StopPlace")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v3/places?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", c.language)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	for _, p := range result.Places {
		if strings.EqualFold(p.Type, "StopPlace") && p.ID != "" {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("no stop place found for %q", name)
}
