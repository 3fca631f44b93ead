package journey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultTimeout = 30 * time.Second

// Client is a journey-service API client. Every request carries an OAuth2
// client-credentials bearer token and an Accept-Language header.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
}

// NewClient creates a new journey-service client. The token endpoint is
// called lazily and tokens are refreshed by the oauth2 transport.
func NewClient(baseURL, tokenURL, clientID, clientSecret, language string) *Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := cc.Client(context.Background())
	httpClient.Timeout = defaultTimeout

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		language:   language,
	}
}

type tripsRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	ForArrival  bool    `json:"forArrival"`
}

// Trips fetches journey candidates between two stop places, identified by
// their UIC codes.
func (c *Client) Trips(ctx context.Context, originUIC, destinationUIC string) (*TripResponse, error) {
	body, err := json.Marshal(tripsRequest{Origin: originUIC, Destination: destinationUIC})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := c.baseURL + "/v3/trips/by-origin-destination"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", c.language)
	req.Header.Set("Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result TripResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}
