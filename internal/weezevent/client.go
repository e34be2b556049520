package weezevent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the public Weezevent API.
const DefaultBaseURL = "https://api.weezevent.com"

// APIClient is a Weezevent API client that implements the WeezeventClient interface.
type APIClient struct {
	httpClient  *http.Client
	BaseURL     string
	AccessToken string
	APIKey      string
}

// NewClient creates a new Weezevent client.
func NewClient(baseURL, accessToken, apiKey string, timeout time.Duration) WeezeventClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &APIClient{
		httpClient:  &http.Client{Timeout: timeout},
		BaseURL:     baseURL,
		AccessToken: accessToken,
		APIKey:      apiKey,
	}
}

// Ensure APIClient implements the WeezeventClient interface.
var _ WeezeventClient = (*APIClient)(nil)

// GetParticipants fetches every participant holding one of ticketIDs for the
// given event in a single request.
func (c *APIClient) GetParticipants(ctx context.Context, eventID string, ticketIDs []string) (*ParticipantList, error) {
	q := url.Values{}
	q.Set("access_token", c.AccessToken)
	q.Set("api_key", c.APIKey)
	q.Add("id_event[]", eventID)
	for _, id := range ticketIDs {
		q.Add("id_ticket[]", id)
	}
	q.Set("full", "true")
	endpoint := fmt.Sprintf("%s/participant/list?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Requesting participants from Weezevent API", "eventID", eventID, "ticketIDs", ticketIDs)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("Received non-OK HTTP status from Weezevent API", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var listResponse participantListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResponse); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	raw := bytes.TrimSpace(listResponse.Participants)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrMissingParticipants
	}

	var participants []Participant
	if err := json.Unmarshal(raw, &participants); err != nil {
		return nil, fmt.Errorf("failed to decode participants: %w", err)
	}
	log.Info("Successfully fetched participants", "eventID", eventID, "count", len(participants))
	return &ParticipantList{Participants: participants, Raw: raw}, nil
}
