package toornament

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the public Toornament API.
const DefaultBaseURL = "https://api.toornament.com"

// contentRangePattern matches "participants 0-49/127" and "participants */0".
var contentRangePattern = regexp.MustCompile(`^\s*\w+\s+(?:\d+-\d+|\*)/(\d+)\s*$`)

// APIClient is a Toornament organizer API client.
type APIClient struct {
	httpClient  *http.Client
	BaseURL     string
	APIKey      string
	AccessToken string
}

// NewClient creates a new Toornament client.
func NewClient(baseURL, apiKey, accessToken string, timeout time.Duration) ToornamentClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &APIClient{
		httpClient:  &http.Client{Timeout: timeout},
		BaseURL:     baseURL,
		APIKey:      apiKey,
		AccessToken: accessToken,
	}
}

var _ ToornamentClient = (*APIClient)(nil)

// GetParticipants walks every page of the participant list of a tournament.
func (c *APIClient) GetParticipants(ctx context.Context, tournamentID string) (*ParticipantList, error) {
	var (
		raw    []json.RawMessage
		offset = 0
	)

	for {
		page, total, err := c.getPage(ctx, tournamentID, offset)
		if err != nil {
			return nil, err
		}
		raw = append(raw, page...)
		log.Debug("Fetched participant page", "tournamentID", tournamentID, "offset", offset, "count", len(page), "total", total)

		offset += PageSize
		if offset >= total || len(page) == 0 {
			break
		}
	}

	participants := make([]Participant, 0, len(raw))
	for _, item := range raw {
		var p Participant
		if err := json.Unmarshal(item, &p); err != nil {
			return nil, fmt.Errorf("failed to decode participant: %w", err)
		}
		participants = append(participants, p)
	}

	if raw == nil {
		raw = []json.RawMessage{}
	}
	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode participants: %w", err)
	}
	log.Info("Fetched all participants", "tournamentID", tournamentID, "count", len(participants))
	return &ParticipantList{Participants: participants, Raw: payload}, nil
}

// getPage requests the range [offset, offset+PageSize-1] and returns its items
// together with the total count announced by the server.
func (c *APIClient) getPage(ctx context.Context, tournamentID string, offset int) ([]json.RawMessage, int, error) {
	q := url.Values{}
	q.Set("tournament_ids", tournamentID)
	endpoint := fmt.Sprintf("%s/organizer/v2/participants?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.APIKey)
	if c.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	}
	req.Header.Set("Range", fmt.Sprintf("participants=%d-%d", offset, offset+PageSize-1))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	total, err := parseTotal(resp.Header.Get("Content-Range"))
	if resp.StatusCode == http.StatusRequestedRangeNotSatisfiable && err == nil {
		// Asking for the first page of an empty list.
		return nil, total, nil
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("Received non-OK HTTP status from Toornament API", "status", resp.StatusCode, "body", string(body))
		return nil, 0, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}
	if err != nil {
		return nil, 0, err
	}

	var page []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, 0, fmt.Errorf("failed to decode response: %w", err)
	}
	return page, total, nil
}

func parseTotal(header string) (int, error) {
	m := contentRangePattern.FindStringSubmatch(header)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMissingRange, header)
	}
	total, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMissingRange, header)
	}
	return total, nil
}
