package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/roster-sync/internal/roster"
)

const editionsQuery = `
{
  nodeQuery(filter: {conditions: [{field: "type", value: ["edition"], operator: EQUAL}, {field: "status", value: ["1"]}, {field: "field_edition_weezevent_active", value: ["1"]}]}, limit: 9999) {
    nodes: entities {
      ... on NodeEdition {
        nid
        title
        eventId: fieldEditionWeezeventEventId
        endDate: fieldEditionEndDate {
          value
        }
      }
    }
  }
}`

const tournamentsQuery = `
{
  nodeQuery(filter: {conditions: [{field: "type", value: ["tournament"], operator: EQUAL}, {field: "status", value: ["1"]}, {field: "field_tournament_edition", value: [%q]}]}, limit: 9999) {
    nodes: entities {
      ... on NodeTournament {
        nid
        title
        weezeventIds: fieldTournamentWeezeventId
        toornamentId: fieldTournamentToornamentId
        otherProviderId: fieldTournamentOtherProviderId
        teamSize: fieldWeezeventTeamSize
      }
    }
  }
}`

const publishMutation = `
mutation ($input: WeezeventInput) {
  createWeezevent(input: $input) {
    entity {
      entityLabel
    }
    errors
  }
}`

// dateLayouts are the formats Drupal uses for datetime fields.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// APIClient talks to the Drupal GraphQL endpoint.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
}

// NewClient creates a new backend client. token authorises roster mutations.
func NewClient(baseURL, token string, timeout time.Duration) Gateway {
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
		Token:      token,
	}
}

var _ Gateway = (*APIClient)(nil)

// ListEditions returns the published editions flagged active for sync.
func (c *APIClient) ListEditions(ctx context.Context) ([]Edition, error) {
	var resp graphQLResponse[nodeQueryData[editionNode]]
	if err := c.query(ctx, editionsQuery, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}
	if resp.Data.NodeQuery == nil {
		return nil, errors.New("response has no nodeQuery")
	}

	editions := make([]Edition, 0, len(resp.Data.NodeQuery.Nodes))
	for _, n := range resp.Data.NodeQuery.Nodes {
		e := Edition{ID: string(n.NID), Title: n.Title, EventID: string(n.EventID)}
		if n.EndDate != nil && n.EndDate.Value != "" {
			end, err := parseDate(n.EndDate.Value)
			if err != nil {
				log.Warn("Ignoring unparsable edition end date", "editionID", e.ID, "value", n.EndDate.Value, "error", err)
			} else {
				e.EndDate = &end
			}
		}
		editions = append(editions, e)
	}
	return editions, nil
}

// ListTournaments returns the published tournaments of an edition.
func (c *APIClient) ListTournaments(ctx context.Context, editionID string) ([]Tournament, error) {
	var resp graphQLResponse[nodeQueryData[tournamentNode]]
	if err := c.query(ctx, fmt.Sprintf(tournamentsQuery, editionID), &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}
	if resp.Data.NodeQuery == nil {
		return nil, errors.New("response has no nodeQuery")
	}

	tournaments := make([]Tournament, 0, len(resp.Data.NodeQuery.Nodes))
	for _, n := range resp.Data.NodeQuery.Nodes {
		t := Tournament{
			ID:                 string(n.NID),
			Title:              n.Title,
			EditionID:          editionID,
			WeezeventTicketIDs: []string(n.WeezeventIDs),
			ToornamentID:       string(n.ToornamentID),
			OtherProviderID:    string(n.OtherProviderID),
		}
		if n.TeamSize != "" {
			size, err := strconv.Atoi(string(n.TeamSize))
			if err != nil {
				log.Warn("Ignoring invalid team size", "tournamentID", t.ID, "value", n.TeamSize)
			} else {
				t.GroupSize = size
			}
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}

// PublishRoster stores the roster of a tournament. A response carrying errors
// is returned as a *PublishError.
func (c *APIClient) PublishRoster(ctx context.Context, tournamentID string, r roster.Roster) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}

	var body publishRequest
	body.Query = publishMutation
	body.Variables.Input = publishInput{
		Data:       string(data),
		Tournament: tournamentID,
		Token:      c.Token,
		Count:      r.Len(),
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode mutation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var resp graphQLResponse[publishData]
	if err := c.do(req, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return &PublishError{Messages: msgs}
	}
	if resp.Data.CreateWeezevent == nil {
		return &PublishError{Messages: []string{"response has no createWeezevent result"}}
	}
	if errs := resp.Data.CreateWeezevent.Errors; len(errs) > 0 {
		return &PublishError{Messages: errs}
	}
	log.Debug("Roster accepted by backend", "tournamentID", tournamentID, "count", r.Len())
	return nil
}

func (c *APIClient) query(ctx context.Context, query string, out any) error {
	endpoint := fmt.Sprintf("%s/graphql?query=%s", c.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *APIClient) do(req *http.Request, out any) error {
	log.Debug("Calling backend", "method", req.Method, "url", req.URL.Path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("Received non-OK HTTP status from backend", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
