package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrPublishRejected is wrapped by every PublishError.
var ErrPublishRejected = errors.New("backend rejected roster")

// PublishError carries the error strings returned by the roster mutation.
type PublishError struct {
	Messages []string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPublishRejected, strings.Join(e.Messages, "; "))
}

func (e *PublishError) Unwrap() error {
	return ErrPublishRejected
}

// Edition is a scheduled instance of the event.
type Edition struct {
	ID    string
	Title string
	// EventID is the Weezevent event linked to the edition, if any.
	EventID string
	EndDate *time.Time
}

// Expired reports whether the edition ended before now. Editions without an
// end date never expire.
func (e Edition) Expired(now time.Time) bool {
	return e.EndDate != nil && e.EndDate.Before(now)
}

// Tournament is a competition of an edition.
type Tournament struct {
	ID        string
	Title     string
	EditionID string
	// GroupSize is the expected team size, 1 for solo tournaments and 0 when
	// the field is not filled in.
	GroupSize          int
	WeezeventTicketIDs []string
	ToornamentID       string
	OtherProviderID    string
}

// graphQLError is an entry of the top-level errors array.
type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors"`
}

func (r graphQLResponse[T]) err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("graphql errors: %s", strings.Join(msgs, "; "))
}

type nodeQueryData[T any] struct {
	NodeQuery *struct {
		Nodes []T `json:"nodes"`
	} `json:"nodeQuery"`
}

type dateField struct {
	Value string `json:"value"`
}

type editionNode struct {
	NID     flexString `json:"nid"`
	Title   string     `json:"title"`
	EventID flexString `json:"eventId"`
	EndDate *dateField `json:"endDate"`
}

type tournamentNode struct {
	NID             flexString `json:"nid"`
	Title           string     `json:"title"`
	WeezeventIDs    stringList `json:"weezeventIds"`
	ToornamentID    flexString `json:"toornamentId"`
	OtherProviderID flexString `json:"otherProviderId"`
	TeamSize        flexString `json:"teamSize"`
}

type publishInput struct {
	Data       string `json:"data"`
	Tournament string `json:"tournament"`
	Token      string `json:"token"`
	Count      int    `json:"count"`
}

type publishRequest struct {
	Query     string `json:"query"`
	Variables struct {
		Input publishInput `json:"input"`
	} `json:"variables"`
}

type publishData struct {
	CreateWeezevent *struct {
		Errors []string `json:"errors"`
	} `json:"createWeezevent"`
}

// flexString decodes a JSON string, number or null into a string. Drupal
// exposes integer fields as numbers and text fields as strings.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s, err := scalarString(data)
	if err != nil {
		return err
	}
	*f = flexString(s)
	return nil
}

// stringList decodes either a scalar or an array of scalars. Multi-value
// Drupal fields collapse to a scalar when their cardinality is one.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, err := scalarString(item)
			if err != nil {
				return err
			}
			if s != "" {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	}
	s, err := scalarString(data)
	if err != nil {
		return err
	}
	if s == "" {
		*l = nil
		return nil
	}
	*l = stringList{s}
	return nil
}

func scalarString(data []byte) (string, error) {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", raw)
	}
	return n.String(), nil
}
