// Package meetup is a minimal client for the Meetup REST API, used to pull
// the RSVPs of an event that was also announced on Meetup.
package meetup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrNotConfigured is returned when no API key or group is set.
var ErrNotConfigured = errors.New("meetup integration is not configured")

type Member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RSVP struct {
	Member   Member `json:"member"`
	Response string `json:"response"`
	Guests   int    `json:"guests"`
}

// FirstLast splits the member name on its first space.
func (r RSVP) FirstLast() (string, string) {
	name := strings.TrimSpace(r.Member.Name)
	first, last, _ := strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}

type Client struct {
	baseURL string
	apiKey  string
	group   string
	http    *http.Client
}

func NewClient(baseURL, apiKey, group string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		group:   group,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ListYesRSVPs returns the members who answered "yes" to eventID.
func (c *Client) ListYesRSVPs(ctx context.Context, eventID string) ([]RSVP, error) {
	if c.apiKey == "" || c.group == "" {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/%s/events/%s/rsvps?response=yes",
		c.baseURL, url.PathEscape(c.group), url.PathEscape(eventID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build meetup request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch meetup rsvps")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("meetup returned status %d for event %s", resp.StatusCode, eventID)
	}

	var rsvps []RSVP
	if err := json.NewDecoder(resp.Body).Decode(&rsvps); err != nil {
		return nil, errors.Wrap(err, "failed to decode meetup rsvps")
	}

	yes := rsvps[:0]
	for _, r := range rsvps {
		if r.Response == "yes" {
			yes = append(yes, r)
		}
	}
	return yes, nil
}
