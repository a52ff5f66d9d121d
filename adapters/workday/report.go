// Package workday downloads JSON custom reports from Workday and turns
// them into response frames.
package workday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
)

// reportEnvelope is the wire shape of a Workday custom report. All rows
// live under the Report_Entry key.
type reportEnvelope struct {
	Entries []map[string]any `json:"Report_Entry"`
}

// Client fetches reports over HTTP with basic auth.
type Client struct {
	user     string
	password string
	http     *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// NewClient creates a report client with the given credentials.
func NewClient(user, password string, opts ...ClientOption) *Client {
	c := &Client{
		user:     user,
		password: password,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchReport downloads the report at url and shapes it into a frame.
// Columns come out sorted by field name so repeated fetches of the
// same report line up.
func (c *Client) FetchReport(ctx context.Context, url string) (*frame.Frame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.NewLoadingError(err.Error())
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, core.NewLoadingError(fmt.Sprintf("fetching report: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewLoadingError(fmt.Sprintf("report request failed: %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewLoadingError(fmt.Sprintf("reading report body: %v", err))
	}
	return parseReport(body)
}

func parseReport(body []byte) (*frame.Frame, error) {
	var envelope reportEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, core.NewUnknownFormatError("workday report body")
	}
	if envelope.Entries == nil {
		return nil, core.NewUnknownFormatError("workday report missing Report_Entry")
	}

	headers := fieldNames(envelope.Entries)
	records := make([][]frame.Value, 0, len(envelope.Entries))
	for _, entry := range envelope.Entries {
		record := make([]frame.Value, len(headers))
		for i, h := range headers {
			record[i] = cellValue(entry[h])
		}
		records = append(records, record)
	}
	return frame.FromRecords(headers, records)
}

func fieldNames(entries []map[string]any) []string {
	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		for name := range entry {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// cellValue narrows decoded JSON to the value types a frame holds.
// Nested objects and arrays are flattened to their JSON text.
func cellValue(v any) frame.Value {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return t
	case float64:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return nil
		}
		return string(raw)
	}
}
