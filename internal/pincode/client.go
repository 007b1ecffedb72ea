package pincode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrInvalidPincode = errors.New("invalid_pincode")

// Area is one post office entry for a pincode.
type Area struct {
	Name     string `json:"Name"`
	District string `json:"District"`
	State    string `json:"State"`
	Country  string `json:"Country"`
}

// Validate checks the Indian six-digit pincode shape.
func Validate(code string) error {
	code = strings.TrimSpace(code)
	if len(code) != 6 {
		return fmt.Errorf("%w: must be 6 digits", ErrInvalidPincode)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: must be 6 digits", ErrInvalidPincode)
		}
	}
	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup resolves a pincode to its post office areas via the public
// postalpincode.in API.
func (c *Client) Lookup(ctx context.Context, code string) ([]Area, error) {
	if err := Validate(code); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pincode/"+code, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pincode lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pincode lookup: status %d", resp.StatusCode)
	}

	var payload []struct {
		Status     string `json:"Status"`
		PostOffice []Area `json:"PostOffice"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("pincode lookup: decode: %w", err)
	}
	if len(payload) == 0 || payload[0].Status != "Success" {
		return nil, fmt.Errorf("%w: no record", ErrInvalidPincode)
	}
	return payload[0].PostOffice, nil
}
