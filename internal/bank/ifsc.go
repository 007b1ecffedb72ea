package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"
)

var ErrInvalidIFSC = errors.New("invalid_ifsc")

// BranchInfo is the subset of the Razorpay IFSC payload the profile
// screens need.
type BranchInfo struct {
	IFSC   string `json:"IFSC"`
	Bank   string `json:"BANK"`
	Branch string `json:"BRANCH"`
	City   string `json:"CITY"`
	State  string `json:"STATE"`
}

// ValidateIFSC checks the Indian IFSC shape: four alphabetic bank
// characters, a literal zero, then six alphanumerics.
func ValidateIFSC(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 11 {
		return fmt.Errorf("%w: must be 11 characters", ErrInvalidIFSC)
	}
	for _, r := range code[:4] {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%w: bank code must be alphabetic", ErrInvalidIFSC)
		}
	}
	if code[4] != '0' {
		return fmt.Errorf("%w: fifth character must be 0", ErrInvalidIFSC)
	}
	for _, r := range code[5:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("%w: branch code must be alphanumeric", ErrInvalidIFSC)
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

// Lookup resolves an IFSC code against the Razorpay public API. Format
// errors return ErrInvalidIFSC before any network call is made.
func (c *Client) Lookup(ctx context.Context, code string) (*BranchInfo, error) {
	if err := ValidateIFSC(code); err != nil {
		return nil, err
	}
	code = strings.ToUpper(strings.TrimSpace(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+code, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ifsc lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: not found", ErrInvalidIFSC)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ifsc lookup: status %d: %s", resp.StatusCode, string(body))
	}

	var info BranchInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("ifsc lookup: decode: %w", err)
	}
	return &info, nil
}
