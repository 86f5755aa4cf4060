// Package address reads the delivery address owned by the Address Service.
package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Address is one delivery address record.
type Address struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

var postalRE = regexp.MustCompile(`^\d{5}$`)

// ValidPostalCode is the one address validation in scope: five digits.
func ValidPostalCode(code string) bool {
	return postalRE.MatchString(code)
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Active returns the user's delivery address, the first record the service
// lists. No address on file is (nil, nil), not an error; checkout turns
// that into its own precondition failure.
func (c *Client) Active(ctx context.Context, userID int64) (*Address, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%d", c.BaseURL, userID), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch address: %s", res.Status)
	}
	var list []Address
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}
