// Package hostapi calls the voice host's device settings and customer profile APIs.
package hostapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/pkg/metrics"
)

const (
	deviceAddressPath = "/v1/devices/%s/settings/address/countryAndPostalCode"
	profileEmailPath  = "/v2/accounts/~current/settings/Profile.email"
)

var errNoEndpoint = errors.New("host api endpoint or access token missing")

// Client implements ports.DeviceAddressProvider and ports.ContactProvider.
// The endpoint and token come from each request's DeviceContext.
type Client struct {
	client *http.Client
}

// NewClient creates a new host API client.
func NewClient(timeout time.Duration) *Client {
	return &Client{client: &http.Client{Timeout: timeout}}
}

type countryAndPostalCode struct {
	CountryCode string  `json:"countryCode"`
	PostalCode  *string `json:"postalCode"`
}

// DeviceAddress returns the country and postal code registered for the device.
func (c *Client) DeviceAddress(ctx context.Context, device domain.DeviceContext) (domain.DeviceAddress, error) {
	if device.DeviceID == "" {
		return domain.DeviceAddress{}, errors.New("device id missing")
	}
	path := fmt.Sprintf(deviceAddressPath, url.PathEscape(device.DeviceID))

	var body countryAndPostalCode
	start := time.Now()
	err := c.getJSON(ctx, device, path, &body)
	metrics.ObserveProvider("host_device_address", start, err)
	if err != nil {
		return domain.DeviceAddress{}, err
	}
	return domain.DeviceAddress{CountryCode: body.CountryCode, PostalCode: body.PostalCode}, nil
}

// Email returns the customer's profile email. A profile without an email
// yields "".
func (c *Client) Email(ctx context.Context, device domain.DeviceContext) (string, error) {
	var email string
	start := time.Now()
	err := c.getJSON(ctx, device, profileEmailPath, &email)
	metrics.ObserveProvider("host_profile_email", start, err)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(email), nil
}

func (c *Client) getJSON(ctx context.Context, device domain.DeviceContext, path string, out any) error {
	if device.APIEndpoint == "" || device.APIAccessToken == "" {
		return errNoEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(device.APIEndpoint, "/")+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+device.APIAccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("host api request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return nil
	case http.StatusForbidden, http.StatusUnauthorized:
		return domain.ErrConsentRequired
	default:
		return fmt.Errorf("host api upstream error: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode host api payload: %w", err)
	}
	return nil
}
