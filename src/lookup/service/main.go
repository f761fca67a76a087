package lookup_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// PlateResolver looks up the VIN behind a license plate. The lookup vendor
// is an external collaborator; only this boundary is part of the system.
type PlateResolver interface {
	ResolveVIN(ctx context.Context, plate, region string) (string, error)
}

var ErrPlateNotFound = errors.New("plate not found")

// HTTPPlateResolver implements PlateResolver against a JSON lookup vendor.
type HTTPPlateResolver struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPPlateResolver(baseURL, apiKey string) *HTTPPlateResolver {
	return &HTTPPlateResolver{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *HTTPPlateResolver) ResolveVIN(ctx context.Context, plate, region string) (string, error) {
	if r.baseURL == "" {
		return "", errors.New("plate lookup is not configured")
	}

	endpoint := fmt.Sprintf("%s/v1/plate?plate=%s&region=%s",
		r.baseURL, url.QueryEscape(plate), url.QueryEscape(region))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("plate lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrPlateNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("plate lookup returned status %d", resp.StatusCode)
	}

	var body struct {
		VIN string `json:"vin"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode plate lookup response: %w", err)
	}
	if body.VIN == "" {
		return "", ErrPlateNotFound
	}
	return body.VIN, nil
}
