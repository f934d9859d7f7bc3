package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fenceplan/fenceplan/internal/config"
	"github.com/fenceplan/fenceplan/pkg/response"
)

// GeocodeService resolves street addresses to map coordinates through a
// Nominatim-compatible search endpoint. Calls are synchronous and not
// retried; a failure surfaces directly as a search error to the caller.
type GeocodeService struct {
	baseURL string
	client  *http.Client
}

func NewGeocodeService(cfg *config.GeocoderConfig) *GeocodeService {
	return &GeocodeService{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type GeocodeResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}

// nominatimPlace is the upstream wire format; lat/lon arrive as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search geocodes a freeform address query.
func (s *GeocodeService) Search(ctx context.Context, query string) ([]GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, response.NewValidation("q", "Search query is required")
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "5")
	params.Set("q", query)

	reqURL := fmt.Sprintf("%s/search?%s", s.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "fenceplan/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, response.NewUpstream("Address search failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, response.NewUpstream("Address search failed")
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, response.NewUpstream("Address search failed")
	}

	results := make([]GeocodeResult, 0, len(places))
	for _, p := range places {
		lat, latErr := strconv.ParseFloat(p.Lat, 64)
		lng, lngErr := strconv.ParseFloat(p.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		results = append(results, GeocodeResult{Lat: lat, Lng: lng, DisplayName: p.DisplayName})
	}
	return results, nil
}
