package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

var (
	ErrEmptyLocation = errors.New("empty location")
	ErrNoResult      = errors.New("no geocoding result")
)

// GeoPoint is the first geocoding match for a location string.
type GeoPoint struct {
	Address string
	Lat     float64
	Lng     float64
	PlaceID string
	Partial bool
}

// GeocodeService resolves item locations with the Google Geocoding API.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a GeocodeService. Extra options (base URL, HTTP client) are
// applied after the API key.
func NewGeocodeService(apiKey string, opts ...maps.ClientOption) (*GeocodeService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// Resolve geocodes location and returns the first result.
func (s *GeocodeService) Resolve(ctx context.Context, location string) (*GeoPoint, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrEmptyLocation
	}

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: location})
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoResult
	}

	r := results[0]
	return &GeoPoint{
		Address: r.FormattedAddress,
		Lat:     r.Geometry.Location.Lat,
		Lng:     r.Geometry.Location.Lng,
		PlaceID: r.PlaceID,
		Partial: r.PartialMatch,
	}, nil
}
