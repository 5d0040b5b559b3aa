package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"meetup/internal/models/response_models"
	"meetup/pkg/metrics"
)

const defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Map center used when a venue cannot be geocoded.
const (
	DefaultCenterLat = 51.5074
	DefaultCenterLng = -0.1278
)

type GeocodeService interface {
	// PinVenues never fails; venues that cannot be located get an
	// approximate pin offset from the default center by their index.
	PinVenues(ctx context.Context, venues []response_models.VenueCandidate) []response_models.VenuePin
}

type GoogleGeocodeClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	Limiter *rate.Limiter
	log     *zap.Logger
}

type GeocodeConfig struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

func NewGoogleGeocodeClient(cfg GeocodeConfig, log *zap.Logger) *GoogleGeocodeClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeocodeURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}
	return &GoogleGeocodeClient{
		HTTP:    &http.Client{Timeout: cfg.Timeout},
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Limiter: limiter,
		log:     log.Named("geocode"),
	}
}

// ApproximatePin is the deterministic fallback position for the i-th venue.
func ApproximatePin(i int, v response_models.VenueCandidate) response_models.VenuePin {
	return response_models.VenuePin{
		Name:        v.Name,
		Address:     v.Address,
		Latitude:    DefaultCenterLat + float64(i)*0.01 - 0.02,
		Longitude:   DefaultCenterLng + float64(i)*0.01 - 0.02,
		Approximate: true,
	}
}

func (c *GoogleGeocodeClient) PinVenues(ctx context.Context, venues []response_models.VenueCandidate) []response_models.VenuePin {
	pins := make([]response_models.VenuePin, len(venues))
	for i, v := range venues {
		pins[i] = ApproximatePin(i, v)
		if c.APIKey == "" {
			continue
		}

		start := time.Now()
		lat, lng, err := c.lookup(ctx, v.Address)
		metrics.ExternalCallDuration.WithLabelValues(metrics.ServiceGeocode).Observe(time.Since(start).Seconds())
		if err != nil {
			c.log.Warn("geocode failed, using approximate pin", zap.String("address", v.Address), zap.Error(err))
			metrics.ExternalCallsTotal.WithLabelValues(metrics.ServiceGeocode, metrics.OutcomeDegraded).Inc()
			continue
		}
		metrics.ExternalCallsTotal.WithLabelValues(metrics.ServiceGeocode, metrics.OutcomeOK).Inc()
		pins[i].Latitude = lat
		pins[i].Longitude = lng
		pins[i].Approximate = false
	}
	return pins
}

type geocodePayload struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *GoogleGeocodeClient) lookup(ctx context.Context, address string) (float64, float64, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return 0, 0, fmt.Errorf("rate limiter: %w", err)
		}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode base url: %w", err)
	}
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, 0, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return 0, 0, fmt.Errorf("geocode bad status: %s", resp.Status)
	}

	var payload geocodePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("geocode decode: %w", err)
	}
	if payload.Status != "OK" || len(payload.Results) == 0 {
		return 0, 0, fmt.Errorf("geocode status %s", payload.Status)
	}
	loc := payload.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
