package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"meetup/internal/models/request_models"
	"meetup/internal/models/response_models"
	"meetup/pkg/metrics"
	"meetup/pkg/utils"
)

const (
	defaultDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"
	mapsDirURL           = "https://www.google.com/maps/dir/"
)

type DirectionsService interface {
	// GetTravelLeg never fails: every failure mode comes back as a degraded leg
	// that still carries a deep link.
	GetTravelLeg(ctx context.Context, origin, destination string, mode request_models.TravelMode, referenceTime time.Time) response_models.TravelLeg
}

type GoogleDirectionsClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	Limiter *rate.Limiter
	Now     func() time.Time
	log     *zap.Logger
}

type DirectionsConfig struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

func NewGoogleDirectionsClient(cfg DirectionsConfig, log *zap.Logger) *GoogleDirectionsClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultDirectionsURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}
	return &GoogleDirectionsClient{
		HTTP:    &http.Client{Timeout: cfg.Timeout},
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Limiter: limiter,
		Now:     time.Now,
		log:     log.Named("directions"),
	}
}

type directionsPayload struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Duration struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration"`
			Distance struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

func (c *GoogleDirectionsClient) GetTravelLeg(ctx context.Context, origin, destination string, mode request_models.TravelMode, referenceTime time.Time) response_models.TravelLeg {
	mode = mode.Resolve()
	leg := response_models.TravelLeg{
		Origin:        origin,
		Destination:   destination,
		Mode:          string(mode),
		DistanceText:  "Unknown",
		DepartureText: "Unknown",
		ArrivalText:   "Unknown",
		MapURL:        DirectionsLink(origin, destination, mode),
	}

	if c.APIKey == "" {
		leg.Status = response_models.LegStatusNoCredential
		leg.DurationText = "API key not available"
		leg.RouteInfo = "Google Maps API key required for real-time data"
		metrics.ExternalCallsTotal.WithLabelValues(metrics.ServiceDirections, metrics.OutcomeDegraded).Inc()
		return leg
	}

	start := time.Now()
	payload, err := c.fetch(ctx, origin, destination, mode, referenceTime)
	metrics.ExternalCallDuration.WithLabelValues(metrics.ServiceDirections).Observe(time.Since(start).Seconds())
	if err != nil {
		c.log.Warn("directions lookup failed",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.String("mode", string(mode)),
			zap.Error(err))
		metrics.ExternalCallsTotal.WithLabelValues(metrics.ServiceDirections, metrics.OutcomeError).Inc()
		leg.Status = response_models.LegStatusError
		leg.DurationText = "Error calculating time"
		leg.RouteInfo = "API Error: " + err.Error()
		return leg
	}

	if payload.Status != "OK" || len(payload.Routes) == 0 || len(payload.Routes[0].Legs) == 0 {
		msg := payload.ErrorMessage
		if msg == "" {
			msg = "Route not found"
		}
		c.log.Warn("directions returned no route",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.String("mode", string(mode)),
			zap.String("status", payload.Status))
		metrics.ExternalCallsTotal.WithLabelValues(metrics.ServiceDirections, metrics.OutcomeDegraded).Inc()
		leg.Status = response_models.LegStatusNoRoute
		leg.DurationText = "Route not available"
		leg.RouteInfo = "Error: " + msg
		return leg
	}

	first := payload.Routes[0].Legs[0]
	arrival := referenceTime
	if arrival.IsZero() {
		arrival = c.Now()
	}
	departure := arrival.Add(-time.Duration(first.Duration.Value) * time.Second)

	leg.Status = response_models.LegStatusOK
	leg.DurationText = first.Duration.Text
	leg.DurationSeconds = first.Duration.Value
	leg.HasDuration = true
	leg.DistanceText = first.Distance.Text
	leg.RouteInfo = fmt.Sprintf("%s via %s", first.Duration.Text, mode)
	leg.DepartureText = utils.FormatClock(departure)
	leg.ArrivalText = utils.FormatClock(arrival)

	metrics.ExternalCallsTotal.WithLabelValues(metrics.ServiceDirections, metrics.OutcomeOK).Inc()
	c.log.Debug("directions lookup ok",
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.String("mode", string(mode)),
		zap.Int("duration_seconds", first.Duration.Value))
	return leg
}

func (c *GoogleDirectionsClient) fetch(ctx context.Context, origin, destination string, mode request_models.TravelMode, referenceTime time.Time) (*directionsPayload, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("directions base url: %w", err)
	}
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("mode", string(mode))
	q.Set("units", "metric")
	q.Set("key", c.APIKey)
	if !referenceTime.IsZero() && mode.IsTimeAware() {
		q.Set("departure_time", strconv.FormatInt(referenceTime.Unix(), 10))
	}
	if mode == request_models.TravelModeTransit {
		q.Set("alternatives", "true")
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("directions bad status: %s", resp.Status)
	}

	var payload directionsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("directions decode: %w", err)
	}
	return &payload, nil
}

// DirectionsLink builds the Google Maps deep link. It needs no network access
// and no credential.
func DirectionsLink(origin, destination string, mode request_models.TravelMode) string {
	return mapsDirURL +
		url.QueryEscape(origin) + "/" +
		url.QueryEscape(destination) +
		"/@?hl=en&travelmode=" + string(mode.Resolve())
}
