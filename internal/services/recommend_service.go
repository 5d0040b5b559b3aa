package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"meetup/internal/models/request_models"
	"meetup/internal/models/response_models"
	"meetup/pkg/metrics"
	"meetup/pkg/utils"
)

const (
	defaultDescription  = "Great venue for your meetup."
	descriptionFallback = "Excellent %s venue in a convenient location."
)

type RecommendServiceInterface interface {
	Recommend(ctx context.Context, req request_models.MeetingRequest) (*response_models.RecommendationResult, error)
	// RecommendDocument never fails: errors come back as text starting with
	// utils.ErrorPrefix.
	RecommendDocument(ctx context.Context, req request_models.MeetingRequest) string
}

type RecommendOptions struct {
	MaxConcurrency int
	LLMTimeout     time.Duration
	Limits         VenueLineLimits
}

type RecommendService struct {
	llm        utils.TextGenerator
	directions DirectionsService
	ranker     *FairnessRanker
	opts       RecommendOptions
	now        func() time.Time
	log        *zap.Logger
}

// NewRecommendService accepts a nil or unavailable llm; every request then
// fails with the credential error before any outbound call.
func NewRecommendService(
	llm utils.TextGenerator,
	directions DirectionsService,
	ranker *FairnessRanker,
	opts RecommendOptions,
	log *zap.Logger,
) *RecommendService {
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}
	if opts.Limits == (VenueLineLimits{}) {
		opts.Limits = DefaultVenueLineLimits
	}
	return &RecommendService{
		llm:        llm,
		directions: directions,
		ranker:     ranker,
		opts:       opts,
		now:        time.Now,
		log:        log.Named("recommend"),
	}
}

func ValidateMeetingRequest(req request_models.MeetingRequest) error {
	if len(req.Locations) == 0 {
		return fmt.Errorf("%w: at least one starting location is required", utils.ErrInvalidInput)
	}
	if len(req.Locations) > request_models.MaxParticipants {
		return fmt.Errorf("%w: at most %d starting locations are supported", utils.ErrInvalidInput, request_models.MaxParticipants)
	}
	for i, loc := range req.Locations {
		if strings.TrimSpace(loc) == "" {
			return fmt.Errorf("%w: please fill in all starting locations (person %d is empty)", utils.ErrInvalidInput, i+1)
		}
	}
	if strings.TrimSpace(req.Activity) == "" {
		return fmt.Errorf("%w: activity is required", utils.ErrInvalidInput)
	}
	if req.SpecifyArea && strings.TrimSpace(req.MeetingArea) == "" {
		return fmt.Errorf("%w: please specify a meeting area or turn off the area preference", utils.ErrInvalidInput)
	}
	return nil
}

func Summarize(req request_models.MeetingRequest) response_models.MeetingSummary {
	return response_models.MeetingSummary{
		Locations:      req.Locations,
		TransportModes: req.TransportModes,
		Activity:       req.Activity,
		Mood:           req.Mood,
		MeetingArea:    req.MeetingArea,
		Notes:          req.Notes,
		MeetingTime:    req.MeetingTime,
	}
}

// Recommend runs the suggestion, enrichment, ranking and rendering steps.
// Panics are converted to ErrRecommendationFailed.
func (s *RecommendService) Recommend(ctx context.Context, req request_models.MeetingRequest) (result *response_models.RecommendationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("recommendation panicked", zap.Any("panic", r))
			metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			result, err = nil, fmt.Errorf("%w: %v", utils.ErrRecommendationFailed, r)
		}
	}()

	if err := ValidateMeetingRequest(req); err != nil {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	req = req.Normalize(s.now())

	if err := utils.GeneratorUnavailable(s.llm); err != nil {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	raw, err := s.generate(ctx, buildSuggestionRequest(req))
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: %v", utils.ErrSuggestionFailed, err)
	}

	parsed := ParseVenuesWithTier(raw, s.opts.Limits)
	if parsed.Tier != TierFiltered {
		s.log.Warn("venue suggestions degraded", zap.String("tier", parsed.Tier), zap.Int("venues", len(parsed.Venues)))
	}

	recs, err := s.enrich(ctx, req, parsed.Venues)
	if err != nil {
		s.log.Error("venue enrichment failed", zap.Error(err))
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	degraded := false
	for i := range recs {
		legs := make([]response_models.TravelLeg, len(recs[i].Legs))
		for j, pl := range recs[i].Legs {
			legs[j] = pl.Leg
			if !pl.Leg.HasDuration {
				degraded = true
			}
		}
		stats := s.ranker.Stats(legs)
		recs[i].Score = stats.Score
		recs[i].AverageMinutes = stats.AverageMinutes
		recs[i].MaxMinutes = stats.MaxMinutes
	}
	s.ranker.Rank(recs)

	meeting := Summarize(req)
	outcome := metrics.OutcomeOK
	if degraded || parsed.Tier != TierFiltered {
		outcome = metrics.OutcomeDegraded
	}
	metrics.RecommendationsTotal.WithLabelValues(outcome).Inc()
	s.log.Info("recommendations ready",
		zap.Int("participants", len(req.Locations)),
		zap.Int("venues", len(recs)),
		zap.String("outcome", outcome))

	return &response_models.RecommendationResult{
		Meeting:         meeting,
		Recommendations: recs,
		Document:        RenderDocument(meeting, recs),
	}, nil
}

// enrich fills descriptions and travel legs. Every task writes into its own
// pre-allocated slot. Tasks only fail by panicking.
func (s *RecommendService) enrich(ctx context.Context, req request_models.MeetingRequest, venues []response_models.VenueCandidate) ([]response_models.RankedRecommendation, error) {
	modes := req.Modes()
	recs := make([]response_models.RankedRecommendation, len(venues))
	for i, v := range venues {
		recs[i] = response_models.RankedRecommendation{
			Venue: v,
			Legs:  make([]response_models.ParticipantLeg, len(req.Locations)),
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrency)

	for i := range recs {
		g.Go(recovered(func() {
			recs[i].Venue.Description = s.describe(gctx, recs[i].Venue.Name, req)
		}))
		for p, origin := range req.Locations {
			g.Go(recovered(func() {
				leg := s.directions.GetTravelLeg(gctx, origin, recs[i].Venue.Address, modes[p].Resolve(), req.MeetingTime)
				recs[i].Legs[p] = response_models.ParticipantLeg{
					Person:        p + 1,
					RequestedMode: string(modes[p]),
					Leg:           leg,
				}
			}))
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return recs, nil
}

func recovered(fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", utils.ErrRecommendationFailed, r)
			}
		}()
		fn()
		return nil
	}
}

func (s *RecommendService) describe(ctx context.Context, venueName string, req request_models.MeetingRequest) string {
	text, err := s.generate(ctx, buildDescriptionRequest(venueName, req))
	if err != nil {
		s.log.Warn("venue description failed", zap.String("venue", venueName), zap.Error(err))
		return fmt.Sprintf(descriptionFallback, strings.ToLower(req.Activity))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return defaultDescription
	}
	return text
}

func (s *RecommendService) generate(ctx context.Context, req utils.CompletionRequest) (string, error) {
	return generateText(ctx, s.llm, req, s.opts.LLMTimeout)
}

func (s *RecommendService) RecommendDocument(ctx context.Context, req request_models.MeetingRequest) string {
	result, err := s.Recommend(ctx, req)
	if err != nil {
		return utils.UserMessage(err)
	}
	return result.Document
}

// generateText runs one text generation call under an optional timeout and
// records its latency and outcome.
func generateText(ctx context.Context, llm utils.TextGenerator, req utils.CompletionRequest, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := llm.Generate(ctx, req)
	metrics.ExternalCallDuration.WithLabelValues(metrics.ServiceLLM).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues(metrics.ServiceLLM, metrics.OutcomeError).Inc()
		return "", err
	}
	metrics.ExternalCallsTotal.WithLabelValues(metrics.ServiceLLM, metrics.OutcomeOK).Inc()
	return text, nil
}
