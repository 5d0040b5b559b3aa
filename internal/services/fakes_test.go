package services

import (
	"context"
	"sync"
	"time"

	"meetup/internal/models/request_models"
	"meetup/internal/models/response_models"
	"meetup/pkg/utils"
)

type fakeGenerator struct {
	mu      sync.Mutex
	calls   []utils.CompletionRequest
	respond func(req utils.CompletionRequest) (string, error)
}

func (f *fakeGenerator) Generate(_ context.Context, req utils.CompletionRequest) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	return f.respond(req)
}

func (f *fakeGenerator) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGenerator) Calls() []utils.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]utils.CompletionRequest(nil), f.calls...)
}

type fakeDirections struct {
	mu    sync.Mutex
	calls int
	legFn func(origin, destination string, mode request_models.TravelMode) response_models.TravelLeg
}

func (f *fakeDirections) GetTravelLeg(_ context.Context, origin, destination string, mode request_models.TravelMode, _ time.Time) response_models.TravelLeg {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.legFn(origin, destination, mode)
}

func (f *fakeDirections) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func legSeconds(seconds int) response_models.TravelLeg {
	return response_models.TravelLeg{
		Status:          response_models.LegStatusOK,
		DurationSeconds: seconds,
		HasDuration:     true,
	}
}

func degradedLeg() response_models.TravelLeg {
	return response_models.TravelLeg{Status: response_models.LegStatusError}
}
