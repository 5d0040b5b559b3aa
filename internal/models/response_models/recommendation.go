package response_models

import "time"

type VenueCandidate struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
}

type LegStatus string

const (
	LegStatusOK           LegStatus = "ok"
	LegStatusNoCredential LegStatus = "no_credential"
	LegStatusNoRoute      LegStatus = "no_route"
	LegStatusError        LegStatus = "error"
)

// TravelLeg is one participant's journey to one venue. DurationSeconds is only
// authoritative when HasDuration is set; degraded legs still carry MapURL.
type TravelLeg struct {
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Mode            string    `json:"mode"`
	Status          LegStatus `json:"status"`
	DurationText    string    `json:"duration"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	HasDuration     bool      `json:"has_duration"`
	DistanceText    string    `json:"distance"`
	RouteInfo       string    `json:"route_info"`
	DepartureText   string    `json:"departure_time"`
	ArrivalText     string    `json:"arrival_time"`
	MapURL          string    `json:"google_maps_link"`
}

type ParticipantLeg struct {
	Person        int       `json:"person"`
	RequestedMode string    `json:"requested_mode"`
	Leg           TravelLeg `json:"leg"`
}

type RankedRecommendation struct {
	Venue          VenueCandidate   `json:"venue"`
	Legs           []ParticipantLeg `json:"legs"`
	Score          float64          `json:"score"`
	AverageMinutes int              `json:"average_minutes"`
	MaxMinutes     int              `json:"max_minutes"`
}

type MeetingSummary struct {
	Locations      []string  `json:"locations"`
	TransportModes []string  `json:"transport_modes"`
	Activity       string    `json:"activity"`
	Mood           string    `json:"mood"`
	MeetingArea    string    `json:"meeting_area,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	MeetingTime    time.Time `json:"meeting_time"`
}

type RecommendationResult struct {
	Meeting         MeetingSummary         `json:"meeting"`
	Recommendations []RankedRecommendation `json:"recommendations"`
	Document        string                 `json:"document"`
}

type VenuePin struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Approximate bool    `json:"approximate"`
}
