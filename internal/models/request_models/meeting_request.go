package request_models

import (
	"strings"
	"time"
)

type TravelMode string

const (
	TravelModeAny       TravelMode = "any"
	TravelModeDriving   TravelMode = "driving"
	TravelModeTransit   TravelMode = "transit"
	TravelModeWalking   TravelMode = "walking"
	TravelModeBicycling TravelMode = "bicycling"
)

// ParseTravelMode accepts the UI spellings ("Any", "Driving", ...) as well as
// the lowercase wire values. Unknown values resolve to driving.
func ParseTravelMode(s string) TravelMode {
	switch TravelMode(strings.ToLower(strings.TrimSpace(s))) {
	case TravelModeAny:
		return TravelModeAny
	case TravelModeTransit:
		return TravelModeTransit
	case TravelModeWalking:
		return TravelModeWalking
	case TravelModeBicycling:
		return TravelModeBicycling
	default:
		return TravelModeDriving
	}
}

// Resolve maps "any" onto the concrete mode used for the directions lookup.
func (m TravelMode) Resolve() TravelMode {
	if m == TravelModeAny || m == "" {
		return TravelModeDriving
	}
	return m
}

func (m TravelMode) IsTimeAware() bool {
	return m == TravelModeDriving || m == TravelModeTransit
}

const (
	ActivityAny        = "Any"
	ActivityRestaurant = "Restaurant"
	ActivityCoffeeCafe = "Coffee/Cafe"
	ActivityBarPub     = "Bar/Pub"
	ActivityPark       = "Park"
	ActivityMuseum     = "Museum"
	ActivityShopping   = "Shopping"
	ActivityCinema     = "Cinema"
	ActivityGymFitness = "Gym/Fitness"
	ActivityOther      = "Other"
)

var Activities = []string{
	ActivityAny, ActivityRestaurant, ActivityCoffeeCafe, ActivityBarPub, ActivityPark,
	ActivityMuseum, ActivityShopping, ActivityCinema, ActivityGymFitness, ActivityOther,
}

const MoodAny = "Any"

var Moods = []string{
	MoodAny, "First Date", "Conversation Spot", "Live Music", "Good for After Activities",
	"Vibey/Trendy", "Quiet & Intimate", "Energetic & Fun", "Business Meeting",
	"Celebration", "Casual Hangout", "Other",
}

const MaxParticipants = 4

type MeetingRequest struct {
	Locations      []string  `json:"locations" binding:"required,min=1,max=4"`
	TransportModes []string  `json:"transport_modes"`
	Activity       string    `json:"activity" binding:"required"`
	ActivityOther  string    `json:"activity_other,omitempty"`
	Mood           string    `json:"mood"`
	MoodOther      string    `json:"mood_other,omitempty"`
	SpecifyArea    bool      `json:"specify_area"`
	MeetingArea    string    `json:"meeting_area,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	MeetingTime    time.Time `json:"meeting_time"`
}

// Normalize trims inputs, pads transport modes with driving so there is one per
// location, resolves "Other" free text and defaults the meeting time to now.
func (r MeetingRequest) Normalize(now time.Time) MeetingRequest {
	out := r
	out.Locations = make([]string, len(r.Locations))
	for i, loc := range r.Locations {
		out.Locations[i] = strings.TrimSpace(loc)
	}

	out.TransportModes = make([]string, len(out.Locations))
	for i := range out.Locations {
		mode := TravelModeDriving
		if i < len(r.TransportModes) {
			mode = ParseTravelMode(r.TransportModes[i])
		}
		out.TransportModes[i] = string(mode)
	}

	out.Activity = strings.TrimSpace(r.Activity)
	if out.Activity == ActivityOther && strings.TrimSpace(r.ActivityOther) != "" {
		out.Activity = strings.TrimSpace(r.ActivityOther)
	}
	out.Mood = strings.TrimSpace(r.Mood)
	if out.Mood == "" {
		out.Mood = MoodAny
	}
	if out.Mood == "Other" && strings.TrimSpace(r.MoodOther) != "" {
		out.Mood = strings.TrimSpace(r.MoodOther)
	}

	out.MeetingArea = strings.TrimSpace(r.MeetingArea)
	if !r.SpecifyArea {
		out.MeetingArea = ""
	}
	out.Notes = strings.TrimSpace(r.Notes)

	if out.MeetingTime.IsZero() {
		out.MeetingTime = now
	}
	return out
}

// Modes returns the per-participant transport preferences as typed values.
func (r MeetingRequest) Modes() []TravelMode {
	modes := make([]TravelMode, len(r.TransportModes))
	for i, m := range r.TransportModes {
		modes[i] = ParseTravelMode(m)
	}
	return modes
}

type FollowupRequest struct {
	Question string `json:"question" binding:"required"`
}
