package services

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"meetup/internal/models/response_models"
)

const DefaultMeetingLength = 2 * time.Hour

// MeetingInvite renders an iCalendar invite for one recommended venue. The
// event starts at the meeting time.
func MeetingInvite(uid string, meeting response_models.MeetingSummary, venue response_models.VenueCandidate, length time.Duration, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//meetup//venue finder//EN")

	event := cal.AddEvent(uid)
	event.SetDtStampTime(now)
	event.SetStartAt(meeting.MeetingTime)
	event.SetEndAt(meeting.MeetingTime.Add(length))
	event.SetSummary("Meetup at " + venue.Name)
	event.SetLocation(venue.Address)
	event.SetDescription(fmt.Sprintf("Activity: %s\nMood: %s\n%s", meeting.Activity, meeting.Mood, venue.Description))
	return cal.Serialize()
}
