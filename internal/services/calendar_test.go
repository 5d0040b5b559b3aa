package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"meetup/internal/models/response_models"
)

func TestMeetingInvite(t *testing.T) {
	meeting := response_models.MeetingSummary{
		Activity:    "Coffee/Cafe",
		Mood:        "Any",
		MeetingTime: testMeetingTime,
	}
	venue := response_models.VenueCandidate{Name: "Beta Coffee", Address: "2 Market Row"}

	invite := MeetingInvite("s1-1@meetup", meeting, venue, DefaultMeetingLength, testMeetingTime.Add(-24*time.Hour))

	assert.True(t, strings.HasPrefix(invite, "BEGIN:VCALENDAR"))
	assert.Contains(t, invite, "UID:s1-1@meetup")
	assert.Contains(t, invite, "SUMMARY:Meetup at Beta Coffee")
	assert.Contains(t, invite, "DTSTART:20250601T180000Z")
	assert.Contains(t, invite, "DTEND:20250601T200000Z")
	assert.Contains(t, invite, "END:VEVENT")
}
