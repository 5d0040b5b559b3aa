package services

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"meetup/internal/models/request_models"
	"meetup/internal/models/response_models"
	"meetup/pkg/utils"
)

var modeEmoji = map[request_models.TravelMode]string{
	request_models.TravelModeAny:       "🔄",
	request_models.TravelModeDriving:   "🚗",
	request_models.TravelModeTransit:   "🚌",
	request_models.TravelModeWalking:   "🚶",
	request_models.TravelModeBicycling: "🚴",
}

// VenueHeadingPrefix starts every venue block in a rendered document.
const VenueHeadingPrefix = "## 📍 "

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func modeLabel(requested request_models.TravelMode) string {
	if requested == request_models.TravelModeAny {
		return fmt.Sprintf("Any (using %s)", titleCase(string(requested.Resolve())))
	}
	return titleCase(string(requested))
}

func renderLeg(pl response_models.ParticipantLeg) string {
	requested := request_models.ParseTravelMode(pl.RequestedMode)
	emoji, ok := modeEmoji[requested]
	if !ok {
		emoji = modeEmoji[request_models.TravelModeDriving]
	}
	return fmt.Sprintf("• **Person %d** (%s %s): Leave at %s • Journey time: %s • [Get directions](%s)",
		pl.Person, emoji, modeLabel(requested), pl.Leg.DepartureText, pl.Leg.DurationText, pl.Leg.MapURL)
}

func renderVenue(rec response_models.RankedRecommendation) string {
	lines := lo.Map(rec.Legs, func(pl response_models.ParticipantLeg, _ int) string {
		return renderLeg(pl)
	})

	var b strings.Builder
	b.WriteString(VenueHeadingPrefix + rec.Venue.Name + "\n\n")
	fmt.Fprintf(&b, "**Address**: %s\n\n", rec.Venue.Address)
	fmt.Fprintf(&b, "**Why this venue**: %s\n\n", rec.Venue.Description)
	b.WriteString("**🚶‍♂️ Travel Details:**  \n")
	b.WriteString(strings.Join(lines, "  \n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**📊 Summary**: Average %d mins • Longest journey %d mins\n\n---\n", rec.AverageMinutes, rec.MaxMinutes)
	return b.String()
}

// RenderDocument lays out the ranked venues as a markdown document: meeting
// details, one block per venue in the given order, then a tips line.
func RenderDocument(meeting response_models.MeetingSummary, recs []response_models.RankedRecommendation) string {
	var b strings.Builder
	b.WriteString("# 🎯 Venue Recommendations\n\n")
	b.WriteString("**Meeting Details:**\n")
	fmt.Fprintf(&b, "• **📅 When**: %s\n", utils.FormatMeetingDate(meeting.MeetingTime))
	if isAny(meeting.Activity) {
		b.WriteString("• **🎪 Activity**: Any (flexible)\n")
	} else {
		fmt.Fprintf(&b, "• **🎪 Activity**: %s\n", meeting.Activity)
	}
	if isAny(meeting.Mood) {
		b.WriteString("• **🎭 Mood/Objective**: Any (open to suggestions)\n")
	} else {
		fmt.Fprintf(&b, "• **🎭 Mood/Objective**: %s\n", meeting.Mood)
	}
	fmt.Fprintf(&b, "• **👥 Group**: %d people\n", len(meeting.Locations))
	if meeting.MeetingArea != "" {
		fmt.Fprintf(&b, "• **📍 Area**: %s\n", meeting.MeetingArea)
	} else {
		b.WriteString("• **🎯 Strategy**: Halfway between all locations\n")
	}
	if meeting.Notes != "" {
		fmt.Fprintf(&b, "• **📝 Notes**: %s\n", meeting.Notes)
	}
	b.WriteString("\n")

	blocks := lo.Map(recs, func(rec response_models.RankedRecommendation, _ int) string {
		return renderVenue(rec)
	})
	b.WriteString(strings.Join(blocks, "\n"))
	b.WriteString("\n")

	fmt.Fprintf(&b, "💡 **Tips**: Venues ranked by convenience and fairness. All times calculated to arrive by %s. ",
		utils.FormatClock(meeting.MeetingTime))
	if isAny(meeting.Mood) {
		b.WriteString("Versatile venues selected to accommodate different preferences!\n")
	} else {
		fmt.Fprintf(&b, "Venues selected to match your %s vibe!\n", strings.ToLower(meeting.Mood))
	}
	return b.String()
}

// RenderContext is the prior-recommendation text handed to the follow-up
// responder.
func RenderContext(meeting response_models.MeetingSummary, document string) string {
	area := meeting.MeetingArea
	if area == "" {
		area = "Geographic center"
	}
	return fmt.Sprintf(`PREVIOUS VENUE RECOMMENDATIONS:

Meeting Details:
- Locations: %s
- Activity: %s
- Mood: %s
- Meeting Area: %s
- Date/Time: %s

%s`, strings.Join(meeting.Locations, ", "), meeting.Activity, meeting.Mood, area,
		utils.FormatMeetingDate(meeting.MeetingTime), document)
}
