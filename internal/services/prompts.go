package services

import (
	"fmt"
	"strings"

	"meetup/internal/models/request_models"
	"meetup/pkg/utils"
)

const (
	suggestionSystemPrompt  = "You are a local venue expert. Provide exactly 5 specific, real venue recommendations with exact addresses. Be concise and follow the format exactly."
	descriptionSystemPrompt = "You are a venue expert. Provide brief, helpful descriptions."
	followupSystemPrompt    = `You are a venue finder assistant helping with follow-up questions about previously recommended venues.

IMPORTANT: You have been provided with specific venue recommendations in the context. When answering questions, you should:
1. Reference the SPECIFIC venues that were previously recommended by name
2. Use the details from those recommendations (addresses, descriptions, travel times)
3. Answer based on the actual venues provided, not generic categories
4. If asked about suitability for different purposes (like dates), evaluate each specific venue mentioned

Always refer to the actual venue names and details from the context, not generic venue types.`
)

func isAny(s string) bool {
	return s == "" || s == request_models.ActivityAny
}

func buildSuggestionRequest(req request_models.MeetingRequest) utils.CompletionRequest {
	activity := strings.ToLower(req.Activity)
	mood := strings.ToLower(req.Mood)

	var b strings.Builder
	b.WriteString("Based on these starting locations:\n")
	for i, loc := range req.Locations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, loc)
	}

	b.WriteString("\nMeeting requirements:\n")
	if isAny(req.Activity) {
		b.WriteString("- Activity: flexible (any type of venue)\n")
	} else {
		fmt.Fprintf(&b, "- Activity: %s\n", activity)
	}
	if isAny(req.Mood) {
		b.WriteString("- Mood/Objective: flexible/open to suggestions\n")
	} else {
		fmt.Fprintf(&b, "- Mood/Objective: %s\n", mood)
	}
	if req.MeetingArea != "" {
		fmt.Fprintf(&b, "- Meeting area: in %s\n", req.MeetingArea)
	} else {
		b.WriteString("- Meeting area: roughly halfway between these locations\n")
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "- Additional notes: %s\n", req.Notes)
	}

	b.WriteString("\nPlease suggest EXACTLY 5 specific, high-quality venues that would be excellent for this group")
	if isAny(req.Mood) {
		b.WriteString(" with versatile atmosphere.\n")
	} else {
		fmt.Fprintf(&b, " AND match the %s vibe.\n", mood)
	}

	b.WriteString("\nConsider:\n- Venue quality and reputation\n")
	if isAny(req.Activity) {
		b.WriteString("- Versatility for different types of activities\n")
	} else {
		fmt.Fprintf(&b, "- Suitability for %s\n", activity)
	}
	if isAny(req.Mood) {
		b.WriteString("- Flexible atmosphere that works for various moods\n")
	} else {
		fmt.Fprintf(&b, "- Perfect match for %s atmosphere\n", mood)
	}
	b.WriteString("- Good accessibility for the group\n")
	if req.Notes != "" {
		fmt.Fprintf(&b, "- Meeting the specific requirements: %s\n", req.Notes)
	}

	b.WriteString(`
CRITICAL: You MUST provide exactly 5 venues. Provide ONLY real venue names with proper, complete addresses including street name, area, and postcode. Do NOT list ranges of numbers or incomplete addresses.

Provide in this EXACT format (no additional text, just these 5 lines):
1. [Real Venue Name] - [Number] [Street Name], [Area], [City] [Postcode]
2. [Real Venue Name] - [Number] [Street Name], [Area], [City] [Postcode]
3. [Real Venue Name] - [Number] [Street Name], [Area], [City] [Postcode]
4. [Real Venue Name] - [Number] [Street Name], [Area], [City] [Postcode]
5. [Real Venue Name] - [Number] [Street Name], [Area], [City] [Postcode]

Examples of correct format:
- The Ivy Chelsea Garden - 197 King's Road, Chelsea, London SW3 5ED
- Dishoom Covent Garden - 12 Upper St Martin's Lane, Covent Garden, London WC2H 9FB
- The Shard Restaurant - 31 St Thomas Street, London Bridge, London SE1 9QU

IMPORTANT: Return ONLY the 5 numbered venue lines, nothing else. No introduction, no explanation, just the 5 venues`)
	if isAny(req.Mood) {
		b.WriteString(" that are versatile and work for different preferences.")
	} else {
		fmt.Fprintf(&b, " that specifically match the %s mood/objective.", mood)
	}

	return utils.CompletionRequest{
		System:      suggestionSystemPrompt,
		User:        b.String(),
		MaxTokens:   600,
		Temperature: 0.1,
	}
}

func buildDescriptionRequest(venueName string, req request_models.MeetingRequest) utils.CompletionRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "In 1-2 sentences, describe why %s is a good choice", venueName)
	if isAny(req.Activity) {
		b.WriteString(" as a versatile venue")
	} else {
		fmt.Fprintf(&b, " for %s", strings.ToLower(req.Activity))
	}
	if isAny(req.Mood) {
		b.WriteString(" that works for various moods")
	} else {
		fmt.Fprintf(&b, " with a %s vibe", strings.ToLower(req.Mood))
	}
	b.WriteString(". Consider atmosphere, ")
	switch req.Activity {
	case request_models.ActivityRestaurant, request_models.ActivityCoffeeCafe, request_models.ActivityAny:
		b.WriteString("food quality, ")
	}
	b.WriteString("location, ambiance, and")
	if isAny(req.Mood) {
		b.WriteString(" its versatility for different preferences.")
	} else {
		fmt.Fprintf(&b, " how it matches the %s mood.", strings.ToLower(req.Mood))
	}

	return utils.CompletionRequest{
		System:      descriptionSystemPrompt,
		User:        b.String(),
		MaxTokens:   100,
		Temperature: 0.3,
	}
}

func buildFollowupRequest(question, priorContext string) utils.CompletionRequest {
	user := fmt.Sprintf(`Based on these previously recommended venues:

%s

Please answer this follow-up question by referring to the SPECIFIC venues listed above:

Question: %s

Remember to:
- Mention specific venue names from the recommendations
- Use the actual details provided about each venue
- Give personalized advice based on the venues that were suggested
- If discussing suitability for different activities (like dates), evaluate each specific venue`, priorContext, question)

	return utils.CompletionRequest{
		System:      followupSystemPrompt,
		User:        user,
		MaxTokens:   800,
		Temperature: 0.3,
	}
}
