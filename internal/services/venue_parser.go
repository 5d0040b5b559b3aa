package services

import (
	"strings"
	"unicode"

	"meetup/internal/models/response_models"
	"meetup/pkg/metrics"
)

const VenueCount = 5

// Extraction tiers, in the order they are tried.
const (
	TierFiltered   = "filtered"
	TierUnfiltered = "unfiltered"
	TierFallback   = "fallback"
)

// VenueLineLimits rejects degenerate model output, mostly numeric ranges
// emitted where an address was expected.
type VenueLineLimits struct {
	MaxCommas      int
	MaxDigitTokens int
	MaxLength      int
}

var DefaultVenueLineLimits = VenueLineLimits{
	MaxCommas:      10,
	MaxDigitTokens: 8,
	MaxLength:      200,
}

// MinParsedVenues is the point below which the built-in list tops up the result.
const MinParsedVenues = 3

// FallbackVenueLines are known-good venues used when the model output is unusable.
var FallbackVenueLines = []string{
	"The Hoxton Holborn - 199-206 High Holborn, Holborn, London WC1V 7BD",
	"Dishoom King's Cross - 5 Stable Street, King's Cross, London N1C 4AB",
	"The Ivy City Garden - 1 Angel Court, Bank, London EC2R 7HJ",
	"Sketch - 9 Conduit Street, Mayfair, London W1S 2XG",
	"Duck & Waffle - 110 Bishopsgate, Liverpool Street, London EC2N 4AY",
}

type VenueParseResult struct {
	Venues []response_models.VenueCandidate
	Tier   string
}

// ParseVenues extracts up to VenueCount venues from raw model text. The result
// is never empty.
func ParseVenues(raw string) []response_models.VenueCandidate {
	return ParseVenuesWithTier(raw, DefaultVenueLineLimits).Venues
}

func ParseVenuesWithTier(raw string, limits VenueLineLimits) VenueParseResult {
	candidates := candidateLines(raw)

	lines := make([]string, 0, len(candidates))
	for _, line := range candidates {
		if limits.Accept(line) {
			lines = append(lines, line)
		}
	}
	tier := TierFiltered

	if len(lines) == 0 {
		lines = candidates[:min(VenueCount, len(candidates))]
		tier = TierUnfiltered
	}

	if len(lines) < MinParsedVenues {
		lines = topUpWithFallback(lines)
		tier = TierFallback
	}

	if len(lines) > VenueCount {
		lines = lines[:VenueCount]
	}

	venues := make([]response_models.VenueCandidate, 0, len(lines))
	for _, line := range lines {
		venues = append(venues, SplitVenueLine(line))
	}

	metrics.VenueParseTier.WithLabelValues(tier).Inc()
	return VenueParseResult{Venues: venues, Tier: tier}
}

// candidateLines keeps non-empty lines that contain at least one digit.
func candidateLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.ContainsFunc(line, unicode.IsDigit) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func (l VenueLineLimits) Accept(line string) bool {
	if strings.Count(line, ",") > l.MaxCommas {
		return false
	}
	digitTokens := 0
	for _, tok := range strings.Fields(line) {
		if strings.ContainsFunc(tok, unicode.IsDigit) {
			digitTokens++
		}
	}
	if digitTokens > l.MaxDigitTokens {
		return false
	}
	return len(line) <= l.MaxLength
}

func topUpWithFallback(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		seen[venueKey(SplitVenueLine(line))] = true
	}
	out := append([]string(nil), lines...)
	for _, fb := range FallbackVenueLines {
		if len(out) >= VenueCount {
			break
		}
		if seen[venueKey(SplitVenueLine(fb))] {
			continue
		}
		out = append(out, fb)
	}
	return out
}

func venueKey(v response_models.VenueCandidate) string {
	return strings.ToLower(strings.TrimSpace(v.Name)) + "|" + strings.ToLower(strings.TrimSpace(v.Address))
}

// SplitVenueLine splits "N. Name - Address". Without a " - " separator the
// text after "N. " is the address and the name is its first comma field.
func SplitVenueLine(line string) response_models.VenueCandidate {
	if head, address, ok := strings.Cut(line, " - "); ok {
		name := head
		if _, rest, found := strings.Cut(head, ". "); found {
			name = rest
		}
		return response_models.VenueCandidate{
			Name:    strings.TrimSpace(name),
			Address: strings.TrimSpace(address),
		}
	}

	part := line
	if _, rest, found := strings.Cut(line, ". "); found {
		part = rest
	}
	name, _, _ := strings.Cut(part, ",")
	return response_models.VenueCandidate{
		Name:    strings.TrimSpace(name),
		Address: strings.TrimSpace(part),
	}
}
