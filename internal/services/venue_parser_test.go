package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetup/internal/models/response_models"
)

const fiveVenues = `1. Alpha Cafe - 1 High Street, Camden, London NW1 0AA
2. Beta Coffee - 2 Market Row, Brixton, London SW9 8LB
3. Gamma Roasters - 3 King Street, Hammersmith, London W6 9JT
4. Delta Espresso - 4 Church Road, Richmond, London TW9 1AA
5. Epsilon Brew - 5 Mill Lane, Hampstead, London NW6 1NT`

func fallbackVenues() []response_models.VenueCandidate {
	out := make([]response_models.VenueCandidate, len(FallbackVenueLines))
	for i, line := range FallbackVenueLines {
		out[i] = SplitVenueLine(line)
	}
	return out
}

func TestParseVenues_WellFormed(t *testing.T) {
	raw := "Here are my picks:\n\n" + fiveVenues + "\n\nEnjoy!"

	res := ParseVenuesWithTier(raw, DefaultVenueLineLimits)

	assert.Equal(t, TierFiltered, res.Tier)
	assert.Equal(t, []response_models.VenueCandidate{
		{Name: "Alpha Cafe", Address: "1 High Street, Camden, London NW1 0AA"},
		{Name: "Beta Coffee", Address: "2 Market Row, Brixton, London SW9 8LB"},
		{Name: "Gamma Roasters", Address: "3 King Street, Hammersmith, London W6 9JT"},
		{Name: "Delta Espresso", Address: "4 Church Road, Richmond, London TW9 1AA"},
		{Name: "Epsilon Brew", Address: "5 Mill Lane, Hampstead, London NW6 1NT"},
	}, res.Venues)
}

func TestParseVenues_NoValidLines(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "prose only", raw: "Sorry, I cannot help with that.\nTry again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseVenuesWithTier(tt.raw, DefaultVenueLineLimits)

			assert.Equal(t, TierFallback, res.Tier)
			require.Len(t, res.Venues, VenueCount)
			assert.Equal(t, fallbackVenues(), res.Venues)

			seen := map[string]bool{}
			for _, v := range res.Venues {
				assert.False(t, seen[v.Name], "duplicate %s", v.Name)
				seen[v.Name] = true
			}
		})
	}
}

func TestParseVenues_TwoLinesToppedUp(t *testing.T) {
	raw := "1. Alpha Cafe - 1 High Street, Camden, London NW1 0AA\n" +
		"2. Sketch - 9 Conduit Street, Mayfair, London W1S 2XG"

	res := ParseVenuesWithTier(raw, DefaultVenueLineLimits)

	assert.Equal(t, TierFallback, res.Tier)
	require.Len(t, res.Venues, VenueCount)
	assert.Equal(t, "Alpha Cafe", res.Venues[0].Name)
	assert.Equal(t, "Sketch", res.Venues[1].Name)
	assert.Equal(t, []string{"The Hoxton Holborn", "Dishoom King's Cross", "The Ivy City Garden"},
		[]string{res.Venues[2].Name, res.Venues[3].Name, res.Venues[4].Name})
}

func TestParseVenues_UnfilteredTier(t *testing.T) {
	long := "1. Big Place - " + strings.Repeat("1 a, ", 12)
	raw := strings.Join([]string{long, long + "x", long + "y", long + "z"}, "\n")

	res := ParseVenuesWithTier(raw, DefaultVenueLineLimits)

	assert.Equal(t, TierUnfiltered, res.Tier)
	assert.Len(t, res.Venues, 4)
}

func TestParseVenues_TruncatesToFive(t *testing.T) {
	raw := fiveVenues + "\n6. Zeta Bar - 6 Long Lane, Barbican, London EC1A 9EJ"

	venues := ParseVenues(raw)

	require.Len(t, venues, VenueCount)
	assert.Equal(t, "Epsilon Brew", venues[4].Name)
}

func TestVenueLineLimits_Accept(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "normal address", line: "1. Alpha Cafe - 1 High Street, Camden, London NW1 0AA", want: true},
		{name: "twelve commas with digits", line: "1. X - 1" + strings.Repeat(",", 12), want: false},
		{name: "twelve commas without digits", line: "1. X - a" + strings.Repeat(", b", 12), want: false},
		{name: "ten commas", line: "1. X - 1" + strings.Repeat(",", 10), want: true},
		{name: "nine digit tokens", line: "1 2 3 4 5 6 7 8 9", want: false},
		{name: "eight digit tokens", line: "1 2 3 4 5 6 7 8", want: true},
		{name: "too long", line: "1" + strings.Repeat("a", 200), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultVenueLineLimits.Accept(tt.line))
		})
	}
}

func TestSplitVenueLine(t *testing.T) {
	tests := []struct {
		line string
		want response_models.VenueCandidate
	}{
		{
			line: "3. The Shard Restaurant - 31 St Thomas Street, London Bridge, London SE1 9QU",
			want: response_models.VenueCandidate{Name: "The Shard Restaurant", Address: "31 St Thomas Street, London Bridge, London SE1 9QU"},
		},
		{
			line: "Sketch - 9 Conduit Street, Mayfair, London W1S 2XG",
			want: response_models.VenueCandidate{Name: "Sketch", Address: "9 Conduit Street, Mayfair, London W1S 2XG"},
		},
		{
			line: "2. Dishoom, 12 Upper St Martin's Lane, London WC2H 9FB",
			want: response_models.VenueCandidate{Name: "Dishoom", Address: "Dishoom, 12 Upper St Martin's Lane, London WC2H 9FB"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitVenueLine(tt.line))
		})
	}
}
