package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDestinationsAdministrativePrefix(t *testing.T) {
	assert.Equal(t, []string{"Волоколамск"}, ResolveDestinations("го Волоколамск"))
	assert.Equal(t, []string{"Клин"}, ResolveDestinations("г. Клин"))
	assert.Equal(t, []string{"Клин"}, ResolveDestinations("городской округ Клин"))
}

func TestResolveDestinationsExcludesOrigin(t *testing.T) {
	assert.Empty(t, ResolveDestinations("го Дмитров"))
	assert.Equal(t, []string{"Сергиев Посад"}, ResolveDestinations("го Дмитров\nсерг посад"))
}

func TestResolveDestinationsCorrections(t *testing.T) {
	// Every known spelling converges on the canonical city name.
	for _, raw := range []string{"с. посад", "с.посад", "серг посад", "серг. посад", "сергиево", "иево-посадск"} {
		assert.Equal(t, "Сергиев Посад", ResolveDestinations(raw)[0], "raw=%q", raw)
	}

	// The bare abbreviation "о" only matches as a standalone word.
	assert.Equal(t, []string{"Одинцово"}, ResolveDestinations("о"))
	assert.NotContains(t, ResolveDestinations("го Волоколамск"), "Одинцово")
}

func TestResolveDestinationsCorrectionOutranksPattern(t *testing.T) {
	// The allow-list hit on line one carries a lower priority than the
	// correction hit on line two, so the corrected city sorts first.
	got := ResolveDestinations("д. Аленино\nкиржачск р-н")
	assert.Equal(t, []string{"Киржач", "Аленино"}, got)
}

func TestResolveDestinationsEqualPriorityKeepsFirstSeenOrder(t *testing.T) {
	got := ResolveDestinations("го Волоколамск\nг. Одинцово")
	assert.Equal(t, []string{"Волоколамск", "Одинцово"}, got)
}

func TestResolveDestinationsDeduplicatesAndPromotes(t *testing.T) {
	// The same city mentioned twice yields one entry, raised to the higher
	// priority of its mentions.
	got := ResolveDestinations("Одинцово\nг. Одинцово")
	assert.Equal(t, []string{"Одинцово"}, got)
}

func TestResolveDestinationsFirstPatternPerLineWins(t *testing.T) {
	// The administrative prefix outranks the settlement prefix on the same
	// line; only the first matching pattern contributes.
	got := ResolveDestinations("г. Клин с. Аленино")
	assert.Equal(t, []string{"Клин"}, got)
}

func TestResolveDestinationsStripsEnclosingQuotes(t *testing.T) {
	assert.Equal(t, []string{"Волоколамск"}, ResolveDestinations("\"го Волоколамск\""))
}

func TestResolveDestinationsIgnoresRegionQualifier(t *testing.T) {
	got := ResolveDestinations("го Волоколамск, Московская обл")
	assert.Equal(t, []string{"Волоколамск"}, got)
}

func TestResolveDestinationsBlankInput(t *testing.T) {
	assert.Empty(t, ResolveDestinations(""))
	assert.Empty(t, ResolveDestinations("  \n  "))
}

func TestResolveDestinationsIsIdempotent(t *testing.T) {
	text := "д. Аленино\nкиржачск р-н\nго Волоколамск"
	first := ResolveDestinations(text)
	second := ResolveDestinations(text)
	assert.Equal(t, first, second)
}
