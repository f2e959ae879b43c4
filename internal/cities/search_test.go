package cities

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRanking(t *testing.T) {
	dataset := []City{
		{Name: "Rio de Janeiro", Country: "Brazil"},
		{Name: "Paris", Country: "France"},
	}

	// A name prefix match outranks a name-contains match.
	got := Search("ri", dataset, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "Rio de Janeiro", got[0].Name)
	assert.Equal(t, "Paris", got[1].Name)
}

func TestSearchScoring(t *testing.T) {
	dataset := []City{
		{Name: "New Paris", Country: "United States"},
		{Name: "Paris", Country: "France"},
		{Name: "Parisville", Country: "Canada"},
		{Name: "Lyon", Country: "France"},
		{Name: "Berlin", Country: "Germany"},
	}

	got := Search("paris", dataset, 0)
	require.Len(t, got, 3)

	// Exact, then prefix, then contains.
	assert.Equal(t, "Paris", got[0].Name)
	assert.Equal(t, "Parisville", got[1].Name)
	assert.Equal(t, "New Paris", got[2].Name)

	// Country-only matches score lowest but are included.
	got = Search("france", dataset, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "Lyon", got[0].Name)
	assert.Equal(t, "Paris", got[1].Name)
}

func TestSearchTieBreakByName(t *testing.T) {
	dataset := []City{
		{Name: "Springfield B", Country: "United States"},
		{Name: "Springfield A", Country: "United States"},
	}

	got := Search("spring", dataset, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "Springfield A", got[0].Name)
	assert.Equal(t, "Springfield B", got[1].Name)
}

func TestSearchShortQuery(t *testing.T) {
	dataset := []City{{Name: "Amsterdam", Country: "Netherlands"}}

	assert.Empty(t, Search("a", dataset, 0))
	assert.Empty(t, Search("", dataset, 0))
	assert.Empty(t, Search("  a ", dataset, 0))
}

func TestSearchLimit(t *testing.T) {
	var dataset []City
	for i := 0; i < 120; i++ {
		dataset = append(dataset, City{Name: fmt.Sprintf("Newton %03d", i), Country: "United Kingdom"})
	}

	assert.Len(t, Search("newton", dataset, 0), DefaultSearchLimit)
	assert.Len(t, Search("newton", dataset, 10), 10)
}

func TestSearchCaseInsensitive(t *testing.T) {
	dataset := []City{{Name: "Tokyo", Country: "Japan"}}

	got := Search("TOKYO", dataset, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Tokyo", got[0].Name)
}
