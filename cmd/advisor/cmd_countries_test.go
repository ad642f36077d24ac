package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
)

func TestCountriesCommandTable(t *testing.T) {
	out, err := execCommand(t, newCountriesCommand())
	require.NoError(t, err)

	assert.Contains(t, out, "Country")
	assert.Contains(t, out, "Internet")
	assert.Contains(t, out, "Portugal")
	assert.Contains(t, out, "Czech Republic")
}

func TestCountriesCommandJSON(t *testing.T) {
	out, err := execCommand(t, newCountriesCommand(), "--format", "json")
	require.NoError(t, err)

	var countries []domain.Country
	require.NoError(t, json.Unmarshal([]byte(out), &countries))
	require.Len(t, countries, 12)
	assert.Equal(t, "Portugal", countries[0].Name)
}

func TestCountriesCommandCSVDataset(t *testing.T) {
	dataset := writeTempFile(t, "countries.csv",
		"name,cost_of_living_index,expat_community_size\nXanadu,40,Small\nWakanda,55,Large\n")

	out, err := execCommand(t, newCountriesCommand(), "--dataset", dataset, "--format", "json")
	require.NoError(t, err)

	var countries []domain.Country
	require.NoError(t, json.Unmarshal([]byte(out), &countries))
	require.Len(t, countries, 2)
	assert.Equal(t, "Xanadu", countries[0].Name)
	assert.Equal(t, domain.CommunityLarge, countries[1].ExpatCommunity)

	cost, ok := countries[0].MetricValue(domain.MetricCostOfLiving)
	require.True(t, ok)
	assert.InDelta(t, 40.0, cost, 0.0001)
}

func TestCountriesCommandMissingDataset(t *testing.T) {
	_, err := execCommand(t, newCountriesCommand(), "--dataset", "/nonexistent/countries.json")
	require.Error(t, err)
}

func TestCountriesCommandBadFormat(t *testing.T) {
	_, err := execCommand(t, newCountriesCommand(), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
