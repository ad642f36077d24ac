package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
)

func writeFixture(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCountriesFromFile(t *testing.T) {
	path := writeFixture(t, "countries.json", `[
  {
    "name": "Atlantis",
    "metrics": {"safety_index": 88, "internet_speed": 140},
    "expat_community_size": "Small"
  }
]`)

	countries, err := LoadCountriesFromFile(path)
	require.NoError(t, err)
	require.Len(t, countries, 1)

	c := countries[0]
	if c.Name != "Atlantis" {
		t.Errorf("name = %q, want Atlantis", c.Name)
	}
	if v, ok := c.MetricValue(domain.MetricSafety); !ok || v != 88 {
		t.Errorf("safety = %v, %v; want 88, true", v, ok)
	}
	if c.ExpatCommunity != domain.CommunitySmall {
		t.Errorf("community = %q, want Small", c.ExpatCommunity)
	}
}

func TestLoadCountriesFromFileMissing(t *testing.T) {
	_, err := LoadCountriesFromFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadCountriesFromFileMalformed(t *testing.T) {
	path := writeFixture(t, "countries.json", `{"not": "an array"}`)
	_, err := LoadCountriesFromFile(path)
	require.Error(t, err)
}

func TestLoadCountriesFromCSV(t *testing.T) {
	path := writeFixture(t, "countries.csv",
		"name,cost_of_living_index,safety_index,internet_speed,expat_community_size,notes\n"+
			"Atlantis,40,88,140,Medium,ignored\n"+
			"Lemuria,55,72,90,Small,also ignored\n")

	countries, err := LoadCountriesFromCSV(path)
	require.NoError(t, err)
	require.Len(t, countries, 2)

	c := countries[0]
	if c.Name != "Atlantis" {
		t.Errorf("name = %q, want Atlantis", c.Name)
	}
	if v, ok := c.MetricValue(domain.MetricCostOfLiving); !ok || v != 40 {
		t.Errorf("cost = %v, %v; want 40, true", v, ok)
	}
	if c.ExpatCommunity != domain.CommunityMedium {
		t.Errorf("community = %q, want Medium", c.ExpatCommunity)
	}
	// The unknown "notes" column must not become a metric.
	if len(c.Metrics) != 3 {
		t.Errorf("metrics = %d, want 3", len(c.Metrics))
	}
}

func TestLoadCountriesFromCSVErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"empty file", ""},
		{"ragged row", "name,safety_index\nAtlantis\n"},
		{"non-numeric metric", "name,safety_index\nAtlantis,high\n"},
		{"missing name", "name,safety_index\n,88\n"},
		{"bad community size", "name,expat_community_size\nAtlantis,Huge\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "countries.csv", tt.contents)
			if _, err := LoadCountriesFromCSV(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadDatasetDispatchesOnExtension(t *testing.T) {
	csvPath := writeFixture(t, "countries.csv", "name,safety_index\nAtlantis,88\n")
	jsonPath := writeFixture(t, "countries.json", `[{"name":"Atlantis","metrics":{"safety_index":88}}]`)

	fromCSV, err := LoadDataset(csvPath)
	require.NoError(t, err)
	fromJSON, err := LoadDataset(jsonPath)
	require.NoError(t, err)

	require.Len(t, fromCSV, 1)
	require.Len(t, fromJSON, 1)
	if fromCSV[0].Name != fromJSON[0].Name {
		t.Errorf("loaders disagree: %q vs %q", fromCSV[0].Name, fromJSON[0].Name)
	}
}
