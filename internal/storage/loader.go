package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
)

// LoadCountriesFromFile reads a JSON array of country records.
func LoadCountriesFromFile(path string) ([]domain.Country, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read countries file: %w", err)
	}

	var countries []domain.Country
	if err := json.Unmarshal(b, &countries); err != nil {
		return nil, fmt.Errorf("unmarshal countries: %w", err)
	}
	return countries, nil
}

// LoadCountriesFromCSV reads country records from a CSV file. The header row
// names the columns: "name" and "expat_community_size" are fixed, every other
// column is matched against the standard metric names and parsed as a float.
// Unrecognized columns are skipped so datasets can carry extra fields.
func LoadCountriesFromCSV(path string) ([]domain.Country, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := records[0]
	countries := make([]domain.Country, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}

		c := domain.Country{Metrics: make(map[domain.Metric]float64, len(headers))}
		for j, h := range headers {
			value := strings.TrimSpace(record[j])
			switch key := strings.ToLower(strings.TrimSpace(h)); key {
			case "name":
				c.Name = value
			case "expat_community_size":
				size, err := domain.ParseCommunitySize(value)
				if err != nil {
					return nil, fmt.Errorf("csv: row %d: %w", i+2, err)
				}
				c.ExpatCommunity = size
			default:
				metric, err := domain.ParseMetric(key)
				if err != nil {
					continue
				}
				v, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, fmt.Errorf("csv: row %d column %q: %w", i+2, h, err)
				}
				c.Metrics[metric] = v
			}
		}
		if c.Name == "" {
			return nil, fmt.Errorf("csv: row %d has no name", i+2)
		}
		countries = append(countries, c)
	}
	return countries, nil
}

// LoadDataset dispatches on the file extension: .csv goes through the CSV
// loader, everything else is treated as JSON.
func LoadDataset(path string) ([]domain.Country, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadCountriesFromCSV(path)
	}
	return LoadCountriesFromFile(path)
}
