// Package wizard collects relocation criteria through an interactive form.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
	"github.com/denisok6893-rgb/relocation-advisor/internal/recommend"
)

// Answers holds everything the wizard collects, ready to feed the engine.
type Answers struct {
	Criteria domain.Criteria
	TopN     int
}

// Run walks the user through priorities, minimum thresholds, and shortlist
// length. Selected priorities share the weight budget equally; selecting
// nothing keeps the default distribution.
func Run(in io.Reader, out io.Writer) (*Answers, error) {
	var (
		priorities  []domain.Metric
		minSafety   string
		minInternet string
		topN        string
	)

	options := make([]huh.Option[domain.Metric], 0, len(domain.StandardMetrics()))
	for _, m := range domain.StandardMetrics() {
		options = append(options, huh.NewOption(recommend.MetricLabel(m), m))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[domain.Metric]().
				Title("Which factors matter most to you?").
				Description("Selected factors share the scoring weight equally; select none to keep the default mix").
				Options(options...).
				Value(&priorities),
			huh.NewInput().
				Title("Minimum safety index").
				Description("0-100, leave blank for no requirement").
				Placeholder("60").
				Value(&minSafety).
				Validate(validateOptionalNumber),
			huh.NewInput().
				Title("Minimum internet speed (Mbps)").
				Description("leave blank for no requirement").
				Placeholder("80").
				Value(&minInternet).
				Validate(validateOptionalNumber),
			huh.NewInput().
				Title("How many countries to shortlist?").
				Placeholder(strconv.Itoa(recommend.DefaultTopN)).
				Value(&topN).
				Validate(validateOptionalCount),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return assemble(priorities, minSafety, minInternet, topN)
}

// assemble turns raw form values into engine-ready answers. Split out from
// Run so the mapping is testable without driving the form.
func assemble(priorities []domain.Metric, minSafety, minInternet, topN string) (*Answers, error) {
	answers := &Answers{TopN: recommend.DefaultTopN}

	if len(priorities) > 0 {
		weights := make(map[domain.Metric]float64, len(priorities))
		share := 1.0 / float64(len(priorities))
		for _, m := range priorities {
			weights[m] = share
		}
		answers.Criteria.Weights = weights
	}

	minimums := map[domain.Metric]float64{}
	if v, ok, err := parseOptionalNumber(minSafety); err != nil {
		return nil, err
	} else if ok {
		minimums[domain.MetricSafety] = v
	}
	if v, ok, err := parseOptionalNumber(minInternet); err != nil {
		return nil, err
	} else if ok {
		minimums[domain.MetricInternetSpeed] = v
	}
	if len(minimums) > 0 {
		answers.Criteria.MinRequirements = minimums
	}

	if s := strings.TrimSpace(topN); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("shortlist length %q is not an integer", topN)
		}
		if n < 1 {
			return nil, fmt.Errorf("shortlist length must be at least 1")
		}
		answers.TopN = n
	}

	return answers, nil
}

func validateOptionalNumber(s string) error {
	_, _, err := parseOptionalNumber(s)
	return err
}

func validateOptionalCount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < 1 {
		return fmt.Errorf("enter at least 1")
	}
	return nil
}

// parseOptionalNumber reads a blank-allowed non-negative number. The second
// return reports whether a value was present.
func parseOptionalNumber(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, false, fmt.Errorf("thresholds cannot be negative")
	}
	return v, true, nil
}
