package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
	"github.com/denisok6893-rgb/relocation-advisor/internal/recommend"
)

func TestAssembleDefaults(t *testing.T) {
	answers, err := assemble(nil, "", "", "")
	require.NoError(t, err)

	assert.Nil(t, answers.Criteria.Weights, "no priorities keeps the default mix")
	assert.Nil(t, answers.Criteria.MinRequirements)
	assert.Equal(t, recommend.DefaultTopN, answers.TopN)
}

func TestAssembleSplitsWeightEqually(t *testing.T) {
	priorities := []domain.Metric{
		domain.MetricCostOfLiving,
		domain.MetricSafety,
		domain.MetricClimate,
		domain.MetricVisaEase,
	}
	answers, err := assemble(priorities, "", "", "")
	require.NoError(t, err)

	require.Len(t, answers.Criteria.Weights, 4)
	for _, m := range priorities {
		assert.InDelta(t, 0.25, answers.Criteria.Weights[m], 0.0001)
	}
}

func TestAssembleThresholdsAndTopN(t *testing.T) {
	answers, err := assemble(nil, "65", "80.5", "3")
	require.NoError(t, err)

	require.Len(t, answers.Criteria.MinRequirements, 2)
	assert.InDelta(t, 65.0, answers.Criteria.MinRequirements[domain.MetricSafety], 0.001)
	assert.InDelta(t, 80.5, answers.Criteria.MinRequirements[domain.MetricInternetSpeed], 0.001)
	assert.Equal(t, 3, answers.TopN)
}

func TestAssembleRejectsBadValues(t *testing.T) {
	_, err := assemble(nil, "quite safe", "", "")
	assert.Error(t, err)

	_, err = assemble(nil, "", "-10", "")
	assert.Error(t, err)

	_, err = assemble(nil, "", "", "many")
	assert.Error(t, err)

	_, err = assemble(nil, "", "", "0")
	assert.Error(t, err, "an empty shortlist cannot be requested")
}

func TestValidateOptionalNumber(t *testing.T) {
	assert.NoError(t, validateOptionalNumber(""))
	assert.NoError(t, validateOptionalNumber("  "))
	assert.NoError(t, validateOptionalNumber("72.5"))
	assert.Error(t, validateOptionalNumber("fast"))
	assert.Error(t, validateOptionalNumber("-1"))
}

func TestValidateOptionalCount(t *testing.T) {
	assert.NoError(t, validateOptionalCount(""))
	assert.NoError(t, validateOptionalCount("1"))
	assert.NoError(t, validateOptionalCount("10"))
	assert.Error(t, validateOptionalCount("3.5"))
	assert.Error(t, validateOptionalCount("0"))
	assert.Error(t, validateOptionalCount("-2"))
}
