package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReport_BareJSON(t *testing.T) {
	report, err := parseReport(`{"conditions":["tension headache"],"treatments":["rest"],"medications":["ibuprofen"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"tension headache"}, report.Conditions)
	assert.Equal(t, []string{"rest"}, report.Treatments)
	assert.Equal(t, []string{"ibuprofen"}, report.Medications)
}

func TestParseReport_FencedJSON(t *testing.T) {
	report, err := parseReport("```json\n{\"conditions\":[\"flu\"],\"treatments\":[],\"medications\":[]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"flu"}, report.Conditions)
}

func TestParseReport_NoJSON(t *testing.T) {
	_, err := parseReport("sorry, I cannot help with that")
	require.Error(t, err)
}
