package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolArgs(t *testing.T) {
	params, err := parseToolArgs([]string{"from_token=ETH", "amount_in=0.001", "memo=a=b", "token="})
	require.Nil(t, err)
	assert.Equal(t, map[string]interface{}{
		"from_token": "ETH",
		"amount_in":  "0.001",
		"memo":       "a=b",
		"token":      "",
	}, params)

	_, err = parseToolArgs([]string{"=ETH"})
	assert.NotNil(t, err)

	_, err = parseToolArgs([]string{"ETH"})
	assert.NotNil(t, err)
}
