package miso

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"full run URL kept",
			"https://api.holdings.miso.gs/ext/v1/workflows/run",
			"https://api.holdings.miso.gs/ext/v1/workflows/run",
		},
		{
			"api root gets run suffix",
			"https://api.holdings.miso.gs/ext/v1",
			"https://api.holdings.miso.gs/ext/v1/workflows/run",
		},
		{
			"api root with extra segments is truncated",
			"https://api.holdings.miso.gs/ext/v1/apps/123",
			"https://api.holdings.miso.gs/ext/v1/workflows/run",
		},
		{
			"bare domain gets full path",
			"https://api.holdings.miso.gs",
			"https://api.holdings.miso.gs/ext/v1/workflows/run",
		},
		{
			"trailing slash removed first",
			"https://api.holdings.miso.gs/ext/v1/",
			"https://api.holdings.miso.gs/ext/v1/workflows/run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEndpoint(tt.input))
		})
	}
}
