package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testParams struct {
	From    string `json:"from"`
	To      string `json:"to"`
	AllTime bool   `json:"is_all_time"`
	Limit   int    `json:"limit"`
}

func TestBuildKeyDeterministic(t *testing.T) {
	params := testParams{From: "2024-01-01", To: "2024-01-31", Limit: 10}

	k1 := BuildKey("top_products", params)
	k2 := BuildKey("top_products", params)

	assert.Equal(t, k1, k2)
	assert.True(t, strings.HasPrefix(k1, KeyPrefix+"top_products:"))
}

func TestBuildKeyDiffersByParams(t *testing.T) {
	base := testParams{From: "2024-01-01", To: "2024-01-31", Limit: 10}

	bumped := base
	bumped.Limit = 20
	assert.NotEqual(t, BuildKey("top_products", base), BuildKey("top_products", bumped))

	shifted := base
	shifted.To = "2024-02-01"
	assert.NotEqual(t, BuildKey("top_products", base), BuildKey("top_products", shifted))

	allTime := base
	allTime.AllTime = true
	assert.NotEqual(t, BuildKey("top_products", base), BuildKey("top_products", allTime))
}

func TestBuildKeyDiffersByEndpoint(t *testing.T) {
	params := testParams{From: "2024-01-01", To: "2024-01-31"}

	assert.NotEqual(t, BuildKey("stats", params), BuildKey("coupons", params))
}
