package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		size     string
		wantPage int
		wantSize int
	}{
		{"defaults", "", "", 1, 10},
		{"explicit", "3", "25", 3, 25},
		{"non-numeric falls back", "abc", "xyz", 1, 10},
		{"zero falls back", "0", "0", 1, 10},
		{"negative falls back", "-2", "-5", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePageParams(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantSize, got.Size)
		})
	}
}

func TestPageParamsOffset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 1, Size: 10}.Offset())
	assert.Equal(t, 10, PageParams{Page: 2, Size: 10}.Offset())
	assert.Equal(t, 8, PageParams{Page: 3, Size: 4}.Offset())
}

func TestPageParamsLinks(t *testing.T) {
	reqURL, err := url.Parse("/conversations/c1/messages?q=hello&page=1")
	require.NoError(t, err)

	// 15 results, page 1 of size 10: next only.
	next, previous := PageParams{Page: 1, Size: 10}.Links(reqURL, 15)
	require.NotNil(t, next)
	assert.Nil(t, previous)
	assert.Contains(t, *next, "page=2")
	assert.Contains(t, *next, "q=hello")

	// Page 2 holds the remaining 5: previous only.
	next, previous = PageParams{Page: 2, Size: 10}.Links(reqURL, 15)
	assert.Nil(t, next)
	require.NotNil(t, previous)
	assert.Contains(t, *previous, "page=1")

	// Exact boundary: 20 results on two pages of 10.
	next, previous = PageParams{Page: 2, Size: 10}.Links(reqURL, 20)
	assert.Nil(t, next)
	require.NotNil(t, previous)

	// Single page: no links at all.
	next, previous = PageParams{Page: 1, Size: 10}.Links(reqURL, 10)
	assert.Nil(t, next)
	assert.Nil(t, previous)
}
