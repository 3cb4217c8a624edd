package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
	assert.Equal(t, 1, filter.Page)
	assert.Empty(t, filter.Search)
	assert.Empty(t, filter.Filter)
}

func TestParseFilterFromQuery_FullSet(t *testing.T) {
	values, err := url.ParseQuery("search=notebook&filter[status]=active&filter[location]=office&limit=10&offset=20")
	assert.NoError(t, err)

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, "notebook", filter.Search)
	assert.Equal(t, 10, filter.Limit)
	assert.Equal(t, 20, filter.Offset)
	assert.Equal(t, "active", filter.Filter["status"])
	assert.Equal(t, "office", filter.Filter["location"])
}

func TestParseFilterFromQuery_LimitClamped(t *testing.T) {
	values := url.Values{"limit": {"9000"}}
	filter := ParseFilterFromQuery(values)
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterFromQuery_PageComputesOffset(t *testing.T) {
	values := url.Values{"page": {"3"}, "limit": {"50"}}
	filter := ParseFilterFromQuery(values)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 100, filter.Offset)
}

func TestParseFilterFromQuery_IgnoresGarbage(t *testing.T) {
	values := url.Values{
		"limit":          {"abc"},
		"offset":         {"-5"},
		"filter[st@tus]": {"active"},
	}
	filter := ParseFilterFromQuery(values)

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
	assert.Empty(t, filter.Filter)
}
