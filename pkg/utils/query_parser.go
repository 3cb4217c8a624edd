package utils

import (
	"net/url"
	"regexp"
	"strconv"

	"asset-system/pkg/types"
)

const (
	DefaultLimit = 200
	MaxLimit     = 500
)

var filterKeyRe = regexp.MustCompile(`^filter\[(\w+)\]$`)

// ParseFilterFromQuery разбирает search / filter[...] / limit / offset / page
// из строки запроса. Неизвестные ключи игнорируются.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			if limit > MaxLimit {
				limit = MaxLimit
			}
			filterReq.Limit = limit
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filterReq.Offset = offset
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filterReq.Page = page
			filterReq.Offset = (page - 1) * filterReq.Limit
		}
	}

	filterReq.Search = values.Get("search")

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if m := filterKeyRe.FindStringSubmatch(key); m != nil {
			filterReq.Filter[m[1]] = vals[0]
		}
	}

	return filterReq
}
