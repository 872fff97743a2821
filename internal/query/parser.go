// Package query turns raw query-string parameters into a typed request
// descriptor. Unrecognized keys are ignored; malformed pagination values fail
// with a ValidationError.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Descriptor is the structured form of a report request.
type Descriptor struct {
	Page     int
	PageSize int
	Filters  map[string]string
	Search   map[string]string
}

// ValidationError reports a malformed query parameter.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid query parameter %q: %s", e.Param, e.Reason)
}

// Parse builds a Descriptor from the flat query map Fiber exposes. Keys of the
// form filter[x] and search[x] are recognized when x is in the given key sets;
// everything else is dropped silently.
func Parse(raw map[string]string, filterKeys, searchKeys []string) (*Descriptor, error) {
	desc := &Descriptor{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Filters:  make(map[string]string),
		Search:   make(map[string]string),
	}

	if v, ok := raw["page"]; ok {
		n, err := parsePositive(v)
		if err != nil {
			return nil, &ValidationError{Param: "page", Reason: err.Error()}
		}
		desc.Page = n
	}
	if v, ok := raw["pageSize"]; ok {
		n, err := parsePositive(v)
		if err != nil {
			return nil, &ValidationError{Param: "pageSize", Reason: err.Error()}
		}
		desc.PageSize = n
	}

	for key, value := range raw {
		if inner, ok := bracketKey(key, "filter"); ok && contains(filterKeys, inner) {
			desc.Filters[inner] = value
		}
		if inner, ok := bracketKey(key, "search"); ok && contains(searchKeys, inner) {
			desc.Search[inner] = value
		}
	}

	return desc, nil
}

func parsePositive(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if n < 1 {
		return 0, fmt.Errorf("must be positive")
	}
	return n, nil
}

// bracketKey matches "prefix[inner]" and returns inner.
func bracketKey(key, prefix string) (string, bool) {
	if !strings.HasPrefix(key, prefix+"[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	inner := key[len(prefix)+1 : len(key)-1]
	if inner == "" {
		return "", false
	}
	return inner, true
}

func contains(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}
