package admin

import (
	"strconv"

	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
)

// stringFilter returns a pointer to the filter value, nil when absent
func stringFilter(query ListQuery, name string) *string {
	value := query.Filter(name)
	if value == "" {
		return nil
	}
	return &value
}

// boolFilter parses a true/false filter value
func boolFilter(query ListQuery, name string) (*bool, error) {
	raw := query.Filter(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewBadRequestError("filter " + name + " must be true or false")
	}
	return &value, nil
}

// intFilter parses a numeric filter value
func intFilter(query ListQuery, name string) (*int, error) {
	raw := query.Filter(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewBadRequestError("filter " + name + " must be a number")
	}
	return &value, nil
}

// oneOf checks a form value against the field's fixed choices
func oneOf(value string, choices []string) bool {
	for _, choice := range choices {
		if value == choice {
			return true
		}
	}
	return false
}
