package catalog

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Filter keys accepted in query strings and session requests.
const (
	KeyCase       = "case"
	KeyNumber     = "number"
	KeyGender     = "gender"
	KeyCustomOnly = "custom_only"
	KeyCategory   = "category"
	KeyLevel      = "level"
	KeyTense      = "tense"
	KeyMood       = "mood"
	KeyPerson     = "person"
)

// checkKeys rejects keys the domain does not know about.
func checkKeys(values url.Values, known ...string) error {
	for key := range values {
		if !slices.Contains(known, key) {
			return fmt.Errorf("%w: unknown key %q", ErrInvalidFilter, key)
		}
	}
	return nil
}

// choices collects the values for key, accepting repeated keys as well as
// comma-separated lists. If allowed is non-nil every value must be in it.
func choices(values url.Values, key string, allowed []string) ([]string, error) {
	var out []string
	for _, raw := range values[key] {
		for _, v := range strings.Split(raw, ",") {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" {
				continue
			}
			if allowed != nil && !slices.Contains(allowed, v) {
				return nil, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, key, v)
			}
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func flag(values url.Values, key string) (bool, error) {
	raw := values.Get(key)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, key, raw)
	}
	return b, nil
}

// oneOf reports whether v is selected. An empty selection selects everything.
func oneOf(selected []string, v string) bool {
	return len(selected) == 0 || slices.Contains(selected, v)
}
