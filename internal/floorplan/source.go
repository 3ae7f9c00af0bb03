package floorplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrNoParam     = errors.New("floor plan parameter is empty")
	ErrEmptyPlan   = errors.New("floor plan has no sections")
	ErrDuplicateID = errors.New("duplicate table id in floor plan")
	ErrMissingID   = errors.New("table without id in floor plan")
)

// Decode parses the "tables" launch parameter: a URL-encoded JSON array of
// sections.
func Decode(raw string) ([]Section, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoParam
	}

	// PathUnescape keeps '+' intact, matching how the front end encodes.
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape floor plan: %w", err)
	}

	var sections []Section
	if err := json.Unmarshal([]byte(decoded), &sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal floor plan: %w", err)
	}
	if len(sections) == 0 {
		return nil, ErrEmptyPlan
	}

	seen := make(map[string]struct{})
	for _, s := range sections {
		for _, t := range s.Tables {
			if t.ID == "" {
				return nil, fmt.Errorf("%w: section %q, number %d", ErrMissingID, s.Name, t.Number)
			}
			if _, dup := seen[t.ID]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
			}
			seen[t.ID] = struct{}{}
		}
	}
	return sections, nil
}

// Resolve returns the plan carried by the launch parameter, or the built-in
// plan when the parameter is absent or malformed. Fallback is silent to the
// guest; it is only logged.
func Resolve(raw string, logger *zap.Logger) Plan {
	sections, err := Decode(raw)
	if err != nil {
		if !errors.Is(err, ErrNoParam) {
			logger.Debug("falling back to default floor plan", zap.Error(err))
		}
		return Plan{Sections: Default(), Source: SourceDefault}
	}
	return Plan{Sections: sections, Source: SourceParam}
}
