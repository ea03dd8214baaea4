package answer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// ProductionBaseURL is the deployed answering service.
	ProductionBaseURL = "https://anything-boes.web.app/"
	// DevelopmentBaseURL is served by the widget's dev proxy.
	DevelopmentBaseURL = "/api"
)

// Mode selects which answering endpoint a build talks to.
type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)

// ErrInvalidBaseURL is returned when the endpoint cannot be resolved.
var ErrInvalidBaseURL = errors.New("invalid answering endpoint")

// BuildMode reports the mode compiled into this binary.
func BuildMode() Mode {
	if productionBuild {
		return ModeProduction
	}
	return ModeDevelopment
}

// ParseMode accepts "production"/"prod" and "development"/"dev".
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return ModeProduction, nil
	case "development", "dev":
		return ModeDevelopment, nil
	default:
		return "", fmt.Errorf("unknown chat mode %q", raw)
	}
}

// DefaultBaseURL returns the endpoint base for mode.
func DefaultBaseURL(mode Mode) string {
	if mode == ModeProduction {
		return ProductionBaseURL
	}
	return DevelopmentBaseURL
}

// ResolveBaseURL turns base into an absolute URL. Relative bases such as
// "/api" are resolved against origin.
func ResolveBaseURL(base, origin string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return "", fmt.Errorf("%w: empty base", ErrInvalidBaseURL)
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}

	o, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || !o.IsAbs() {
		return "", fmt.Errorf("%w: relative base %q needs an absolute origin, got %q", ErrInvalidBaseURL, base, origin)
	}
	return o.ResolveReference(u).String(), nil
}

// messageURL appends the message route to base without doubling slashes.
func messageURL(base string) (string, error) {
	u, err := url.JoinPath(base, "message")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	return u, nil
}
