package socmap

import (
	"errors"
	"fmt"
)

// Resolution failures fall into three categories. All of them abort the
// resolution immediately; no partial Resolved is ever returned.
var (
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrInvalidTopology     = errors.New("invalid topology")
	ErrInconsistentFeature = errors.New("inconsistent feature combination")
)

// CapacityError reports a category whose assigned count would exceed its
// platform ceiling.
type CapacityError struct {
	Category string
	Count    int
	Limit    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s count %d exceeds platform limit %d",
		e.Category, e.Count, e.Limit)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// TopologyError reports malformed input. Row and Col are -1 when the
// problem is not tied to a single tile.
type TopologyError struct {
	Row, Col int
	Reason   string
}

func (e *TopologyError) Error() string {
	if e.Row < 0 {
		return "invalid topology: " + e.Reason
	}
	return fmt.Sprintf("invalid topology at tile (%d,%d): %s",
		e.Row, e.Col, e.Reason)
}

func (e *TopologyError) Unwrap() error {
	return ErrInvalidTopology
}

// FeatureError reports a feature requested without its prerequisite.
type FeatureError struct {
	Feature string
	Missing string
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("feature %s requires %s", e.Feature, e.Missing)
}

func (e *FeatureError) Unwrap() error {
	return ErrInconsistentFeature
}
