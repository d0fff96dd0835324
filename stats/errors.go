package stats

import (
	"errors"
	"fmt"
)

// ErrEmptyAggregation is returned when a mode or mean is taken over no rows.
var ErrEmptyAggregation = errors.New("empty aggregation")

// AggregationError names the output whose input subset was empty.
type AggregationError struct {
	Output string
	Detail string
}

func (e *AggregationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %v", e.Output, e.Detail, ErrEmptyAggregation)
	}
	return fmt.Sprintf("%s: %v", e.Output, ErrEmptyAggregation)
}

func (e *AggregationError) Is(target error) bool {
	return target == ErrEmptyAggregation
}

func emptyAggregation(output, detail string) error {
	return &AggregationError{Output: output, Detail: detail}
}
