package queue

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// A person waiting for, or having received, service at the counter.
type Client struct {
	Name       string    `json:"name"`
	Contact    string    `json:"contact"`
	Priority   int64     `json:"priorityTier"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// ErrInvalidPriority matches any InvalidPriorityError via errors.Is.
var ErrInvalidPriority = InvalidPriorityError{}

type InvalidPriorityError struct {
	Value string
}

func (ie InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority %q: must be an integer", ie.Value)
}

func (ie InvalidPriorityError) Is(target error) bool {
	_, ok := target.(InvalidPriorityError)
	return ok
}

// ParsePriority interprets a raw priority value as a signed integer tier.
//
// Accepts bare integers ("2", "-1"), JSON strings holding an integer
// ("\"2\"") and integral floats ("2.0", "1e2"). Everything else, including
// empty input, null, booleans, fractions and values outside int64, yields an
// InvalidPriorityError.
func ParsePriority(raw string) (p int64, err error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "\"") {
		var unquoted string
		if json.Unmarshal([]byte(s), &unquoted) != nil {
			err = InvalidPriorityError{Value: raw}
			return
		}
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		err = InvalidPriorityError{Value: raw}
		return
	}

	p, perr := strconv.ParseInt(s, 10, 64)
	if perr == nil {
		return
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f < math.MinInt64 || f >= math.MaxInt64 {
		p = 0
		err = InvalidPriorityError{Value: raw}
		return
	}
	p = int64(f)
	return
}
