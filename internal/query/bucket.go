package query

import (
	"strconv"
	"strings"
)

// Bucket is an inclusive prep-time range in minutes. Open buckets have no
// upper bound.
type Bucket struct {
	Min  int
	Max  int
	Open bool
}

// ParseBucket understands "N+" (at least N) and "min-max" (inclusive).
// Anything else, including the empty string, yields ok == false and must be
// treated as no filter.
func ParseBucket(s string) (Bucket, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Bucket{}, false
	}

	if lower, found := strings.CutSuffix(s, "+"); found {
		n, err := strconv.Atoi(strings.TrimSpace(lower))
		if err != nil {
			return Bucket{}, false
		}
		return Bucket{Min: n, Open: true}, true
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return Bucket{}, false
	}
	from, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Bucket{}, false
	}
	to, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Bucket{}, false
	}
	return Bucket{Min: from, Max: to}, true
}

func (b Bucket) Contains(minutes int) bool {
	if minutes < b.Min {
		return false
	}
	return b.Open || minutes <= b.Max
}

// BucketOption is a prep-time choice offered to clients.
type BucketOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// BucketOptions lists the prep-time choices in display order.
var BucketOptions = []BucketOption{
	{Value: "0-15", Label: "Under 15 min"},
	{Value: "15-30", Label: "15-30 min"},
	{Value: "30-60", Label: "30-60 min"},
	{Value: "60+", Label: "Over 1 hour"},
}
