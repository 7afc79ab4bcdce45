package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBucket(t *testing.T) {
	tests := []struct {
		in     string
		want   Bucket
		wantOK bool
	}{
		{in: "30+", want: Bucket{Min: 30, Open: true}, wantOK: true},
		{in: "10-20", want: Bucket{Min: 10, Max: 20}, wantOK: true},
		{in: " 0-15 ", want: Bucket{Min: 0, Max: 15}, wantOK: true},
		{in: "", wantOK: false},
		{in: "quick", wantOK: false},
		{in: "x+", wantOK: false},
		{in: "10-", wantOK: false},
		{in: "-10", wantOK: false},
		{in: "30", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseBucket(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBucket_Contains(t *testing.T) {
	open := Bucket{Min: 30, Open: true}
	assert.False(t, open.Contains(29))
	assert.True(t, open.Contains(30))
	assert.True(t, open.Contains(600))

	closed := Bucket{Min: 10, Max: 20}
	assert.False(t, closed.Contains(9))
	assert.True(t, closed.Contains(10))
	assert.True(t, closed.Contains(20))
	assert.False(t, closed.Contains(21))
}

func TestBucketOptions_AllParse(t *testing.T) {
	for _, o := range BucketOptions {
		_, ok := ParseBucket(o.Value)
		assert.True(t, ok, o.Value)
	}
}
