package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
		wantSkip  int
	}{
		{"defaults", "", "", 1, 10, 0},
		{"second page", "2", "10", 2, 10, 10},
		{"zero page", "0", "5", 1, 5, 0},
		{"negative page", "-3", "5", 1, 5, 0},
		{"garbage", "abc", "xyz", 1, 10, 0},
		{"limit capped", "1", "1000", 1, 100, 0},
		{"zero limit", "4", "0", 4, 10, 30},
		{"spaces", " 3 ", " 20 ", 3, 20, 40},
		{"huge page", "1000000000000000000", "10", math.MaxInt / 10, 10, (math.MaxInt/10 - 1) * 10},
		{"max int page", "9223372036854775807", "1", math.MaxInt, 1, math.MaxInt - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantSkip, p.Skip())
		})
	}
}

func TestTotalPages(t *testing.T) {
	for limit := 1; limit <= 12; limit++ {
		p := New(1, limit)
		for total := int64(0); total <= 50; total++ {
			want := int64(0)
			for covered := int64(0); covered < total; covered += int64(limit) {
				want++
			}
			assert.Equalf(t, want, p.TotalPages(total), "total=%d limit=%d", total, limit)
		}
	}
}

func TestSkipNeverNegative(t *testing.T) {
	for _, limit := range []string{"1", "7", "10", "100", "1000"} {
		p := Parse("9223372036854775807", limit)
		assert.GreaterOrEqualf(t, p.Skip(), 0, "limit=%s", limit)
	}
}
