package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1789012345678901234", 1789012345678901234, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-7", 0, true},
		{"64b1f0c2e4b0a1a2b3c4d5e6", 0, true},
		{"", 0, true},
		{"99999999999999999999", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseID(tt.raw, "video id")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextIDIncreasing(t *testing.T) {
	prev := NextID()
	for i := 0; i < 1000; i++ {
		id := NextID()
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "100!% real!_deal!!", EscapeLike("100% real_deal!"))
}

func TestCrypt(t *testing.T) {
	PasswordCost = 4
	hash, err := Crypt("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, VerifyPassword("s3cret-pass", hash))
	assert.False(t, VerifyPassword("other", hash))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("alice@example.com"))
	assert.False(t, IsValidEmail("alice@"))
	assert.False(t, IsValidEmail(""))
}

func TestParseProbeDuration(t *testing.T) {
	d, err := parseProbeDuration(`{"format":{"filename":"a.mp4","duration":"12.480000"}}`)
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 1e-9)

	d, err = parseProbeDuration(`{"format":{}}`)
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = parseProbeDuration(`not json`)
	assert.Error(t, err)
}
