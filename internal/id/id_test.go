package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMemberID(t *testing.T) {
	assert.Equal(t, "#1", FormatMemberID(1))
	assert.Equal(t, "#42", FormatMemberID(42))
}

func TestParseMemberID(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1", 1},
		{"#7", 7},
		{" 12 ", 12},
	}
	for _, tt := range tests {
		got, err := ParseMemberID(tt.in)
		require.NoError(t, err, "ParseMemberID(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseMemberIDErrors(t *testing.T) {
	for _, in := range []string{"", "#", "abc", "0", "#0", "-3", "1.5"} {
		_, err := ParseMemberID(in)
		assert.Error(t, err, "ParseMemberID(%q) should fail", in)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int64{1, 9, 1000} {
		got, err := ParseMemberID(FormatMemberID(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}
