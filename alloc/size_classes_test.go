package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_LevelForSize(t *testing.T) {
	cases := []struct {
		size  int32
		level int
	}{
		{8, 0},
		{12, 0},
		{15, 0},
		{16, 1}, // boundary values belong to the higher level
		{17, 1},
		{63, 1},
		{64, 2},
		{1000, 2},
		{1023, 2},
		{1024, 3},
		{4096, 3},
		{1 << 29, 3},
	}
	for _, tc := range cases {
		require.Equal(t, tc.level, levelForSize(tc.size), "size %d", tc.size)
	}
}
