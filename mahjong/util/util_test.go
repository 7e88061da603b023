package util_test

import (
	"testing"

	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/util"
	"github.com/stretchr/testify/require"
)

func TestRemoveKinds(t *testing.T) {
	hand := []tile.Tile{0, 1, 4, 9, 108}

	t.Run("removes_concrete_tiles_by_kind", func(t *testing.T) {
		remaining, removed, err := util.RemoveKinds(hand, 0, 0, 8)
		require.NoError(t, err)
		require.Equal(t, []tile.Tile{4, 108}, remaining)
		require.Equal(t, []tile.Tile{0, 1, 9}, removed)
	})

	t.Run("leaves_input_untouched", func(t *testing.T) {
		_, _, err := util.RemoveKinds(hand, 108)
		require.NoError(t, err)
		require.Equal(t, []tile.Tile{0, 1, 4, 9, 108}, hand)
	})

	t.Run("validates_before_removing", func(t *testing.T) {
		remaining, removed, err := util.RemoveKinds(hand, 4, 4)
		require.ErrorIs(t, err, consts.ErrorsIllegalAction)
		require.Nil(t, remaining)
		require.Nil(t, removed)
	})
}

func TestKindCounts(t *testing.T) {
	counts := util.KindCounts([]tile.Tile{0, 1, 2, 5, 137})
	require.Equal(t, map[tile.Tile]int{0: 3, 4: 1, 137: 1}, counts)
	require.Equal(t, 3, util.CountKind([]tile.Tile{0, 1, 2, 5}, 3))
	require.False(t, util.ContainsKind([]tile.Tile{0, 1}, 4))
	require.Equal(t, []tile.Tile{8, 8}, util.Repeat(8, 2))
}
