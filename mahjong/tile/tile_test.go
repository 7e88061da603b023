package tile_test

import (
	"testing"

	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	scenarios := []struct {
		description string
		id          tile.Tile
		name        string
	}{
		{description: "first_wan", id: 0, name: "一萬"},
		{description: "last_copy_of_nine_wan", id: 35, name: "九萬"},
		{description: "first_tong", id: 36, name: "一筒"},
		{description: "five_tiao_copy_two", id: 72 + 4*4 + 2, name: "五條"},
		{description: "east_wind", id: 108, name: "東風"},
		{description: "red_dragon", id: 124, name: "紅中"},
		{description: "white_dragon_last_copy", id: 135, name: "白板"},
		{description: "spring", id: 136, name: "春"},
		{description: "bamboo", id: 143, name: "竹"},
	}
	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			name, err := scenario.id.Name()
			require.NoError(t, err)
			require.Equal(t, scenario.name, name)
		})
	}

	t.Run("out_of_range", func(t *testing.T) {
		_, err := tile.Tile(144).Name()
		require.ErrorIs(t, err, consts.ErrorsInvalidTileName)
		_, err = tile.None.Name()
		require.ErrorIs(t, err, consts.ErrorsInvalidTileName)
		require.Equal(t, "?", tile.Tile(200).String())
	})
}

func TestParse(t *testing.T) {
	t.Run("round_trips_every_id_by_kind", func(t *testing.T) {
		for id := tile.Tile(0); id < tile.Total; id++ {
			parsed, err := tile.Parse(id.String())
			require.NoError(t, err)
			require.Equal(t, id.Kind(), parsed.Kind(), "id %d", id)
		}
	})

	t.Run("yields_canonical_base_id", func(t *testing.T) {
		parsed, err := tile.Parse("三筒")
		require.NoError(t, err)
		require.Equal(t, tile.Tile(36+2*4), parsed)
		require.Equal(t, parsed, parsed.Kind())
	})

	t.Run("rejects_unknown_names", func(t *testing.T) {
		for _, name := range []string{"", "十萬", "三", "萬", "east", "中"} {
			_, err := tile.Parse(name)
			require.ErrorIs(t, err, consts.ErrorsInvalidTileName, name)
		}
	})

	t.Run("parse_list_stops_at_first_bad_name", func(t *testing.T) {
		_, err := tile.ParseList("一萬", "bad")
		require.ErrorIs(t, err, consts.ErrorsInvalidTileName)
		tiles, err := tile.ParseList("一萬", "發財")
		require.NoError(t, err)
		require.Equal(t, []tile.Tile{0, 128}, tiles)
	})
}

func TestClassification(t *testing.T) {
	assert.True(t, tile.Tile(0).IsNumeral())
	assert.True(t, tile.Tile(107).IsNumeral())
	assert.True(t, tile.Tile(108).IsHonor())
	assert.True(t, tile.Tile(136).IsFlower())
	assert.False(t, tile.Tile(136).IsHonor())

	assert.Equal(t, tile.SuitTiao, tile.Tile(80).Suit())
	assert.Equal(t, 3, tile.Tile(80).Rank())
	assert.Equal(t, tile.Tile(137), tile.Tile(137).Kind())
	assert.Equal(t, tile.Tile(112), tile.Tile(115).Kind())

	next, ok := tile.Tile(32).Next(1)
	assert.False(t, ok)
	assert.Equal(t, tile.None, next)
	next, ok = tile.Tile(36).Next(2)
	assert.True(t, ok)
	assert.Equal(t, tile.Tile(44), next)
	_, ok = tile.Tile(108).Next(1)
	assert.False(t, ok)

	assert.Len(t, tile.Kinds(), 34)
	assert.Len(t, tile.Flowers(), 8)
	assert.Equal(t, "一萬,東風,春", tile.ToTileString([]tile.Tile{0, 108, 136}))
}
