package game_test

import (
	"testing"

	mjconsts "github.com/ratel-online/mahjong16/mahjong/consts"
	"github.com/ratel-online/mahjong16/mahjong/game"
	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/stretchr/testify/require"
)

type fixedChecker bool

func (c fixedChecker) CanWin([]tile.Tile) bool {
	return bool(c)
}

func kindsOf(specs []game.ActionSpec) []mjconsts.Action {
	kinds := make([]mjconsts.Action, 0, len(specs))
	for _, spec := range specs {
		kinds = append(kinds, spec.Kind)
	}
	return kinds
}

func TestSelfDrawActions(t *testing.T) {
	hand := names(t, "一萬,一萬,一萬,二萬,三萬,四萬,五筒,六筒,七筒,東風,東風,東風,紅中,紅中,九條,九條")
	oneWan := names(t, "一萬")[0]

	t.Run("after_a_claim_only_discard", func(t *testing.T) {
		specs := game.SelfDrawActions(hand, tile.None, fixedChecker(true))
		require.Equal(t, []mjconsts.Action{mjconsts.DISCARD}, kindsOf(specs))
	})

	t.Run("fourth_copy_offers_a_concealed_kong", func(t *testing.T) {
		specs := game.SelfDrawActions(hand, oneWan, fixedChecker(false))
		require.Equal(t, []mjconsts.Action{mjconsts.DISCARD, mjconsts.CONCEALED_KONG}, kindsOf(specs))
		require.Equal(t, []tile.Tile{oneWan}, specs[1].Tiles)
	})

	t.Run("winning_draw", func(t *testing.T) {
		specs := game.SelfDrawActions(hand, names(t, "五萬")[0], fixedChecker(true))
		require.Equal(t, []mjconsts.Action{mjconsts.DISCARD, mjconsts.SELF_DRAW_WIN}, kindsOf(specs))
	})
}

func TestClaimActions(t *testing.T) {
	hand := names(t, "一萬,二萬,三萬,三萬,四萬,五萬,東風,東風,東風,南風,西風,北風,紅中,發財,白板,九條")
	threeWan := names(t, "三萬")[0]

	t.Run("next_seat_may_chow", func(t *testing.T) {
		specs := game.ClaimActions(hand, threeWan, true, fixedChecker(false))
		require.Equal(t, []mjconsts.Action{mjconsts.PONG, mjconsts.CHOW}, kindsOf(specs))
		require.Equal(t, names(t, "一萬,二萬,三萬"), specs[1].Tiles)
	})

	t.Run("other_seats_may_not", func(t *testing.T) {
		specs := game.ClaimActions(hand, threeWan, false, fixedChecker(false))
		require.Equal(t, []mjconsts.Action{mjconsts.PONG}, kindsOf(specs))
	})

	t.Run("win_kong_and_pong_in_priority_order", func(t *testing.T) {
		specs := game.ClaimActions(hand, names(t, "東風")[0], true, fixedChecker(true))
		require.Equal(t, []mjconsts.Action{mjconsts.WIN, mjconsts.KONG, mjconsts.PONG}, kindsOf(specs))
	})

	t.Run("nothing_to_claim", func(t *testing.T) {
		specs := game.ClaimActions(hand, names(t, "一筒")[0], true, fixedChecker(false))
		require.Empty(t, specs)
	})
}

func TestChowAnchors(t *testing.T) {
	t.Run("runs_stay_inside_the_suit", func(t *testing.T) {
		hand := names(t, "七萬,八萬,一筒,二筒")
		require.Equal(t, names(t, "七萬"), game.ChowAnchors(hand, names(t, "九萬")[0]))
		require.Empty(t, game.ChowAnchors(hand, names(t, "九條")[0]))
	})

	t.Run("honours_never_chow", func(t *testing.T) {
		hand := names(t, "東風,南風")
		require.Empty(t, game.ChowAnchors(hand, names(t, "西風")[0]))
	})

	t.Run("tiles_given_up", func(t *testing.T) {
		hand := names(t, "二萬,四萬,五萬")
		threeWan := names(t, "三萬")[0]
		require.Equal(t, names(t, "二萬,四萬"), game.ChowTiles(hand, names(t, "二萬")[0], threeWan))
		require.Equal(t, names(t, "四萬,五萬"), game.ChowTiles(hand, threeWan, threeWan))
		require.Nil(t, game.ChowTiles(hand, names(t, "四萬")[0], threeWan))
		require.Nil(t, game.ChowTiles(hand, names(t, "一萬")[0], threeWan))
	})
}

func TestCycler(t *testing.T) {
	c := game.NewCycler(4, 3)
	require.Equal(t, 0, c.Next())
	require.Equal(t, 1, c.Distance(0, 1))
	require.Equal(t, 3, c.Distance(1, 0))
	require.Equal(t, 4, c.Distance(2, 2))
	require.Equal(t, []int{3, 0, 1}, c.Others(2))
	require.Equal(t, 3, c.After(0, -1))
}

func TestMeld(t *testing.T) {
	concealed := game.NewMeld(mjconsts.MELD_CONCEALED_KONG, -1, []tile.Tile{3, 1, 2, 0})
	require.Equal(t, "[暗槓]****", concealed.String())
	require.Equal(t, "[暗槓]一萬,一萬,一萬,一萬", concealed.OwnerString())
	require.True(t, concealed.IsConcealed())

	chow := game.NewMeld(mjconsts.MELD_CHOW, 2, names(t, "三條,一條,二條"))
	require.Equal(t, "[吃]一條,二條,三條", chow.String())
	require.Equal(t, 2, chow.Target())
}

func TestPile(t *testing.T) {
	pile := game.NewPile()
	require.Equal(t, tile.None, pile.TakeTop())
	pile.Add(3)
	pile.Add(40)
	require.Equal(t, tile.Tile(40), pile.TakeTop())
	require.Equal(t, []tile.Tile{3}, pile.Tiles())
}
