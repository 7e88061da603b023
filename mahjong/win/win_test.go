package win_test

import (
	"strings"
	"testing"

	"github.com/ratel-online/mahjong16/mahjong/tile"
	"github.com/ratel-online/mahjong16/mahjong/win"
	"github.com/stretchr/testify/require"
)

func tiles(t *testing.T, names string) []tile.Tile {
	t.Helper()
	ret, err := tile.ParseList(strings.Split(names, ",")...)
	require.NoError(t, err)
	return ret
}

// The engine defaults to the exhaustive search; the greedy strip is the selectable
// alternative. Both are checked here, and the divergent hand is pinned below.
func TestCanWin(t *testing.T) {
	scenarios := []struct {
		description string
		hand        string
		exhaustive  bool
		greedy      bool
	}{
		{
			description: "five_groups_and_a_pair",
			hand:        "一萬,二萬,三萬,四萬,五萬,六萬,七筒,七筒,七筒,三條,四條,五條,東風,東風,東風,紅中,紅中",
			exhaustive:  true,
			greedy:      true,
		},
		{
			description: "overlapping_runs_need_backtracking",
			hand:        "一萬,二萬,二萬,三萬,三萬,四萬,七筒,八筒,九筒,三條,四條,五條,北風,北風,北風,白板,白板",
			exhaustive:  true,
			greedy:      false,
		},
		{
			description: "honours_never_form_runs",
			hand:        "東風,南風,西風,一萬,二萬,三萬,四萬,五萬,六萬,七筒,八筒,九筒,三條,四條,五條,紅中,紅中",
			exhaustive:  false,
			greedy:      false,
		},
		{
			description: "runs_do_not_wrap_across_suits",
			hand:        "八萬,九萬,一筒,一萬,二萬,三萬,四萬,五萬,六萬,七筒,八筒,九筒,三條,四條,五條,紅中,紅中",
			exhaustive:  false,
			greedy:      false,
		},
		{
			description: "no_pair",
			hand:        "一萬,二萬,三萬,四萬,五萬,六萬,七筒,八筒,九筒,三條,四條,五條,東風,東風,東風,紅中,白板",
			exhaustive:  false,
			greedy:      false,
		},
		{
			description: "reduced_hand_after_melds",
			hand:        "三條,四條,五條,九筒,九筒",
			exhaustive:  true,
			greedy:      true,
		},
		{
			description: "pair_alone",
			hand:        "發財,發財",
			exhaustive:  true,
			greedy:      true,
		},
		{
			description: "wrong_size",
			hand:        "一萬,二萬,三萬,九筒",
			exhaustive:  false,
			greedy:      false,
		},
		{
			description: "flowers_never_win",
			hand:        "春,春,一萬,二萬,三萬",
			exhaustive:  false,
			greedy:      false,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			hand := tiles(t, scenario.hand)
			require.Equal(t, scenario.exhaustive, win.CanWin(hand))
			require.Equal(t, scenario.greedy, win.CanWinGreedy(hand))
		})
	}
}

func TestCanWinSwappingAnyTileLoses(t *testing.T) {
	hand := tiles(t, "一萬,二萬,三萬,四萬,五萬,六萬,七筒,七筒,七筒,三條,四條,五條,東風,東風,東風,紅中,紅中")
	require.True(t, win.CanWin(hand))
	require.True(t, win.CanWinGreedy(hand))
	for i := range hand {
		swapped := append([]tile.Tile{}, hand...)
		swapped[i] = 128 // 發財
		require.False(t, win.CanWin(swapped), "swapped %s", hand[i])
		require.False(t, win.CanWinGreedy(swapped), "swapped %s", hand[i])

		short := append(append([]tile.Tile{}, hand[:i]...), hand[i+1:]...)
		require.False(t, win.CanWin(short), "without %s", hand[i])
		require.False(t, win.CanWinGreedy(short), "without %s", hand[i])
	}
}

func TestCanWinMixedHand(t *testing.T) {
	hand := tiles(t, "一萬,一萬,二萬,三萬,四萬,五筒,五筒,五筒,東風,東風,東風,白板,白板,白板,七條,八條,九條")
	require.True(t, win.CanWin(hand))
	require.True(t, win.CanWinGreedy(hand))
}

func TestCanWinUsesKindsNotCopies(t *testing.T) {
	// 4, 5 and 6 are different copies of 二萬.
	hand := []tile.Tile{0, 4, 5, 6, 8, 12, 16, 20, 24, 28, 32, 40, 44, 48, 112, 113, 114}
	require.True(t, win.CanWin(hand))
	require.True(t, win.CanWinGreedy(hand))
}

func TestEvaluator(t *testing.T) {
	divergent := tiles(t, "一萬,二萬,二萬,三萬,三萬,四萬,七筒,八筒,九筒,三條,四條,五條,北風,北風,北風,白板,白板")

	t.Run("exhaustive_with_cache", func(t *testing.T) {
		e, err := win.NewEvaluator(win.Exhaustive, 1<<10)
		require.NoError(t, err)
		defer e.Close()
		require.Equal(t, win.Exhaustive, e.Strategy())
		for i := 0; i < 3; i++ {
			require.True(t, e.CanWin(divergent))
		}
		require.False(t, e.CanWin(divergent[1:]))
	})

	t.Run("greedy_without_cache", func(t *testing.T) {
		e, err := win.NewEvaluator(win.Greedy, 0)
		require.NoError(t, err)
		defer e.Close()
		require.False(t, e.CanWin(divergent))
	})

	t.Run("strategy_by_name", func(t *testing.T) {
		s, err := win.StrategyByName("greedy")
		require.NoError(t, err)
		require.Equal(t, win.Greedy, s)
		s, err = win.StrategyByName("")
		require.NoError(t, err)
		require.Equal(t, win.Exhaustive, s)
		_, err = win.StrategyByName("fast")
		require.Error(t, err)
		require.Equal(t, "greedy", win.Greedy.String())
	})
}
