package win

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/ratel-online/mahjong16/consts"
	"github.com/ratel-online/mahjong16/mahjong/tile"
)

type Strategy int

const (
	Exhaustive Strategy = iota
	Greedy
)

func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", consts.WinCheckExhaustive:
		return Exhaustive, nil
	case consts.WinCheckGreedy:
		return Greedy, nil
	}
	return Exhaustive, fmt.Errorf("unknown win check %q", name)
}

func (s Strategy) String() string {
	if s == Greedy {
		return consts.WinCheckGreedy
	}
	return consts.WinCheckExhaustive
}

// Evaluator answers win checks with one strategy and memoises results by kind counts.
type Evaluator struct {
	strategy Strategy
	check    func([]tile.Tile) bool
	cache    *ristretto.Cache
}

// NewEvaluator builds an evaluator. cacheSize <= 0 disables the memo cache.
func NewEvaluator(strategy Strategy, cacheSize int64) (*Evaluator, error) {
	e := &Evaluator{strategy: strategy, check: CanWin}
	if strategy == Greedy {
		e.check = CanWinGreedy
	}
	if cacheSize <= 0 {
		return e, nil
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cacheSize * 10,
		MaxCost:     cacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	e.cache = cache
	return e, nil
}

func (e *Evaluator) Strategy() Strategy {
	return e.strategy
}

func (e *Evaluator) CanWin(tiles []tile.Tile) bool {
	if e.cache == nil {
		return e.check(tiles)
	}
	key := cacheKey(tiles)
	if v, ok := e.cache.Get(key); ok {
		return v.(bool)
	}
	result := e.check(tiles)
	e.cache.Set(key, result, 1)
	return result
}

func (e *Evaluator) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// cacheKey encodes per-kind counts; flowers and invalid ids share one slot so they
// still reach the check and fail there.
func cacheKey(tiles []tile.Tile) string {
	key := make([]byte, kindCount+2)
	for _, t := range tiles {
		switch {
		case !t.Valid() || t.IsFlower():
			key[kindCount]++
		default:
			key[t.Kind()/tile.Copies]++
		}
	}
	key[kindCount+1] = byte(len(tiles))
	return string(key)
}
