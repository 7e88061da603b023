package ui

import (
	"bufio"
	"context"
	"strings"
	"sync"

	"github.com/ratel-online/core/util/async"
	"github.com/ratel-online/mahjong16/consts"
)

var (
	lines     chan string
	linesOnce sync.Once
)

// readLines scans Stdin once in the background so a prompt can be abandoned when
// its context ends without losing the next line typed.
func readLines() chan string {
	linesOnce.Do(func() {
		lines = make(chan string)
		async.Async(func() {
			defer close(lines)
			scanner := bufio.NewScanner(Stdin)
			for scanner.Scan() {
				lines <- scanner.Text()
			}
		})
	})
	return lines
}

// ReadLine waits for one line of input.
func ReadLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-readLines():
		if !ok {
			return "", consts.ErrorsChanClosed
		}
		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// PromptString prints message and returns the first non-empty line.
func PromptString(ctx context.Context, message string) (string, error) {
	for {
		Println(message)
		input, err := ReadLine(ctx)
		if err != nil {
			return "", err
		}
		if input == "" {
			Println("請輸入內容")
			continue
		}
		return input, nil
	}
}

// PromptParsed re-prompts until parse accepts the input.
func PromptParsed[T any](ctx context.Context, message string, parse func(string) (T, error)) (T, error) {
	for {
		input, err := PromptString(ctx, message)
		if err != nil {
			var zero T
			return zero, err
		}
		value, err := parse(input)
		if err != nil {
			Printfln("看不懂 '%s'：%v", input, err)
			continue
		}
		return value, nil
	}
}
