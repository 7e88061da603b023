package ui

import (
	"fmt"
	"strings"
	"time"
)

// Pace is the pause after each printed message so a human can follow the table.
var Pace = 1 * time.Second

func Printfln(format string, args ...interface{}) {
	Println(fmt.Sprintf(format, args...))
}

func Printlns(lines []string) {
	Println(strings.Join(lines, "\n"))
}

func Println(args ...interface{}) {
	fmt.Fprintln(Stdout, args...)
	if Pace > 0 {
		time.Sleep(Pace)
	}
}
