package consts

import (
	"errors"
	"time"
)

const (
	Players   = 4
	HandSize  = 16
	MeldUnits = 3

	DecisionTimeout = 60 * time.Second
	FillTimeout     = 30 * time.Second
	AuthTimeout     = 3 * time.Second
	TableTTL        = time.Hour
)

// Seat kinds.
const (
	SeatHuman  = "human"
	SeatNaive  = "naive"
	SeatGood   = "good"
	SeatLLM    = "llm"
	SeatRemote = "remote"
)

// Win check strategies.
const (
	WinCheckExhaustive = "exhaustive"
	WinCheckGreedy     = "greedy"
)

// Table states.
const (
	_ = iota
	TableStateWaiting
	TableStateRunning
	TableStateFinished
)

var TableStates = map[int]string{
	TableStateWaiting:  "waiting",
	TableStateRunning:  "running",
	TableStateFinished: "finished",
}

var DefaultPlayerNames = []string{"聶小倩", "祝英台", "白素貞", "花木蘭"}

// Error codes.
const (
	_ = iota
	CodeInvalidTileName
	CodeIllegalAction
	CodeMalformedResponse
	CodeProviderFailure
	CodeInvariantViolation
	CodeGameOver
	CodeTimeout
	CodeChanClosed
	CodeTableInvalid
	CodeRateLimited
	CodeAuthFail
)

type Error struct {
	Code int
	Msg  string
	Exit bool
}

func (e Error) Error() string {
	return e.Msg
}

func NewErr(code int, exit bool, msg string) Error {
	return Error{Code: code, Exit: exit, Msg: msg}
}

var (
	ErrorsInvalidTileName    = NewErr(CodeInvalidTileName, false, "Invalid tile name. ")
	ErrorsIllegalAction      = NewErr(CodeIllegalAction, false, "Illegal action. ")
	ErrorsMalformedResponse  = NewErr(CodeMalformedResponse, false, "Malformed response. ")
	ErrorsProviderFailure    = NewErr(CodeProviderFailure, true, "Provider failure. ")
	ErrorsInvariantViolation = NewErr(CodeInvariantViolation, true, "Engine invariant violation. ")
	ErrorsGameOver           = NewErr(CodeGameOver, true, "Game over. ")
	ErrorsTimeout            = NewErr(CodeTimeout, false, "Timeout. ")
	ErrorsChanClosed         = NewErr(CodeChanClosed, true, "Chan closed. ")
	ErrorsTableInvalid       = NewErr(CodeTableInvalid, false, "Table invalid. ")
	ErrorsRateLimited        = NewErr(CodeRateLimited, false, "Rate limited. ")
	ErrorsAuthFail           = NewErr(CodeAuthFail, true, "Auth fail. ")
)

// IsFatal reports whether err ends the game instead of re-prompting the seat.
// Errors outside the taxonomy are fatal.
func IsFatal(err error) bool {
	var e Error
	if !errors.As(err, &e) {
		return true
	}
	return e.Exit
}
