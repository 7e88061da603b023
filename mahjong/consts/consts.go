package consts

type Action int

const (
	_ Action = iota
	DISCARD
	CONCEALED_KONG
	SELF_DRAW_WIN
	WIN
	PONG
	KONG
	CHOW
	PASS
)

// OpCodeData holds the answer keys providers use for each action.
var OpCodeData = map[Action]string{
	DISCARD:        "丟",
	CONCEALED_KONG: "暗槓",
	SELF_DRAW_WIN:  "自摸",
	WIN:            "胡",
	PONG:           "碰",
	KONG:           "槓",
	CHOW:           "吃",
	PASS:           "放棄",
}

// OpCodeAlias maps ASCII answer keys to actions.
var OpCodeAlias = map[string]Action{
	"discard": DISCARD,
	"ankan":   CONCEALED_KONG,
	"tsumo":   SELF_DRAW_WIN,
	"win":     WIN,
	"pong":    PONG,
	"kong":    KONG,
	"chow":    CHOW,
	"pass":    PASS,
}

func (a Action) String() string {
	if name, ok := OpCodeData[a]; ok {
		return name
	}
	return "?"
}

// Priority orders competing claims on one discard; lower wins.
type Priority int

const (
	PriorityWin Priority = iota
	PriorityKong
	PriorityPong
	PriorityChow
	PriorityNone
)

func (a Action) Priority() Priority {
	switch a {
	case WIN:
		return PriorityWin
	case KONG:
		return PriorityKong
	case PONG:
		return PriorityPong
	case CHOW:
		return PriorityChow
	default:
		return PriorityNone
	}
}

type Meld int

const (
	_ Meld = iota
	MELD_PONG
	MELD_KONG
	MELD_CHOW
	MELD_CONCEALED_KONG
)

var MeldData = map[Meld]string{
	MELD_PONG:           "碰",
	MELD_KONG:           "槓",
	MELD_CHOW:           "吃",
	MELD_CONCEALED_KONG: "暗槓",
}

// Seat labels relative to the viewer: right, opposite, left.
var RelativeSeat = []string{"", "下家", "對家", "上家"}
