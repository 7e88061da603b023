package game

type PlayerIterator struct {
	players []*playerController
	cycler  *Cycler
}

func newPlayerIterator(players []Player) *PlayerIterator {
	controllers := make([]*playerController, 0, len(players))
	for seat, player := range players {
		controllers = append(controllers, newPlayerController(seat, player))
	}
	return &PlayerIterator{
		players: controllers,
		cycler:  NewCycler(len(players), 0),
	}
}

func (i *PlayerIterator) Get(seat int) *playerController {
	return i.players[seat]
}

func (i *PlayerIterator) Current() *playerController {
	return i.players[i.cycler.Current()]
}

func (i *PlayerIterator) Next() *playerController {
	return i.players[i.cycler.Next()]
}

func (i *PlayerIterator) Set(seat int) *playerController {
	i.cycler.Set(seat)
	return i.Current()
}

func (i *PlayerIterator) Cycler() *Cycler {
	return i.cycler
}

func (i *PlayerIterator) ForEach(function func(player *playerController)) {
	for _, player := range i.players {
		function(player)
	}
}

// Others lists the other seats in play order after seat.
func (i *PlayerIterator) Others(seat int) []*playerController {
	others := make([]*playerController, 0, len(i.players)-1)
	for _, s := range i.cycler.Others(seat) {
		others = append(others, i.players[s])
	}
	return others
}

func (i *PlayerIterator) Names() []string {
	names := make([]string, 0, len(i.players))
	for _, player := range i.players {
		names = append(names, player.Name())
	}
	return names
}

func (i *PlayerIterator) Len() int {
	return len(i.players)
}
