package game

// Cycler walks seats in play order; each seat's next is its 下家.
type Cycler struct {
	size    int
	current int
}

func NewCycler(size, start int) *Cycler {
	return &Cycler{size: size, current: start % size}
}

func (c *Cycler) Current() int {
	return c.current
}

func (c *Cycler) Set(seat int) {
	c.current = seat % c.size
}

func (c *Cycler) Next() int {
	c.current = c.After(c.current, 1)
	return c.current
}

// After returns the seat steps turns after seat.
func (c *Cycler) After(seat, steps int) int {
	return ((seat+steps)%c.size + c.size) % c.size
}

// Distance counts the turns from seat from to seat to, 1..size.
func (c *Cycler) Distance(from, to int) int {
	d := ((to-from)%c.size + c.size) % c.size
	if d == 0 {
		d = c.size
	}
	return d
}

// Others lists the seats after seat in play order, seat excluded.
func (c *Cycler) Others(seat int) []int {
	seats := make([]int, 0, c.size-1)
	for i := 1; i < c.size; i++ {
		seats = append(seats, c.After(seat, i))
	}
	return seats
}
