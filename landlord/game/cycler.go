package game

// Cycler walks the seats clockwise.
type Cycler struct {
	seats   []int
	current int
}

func NewCycler(seats []int, start int) *Cycler {
	c := &Cycler{seats: seats}
	c.Set(start)
	return c
}

func (c *Cycler) Current() int {
	return c.seats[c.current]
}

// Set moves the cursor to the given seat. Unknown seats leave it where it is.
func (c *Cycler) Set(seat int) {
	for i, s := range c.seats {
		if s == seat {
			c.current = i
			return
		}
	}
}

func (c *Cycler) Next() int {
	c.current = (c.current + 1) % len(c.seats)
	return c.seats[c.current]
}

func (c *Cycler) ForEach(function func(int)) {
	for _, seat := range c.seats {
		function(seat)
	}
}
