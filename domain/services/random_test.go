package services

// scriptedRandom feeds predetermined values to an engine under test.
// Float64 and IntN pop from their queues; an exhausted queue returns
// zero. Shuffle is a no-op so dealt cards follow deck order.
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRandom) Shuffle(n int, swap func(i, j int)) {}
