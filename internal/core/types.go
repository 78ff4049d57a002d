package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is the read-only contract presentation layers render from.
type Sim interface {
	Name() string
	Size() Size
	Cells() []uint8
}
