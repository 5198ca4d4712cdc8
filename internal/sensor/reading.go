// Package sensor defines the hazard sensor reading and the simulated
// generator that fabricates one reading per dashboard cycle.
package sensor

// Reading is one snapshot of the four hazard sensors.
type Reading struct {
	Temperature int  // degrees Celsius
	GasLevel    int  // arbitrary gas index
	Smoke       bool // smoke detector tripped
	Motion      bool // PIR detected a person
}

// Generator produces a fresh Reading on every call.
type Generator interface {
	Read() Reading
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func() Reading

// Read calls f.
func (f GeneratorFunc) Read() Reading {
	return f()
}
