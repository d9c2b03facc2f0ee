package process

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sarchlab/rrsched/idgen"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

func (r Range) draw(rng *rand.Rand) int {
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Default ranges for randomly generated processes.
var (
	DefaultArrivalRange = Range{Min: 0, Max: 20}
	DefaultBurstRange   = Range{Min: 1, Max: 10}
)

// A Factory creates processes with increasing ids taken from its own
// generator.
type Factory struct {
	ids          idgen.Generator
	rng          *rand.Rand
	arrivalRange Range
	burstRange   Range
}

// Create builds a process with the next id.
func (f *Factory) Create(arrival, burst int) (*Process, error) {
	if err := validate(arrival, burst); err != nil {
		return nil, err
	}

	return New(f.ids.Generate(), arrival, burst)
}

// CreateWithPriority builds a process with the next id and a display
// priority.
func (f *Factory) CreateWithPriority(
	arrival, burst, priority int,
) (*Process, error) {
	p, err := f.Create(arrival, burst)
	if err != nil {
		return nil, err
	}

	p.Priority = Some(priority)

	return p, nil
}

// CreateRandom builds a process whose arrival and burst times are drawn from
// the factory's ranges.
func (f *Factory) CreateRandom() *Process {
	p, err := f.Create(
		f.arrivalRange.draw(f.rng),
		f.burstRange.draw(f.rng),
	)
	if err != nil {
		// Ranges are validated when the factory is built.
		panic(err)
	}

	return p
}

// CreateRandomBatch builds n random processes.
func (f *Factory) CreateRandomBatch(n int) []*Process {
	procs := make([]*Process, 0, n)
	for i := 0; i < n; i++ {
		procs = append(procs, f.CreateRandom())
	}

	return procs
}

// FactoryBuilder can build process factories.
type FactoryBuilder struct {
	ids          idgen.Generator
	seed         int64
	seeded       bool
	arrivalRange Range
	burstRange   Range
}

// MakeFactoryBuilder creates a FactoryBuilder with default ranges.
func MakeFactoryBuilder() FactoryBuilder {
	return FactoryBuilder{
		arrivalRange: DefaultArrivalRange,
		burstRange:   DefaultBurstRange,
	}
}

// WithIDGenerator sets the generator that assigns process ids.
func (b FactoryBuilder) WithIDGenerator(ids idgen.Generator) FactoryBuilder {
	b.ids = ids
	return b
}

// WithSeed makes the random variant deterministic.
func (b FactoryBuilder) WithSeed(seed int64) FactoryBuilder {
	b.seed = seed
	b.seeded = true

	return b
}

// WithArrivalRange sets the inclusive range of random arrival times.
func (b FactoryBuilder) WithArrivalRange(min, max int) FactoryBuilder {
	b.arrivalRange = Range{Min: min, Max: max}
	return b
}

// WithBurstRange sets the inclusive range of random burst times.
func (b FactoryBuilder) WithBurstRange(min, max int) FactoryBuilder {
	b.burstRange = Range{Min: min, Max: max}
	return b
}

func (b FactoryBuilder) rangesMustBeValid() error {
	if b.arrivalRange.Min > b.arrivalRange.Max {
		return &ValidationError{
			Field:  "arrival range minimum",
			Value:  b.arrivalRange.Min,
			Reason: fmt.Sprintf("exceeds maximum %d", b.arrivalRange.Max),
		}
	}

	if b.burstRange.Min > b.burstRange.Max {
		return &ValidationError{
			Field:  "burst range minimum",
			Value:  b.burstRange.Min,
			Reason: fmt.Sprintf("exceeds maximum %d", b.burstRange.Max),
		}
	}

	return validate(b.arrivalRange.Min, b.burstRange.Min)
}

// Build creates the factory.
func (b FactoryBuilder) Build() (*Factory, error) {
	if err := b.rangesMustBeValid(); err != nil {
		return nil, err
	}

	f := &Factory{
		ids:          b.ids,
		arrivalRange: b.arrivalRange,
		burstRange:   b.burstRange,
	}

	if f.ids == nil {
		f.ids = idgen.New()
	}

	seed := b.seed
	if !b.seeded {
		seed = time.Now().UnixNano()
	}

	f.rng = rand.New(rand.NewSource(seed))

	return f, nil
}
