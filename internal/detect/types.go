// Package detect holds the step-detection algorithm family. Every
// algorithm is a stateless transform from a magnitude series to a
// predicted step count; variants differ only in the filtering and
// validation they add around the shared threshold-crossing primitive.
package detect

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// #region errors

var (
	// ErrUnknownAlgorithm indicates a detector name with no registry entry.
	ErrUnknownAlgorithm = errors.New("detect: unknown algorithm")

	// ErrConfig indicates an invalid parameter grid, such as an empty
	// candidate set for a declared parameter.
	ErrConfig = errors.New("detect: invalid configuration")
)

// #endregion errors

// #region params

// Params is one concrete parameter assignment for a detector.
type Params map[string]float64

// Get returns the named parameter, falling back to def when absent.
func (p Params) Get(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// Int returns the named parameter truncated to int.
func (p Params) Int(name string, def int) int {
	if v, ok := p[name]; ok {
		return int(v)
	}
	return def
}

// Key returns the canonical encoding of the assignment: name=value pairs
// in sorted name order. Used for deterministic ordering, tie-breaking, and
// the persisted result contract.
func (p Params) Key() string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(p[name], 'g', -1, 64))
	}
	return b.String()
}

// Clone returns an independent copy of the assignment.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// #endregion params

// #region detector

// Detector predicts a step count for a magnitude series. Implementations
// are pure: no state survives a call, and a zero-length series always
// yields zero steps.
type Detector interface {
	DetectSteps(x []float64) int
}

// Factory builds a detector from a parameter assignment and declares the
// default search grid for calibration.
type Factory struct {
	New  func(Params) Detector
	Grid Grid
}

// #endregion detector

// #region registry

// registry maps algorithm name to its factory.
var registry = map[string]Factory{}

func register(name string, f Factory) {
	registry[name] = f
}

// Lookup returns the factory for a registered algorithm.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return Factory{}, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownAlgorithm, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns all registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// #endregion registry
