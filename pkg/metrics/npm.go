package metrics

import (
	"github.com/panbanda/augur/pkg/parser"
)

// NpmStats counts public and total methods per class or interface.
// Java only; interface methods are implicitly public.
type NpmStats struct {
	classPublic float64
	classTotal  float64
	ifacePublic float64
	ifaceTotal  float64
}

// NewNpmStats starts an empty space.
func NewNpmStats() NpmStats { return NpmStats{} }

// Compute classifies method declarations by their enclosing body.
func (s *NpmStats) Compute(ctx *Context, n *parser.Node) {
	if ctx.Language != parser.LangJava {
		return
	}
	if n.Kind() != "method_declaration" && n.Kind() != "constructor_declaration" {
		return
	}
	switch javaBodyKind(n) {
	case "class_body":
		s.classTotal++
		if javaIsPublic(n) {
			s.classPublic++
		}
	case "interface_body":
		s.ifaceTotal++
		s.ifacePublic++
	}
}

// Merge folds a closed child space into this one.
func (s *NpmStats) Merge(other *NpmStats) {
	s.classPublic += other.classPublic
	s.classTotal += other.classTotal
	s.ifacePublic += other.ifacePublic
	s.ifaceTotal += other.ifaceTotal
}

// Classes returns the public methods declared in class bodies.
func (s *NpmStats) Classes() float64 { return s.classPublic }

// Interfaces returns the methods declared in interface bodies.
func (s *NpmStats) Interfaces() float64 { return s.ifacePublic }

// ClassMethods returns every method declared in class bodies.
func (s *NpmStats) ClassMethods() float64 { return s.classTotal }

// InterfaceMethods returns every method declared in interface bodies.
func (s *NpmStats) InterfaceMethods() float64 { return s.ifaceTotal }

// Total returns every public method.
func (s *NpmStats) Total() float64 { return s.classPublic + s.ifacePublic }

// ClassesAverage returns the class operation accessibility.
func (s *NpmStats) ClassesAverage() float64 { return s.classPublic / s.classTotal }

// InterfacesAverage returns the interface operation accessibility.
func (s *NpmStats) InterfacesAverage() float64 { return s.ifacePublic / s.ifaceTotal }

// Average returns the overall operation accessibility.
func (s *NpmStats) Average() float64 {
	return s.Total() / (s.classTotal + s.ifaceTotal)
}

// NpmReport is the serializable snapshot.
type NpmReport struct {
	Classes           *float64 `json:"classes" yaml:"classes" toml:"classes,omitempty"`
	Interfaces        *float64 `json:"interfaces" yaml:"interfaces" toml:"interfaces,omitempty"`
	ClassMethods      *float64 `json:"class_methods" yaml:"class_methods" toml:"class_methods,omitempty"`
	InterfaceMethods  *float64 `json:"interface_methods" yaml:"interface_methods" toml:"interface_methods,omitempty"`
	ClassesAverage    *float64 `json:"classes_average" yaml:"classes_average" toml:"classes_average,omitempty"`
	InterfacesAverage *float64 `json:"interfaces_average" yaml:"interfaces_average" toml:"interfaces_average,omitempty"`
	Total             *float64 `json:"total" yaml:"total" toml:"total,omitempty"`
	Average           *float64 `json:"average" yaml:"average" toml:"average,omitempty"`
}

// Report snapshots the stats.
func (s *NpmStats) Report() NpmReport {
	return NpmReport{
		Classes:           fin(s.Classes()),
		Interfaces:        fin(s.Interfaces()),
		ClassMethods:      fin(s.ClassMethods()),
		InterfaceMethods:  fin(s.InterfaceMethods()),
		ClassesAverage:    fin(s.ClassesAverage()),
		InterfacesAverage: fin(s.InterfacesAverage()),
		Total:             fin(s.Total()),
		Average:           fin(s.Average()),
	}
}
