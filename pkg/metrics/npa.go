package metrics

import (
	"github.com/panbanda/augur/pkg/parser"
)

// javaIsPublic reports whether a Java declaration node carries a public
// modifier.
func javaIsPublic(n *parser.Node) bool {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == "modifiers" && child.HasChild("public") {
			return true
		}
	}
	return false
}

// javaBodyKind returns the kind of the enclosing type body, if any.
func javaBodyKind(n *parser.Node) string {
	parent := n.Parent()
	if parent == nil {
		return ""
	}
	return parent.Kind()
}

// NpaStats counts public and total attributes per class or interface.
// Java only; interface fields are implicitly public.
type NpaStats struct {
	classPublic    float64
	classTotal     float64
	ifacePublic    float64
	ifaceTotal     float64
}

// NewNpaStats starts an empty space.
func NewNpaStats() NpaStats { return NpaStats{} }

// Compute classifies field declarations by their enclosing body.
func (s *NpaStats) Compute(ctx *Context, n *parser.Node) {
	if ctx.Language != parser.LangJava {
		return
	}
	switch n.Kind() {
	case "field_declaration":
		if javaBodyKind(n) != "class_body" {
			return
		}
		s.classTotal++
		if javaIsPublic(n) {
			s.classPublic++
		}
	case "constant_declaration":
		if javaBodyKind(n) != "interface_body" {
			return
		}
		// Interface constants are public by definition.
		s.ifaceTotal++
		s.ifacePublic++
	}
}

// Merge folds a closed child space into this one.
func (s *NpaStats) Merge(other *NpaStats) {
	s.classPublic += other.classPublic
	s.classTotal += other.classTotal
	s.ifacePublic += other.ifacePublic
	s.ifaceTotal += other.ifaceTotal
}

// Classes returns the public attributes declared in class bodies.
func (s *NpaStats) Classes() float64 { return s.classPublic }

// Interfaces returns the attributes declared in interface bodies.
func (s *NpaStats) Interfaces() float64 { return s.ifacePublic }

// ClassAttributes returns every attribute declared in class bodies.
func (s *NpaStats) ClassAttributes() float64 { return s.classTotal }

// InterfaceAttributes returns every attribute declared in interface bodies.
func (s *NpaStats) InterfaceAttributes() float64 { return s.ifaceTotal }

// Total returns every public attribute.
func (s *NpaStats) Total() float64 { return s.classPublic + s.ifacePublic }

// ClassesAverage returns the class data accessibility, public over total.
func (s *NpaStats) ClassesAverage() float64 { return s.classPublic / s.classTotal }

// InterfacesAverage returns the interface data accessibility.
func (s *NpaStats) InterfacesAverage() float64 { return s.ifacePublic / s.ifaceTotal }

// Average returns the overall data accessibility.
func (s *NpaStats) Average() float64 {
	return s.Total() / (s.classTotal + s.ifaceTotal)
}

// NpaReport is the serializable snapshot.
type NpaReport struct {
	Classes             *float64 `json:"classes" yaml:"classes" toml:"classes,omitempty"`
	Interfaces          *float64 `json:"interfaces" yaml:"interfaces" toml:"interfaces,omitempty"`
	ClassAttributes     *float64 `json:"class_attributes" yaml:"class_attributes" toml:"class_attributes,omitempty"`
	InterfaceAttributes *float64 `json:"interface_attributes" yaml:"interface_attributes" toml:"interface_attributes,omitempty"`
	ClassesAverage      *float64 `json:"classes_average" yaml:"classes_average" toml:"classes_average,omitempty"`
	InterfacesAverage   *float64 `json:"interfaces_average" yaml:"interfaces_average" toml:"interfaces_average,omitempty"`
	Total               *float64 `json:"total" yaml:"total" toml:"total,omitempty"`
	Average             *float64 `json:"average" yaml:"average" toml:"average,omitempty"`
}

// Report snapshots the stats.
func (s *NpaStats) Report() NpaReport {
	return NpaReport{
		Classes:             fin(s.Classes()),
		Interfaces:          fin(s.Interfaces()),
		ClassAttributes:     fin(s.ClassAttributes()),
		InterfaceAttributes: fin(s.InterfaceAttributes()),
		ClassesAverage:      fin(s.ClassesAverage()),
		InterfacesAverage:   fin(s.InterfacesAverage()),
		Total:               fin(s.Total()),
		Average:             fin(s.Average()),
	}
}
