package facts

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Quantity is an optional numeric fact. Fact files carry numbers extracted
// from German planning documents, so "2,5" (comma decimal) is as common as
// 2.5. An absent field stays unset and reads as "unknown" downstream; the
// rules never flag unknowns.
type Quantity struct {
	value float64
	set   bool
}

// Num builds a set Quantity, mostly for tests and builders.
func Num(v float64) Quantity {
	return Quantity{value: v, set: true}
}

// Value returns the number and whether it was set.
func (q Quantity) Value() (float64, bool) {
	return q.value, q.set
}

// Ptr adapts the quantity to the rules-context optional shape.
func (q Quantity) Ptr() *float64 {
	if !q.set {
		return nil
	}
	v := q.value
	return &v
}

// UnmarshalYAML accepts a YAML number, a plain numeric string, or a German
// comma-decimal string. Null leaves the quantity unset.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*q = Quantity{}
		return nil
	}

	raw := strings.TrimSpace(node.Value)
	if raw == "" {
		*q = Quantity{}
		return nil
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid numeric value %q", node.Line, node.Value)
	}
	*q = Quantity{value: v, set: true}
	return nil
}

// MarshalYAML round-trips a set quantity as a plain number.
func (q Quantity) MarshalYAML() (any, error) {
	if !q.set {
		return nil, nil
	}
	return q.value, nil
}
