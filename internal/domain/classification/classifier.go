// Package classification derives fields that vendor exports do not carry
// directly: process type, status and priority.
//
// Rules run in a fixed order and a later rule may overwrite what an earlier one
// set, so the order returned by DefaultRules is part of the behavior.
package classification

import (
	"scmicro_tracker/internal/domain/extraction"
	"scmicro_tracker/internal/domain/tabular"
)

// Rule is a pure inference step over a row and the fields extracted so far.
type Rule interface {
	Name() string
	Applies(schema extraction.Schema) bool
	Apply(row tabular.Row, f extraction.Fields) extraction.Fields
}

// Classifier applies an ordered list of rules.
type Classifier struct {
	rules []Rule
}

// New builds a classifier that evaluates rules in the given order.
func New(rules ...Rule) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...)}
}

// Default is the canonical rule set with the given strategic account names.
func Default(strategicAccounts []string) *Classifier {
	return New(DefaultRules(strategicAccounts)...)
}

// DefaultRules returns the canonical rules in evaluation order.
func DefaultRules(strategicAccounts []string) []Rule {
	return []Rule{
		TypeRule{},
		WorkOrderStatusRule{},
		ProjectStatusRule{},
		NewPriorityRule(strategicAccounts),
	}
}

// RuleNames lists the rules in evaluation order.
func (c *Classifier) RuleNames() []string {
	names := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		names = append(names, r.Name())
	}
	return names
}

// Classify runs every rule that applies to the fields' schema.
func (c *Classifier) Classify(row tabular.Row, f extraction.Fields) extraction.Fields {
	for _, r := range c.rules {
		if r.Applies(f.Schema) {
			f = r.Apply(row, f)
		}
	}
	return f
}
