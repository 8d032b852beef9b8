// Package loyalty models the editable list of loyalty rules: "spend N points,
// get X". Rows are index-addressed for rendering but carry stable identifiers
// so appending and removing rows never reshuffles identity.
package loyalty

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/glowdesk/partner-console/internal/forms"
)

// Rule is one loyalty redemption rule.
type Rule struct {
	PointsRequired int    `validate:"gt=0"`
	Reward         string `validate:"required,min=3"`
}

// RowID identifies a row for the lifetime of the form.
type RowID string

// Row pairs a rule with its stable identifier.
type Row struct {
	ID   RowID
	Rule Rule
}

// RuleList is an ordered, index-addressed list of rule rows.
type RuleList struct {
	rows []Row
}

// NewRuleList builds a list from existing rules, assigning each a fresh id.
func NewRuleList(rules ...Rule) *RuleList {
	l := &RuleList{rows: make([]Row, 0, len(rules))}
	for _, r := range rules {
		l.Append(r)
	}
	return l
}

// Append adds a rule at the end and returns its row id.
func (l *RuleList) Append(r Rule) RowID {
	id := RowID(uuid.NewString())
	l.rows = append(l.rows, Row{ID: id, Rule: r})
	return id
}

// Remove deletes the row with the given id, preserving the order and the
// identities of the remaining rows.
func (l *RuleList) Remove(id RowID) bool {
	for i, row := range l.rows {
		if row.ID == id {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			return true
		}
	}
	return false
}

// Update replaces the rule stored under the given id.
func (l *RuleList) Update(id RowID, r Rule) bool {
	for i := range l.rows {
		if l.rows[i].ID == id {
			l.rows[i].Rule = r
			return true
		}
	}
	return false
}

// Rows returns the rows in display order.
func (l *RuleList) Rows() []Row {
	return append([]Row(nil), l.rows...)
}

// Len reports the number of rows.
func (l *RuleList) Len() int { return len(l.rows) }

// Validate checks every row, reporting the first invalid one by position.
func (l *RuleList) Validate() error {
	for i, row := range l.rows {
		if err := forms.Validate(row.Rule); err != nil {
			return fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return nil
}
