package events

import (
	"encoding/json"
	"time"
)

// Event kinds published on the expense stream.
const (
	KindCreated = "expense.created"
	KindUpdated = "expense.updated"
	KindDeleted = "expense.deleted"
	KindCleared = "expense.cleared"
)

// ExpenseEvent is the message published after a confirmed expense mutation.
// It carries only identifiers; consumers fetch current state themselves.
type ExpenseEvent struct {
	Kind      string    `json:"kind"`
	ExpenseID string    `json:"expense_id,omitempty"`
	OwnerID   string    `json:"owner_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEvent builds an event stamped with the current time.
func NewExpenseEvent(kind, expenseID, ownerID string) *ExpenseEvent {
	return &ExpenseEvent{
		Kind:      kind,
		ExpenseID: expenseID,
		OwnerID:   ownerID,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event for the wire.
func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventFromJSON deserializes an event from the wire.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var m ExpenseEvent
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
