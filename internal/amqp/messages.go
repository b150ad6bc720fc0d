package amqp

import (
	"encoding/json"
	"time"
)

// Expense event types double as routing keys on the topic exchange.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseUpdated = "expense.updated"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is published after an expense write has been committed.
// Consumers fetch the current row by id when they need more than the totals.
type ExpenseEvent struct {
	Type        string    `json:"type"`
	ExpenseID   int64     `json:"expense_id"`
	UserID      int64     `json:"user_id"`
	CategoryID  int64     `json:"category_id,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewExpenseEvent(eventType string, expenseID, userID int64) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      eventType,
		ExpenseID: expenseID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}

func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var msg ExpenseEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
