package amqp

import (
	"encoding/json"
	"time"
)

// ExpenseExportMessage tells the export worker which expense to mirror.
// It carries only identifiers; the worker reads the full row from the
// database so the export always reflects the latest state.
type ExpenseExportMessage struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseExportMessage(id, userID int64) *ExpenseExportMessage {
	return &ExpenseExportMessage{
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (m *ExpenseExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseExportMessageFromJSON(data []byte) (*ExpenseExportMessage, error) {
	var msg ExpenseExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
