// Package export mirrors recorded expenses to a local CSV file so the ledger
// can be opened in a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"finease/internal/core"
)

var header = []string{"id", "user_id", "date", "category", "amount", "description"}

// CSVAppender appends expenses to a CSV file, writing the header once when
// the file is created. Appends are serialized so the worker's consumer and
// pending sweep never interleave rows.
type CSVAppender struct {
	mu   sync.Mutex
	path string
}

func NewCSVAppender(path string) *CSVAppender {
	return &CSVAppender{path: path}
}

// Append writes one expense as a CSV row.
func (a *CSVAppender) Append(e core.Expense) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(a.path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat export file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	record := []string{
		strconv.FormatInt(e.ID, 10),
		strconv.FormatInt(e.UserID, 10),
		e.Date.String(),
		e.Category,
		e.Amount.String(),
		e.Description,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export file: %w", err)
	}
	return nil
}
