// Package export writes the classified ledger back out as CSV, audit
// columns included, so the full include/exclude picture survives a
// round-trip into spreadsheet tools.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reflaxess123/dohodi/internal/logging"
	"github.com/reflaxess123/dohodi/internal/models"

	"github.com/gocarina/gocsv"
)

// dateLayout matches the statement's own date format.
const dateLayout = "02.01.2006 15:04:05"

// Row is the CSV projection of a classified transaction.
type Row struct {
	ID           string `csv:"id"`
	Date         string `csv:"date"`
	Amount       string `csv:"amount"`
	Type         string `csv:"type"`
	Category     string `csv:"category"`
	Description  string `csv:"description"`
	CardNumber   string `csv:"card_number"`
	MCC          string `csv:"mcc"`
	Pool         string `csv:"pool"`
	Filtered     bool   `csv:"filtered"`
	FilterReason string `csv:"filter_reason"`
}

// Writer writes transactions as CSV with a configurable delimiter.
type Writer struct {
	Delimiter rune
	logger    logging.Logger
}

// NewWriter creates a Writer. A zero delimiter defaults to a comma.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{
		Delimiter: delimiter,
		logger:    logger,
	}
}

// WriteFile writes the transactions to a CSV file, creating parent
// directories as needed.
func (w *Writer) WriteFile(transactions []models.Transaction, path string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	w.logger.Info("Writing transactions to CSV",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			w.logger.WithError(cerr).Warn("Failed to close CSV file")
		}
	}()

	return w.Write(transactions, file)
}

// Write writes the transactions as CSV to the given writer.
func (w *Writer) Write(transactions []models.Transaction, out io.Writer) error {
	rows := make([]Row, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, rowFromTransaction(tx))
	}

	writer := csv.NewWriter(out)
	writer.Comma = w.Delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}

func rowFromTransaction(tx models.Transaction) Row {
	return Row{
		ID:           tx.ID,
		Date:         tx.Date.Format(dateLayout),
		Amount:       tx.Amount.StringFixed(2),
		Type:         string(tx.Type),
		Category:     tx.Category,
		Description:  tx.Description,
		CardNumber:   tx.CardNumber,
		MCC:          tx.MCC,
		Pool:         string(tx.Pool),
		Filtered:     tx.IsFiltered,
		FilterReason: tx.FilterReason,
	}
}
