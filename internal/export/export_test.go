package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reflaxess123/dohodi/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:          "abc123",
			Date:        time.Date(2025, time.November, 22, 14, 30, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("-150.5"),
			Category:    "Рестораны",
			Description: "Кафе Пример",
			CardNumber:  "*1234",
			MCC:         "5812",
			Type:        models.TxExpense,
			Pool:        models.PoolDaily,
		},
		{
			ID:           "def456",
			Date:         time.Date(2025, time.November, 21, 0, 0, 0, 0, time.UTC),
			Amount:       decimal.NewFromInt(-5000),
			Category:     "Переводы",
			Description:  "Перевод Иванову И.",
			Type:         models.TxExpense,
			Pool:         models.PoolOther,
			IsFiltered:   true,
			FilterReason: "transfers category",
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(',', nil).Write(sampleTransactions(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "id,date,amount,type,category,description,card_number,mcc,pool,filtered,filter_reason", lines[0])
	assert.Contains(t, lines[1], "abc123")
	assert.Contains(t, lines[1], "22.11.2025 14:30:00")
	assert.Contains(t, lines[1], "-150.50")
	assert.Contains(t, lines[1], "daily")
	// Audit columns survive the export.
	assert.Contains(t, lines[2], "true")
	assert.Contains(t, lines[2], "transfers category")
}

func TestWriteCustomDelimiter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(';', nil).Write(sampleTransactions(), &buf))

	assert.True(t, strings.HasPrefix(buf.String(), "id;date;amount"))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ledger.csv")
	require.NoError(t, NewWriter(0, nil).WriteFile(sampleTransactions(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Кафе Пример")
}

func TestWriteNilTransactions(t *testing.T) {
	assert.Error(t, NewWriter(',', nil).WriteFile(nil, filepath.Join(t.TempDir(), "ledger.csv")))
}
