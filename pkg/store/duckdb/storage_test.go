package duckdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesReportTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO analysis_reports (
			id, source, created_at, line_count, character_count, character_count_no_space,
			word_count, paragraph_count, sentence_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"report-001", "text.txt", time.Now().UTC(), 4, 120, 98, 22, 2, 5,
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM analysis_reports WHERE id = ?", "report-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
