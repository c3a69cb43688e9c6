package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/text-atlas/pkg/models/store"
	"github.com/de-tools/text-atlas/pkg/store/duckdb"
)

var ErrNotFound = errors.New("report not found")

// Store keeps the history of produced reports
type Store interface {
	Add(ctx context.Context, record store.ReportRecord) error
	// AddAll stores records in a single transaction, none of them on failure
	AddAll(ctx context.Context, records []store.ReportRecord) error
	Get(ctx context.Context, id string) (*store.ReportRecord, error)
	// List returns at most limit records, newest first
	List(ctx context.Context, limit int) ([]store.ReportRecord, error)
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

const selectColumns = `
		SELECT id, source, created_at, line_count, character_count, character_count_no_space,
		       word_count, paragraph_count, sentence_count
		FROM analysis_reports`

func (s *reportStore) Add(ctx context.Context, record store.ReportRecord) error {
	query := `
		INSERT INTO analysis_reports (
			id, source, created_at, line_count, character_count, character_count_no_space,
			word_count, paragraph_count, sentence_count
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?
		)`

	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, query,
		record.ID,
		record.Source,
		record.CreatedAt,
		record.LineCount,
		record.CharacterCount,
		record.CharacterCountNoSpace,
		record.WordCount,
		record.ParagraphCount,
		record.SentenceCount,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *reportStore) AddAll(ctx context.Context, records []store.ReportRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	ctxWithTx := duckdb.WithTransaction(ctx, tx)
	for _, record := range records {
		if err := s.Add(ctxWithTx, record); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reports: %w", err)
	}
	return nil
}

func (s *reportStore) Get(ctx context.Context, id string) (*store.ReportRecord, error) {
	row := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, selectColumns+`
		WHERE id = ?`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}
	return record, nil
}

func (s *reportStore) List(ctx context.Context, limit int) ([]store.ReportRecord, error) {
	if limit <= 0 {
		return []store.ReportRecord{}, nil
	}

	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, selectColumns+`
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	records := make([]store.ReportRecord, 0, limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*store.ReportRecord, error) {
	var r store.ReportRecord
	err := row.Scan(
		&r.ID,
		&r.Source,
		&r.CreatedAt,
		&r.LineCount,
		&r.CharacterCount,
		&r.CharacterCountNoSpace,
		&r.WordCount,
		&r.ParagraphCount,
		&r.SentenceCount,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
