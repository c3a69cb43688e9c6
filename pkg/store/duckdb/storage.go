package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReportTableSchema = `
	CREATE TABLE IF NOT EXISTS analysis_reports (
		id VARCHAR NOT NULL PRIMARY KEY,
		source VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		line_count BIGINT NOT NULL,
		character_count BIGINT NOT NULL,
		character_count_no_space BIGINT NOT NULL,
		word_count BIGINT NOT NULL,
		paragraph_count BIGINT NOT NULL,
		sentence_count BIGINT NOT NULL
	);
`

var bootQueries = []string{
	ReportTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
