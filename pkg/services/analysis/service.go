package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/text-atlas/pkg/adapters"
	"github.com/de-tools/text-atlas/pkg/models/domain"
	"github.com/de-tools/text-atlas/pkg/models/store"
	"github.com/de-tools/text-atlas/pkg/services/source"
	"github.com/de-tools/text-atlas/pkg/services/textstats"
	"github.com/de-tools/text-atlas/pkg/store/duckdb/reports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentInputs = 8

var ErrHistoryDisabled = errors.New("report history is not enabled")

// Service analyzes documents and, when a store is configured, records every report
type Service interface {
	Analyze(ctx context.Context, uri string) (*domain.Report, error)
	AnalyzeText(ctx context.Context, name, text string) (*domain.Report, error)
	// AnalyzeAll returns one report per uri, in input order
	AnalyzeAll(ctx context.Context, uris []string) ([]domain.Report, error)
	History(ctx context.Context, limit int) ([]domain.ReportRecord, error)
	Report(ctx context.Context, id string) (*domain.ReportRecord, error)
}

type service struct {
	sources source.Registry
	history reports.Store
	now     func() time.Time
	newID   func() string
}

// NewService creates an analysis service. history may be nil.
func NewService(sources source.Registry, history reports.Store) Service {
	return &service{
		sources: sources,
		history: history,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

func (s *service) Analyze(ctx context.Context, uri string) (*domain.Report, error) {
	report, err := s.analyzeURI(ctx, uri)
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, *report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *service) AnalyzeText(ctx context.Context, name, text string) (*domain.Report, error) {
	report := s.analyze(ctx, domain.NewDocument(name, text))
	if err := s.record(ctx, report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *service) AnalyzeAll(ctx context.Context, uris []string) ([]domain.Report, error) {
	results := make([]domain.Report, len(uris))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentInputs)

	for i, uri := range uris {
		g.Go(func() error {
			report, err := s.analyzeURI(gctx, uri)
			if err != nil {
				return err
			}
			results[i] = *report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// A batch is recorded as a whole or not at all.
	if s.history != nil {
		records := make([]store.ReportRecord, 0, len(results))
		for _, report := range results {
			records = append(records, s.newRecord(report))
		}
		if err := s.history.AddAll(ctx, records); err != nil {
			return nil, fmt.Errorf("failed to record reports: %w", err)
		}
	}
	return results, nil
}

func (s *service) analyzeURI(ctx context.Context, uri string) (*domain.Report, error) {
	doc, err := s.sources.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	report := s.analyze(ctx, *doc)
	return &report, nil
}

func (s *service) analyze(ctx context.Context, doc domain.Document) domain.Report {
	report := textstats.Analyze(doc)

	zerolog.Ctx(ctx).Debug().
		Str("source", report.Source).
		Int("lines", report.LineCount).
		Int("words", report.WordCount).
		Msg("document analyzed")

	return report
}

func (s *service) record(ctx context.Context, report domain.Report) error {
	if s.history == nil {
		return nil
	}
	if err := s.history.Add(ctx, s.newRecord(report)); err != nil {
		return fmt.Errorf("failed to record report: %w", err)
	}
	return nil
}

func (s *service) newRecord(report domain.Report) store.ReportRecord {
	return adapters.MapDomainRecordToStoreRecord(domain.ReportRecord{
		ID:        s.newID(),
		CreatedAt: s.now(),
		Report:    report,
	})
}

func (s *service) History(ctx context.Context, limit int) ([]domain.ReportRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}

	records, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	result := make([]domain.ReportRecord, 0, len(records))
	for _, r := range records {
		result = append(result, adapters.MapStoreRecordToDomainRecord(r))
	}
	return result, nil
}

func (s *service) Report(ctx context.Context, id string) (*domain.ReportRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}

	r, err := s.history.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	record := adapters.MapStoreRecordToDomainRecord(*r)
	return &record, nil
}
