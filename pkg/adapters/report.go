package adapters

import (
	"github.com/de-tools/text-atlas/pkg/models/api"
	"github.com/de-tools/text-atlas/pkg/models/domain"
	"github.com/de-tools/text-atlas/pkg/models/store"
)

func MapDomainReportToAPIReport(report domain.Report) api.Report {
	return api.Report{
		Source:                report.Source,
		LineCount:             report.LineCount,
		CharacterCount:        report.CharacterCount,
		CharacterCountNoSpace: report.CharacterCountNoSpace,
		WordCount:             report.WordCount,
		ParagraphCount:        report.ParagraphCount,
		SentenceCount:         report.SentenceCount,
	}
}

func MapDomainRecordToAPIRecord(record domain.ReportRecord) api.ReportRecord {
	return api.ReportRecord{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
		Report:    MapDomainReportToAPIReport(record.Report),
	}
}

func MapDomainRecordsToAPIRecords(records []domain.ReportRecord) []api.ReportRecord {
	result := make([]api.ReportRecord, 0, len(records))
	for _, record := range records {
		result = append(result, MapDomainRecordToAPIRecord(record))
	}
	return result
}

func MapDomainRecordToStoreRecord(record domain.ReportRecord) store.ReportRecord {
	return store.ReportRecord{
		ID:                    record.ID,
		Source:                record.Report.Source,
		CreatedAt:             record.CreatedAt,
		LineCount:             int64(record.Report.LineCount),
		CharacterCount:        int64(record.Report.CharacterCount),
		CharacterCountNoSpace: int64(record.Report.CharacterCountNoSpace),
		WordCount:             int64(record.Report.WordCount),
		ParagraphCount:        int64(record.Report.ParagraphCount),
		SentenceCount:         int64(record.Report.SentenceCount),
	}
}

func MapStoreRecordToDomainRecord(record store.ReportRecord) domain.ReportRecord {
	return domain.ReportRecord{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
		Report: domain.Report{
			Source:                record.Source,
			LineCount:             int(record.LineCount),
			CharacterCount:        int(record.CharacterCount),
			CharacterCountNoSpace: int(record.CharacterCountNoSpace),
			WordCount:             int(record.WordCount),
			ParagraphCount:        int(record.ParagraphCount),
			SentenceCount:         int(record.SentenceCount),
		},
	}
}
