package service

import (
	"context"
	"time"

	"github.com/endurancy/fiscal-api/internal/domain/repository"
	"github.com/endurancy/fiscal-api/pkg/apperror"
	"github.com/endurancy/fiscal-api/pkg/fiscalprinter"
	"github.com/endurancy/fiscal-api/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportService aggregates issued documents into printable summaries
type ReportService struct {
	configRepo repository.FiscalConfigRepository
	docRepo    repository.FiscalDocumentRepository
	sessions   *fiscalprinter.SessionManager
	log        *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(
	configRepo repository.FiscalConfigRepository,
	docRepo repository.FiscalDocumentRepository,
	sessions *fiscalprinter.SessionManager,
	log *logger.Logger,
) *ReportService {
	return &ReportService{
		configRepo: configRepo,
		docRepo:    docRepo,
		sessions:   sessions,
		log:        log,
	}
}

// DailyReport summarizes the organization's issued documents.
// Cancelled documents are excluded from both the total and the count.
type DailyReport struct {
	Date          time.Time       `json:"date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DocumentCount int64           `json:"document_count"`
}

// DailyReportResult bundles the computed summary with the print outcome
type DailyReportResult struct {
	Report      *DailyReport          `json:"report"`
	PrintResult *fiscalprinter.Result `json:"print_result"`
}

// PrintDailyReport totals the organization's issued documents and dispatches
// the summary to the configured printer.
func (s *ReportService) PrintDailyReport(ctx context.Context, organizationID uuid.UUID) (*DailyReportResult, error) {
	config, err := s.configRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if config == nil || !config.HasPrinter() {
		return nil, apperror.NewBadRequestError("No printer configured for this organization")
	}

	totals, err := s.docRepo.SumIssued(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date:          time.Now(),
		TotalAmount:   totals.TotalAmount,
		DocumentCount: totals.DocumentCount,
	}

	printResult := s.sessions.Exec(organizationID, config.PrinterModel, config.PrinterPort, func(d fiscalprinter.Driver) fiscalprinter.Result {
		return d.PrintDailySalesReport(report.Date, report.TotalAmount, report.DocumentCount)
	})
	if !printResult.Success {
		s.log.Warn().
			Str("organization_id", organizationID.String()).
			Str("message", printResult.Message).
			Msg("daily report print failed")
	}

	return &DailyReportResult{Report: report, PrintResult: &printResult}, nil
}
