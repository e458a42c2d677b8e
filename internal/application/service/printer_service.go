package service

import (
	"context"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/internal/domain/repository"
	"github.com/endurancy/fiscal-api/pkg/apperror"
	"github.com/endurancy/fiscal-api/pkg/fiscalprinter"
	"github.com/endurancy/fiscal-api/pkg/logger"
	"github.com/google/uuid"
)

// PrinterService exposes direct printer operations: connectivity tests,
// cash drawer, status and X/Z reports.
type PrinterService struct {
	configRepo repository.FiscalConfigRepository
	registry   *fiscalprinter.Registry
	sessions   *fiscalprinter.SessionManager
	log        *logger.Logger
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	configRepo repository.FiscalConfigRepository,
	registry *fiscalprinter.Registry,
	sessions *fiscalprinter.SessionManager,
	log *logger.Logger,
) *PrinterService {
	return &PrinterService{
		configRepo: configRepo,
		registry:   registry,
		sessions:   sessions,
		log:        log,
	}
}

// TestPrinter checks a model/port pair before it is saved to a config:
// connect, status check, test page, stopping at the first failure.
func (s *PrinterService) TestPrinter(printerModel, printerPort string) fiscalprinter.Result {
	driver, err := s.registry.New(printerModel, printerPort)
	if err != nil {
		return fiscalprinter.Unsupported(printerModel)
	}

	if res := driver.Connect(); !res.Success {
		return res
	}
	if res := driver.CheckStatus(); !res.Success {
		return res
	}
	return driver.PrintTestPage()
}

// OpenCashDrawer opens the drawer of the organization's configured printer
func (s *PrinterService) OpenCashDrawer(ctx context.Context, organizationID uuid.UUID) (fiscalprinter.Result, error) {
	config, err := s.requirePrinter(ctx, organizationID)
	if err != nil {
		return fiscalprinter.Result{}, err
	}
	return s.exec(organizationID, config, func(d fiscalprinter.Driver) fiscalprinter.Result {
		return d.OpenCashDrawer()
	}), nil
}

// Status reports the session state of the organization's printer
func (s *PrinterService) Status(ctx context.Context, organizationID uuid.UUID) (fiscalprinter.Result, error) {
	config, err := s.requirePrinter(ctx, organizationID)
	if err != nil {
		return fiscalprinter.Result{}, err
	}
	return s.exec(organizationID, config, func(d fiscalprinter.Driver) fiscalprinter.Result {
		return d.CheckStatus()
	}), nil
}

// PrintXReport prints the partial-day movement report
func (s *PrinterService) PrintXReport(ctx context.Context, organizationID uuid.UUID) (fiscalprinter.Result, error) {
	config, err := s.requirePrinter(ctx, organizationID)
	if err != nil {
		return fiscalprinter.Result{}, err
	}
	return s.exec(organizationID, config, func(d fiscalprinter.Driver) fiscalprinter.Result {
		return d.PrintXReport()
	}), nil
}

// PrintZReport prints the day-close report
func (s *PrinterService) PrintZReport(ctx context.Context, organizationID uuid.UUID) (fiscalprinter.Result, error) {
	config, err := s.requirePrinter(ctx, organizationID)
	if err != nil {
		return fiscalprinter.Result{}, err
	}
	return s.exec(organizationID, config, func(d fiscalprinter.Driver) fiscalprinter.Result {
		return d.PrintZReport()
	}), nil
}

func (s *PrinterService) requirePrinter(ctx context.Context, organizationID uuid.UUID) (*entity.FiscalConfig, error) {
	config, err := s.configRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if config == nil || !config.HasPrinter() {
		return nil, apperror.NewBadRequestError("No printer configured for this organization")
	}
	return config, nil
}

func (s *PrinterService) exec(organizationID uuid.UUID, config *entity.FiscalConfig, fn func(fiscalprinter.Driver) fiscalprinter.Result) fiscalprinter.Result {
	return s.sessions.Exec(organizationID, config.PrinterModel, config.PrinterPort, fn)
}
