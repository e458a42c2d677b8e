package service

import (
	"context"
	"testing"
	"time"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/pkg/apperror"
	"github.com/endurancy/fiscal-api/pkg/fiscalprinter"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportServiceFixture() (*ReportService, *fakeConfigRepo, *fakeDocumentRepo) {
	configRepo := newFakeConfigRepo()
	docRepo := newFakeDocumentRepo()
	sessions := fiscalprinter.NewSessionManager(quietRegistry())
	return NewReportService(configRepo, docRepo, sessions, testLogger()), configRepo, docRepo
}

func TestPrintDailyReportRequiresPrinter(t *testing.T) {
	svc, _, _ := newReportServiceFixture()

	_, err := svc.PrintDailyReport(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestPrintDailyReportExcludesCancelledDocuments(t *testing.T) {
	svc, configRepo, docRepo := newReportServiceFixture()
	orgID := uuid.New()
	require.NoError(t, configRepo.Create(context.Background(), &entity.FiscalConfig{
		OrganizationID: orgID,
		PrinterModel:   "epson TM-T20",
		PrinterPort:    "USB001",
	}))

	issued := &entity.FiscalDocument{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Status:         "emitida",
		TotalAmount:    decimal.NewFromFloat(100.00),
		IssuedAt:       time.Now(),
	}
	canceled := &entity.FiscalDocument{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Status:         "cancelada",
		TotalAmount:    decimal.NewFromFloat(999.99),
		IssuedAt:       time.Now(),
	}
	require.NoError(t, docRepo.CreateWithItems(context.Background(), issued, nil))
	require.NoError(t, docRepo.CreateWithItems(context.Background(), canceled, nil))

	result, err := svc.PrintDailyReport(context.Background(), orgID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Report.DocumentCount)
	assert.True(t, result.Report.TotalAmount.Equal(decimal.NewFromFloat(100.00)))

	require.NotNil(t, result.PrintResult)
	assert.True(t, result.PrintResult.Success)
	assert.Contains(t, result.PrintResult.Data["rendering"], "RELATORIO DE VENDAS DIARIO")
}
