package service

import (
	"context"
	"testing"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigServiceGetNotFound(t *testing.T) {
	svc := NewFiscalConfigService(newFakeConfigRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestConfigServiceCreate(t *testing.T) {
	svc := NewFiscalConfigService(newFakeConfigRepo())
	orgID := uuid.New()

	config, err := svc.Create(context.Background(), &CreateConfigInput{
		OrganizationID: orgID,
		PrinterModel:   "epson TM-T20",
		PrinterPort:    "USB001",
	})
	require.NoError(t, err)

	assert.Equal(t, orgID, config.OrganizationID)
	assert.Equal(t, 1, config.NextInvoiceNumber)
	assert.True(t, config.HasPrinter())

	got, err := svc.Get(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, config.ID, got.ID)
}

func TestConfigServiceCreateRequiresOrganization(t *testing.T) {
	svc := NewFiscalConfigService(newFakeConfigRepo())

	_, err := svc.Create(context.Background(), &CreateConfigInput{})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestConfigServiceCreateDuplicate(t *testing.T) {
	svc := NewFiscalConfigService(newFakeConfigRepo())
	orgID := uuid.New()

	_, err := svc.Create(context.Background(), &CreateConfigInput{OrganizationID: orgID})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &CreateConfigInput{OrganizationID: orgID})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "already exists")
}

func TestConfigServiceUpdatePatchesFields(t *testing.T) {
	repo := newFakeConfigRepo()
	svc := NewFiscalConfigService(repo)
	orgID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &entity.FiscalConfig{
		OrganizationID:    orgID,
		NextInvoiceNumber: 7,
		PrinterModel:      "epson TM-T20",
		PrinterPort:       "USB001",
	}))

	model := "bematech MP-4200"
	config, err := svc.Update(context.Background(), orgID, &UpdateConfigInput{PrinterModel: &model})
	require.NoError(t, err)

	assert.Equal(t, "bematech MP-4200", config.PrinterModel)
	// Untouched fields keep their values
	assert.Equal(t, 7, config.NextInvoiceNumber)
	assert.Equal(t, "USB001", config.PrinterPort)
}

func TestConfigServiceUpdateRejectsInvalidSequence(t *testing.T) {
	repo := newFakeConfigRepo()
	svc := NewFiscalConfigService(repo)
	orgID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &entity.FiscalConfig{OrganizationID: orgID}))

	zero := 0
	_, err := svc.Update(context.Background(), orgID, &UpdateConfigInput{NextInvoiceNumber: &zero})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestConfigServiceUpdateNotFound(t *testing.T) {
	svc := NewFiscalConfigService(newFakeConfigRepo())

	model := "epson"
	_, err := svc.Update(context.Background(), uuid.New(), &UpdateConfigInput{PrinterModel: &model})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
