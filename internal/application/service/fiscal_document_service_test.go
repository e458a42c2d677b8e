package service

import (
	"context"
	"testing"
	"time"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/internal/domain/enum"
	"github.com/endurancy/fiscal-api/pkg/apperror"
	"github.com/endurancy/fiscal-api/pkg/fiscalprinter"
	"github.com/endurancy/fiscal-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentServiceFixture struct {
	service    *FiscalDocumentService
	configRepo *fakeConfigRepo
	docRepo    *fakeDocumentRepo
	outbox     *fakeOutboxRepo
}

func newDocumentServiceFixture() *documentServiceFixture {
	configRepo := newFakeConfigRepo()
	docRepo := newFakeDocumentRepo()
	outbox := &fakeOutboxRepo{}
	sessions := fiscalprinter.NewSessionManager(quietRegistry())
	policy := entity.NewCancellationPolicy(24 * time.Hour)

	return &documentServiceFixture{
		service:    NewFiscalDocumentService(fakeUnitOfWork{}, configRepo, docRepo, outbox, sessions, policy, testLogger()),
		configRepo: configRepo,
		docRepo:    docRepo,
		outbox:     outbox,
	}
}

func validCreateInput(organizationID uuid.UUID) *CreateDocumentInput {
	return &CreateDocumentInput{
		OrganizationID: organizationID,
		Type:           "nfce",
		CustomerName:   "Joao Lima",
		PaymentMethod:  "pix",
		TotalAmount:    decimal.NewFromFloat(25.50),
		Items: []DocumentItemInput{
			{
				Description: "Oleo essencial 10ml",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromFloat(25.50),
			},
		},
	}
}

func TestCreateDocumentWithoutConfigStartsAtOne(t *testing.T) {
	f := newDocumentServiceFixture()
	orgID := uuid.New()

	result, err := f.service.CreateDocument(context.Background(), validCreateInput(orgID))
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, "000001", doc.DocumentNumber)
	assert.Equal(t, enum.DocumentStatusIssued, doc.Status)
	assert.Len(t, doc.AccessKey, 44)
	assert.NotEmpty(t, doc.AuthorizationProtocol)
	assert.False(t, doc.IssuedAt.IsZero())

	// No printer configured: emission succeeds with no print attempt
	assert.Nil(t, result.PrintResult)
}

func TestCreateDocumentAdvancesSequence(t *testing.T) {
	f := newDocumentServiceFixture()
	orgID := uuid.New()
	require.NoError(t, f.configRepo.Create(context.Background(), &entity.FiscalConfig{
		OrganizationID:    orgID,
		NextInvoiceNumber: 15,
	}))

	first, err := f.service.CreateDocument(context.Background(), validCreateInput(orgID))
	require.NoError(t, err)
	assert.Equal(t, "000015", first.Document.DocumentNumber)

	second, err := f.service.CreateDocument(context.Background(), validCreateInput(orgID))
	require.NoError(t, err)
	assert.Equal(t, "000016", second.Document.DocumentNumber)

	config, _ := f.configRepo.GetByOrganization(context.Background(), orgID)
	assert.Equal(t, 17, config.NextInvoiceNumber)
}

func TestCreateDocumentValidation(t *testing.T) {
	f := newDocumentServiceFixture()

	_, err := f.service.CreateDocument(context.Background(), &CreateDocumentInput{})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)

	fields := make(map[string]bool)
	for _, fe := range appErr.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["organization_id"])
	assert.True(t, fields["type"])
	assert.True(t, fields["customer_name"])
	assert.True(t, fields["payment_method"])
	assert.True(t, fields["total_amount"])
}

func TestCreateDocumentItemValidation(t *testing.T) {
	f := newDocumentServiceFixture()
	input := validCreateInput(uuid.New())
	input.Items = []DocumentItemInput{
		{Description: "", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(-1)},
	}

	_, err := f.service.CreateDocument(context.Background(), input)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.Equal(t, 400, appErr.Code)

	fields := make(map[string]bool)
	for _, fe := range appErr.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["items[0].description"])
	assert.True(t, fields["items[0].quantity"])
	assert.True(t, fields["items[0].unit_price"])
}

func TestCreateDocumentAppliesItemDefaults(t *testing.T) {
	f := newDocumentServiceFixture()
	input := validCreateInput(uuid.New())
	input.Items = []DocumentItemInput{
		{
			Description: "Cha de camomila",
			Quantity:    decimal.NewFromInt(3),
			UnitPrice:   decimal.NewFromFloat(8.50),
		},
	}

	result, err := f.service.CreateDocument(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, result.Document.Items, 1)
	item := result.Document.Items[0]
	assert.Equal(t, "UN", item.UnitOfMeasure)
	assert.Equal(t, "00000000", item.NCM)
	assert.Equal(t, "5102", item.CFOP)
	assert.True(t, item.TotalPrice.Equal(decimal.NewFromFloat(25.50)))
	assert.True(t, item.TaxAmount.Equal(decimal.Zero))
}

func TestCreateDocumentAppendsEmissionEvent(t *testing.T) {
	f := newDocumentServiceFixture()

	result, err := f.service.CreateDocument(context.Background(), validCreateInput(uuid.New()))
	require.NoError(t, err)

	require.Len(t, f.outbox.events, 1)
	event := f.outbox.events[0]
	assert.Equal(t, entity.EventDocumentEmitted, event.EventType)
	assert.Equal(t, result.Document.ID, event.AggregateID)
	assert.Contains(t, event.Payload, result.Document.DocumentNumber)
}

func TestCreateDocumentPrintsWhenConfigured(t *testing.T) {
	f := newDocumentServiceFixture()
	orgID := uuid.New()
	require.NoError(t, f.configRepo.Create(context.Background(), &entity.FiscalConfig{
		OrganizationID: orgID,
		PrinterModel:   "epson TM-T20",
		PrinterPort:    "USB001",
	}))

	result, err := f.service.CreateDocument(context.Background(), validCreateInput(orgID))
	require.NoError(t, err)

	require.NotNil(t, result.PrintResult)
	assert.True(t, result.PrintResult.Success)
	assert.Contains(t, result.PrintResult.Data["rendering"], "DANFE NFC-e")
}

func TestCreateDocumentUnsupportedPrinterStillEmits(t *testing.T) {
	f := newDocumentServiceFixture()
	orgID := uuid.New()
	require.NoError(t, f.configRepo.Create(context.Background(), &entity.FiscalConfig{
		OrganizationID: orgID,
		PrinterModel:   "elgin i9",
		PrinterPort:    "USB001",
	}))

	result, err := f.service.CreateDocument(context.Background(), validCreateInput(orgID))
	require.NoError(t, err)

	// Persistence is never rolled back by a print failure
	stored, _ := f.docRepo.GetByID(context.Background(), result.Document.ID)
	require.NotNil(t, stored)

	require.NotNil(t, result.PrintResult)
	assert.False(t, result.PrintResult.Success)
	assert.Equal(t, fiscalprinter.CodeUnsupportedModel, result.PrintResult.Code)
}

func TestCancelDocument(t *testing.T) {
	f := newDocumentServiceFixture()

	created, err := f.service.CreateDocument(context.Background(), validCreateInput(uuid.New()))
	require.NoError(t, err)

	doc, err := f.service.CancelDocument(context.Background(), created.Document.ID, "wrong customer")
	require.NoError(t, err)

	assert.Equal(t, enum.DocumentStatusCanceled, doc.Status)
	require.NotNil(t, doc.CancelReason)
	assert.Equal(t, "wrong customer", *doc.CancelReason)
	assert.NotNil(t, doc.CanceledAt)

	require.Len(t, f.outbox.events, 2)
	assert.Equal(t, entity.EventDocumentCanceled, f.outbox.events[1].EventType)
}

func TestCancelDocumentRequiresReason(t *testing.T) {
	f := newDocumentServiceFixture()

	_, err := f.service.CancelDocument(context.Background(), uuid.New(), "   ")
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "cancel_reason", appErr.Errors[0].Field)
}

func TestCancelDocumentNotFound(t *testing.T) {
	f := newDocumentServiceFixture()

	_, err := f.service.CancelDocument(context.Background(), uuid.New(), "mistake")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCancelDocumentTwice(t *testing.T) {
	f := newDocumentServiceFixture()

	created, err := f.service.CreateDocument(context.Background(), validCreateInput(uuid.New()))
	require.NoError(t, err)

	_, err = f.service.CancelDocument(context.Background(), created.Document.ID, "first")
	require.NoError(t, err)

	_, err = f.service.CancelDocument(context.Background(), created.Document.ID, "second")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCancelDocumentWindowExpired(t *testing.T) {
	f := newDocumentServiceFixture()

	created, err := f.service.CreateDocument(context.Background(), validCreateInput(uuid.New()))
	require.NoError(t, err)

	// Backdate the issuance beyond the 24 hour window
	created.Document.IssuedAt = time.Now().Add(-25 * time.Hour)
	require.NoError(t, f.docRepo.Update(context.Background(), created.Document))

	_, err = f.service.CancelDocument(context.Background(), created.Document.ID, "too late")
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "cancellation window expired")
}

func TestGetDocumentNotFound(t *testing.T) {
	f := newDocumentServiceFixture()

	_, err := f.service.GetDocument(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestListDocuments(t *testing.T) {
	f := newDocumentServiceFixture()
	orgID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := f.service.CreateDocument(context.Background(), validCreateInput(orgID))
		require.NoError(t, err)
	}
	_, err := f.service.CreateDocument(context.Background(), validCreateInput(uuid.New()))
	require.NoError(t, err)

	params := &pagination.PaginationParams{Page: 1, PerPage: 2}
	result, err := f.service.ListDocuments(context.Background(), orgID, params)
	require.NoError(t, err)

	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(3), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
}
