package service

import (
	"context"
	"io"
	"sync"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/internal/domain/repository"
	"github.com/endurancy/fiscal-api/pkg/fiscalprinter"
	"github.com/endurancy/fiscal-api/pkg/logger"
	"github.com/endurancy/fiscal-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeUnitOfWork runs the function directly; the fakes below have no
// transactional state to coordinate.
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeConfigRepo struct {
	mu      sync.Mutex
	configs map[uuid.UUID]*entity.FiscalConfig
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{configs: make(map[uuid.UUID]*entity.FiscalConfig)}
}

func (r *fakeConfigRepo) GetByOrganization(_ context.Context, organizationID uuid.UUID) (*entity.FiscalConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.configs[organizationID], nil
}

func (r *fakeConfigRepo) Create(_ context.Context, config *entity.FiscalConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if config.ID == uuid.Nil {
		config.ID = uuid.New()
	}
	if config.NextInvoiceNumber < 1 {
		config.NextInvoiceNumber = 1
	}
	r.configs[config.OrganizationID] = config
	return nil
}

func (r *fakeConfigRepo) Update(_ context.Context, config *entity.FiscalConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[config.OrganizationID] = config
	return nil
}

func (r *fakeConfigRepo) AllocateSequence(_ context.Context, organizationID uuid.UUID) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	config, ok := r.configs[organizationID]
	if !ok {
		return 1, false, nil
	}
	seq := config.NextInvoiceNumber
	config.NextInvoiceNumber++
	return seq, true, nil
}

type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*entity.FiscalDocument
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[uuid.UUID]*entity.FiscalDocument)}
}

func (r *fakeDocumentRepo) CreateWithItems(_ context.Context, doc *entity.FiscalDocument, items []entity.FiscalDocumentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].DocumentID = doc.ID
	}
	doc.Items = items
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.FiscalDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[id], nil
}

func (r *fakeDocumentRepo) ListByOrganization(_ context.Context, organizationID uuid.UUID, params *pagination.PaginationParams) ([]entity.FiscalDocument, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []entity.FiscalDocument
	for _, doc := range r.docs {
		if doc.OrganizationID == organizationID {
			matched = append(matched, *doc)
		}
	}
	total := int64(len(matched))
	offset := params.Offset()
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, doc *entity.FiscalDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocumentRepo) SumIssued(_ context.Context, organizationID uuid.UUID) (*repository.EmissionTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := &repository.EmissionTotals{TotalAmount: decimal.Zero}
	for _, doc := range r.docs {
		if doc.OrganizationID == organizationID && doc.Status == "emitida" {
			totals.TotalAmount = totals.TotalAmount.Add(doc.TotalAmount)
			totals.DocumentCount++
		}
	}
	return totals, nil
}

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []entity.OutboxEvent
}

func (r *fakeOutboxRepo) Append(_ context.Context, event *entity.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = int64(len(r.events) + 1)
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeOutboxRepo) PendingBatch(_ context.Context, limit int) ([]entity.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []entity.OutboxEvent
	for _, event := range r.events {
		if event.PublishedAt == nil {
			pending = append(pending, event)
			if len(pending) == limit {
				break
			}
		}
	}
	return pending, nil
}

func (r *fakeOutboxRepo) MarkPublished(_ context.Context, eventID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID == eventID {
			now := r.events[i].OccurredAt
			r.events[i].PublishedAt = &now
		}
	}
	return nil
}

// quietRegistry binds the simulated driver with output discarded so test
// runs do not dump receipt renderings to stdout.
func quietRegistry() *fiscalprinter.Registry {
	reg := fiscalprinter.NewRegistry()
	ctor := func(model, port string) fiscalprinter.Driver {
		d := fiscalprinter.NewSimulatedDriver(model, port)
		d.SetOutput(io.Discard)
		return d
	}
	for _, family := range []string{"epson", "bematech", "daruma"} {
		reg.Register(family, ctor)
	}
	return reg
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error"})
}
