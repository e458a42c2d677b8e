package handler

import (
	"fmt"

	"github.com/endurancy/fiscal-api/internal/application/service"
	"github.com/endurancy/fiscal-api/internal/presentation/http/dto/request"
	"github.com/endurancy/fiscal-api/internal/presentation/http/dto/response"
	"github.com/endurancy/fiscal-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FiscalDocumentHandler handles fiscal document endpoints
type FiscalDocumentHandler struct {
	documentService *service.FiscalDocumentService
}

// NewFiscalDocumentHandler creates a new fiscal document handler
func NewFiscalDocumentHandler(documentService *service.FiscalDocumentService) *FiscalDocumentHandler {
	return &FiscalDocumentHandler{documentService: documentService}
}

// Create handles POST /fiscal/documents
func (h *FiscalDocumentHandler) Create(c *gin.Context) {
	var req request.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	organizationID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	items, err := toDocumentItems(req.Items)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.documentService.CreateDocument(c.Request.Context(), &service.CreateDocumentInput{
		OrganizationID:   organizationID,
		Type:             req.Type,
		CustomerName:     req.CustomerName,
		CustomerDocument: req.CustomerDocument,
		PaymentMethod:    req.PaymentMethod,
		TotalAmount:      req.TotalAmount,
		Items:            items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fiscal document emitted successfully", result)
}

// List handles GET /fiscal/documents/:id, where :id is the organization ID
func (h *FiscalDocumentHandler) List(c *gin.Context) {
	organizationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	result, err := h.documentService.ListDocuments(c.Request.Context(), organizationID, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Fiscal documents retrieved successfully", result)
}

// GetByID handles GET /fiscal/documents/byId/:id
func (h *FiscalDocumentHandler) GetByID(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), documentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fiscal document retrieved successfully", doc)
}

// Cancel handles POST /fiscal/documents/:id/cancel
func (h *FiscalDocumentHandler) Cancel(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	var req request.CancelDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doc, err := h.documentService.CancelDocument(c.Request.Context(), documentID, req.CancelReason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fiscal document cancelled successfully", doc)
}

func toDocumentItems(items []request.DocumentItemRequest) ([]service.DocumentItemInput, error) {
	inputs := make([]service.DocumentItemInput, 0, len(items))
	for _, item := range items {
		var productID *uuid.UUID
		if item.ProductID != nil && *item.ProductID != "" {
			id, err := uuid.Parse(*item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("parse product id: %w", err)
			}
			productID = &id
		}
		inputs = append(inputs, service.DocumentItemInput{
			ProductID:     productID,
			Code:          item.Code,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TotalPrice:    item.TotalPrice,
			UnitOfMeasure: item.UnitOfMeasure,
			NCM:           item.NCM,
			CFOP:          item.CFOP,
			TaxAmount:     item.TaxAmount,
		})
	}
	return inputs, nil
}
