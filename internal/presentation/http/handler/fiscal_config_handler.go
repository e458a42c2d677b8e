package handler

import (
	"github.com/endurancy/fiscal-api/internal/application/service"
	"github.com/endurancy/fiscal-api/internal/presentation/http/dto/request"
	"github.com/endurancy/fiscal-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FiscalConfigHandler handles fiscal configuration endpoints
type FiscalConfigHandler struct {
	configService *service.FiscalConfigService
}

// NewFiscalConfigHandler creates a new fiscal config handler
func NewFiscalConfigHandler(configService *service.FiscalConfigService) *FiscalConfigHandler {
	return &FiscalConfigHandler{configService: configService}
}

// Get handles GET /fiscal/config/:organizationId
func (h *FiscalConfigHandler) Get(c *gin.Context) {
	organizationID, err := uuid.Parse(c.Param("organizationId"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	config, err := h.configService.Get(c.Request.Context(), organizationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fiscal config retrieved successfully", config)
}

// Create handles POST /fiscal/config
func (h *FiscalConfigHandler) Create(c *gin.Context) {
	var req request.CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	organizationID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	config, err := h.configService.Create(c.Request.Context(), &service.CreateConfigInput{
		OrganizationID:    organizationID,
		NextInvoiceNumber: req.NextInvoiceNumber,
		PrinterModel:      req.PrinterModel,
		PrinterPort:       req.PrinterPort,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fiscal config created successfully", config)
}

// Update handles PUT /fiscal/config/:organizationId
func (h *FiscalConfigHandler) Update(c *gin.Context) {
	organizationID, err := uuid.Parse(c.Param("organizationId"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	var req request.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	config, err := h.configService.Update(c.Request.Context(), organizationID, &service.UpdateConfigInput{
		NextInvoiceNumber: req.NextInvoiceNumber,
		PrinterModel:      req.PrinterModel,
		PrinterPort:       req.PrinterPort,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fiscal config updated successfully", config)
}
