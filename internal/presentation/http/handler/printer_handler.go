package handler

import (
	"github.com/endurancy/fiscal-api/internal/application/service"
	"github.com/endurancy/fiscal-api/internal/presentation/http/dto/request"
	"github.com/endurancy/fiscal-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PrinterHandler handles printer endpoints
type PrinterHandler struct {
	printerService *service.PrinterService
	reportService  *service.ReportService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService, reportService *service.ReportService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService, reportService: reportService}
}

// Test handles POST /fiscal/printer/test. Driver-level failures are reported
// in the result body, not as HTTP errors.
func (h *PrinterHandler) Test(c *gin.Context) {
	var req request.TestPrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result := h.printerService.TestPrinter(req.PrinterModel, req.PrinterPort)
	response.OK(c, "Printer test completed", result)
}

// OpenCashDrawer handles POST /fiscal/printer/:organizationId/cash-drawer
func (h *PrinterHandler) OpenCashDrawer(c *gin.Context) {
	organizationID, err := uuid.Parse(c.Param("organizationId"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	result, err := h.printerService.OpenCashDrawer(c.Request.Context(), organizationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash drawer command sent", result)
}

// Status handles GET /fiscal/printer/:organizationId/status
func (h *PrinterHandler) Status(c *gin.Context) {
	organizationID, err := uuid.Parse(c.Param("organizationId"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	result, err := h.printerService.Status(c.Request.Context(), organizationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Printer status retrieved", result)
}

// XReport handles POST /fiscal/printer/:organizationId/x-report
func (h *PrinterHandler) XReport(c *gin.Context) {
	organizationID, err := uuid.Parse(c.Param("organizationId"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	result, err := h.printerService.PrintXReport(c.Request.Context(), organizationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "X report printed", result)
}

// ZReport handles POST /fiscal/printer/:organizationId/z-report
func (h *PrinterHandler) ZReport(c *gin.Context) {
	organizationID, err := uuid.Parse(c.Param("organizationId"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	result, err := h.printerService.PrintZReport(c.Request.Context(), organizationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Z report printed", result)
}

// DailyReport handles GET /fiscal/printer/:organizationId/daily-report
func (h *PrinterHandler) DailyReport(c *gin.Context) {
	organizationID, err := uuid.Parse(c.Param("organizationId"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	result, err := h.reportService.PrintDailyReport(c.Request.Context(), organizationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales report printed", result)
}
