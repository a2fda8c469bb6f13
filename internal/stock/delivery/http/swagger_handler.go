package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Stock Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Reserve godoc
// @Summary Reserve quantity for a technician
// @Description Move quantity from depot stock to a technician's assigned holding
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param resourceType path string true "Resource type" Enums(materials, consumables, vehicles)
// @Param request body object{resource=object,quantity=number,technician=object,author=string,note=string} true "Reservation request"
// @Success 200 {object} object{success=bool,message=string,data=object{resource=object,attribution=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/{resourceType}/reserve [post]
func (h *StockHandler) ReserveDoc() {}

// Release godoc
// @Summary Release technician-held quantity back to the depot
// @Description Return previously reserved quantity; capped by the technician's ledger holding
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param resourceType path string true "Resource type" Enums(materials, consumables, vehicles)
// @Param request body object{resource=object,quantity=number,technician=object,author=string,note=string} true "Release request"
// @Success 200 {object} object{success=bool,message=string,data=object{resource=object,attribution=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/{resourceType}/reserve/release [post]
func (h *StockHandler) ReleaseDoc() {}

// History godoc
// @Summary Resource attribution history
// @Description One page of a resource's attribution ledger, most recent first
// @Tags Stock
// @Produce json
// @Param resourceType path string true "Resource type" Enums(materials, consumables, vehicles)
// @Param id path int true "Resource ID"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} object{success=bool,data=object{total=int,page=int,limit=int,items=array}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/{resourceType}/{id}/history [get]
func (h *StockHandler) HistoryDoc() {}

// Assigned godoc
// @Summary Assigned quantity by technician
// @Description Per-technician assigned totals folded from the full ledger
// @Tags Stock
// @Produce json
// @Param resourceType path string true "Resource type" Enums(materials, consumables, vehicles)
// @Param id path int true "Resource ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/{resourceType}/{id}/assigned [get]
func (h *StockHandler) AssignedDoc() {}

// ListResources godoc
// @Summary List resources
// @Description List resources of one type with pagination and optional depot filter
// @Tags Stock
// @Produce json
// @Param resourceType path string true "Resource type" Enums(materials, consumables, vehicles)
// @Param depot query int false "Depot ID"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} object{success=bool,data=object{total=int,page=int,limit=int,items=array}}
// @Router /api/{resourceType} [get]
func (h *StockHandler) ListResourcesDoc() {}

// CancelAttribution godoc
// @Summary Cancel a ledger entry
// @Description Mark a committed attribution entry CANCELED and compensate the resource (Admin only)
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Attribution entry ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/attributions/{id}/cancel [post]
func (h *StockHandler) CancelAttributionDoc() {}

// ExportMovements godoc
// @Summary Export the movement log
// @Description Download the filtered movement log as an XLSX workbook (Admin only)
// @Tags Movements
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param resourceType query string false "Resource type filter"
// @Param resource query int false "Resource ID filter"
// @Success 200 {string} string "XLSX file"
// @Router /api/movements/export [get]
func (h *MovementHandler) ExportMovementsDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *StockHandler) HealthCheckDoc() {}
