package handler

import (
	"net/http"
	"strconv"

	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/models"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DrugHandler struct {
	resource[models.Drug, service.DrugInput]
	drugs   *service.DrugService
	exports *service.ExportService
}

func NewDrugHandler(drugs *service.DrugService, exports *service.ExportService) *DrugHandler {
	return &DrugHandler{
		resource: resource[models.Drug, service.DrugInput]{
			entity:  "drug",
			plural:  "drugs",
			idParam: "drug_id",
			list:    drugs.List,
			search:  byTerm(drugs.Search),
			get:     drugs.Get,
			create:  drugs.Create,
			update:  drugs.Update,
			remove:  drugs.Delete,
		},
		drugs:   drugs,
		exports: exports,
	}
}

func (h *DrugHandler) Register(g *gin.RouterGroup) {
	h.register(g)
	g.PUT("/drug-sale", h.Sale)
	if h.exports != nil {
		g.GET("/drugs-export", exportByFilter(h.exports.Drugs, "drugs"))
	}
}

// Sale sells drug_qty units over the counter, billed to patient_id when given
func (h *DrugHandler) Sale(c *gin.Context) {
	drugID, ok := queryID(c, "drug_id")
	if !ok {
		return
	}
	qty, err := strconv.Atoi(c.Query("drug_qty"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid drug_qty")
		return
	}
	patientID, ok := optionalID(c, "patient_id")
	if !ok {
		return
	}

	sale, err := h.drugs.Sell(c.Request.Context(), middleware.TenantID(c), drugID, qty, patientID)
	if err != nil {
		respondError(c, err, "Failed to sell drug")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Drug sold successfully",
		"drug":    sale.Drug,
		"billing": sale.Billing,
	})
}

type ServiceHandler struct {
	resource[models.Service, service.ServiceInput]
}

func NewServiceHandler(services *service.ServiceCatalog) *ServiceHandler {
	return &ServiceHandler{resource[models.Service, service.ServiceInput]{
		entity:  "service",
		plural:  "services",
		idParam: "service_id",
		list:    services.List,
		search:  byTerm(services.Search),
		get:     services.Get,
		create:  services.Create,
		update:  services.Update,
		remove:  services.Delete,
	}}
}

func (h *ServiceHandler) Register(g *gin.RouterGroup) {
	h.register(g)
}

type LabTestHandler struct {
	resource[models.LabTest, service.LabTestInput]
}

func NewLabTestHandler(tests *service.LabTestService) *LabTestHandler {
	return &LabTestHandler{resource[models.LabTest, service.LabTestInput]{
		entity:  "lab_test",
		plural:  "lab_tests",
		idParam: "lab_test_id",
		list:    tests.List,
		search:  byTerm(tests.Search),
		get:     tests.Get,
		create:  tests.Create,
		update:  tests.Update,
		remove:  tests.Delete,
	}}
}

func (h *LabTestHandler) Register(g *gin.RouterGroup) {
	h.register(g)
}
