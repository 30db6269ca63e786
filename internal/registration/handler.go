package registration

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gucci1909/regis/internal/intake"
	"github.com/gucci1909/regis/pkg/apperr"
)

type Handler struct {
	service      Service
	intake       *intake.Intake
	exposeDetail bool
}

func NewHandler(service Service, in *intake.Intake, exposeDetail bool) *Handler {
	return &Handler{service: service, intake: in, exposeDetail: exposeDetail}
}

// RegisterRoutes mounts the three endpoints of every registration variant
// under /company.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	company := rg.Group("/company")
	for _, category := range Categories {
		category := category
		company.POST("/"+category.Slug, h.register(category))
		company.GET("/"+category.Slug, h.listPending(category))
		company.POST("/"+category.Slug+"/status-change", h.changeStatus(category))
	}
}

func (h *Handler) register(category Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			apperr.Respond(c, apperr.Wrap(apperr.Validation, "Invalid multipart form", err), h.exposeDetail)
			return
		}

		staged, err := h.intake.Stage(form, category.DocumentSlots)
		if err != nil {
			apperr.Respond(c, err, h.exposeDetail)
			return
		}
		defer h.intake.Remove(staged)

		fields := make(map[string]string, len(form.Value))
		for key, values := range form.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}

		id, err := h.service.Register(c.Request.Context(), category, RegisterRequest{
			Fields: fields,
			Files:  staged,
		})
		if err != nil {
			apperr.Respond(c, err, h.exposeDetail)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":   fmt.Sprintf("%s registration request submitted successfully", category.DisplayName),
			"companyId": id,
		})
	}
}

func (h *Handler) listPending(category Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := h.service.ListPending(c.Request.Context(), category)
		if err != nil {
			apperr.Respond(c, err, h.exposeDetail)
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

type statusChangeRequest struct {
	CompanyID      string `json:"company_id" binding:"required"`
	RegisterStatus string `json:"register_status" binding:"required"`
}

func (h *Handler) changeStatus(category Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusChangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Wrap(apperr.Validation, "Missing company_id or register_status", err), h.exposeDetail)
			return
		}

		if err := h.service.ChangeStatus(c.Request.Context(), category, req.CompanyID, req.RegisterStatus); err != nil {
			apperr.Respond(c, err, h.exposeDetail)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Registration %s successfully", req.RegisterStatus),
		})
	}
}
