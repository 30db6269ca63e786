package project

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gucci1909/regis/pkg/apperr"
)

type Handler struct {
	service      Service
	exposeDetail bool
}

func NewHandler(service Service, exposeDetail bool) *Handler {
	return &Handler{service: service, exposeDetail: exposeDetail}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/adding-projects", h.Create)
	rg.GET("/all-project-names", h.ListNames)
	rg.GET("/:projectName", h.GetByName)
}

func (h *Handler) Create(c *gin.Context) {
	var p Project
	if err := c.ShouldBindJSON(&p); err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Validation, "Missing required fields", err), h.exposeDetail)
		return
	}

	id, err := h.service.Create(c.Request.Context(), &p)
	if err != nil {
		apperr.Respond(c, err, h.exposeDetail)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Project added successfully", "projectId": id})
}

func (h *Handler) ListNames(c *gin.Context) {
	names, err := h.service.ListNames(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err, h.exposeDetail)
		return
	}

	c.JSON(http.StatusOK, gin.H{"names": names})
}

func (h *Handler) GetByName(c *gin.Context) {
	p, err := h.service.GetByName(c.Request.Context(), c.Param("projectName"))
	if err != nil {
		apperr.Respond(c, err, h.exposeDetail)
		return
	}

	c.JSON(http.StatusOK, p)
}
