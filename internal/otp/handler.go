package otp

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
	rg.POST("/send-otp", h.SendOTP)
	rg.POST("/verify-otp", h.VerifyOTP)
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

func (h *Handler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Validation, "Email and phone are required", err), h.exposeDetail)
		return
	}

	if err := h.service.Issue(c.Request.Context(), req.Email, req.Phone); err != nil {
		apperr.Respond(c, err, h.exposeDetail)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Validation, "Email and OTP are required", err), h.exposeDetail)
		return
	}

	if err := h.service.Verify(c.Request.Context(), req.Email, req.OTP); err != nil {
		apperr.Respond(c, err, h.exposeDetail)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
}
