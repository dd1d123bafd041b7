// Package server provides the Gin HTTP surface of the site.
// Routes are split into two groups:
//   - Site: the server-rendered landing page and its form actions.
//   - Admin: JWT-protected JSON API over stored inquiries and host health.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vesaa/maderas/internal/models"
)

// InquiryStore is the storage the admin API reads.
type InquiryStore interface {
	ListInquiries(ctx context.Context, limit int) ([]models.Inquiry, error)
	GetInquiry(ctx context.Context, id uint) (*models.Inquiry, error)
	DeleteInquiry(ctx context.Context, id uint) error
	CountInquiries(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

type adminHandlers struct {
	store InquiryStore
}

// RegisterAdminRoutes wires up the back-office API.
//
//	Public:          POST /api/login, GET /healthz
//	Protected (JWT): GET /api/inquiries, GET|DELETE /api/inquiries/:id,
//	                 GET /api/health
func RegisterAdminRoutes(r *gin.Engine, st InquiryStore) {
	h := &adminHandlers{store: st}

	// load-balancer probe, no auth
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/login", handleLogin)

	auth := api.Group("/", JWTMiddleware())
	{
		auth.GET("/inquiries", h.listInquiries)
		auth.GET("/inquiries/:id", h.getInquiry)
		auth.DELETE("/inquiries/:id", h.deleteInquiry)
		auth.GET("/health", h.health)
	}
}

// ── Handlers ──────────────────────────────────────────────────────────────────

// handleLogin accepts username + password and returns a signed JWT.
//
//	POST /api/login
//	Body: { "username": "admin", "password": "admin" }
func handleLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	if !checkAdmin(body.Username, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := GenerateJWT(body.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(tokenTTL.Seconds()),
		"type":       "Bearer",
	})
}

// listInquiries returns the newest inquiries.
//
//	GET /api/inquiries?limit=50
func (h *adminHandlers) listInquiries(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	rows, err := h.store.ListInquiries(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	views := make([]models.InquiryView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].View())
	}
	c.JSON(http.StatusOK, gin.H{"data": views, "count": len(views)})
}

func (h *adminHandlers) getInquiry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	inq, err := h.store.GetInquiry(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inq.View()})
}

// deleteInquiry removes an inquiry record by ID.
func (h *adminHandlers) deleteInquiry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.store.DeleteInquiry(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// health reports database reachability, stored inquiry count and host stats.
func (h *adminHandlers) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	dbStatus := "ok"
	if err := h.store.Ping(ctx); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
		dbStatus = err.Error()
	}
	count, _ := h.store.CountInquiries(ctx)

	c.JSON(code, gin.H{
		"status":    status,
		"database":  dbStatus,
		"inquiries": count,
		"host":      collectHostStats(),
		"time":      time.Now().UTC(),
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
