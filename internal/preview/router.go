// Package preview serves saved invoices over HTTP for printing from a browser.
// It is read-only.
package preview

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andy/quickinvoice/internal/domain"
	"github.com/andy/quickinvoice/internal/logger"
	"github.com/andy/quickinvoice/internal/render"
	"github.com/andy/quickinvoice/internal/service"
)

// slowRequest is the latency above which a request is logged as a warning
const slowRequest = 200 * time.Millisecond

type handler struct {
	invoices service.InvoiceService
	reports  service.ReportService
	log      *logger.Logger
}

// NewRouter builds the gin engine with every preview route
func NewRouter(invoices service.InvoiceService, reports service.ReportService, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.Nop()
	}
	h := &handler{invoices: invoices, reports: reports, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.GET("/healthz", h.health)

	api := r.Group("/api")
	{
		api.GET("/invoices", h.listInvoices)
		api.GET("/invoices/:id", h.getInvoice)
		api.GET("/summary", h.summary)
	}

	r.GET("/invoices/:id", h.printHTML)
	r.GET("/invoices/:id/pdf", h.printPDF)

	return r
}

// RequestLogger logs every request with its status and latency
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		ev := log.Info()
		if latency > slowRequest {
			ev = log.Warn().Bool("slow", true)
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Msg("request")
	}
}

func respondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) listInvoices(c *gin.Context) {
	invoices, err := h.invoices.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list invoices")
		respondWithError(c, http.StatusInternalServerError, "failed to load invoices")
		return
	}
	if invoices == nil {
		invoices = []*domain.Invoice{}
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *handler) summary(c *gin.Context) {
	s, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("summary")
		respondWithError(c, http.StatusInternalServerError, "failed to load summary")
		return
	}
	c.JSON(http.StatusOK, s)
}

// lookup resolves :id and writes the error response itself when it fails
func (h *handler) lookup(c *gin.Context) (*domain.Invoice, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "invalid invoice id")
		return nil, false
	}

	inv, err := h.invoices.Get(c.Request.Context(), id)
	if errors.Is(err, domain.ErrInvoiceNotFound) {
		respondWithError(c, http.StatusNotFound, "invoice not found")
		return nil, false
	}
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("get invoice")
		respondWithError(c, http.StatusInternalServerError, "failed to load invoice")
		return nil, false
	}
	return inv, true
}

func (h *handler) getInvoice(c *gin.Context) {
	if inv, ok := h.lookup(c); ok {
		c.JSON(http.StatusOK, inv)
	}
}

func (h *handler) printHTML(c *gin.Context) {
	inv, ok := h.lookup(c)
	if !ok {
		return
	}
	data, err := render.Bytes(render.Render(inv), render.FormatHTML)
	if err != nil {
		h.log.Error().Err(err).Int64("id", inv.ID).Msg("render html")
		respondWithError(c, http.StatusInternalServerError, "failed to render invoice")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

func (h *handler) printPDF(c *gin.Context) {
	inv, ok := h.lookup(c)
	if !ok {
		return
	}
	data, err := render.PDF(render.Render(inv))
	if err != nil {
		h.log.Error().Err(err).Int64("id", inv.ID).Msg("render pdf")
		respondWithError(c, http.StatusInternalServerError, "failed to render invoice")
		return
	}
	name := render.FileName(inv.InvoiceNumber, render.FormatPDF)
	c.Header("Content-Disposition", `inline; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
