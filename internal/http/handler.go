package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nurpe/quote-studio/internal/http/middleware"
	"github.com/nurpe/quote-studio/internal/model"
	"github.com/nurpe/quote-studio/internal/pricing"
	"github.com/nurpe/quote-studio/internal/quote"
	"github.com/nurpe/quote-studio/internal/service"
	"github.com/nurpe/quote-studio/internal/session"
	"github.com/nurpe/quote-studio/internal/styles"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	store   *quote.Store
	presets *quote.Presets
	docs    *service.DocumentService
	session *session.Session
	now     func() time.Time
	log     zerolog.Logger
}

func NewHandler(
	store *quote.Store,
	presets *quote.Presets,
	docs *service.DocumentService,
	sess *session.Session,
	now func() time.Time,
	log zerolog.Logger,
) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{store: store, presets: presets, docs: docs, session: sess, now: now, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/styles", h.listStyles)

	protected.GET("/quote", h.getQuote)
	protected.GET("/quote/complete", h.quoteComplete)
	protected.POST("/quote/reset", h.resetQuote)
	protected.POST("/quote/sample", h.loadSample)
	protected.PUT("/quote/customer", h.setCustomer)
	protected.PUT("/quote/project", h.setProject)
	protected.PUT("/quote/bank", h.setBank)
	protected.PUT("/quote/notes", h.setNotes)
	protected.POST("/quote/items", h.addItem)
	protected.POST("/quote/items/from-preset/:id", h.addItemFromPreset)
	protected.PATCH("/quote/items/:id", h.updateItem)
	protected.DELETE("/quote/items/:id", h.removeItem)
	protected.GET("/quote/export/xlsx", h.exportSpreadsheet)

	protected.GET("/presets", h.listPresets)
	protected.GET("/presets/categories", h.presetCategories)
	protected.POST("/presets", h.createPreset)
	protected.PATCH("/presets/:id", h.updatePreset)
	protected.DELETE("/presets/:id", h.deletePreset)

	protected.POST("/documents", h.generateDocument)
	protected.PUT("/documents/style", h.selectStyle)
	protected.POST("/documents/dismiss", h.dismissDocument)
	protected.GET("/documents/current", h.documentStatus)
	protected.GET("/documents/current/content", h.documentContent)
	protected.GET("/documents/current/download", h.documentDownload)
	protected.GET("/documents/:handle", h.documentByHandle)
}

type quoteResponse struct {
	model.Quotation
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing"`
}

func newQuoteResponse(q model.Quotation) quoteResponse {
	missing := q.Missing()
	if missing == nil {
		missing = []string{}
	}
	return quoteResponse{Quotation: q, Complete: q.IsComplete(), Missing: missing}
}

func (h *Handler) listStyles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"styles": h.docs.Styles(), "selected": h.session.Style()})
}

func (h *Handler) getQuote(c *gin.Context) {
	c.JSON(http.StatusOK, newQuoteResponse(h.store.Snapshot()))
}

func (h *Handler) quoteComplete(c *gin.Context) {
	q := h.store.Snapshot()
	resp := newQuoteResponse(q)
	c.JSON(http.StatusOK, gin.H{"complete": resp.Complete, "missing": resp.Missing})
}

func (h *Handler) resetQuote(c *gin.Context) {
	h.store.Reset()
	c.JSON(http.StatusOK, newQuoteResponse(h.store.Snapshot()))
}

func (h *Handler) loadSample(c *gin.Context) {
	if err := h.store.Load(quote.Sample(h.now())); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newQuoteResponse(h.store.Snapshot()))
}

func (h *Handler) setCustomer(c *gin.Context) {
	var req model.CustomerInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.SetCustomer(req)
	c.JSON(http.StatusOK, newQuoteResponse(h.store.Snapshot()))
}

type projectRequest struct {
	ProjectName     string `json:"project_name"`
	QuoteDate       string `json:"quote_date"`
	ValidUntil      string `json:"valid_until"`
	ProjectDuration string `json:"project_duration"`
	DeliveryDate    string `json:"delivery_date"`
}

func (h *Handler) setProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info := model.ProjectInfo{ProjectName: req.ProjectName, ProjectDuration: req.ProjectDuration}
	dates := []struct {
		name string
		raw  string
		dst  *time.Time
	}{
		{"quote_date", req.QuoteDate, &info.QuoteDate},
		{"valid_until", req.ValidUntil, &info.ValidUntil},
		{"delivery_date", req.DeliveryDate, &info.DeliveryDate},
	}
	for _, d := range dates {
		if strings.TrimSpace(d.raw) == "" {
			continue
		}
		parsed, err := parseDate(d.raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + d.name})
			return
		}
		*d.dst = parsed
	}

	h.store.SetProject(info)
	c.JSON(http.StatusOK, newQuoteResponse(h.store.Snapshot()))
}

func (h *Handler) setBank(c *gin.Context) {
	var req model.BankInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.SetBankInfo(req)
	c.JSON(http.StatusOK, newQuoteResponse(h.store.Snapshot()))
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) setNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.SetNotes(req.Notes)
	c.JSON(http.StatusOK, newQuoteResponse(h.store.Snapshot()))
}

type itemRequest struct {
	Category    string          `json:"category"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	ManDays     float64         `json:"man_days"`
}

func (r itemRequest) toItem() model.QuoteItem {
	return model.QuoteItem{
		Category:    r.Category,
		Name:        r.Name,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
		Quantity:    r.Quantity,
		ManDays:     r.ManDays,
	}
}

func (h *Handler) addItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.store.AddItem(req.toItem())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item, "quote": newQuoteResponse(h.store.Snapshot())})
}

func (h *Handler) addItemFromPreset(c *gin.Context) {
	item, err := h.presets.Instantiate(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	item, err = h.store.AddItem(item)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item, "quote": newQuoteResponse(h.store.Snapshot())})
}

func (h *Handler) updateItem(c *gin.Context) {
	var patch model.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.store.UpdateItem(c.Param("id"), patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "quote": newQuoteResponse(h.store.Snapshot())})
}

func (h *Handler) removeItem(c *gin.Context) {
	if !h.store.RemoveItem(c.Param("id")) {
		h.handleError(c, fmt.Errorf("%w: %s", quote.ErrItemNotFound, c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, newQuoteResponse(h.store.Snapshot()))
}

func (h *Handler) exportSpreadsheet(c *gin.Context) {
	result, err := h.docs.ExportSpreadsheet(c.Request.Context(), h.store.Snapshot())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", contentDisposition("attachment", result.FileName))
	c.Data(http.StatusOK, contentTypeXLSX, result.Content)
}

func (h *Handler) listPresets(c *gin.Context) {
	category := c.DefaultQuery("category", quote.AllCategories)
	c.JSON(http.StatusOK, gin.H{"items": h.presets.List(category)})
}

func (h *Handler) presetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.presets.Categories()})
}

func (h *Handler) createPreset(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.presets.Add(req.toItem())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) updatePreset(c *gin.Context) {
	var patch model.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.presets.Update(c.Param("id"), patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) deletePreset(c *gin.Context) {
	if !h.presets.Remove(c.Param("id")) {
		h.handleError(c, fmt.Errorf("%w: preset %s", service.ErrNotFound, c.Param("id")))
		return
	}
	c.Status(http.StatusNoContent)
}

type generateRequest struct {
	Style string `json:"style"`
	Wait  bool   `json:"wait"`
}

func (h *Handler) generateDocument(c *gin.Context) {
	var req generateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	style := h.session.Style()
	if strings.TrimSpace(req.Style) != "" {
		parsed, err := styles.ParseName(req.Style)
		if err != nil {
			h.handleError(c, err)
			return
		}
		style = parsed
	}

	job, err := h.session.Generate(c.Request.Context(), h.store.Snapshot(), style)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if principal, ok := middleware.MustPrincipal(c); ok {
		h.log.Info().Str("user_id", principal.UserID).Uint64("seq", job.Seq).Msg("document requested")
	}

	if !req.Wait {
		c.JSON(http.StatusAccepted, gin.H{"seq": job.Seq, "style": job.Style, "status": h.session.Status()})
		return
	}
	if _, err := job.Wait(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.session.Status())
}

type styleRequest struct {
	Style string `json:"style" binding:"required"`
}

func (h *Handler) selectStyle(c *gin.Context) {
	var req styleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	style, err := styles.ParseName(req.Style)
	if err != nil {
		h.handleError(c, err)
		return
	}
	job, err := h.session.SelectStyle(c.Request.Context(), h.store.Snapshot(), style)
	if err != nil {
		h.handleError(c, err)
		return
	}
	resp := gin.H{"style": style, "regenerating": job != nil, "status": h.session.Status()}
	if job != nil {
		resp["seq"] = job.Seq
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) dismissDocument(c *gin.Context) {
	h.session.Dismiss()
	c.JSON(http.StatusOK, h.session.Status())
}

func (h *Handler) documentStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Status())
}

func (h *Handler) documentContent(c *gin.Context) {
	blob, ok := h.session.Current()
	if !ok {
		h.handleError(c, fmt.Errorf("%w: no document has been generated", service.ErrNotFound))
		return
	}
	writeBlob(c, blob, "inline")
}

func (h *Handler) documentDownload(c *gin.Context) {
	blob, ok := h.session.Current()
	if !ok {
		h.handleError(c, fmt.Errorf("%w: no document has been generated", service.ErrNotFound))
		return
	}
	writeBlob(c, blob, "attachment")
}

func (h *Handler) documentByHandle(c *gin.Context) {
	blob, ok := h.session.Blob(c.Param("handle"))
	if !ok {
		h.handleError(c, fmt.Errorf("%w: document %s", service.ErrNotFound, c.Param("handle")))
		return
	}
	writeBlob(c, blob, "inline")
}

func writeBlob(c *gin.Context, blob *session.Blob, disposition string) {
	c.Header("Content-Disposition", contentDisposition(disposition, blob.FileName))
	c.Header("X-Quote-Number", blob.QuoteNumber)
	c.Data(http.StatusOK, contentTypePDF, blob.Content)
}

// contentDisposition sets an ASCII fallback name plus the UTF-8 name.
func contentDisposition(kind, fileName string) string {
	fallback := make([]rune, 0, len(fileName))
	for _, r := range fileName {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		fallback = append(fallback, r)
	}
	return fmt.Sprintf("%s; filename=\"%s\"; filename*=UTF-8''%s", kind, string(fallback), url.PathEscape(fileName))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, pricing.ErrInvalidAmount),
		errors.Is(err, styles.ErrUnknownStyle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, quote.ErrItemNotFound),
		errors.Is(err, quote.ErrPresetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRender):
		h.log.Warn().Err(err).Msg("document rendering failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case c.Request.Context().Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		h.log.Debug().Err(err).Str("path", c.FullPath()).Msg("client went away")
		c.AbortWithStatus(http.StatusRequestTimeout)
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
