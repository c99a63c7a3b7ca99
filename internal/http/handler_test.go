package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nurpe/quote-studio/internal/layout"
	"github.com/nurpe/quote-studio/internal/model"
	"github.com/nurpe/quote-studio/internal/quote"
	"github.com/nurpe/quote-studio/internal/service"
	"github.com/nurpe/quote-studio/internal/session"
	"github.com/nurpe/quote-studio/internal/styles"
)

var fixedNow = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

type stubRenderer struct{}

func (stubRenderer) Render(_ context.Context, _ *layout.Document) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

type testServer struct {
	router  *gin.Engine
	store   *quote.Store
	session *session.Session
}

// blockingRenderer holds every render until its context ends.
type blockingRenderer struct{}

func (blockingRenderer) Render(ctx context.Context, _ *layout.Document) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, stubRenderer{}, zerolog.Nop())
}

func newTestServerWith(t *testing.T, renderer service.Renderer, log zerolog.Logger) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := func() time.Time { return fixedNow }
	store := quote.NewStore(now)
	presets, err := quote.NewPresets(quote.DefaultPresets())
	if err != nil {
		t.Fatalf("NewPresets() error = %v", err)
	}
	catalog := styles.NewCatalog(styles.Korean)
	docs := service.NewDocumentService(catalog, renderer, nil, model.CompanyInfo{Name: "Acme"}, now, zerolog.Nop())
	sess := session.New(docs, styles.Modern, 0, zerolog.Nop())
	t.Cleanup(sess.Close)

	handler := NewHandler(store, presets, docs, sess, now, log)
	router := NewRouter(handler, func(c *gin.Context) { c.Next() }, "test", []string{"*"})
	return &testServer{router: router, store: store, session: sess}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type totalsBody struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	VAT      decimal.Decimal `json:"vat"`
	Total    decimal.Decimal `json:"total"`
	Complete bool            `json:"complete"`
}

func TestItemMutationsKeepTotals(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/quote/items", map[string]any{
		"category":   "개발",
		"name":       "API",
		"unit_price": 1000,
		"quantity":   2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body = %s", w.Code, w.Body.String())
	}
	var added struct {
		Item  model.QuoteItem `json:"item"`
		Quote totalsBody      `json:"quote"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !added.Quote.Subtotal.Equal(decimal.NewFromInt(2000)) ||
		!added.Quote.VAT.Equal(decimal.NewFromInt(200)) ||
		!added.Quote.Total.Equal(decimal.NewFromInt(2200)) {
		t.Fatalf("totals = %s/%s/%s", added.Quote.Subtotal, added.Quote.VAT, added.Quote.Total)
	}

	w = srv.do(http.MethodPatch, "/quote/items/"+added.Item.ID, map[string]any{"quantity": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body = %s", w.Code, w.Body.String())
	}
	snap := srv.store.Snapshot()
	if !snap.Subtotal.Equal(decimal.NewFromInt(5000)) || !snap.Total.Equal(decimal.NewFromInt(5500)) {
		t.Fatalf("after patch totals = %s/%s", snap.Subtotal, snap.Total)
	}

	w = srv.do(http.MethodDelete, "/quote/items/"+added.Item.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if snap := srv.store.Snapshot(); !snap.Total.IsZero() || len(snap.Items) != 0 {
		t.Fatalf("after delete total = %s, items = %d", snap.Total, len(snap.Items))
	}
}

func TestItemValidationAndMissing(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"negative price", http.MethodPost, "/quote/items", map[string]any{"name": "x", "unit_price": -1, "quantity": 1}, http.StatusBadRequest},
		{"zero quantity", http.MethodPost, "/quote/items", map[string]any{"name": "x", "unit_price": 1, "quantity": 0}, http.StatusBadRequest},
		{"missing name", http.MethodPost, "/quote/items", map[string]any{"unit_price": 1, "quantity": 1}, http.StatusBadRequest},
		{"patch unknown", http.MethodPatch, "/quote/items/nope", map[string]any{"quantity": 2}, http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/quote/items/nope", nil, http.StatusNotFound},
		{"unknown preset", http.MethodPost, "/quote/items/from-preset/nope", nil, http.StatusNotFound},
		{"bad project date", http.MethodPut, "/quote/project", map[string]any{"project_name": "p", "quote_date": "yesterday"}, http.StatusBadRequest},
		{"no document yet", http.MethodGet, "/documents/current/content", nil, http.StatusNotFound},
		{"unknown handle", http.MethodGet, "/documents/abc", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := srv.do(tt.method, tt.path, tt.body); w.Code != tt.want {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestGenerateIncompleteQuote(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/documents", map[string]any{"wait": true})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := srv.session.Status().State; got != session.StateIdle {
		t.Fatalf("state = %s, want idle", got)
	}
}

func TestGenerateUnknownStyle(t *testing.T) {
	srv := newTestServer(t)
	srv.do(http.MethodPost, "/quote/sample", nil)

	w := srv.do(http.MethodPost, "/documents", map[string]any{"style": "neon"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestGenerateAndFetchDocument(t *testing.T) {
	srv := newTestServer(t)

	if w := srv.do(http.MethodPost, "/quote/sample", nil); w.Code != http.StatusOK {
		t.Fatalf("sample status = %d", w.Code)
	}

	w := srv.do(http.MethodPost, "/documents", map[string]any{"style": "classic", "wait": true})
	if w.Code != http.StatusOK {
		t.Fatalf("generate status = %d, body = %s", w.Code, w.Body.String())
	}
	var status session.Status
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.State != session.StateReady || status.Style != styles.Classic || status.Handle == "" {
		t.Fatalf("status = %+v", status)
	}
	if status.QuoteNumber != "Q20240305-001" {
		t.Errorf("quote number = %q", status.QuoteNumber)
	}

	w = srv.do(http.MethodGet, "/documents/current/content", nil)
	if w.Code != http.StatusOK || w.Body.String() != "%PDF-stub" {
		t.Fatalf("content status = %d, body = %q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypePDF {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "inline;") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	w = srv.do(http.MethodGet, "/documents/current/download", nil)
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") || !strings.Contains(cd, "filename*=UTF-8''") {
		t.Errorf("download Content-Disposition = %q", cd)
	}

	if w := srv.do(http.MethodGet, "/documents/"+status.Handle, nil); w.Code != http.StatusOK {
		t.Errorf("by handle status = %d", w.Code)
	}
}

func TestGenerateWaitClientGone(t *testing.T) {
	var logs bytes.Buffer
	srv := newTestServerWith(t, blockingRenderer{}, zerolog.New(&logs))
	srv.do(http.MethodPost, "/quote/sample", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(`{"wait":true}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestTimeout {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusRequestTimeout, w.Body.String())
	}
	if strings.Contains(logs.String(), `"level":"error"`) {
		t.Errorf("client disconnect logged as error: %s", logs.String())
	}
	if got := srv.session.Status().State; got != session.StateGenerating {
		t.Errorf("state = %s, want generating", got)
	}
}

func TestSelectStyleWithoutDocument(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPut, "/documents/style", map[string]any{"style": "business"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := srv.session.Style(); got != styles.Business {
		t.Fatalf("style = %s", got)
	}
	if got := srv.session.Status().State; got != session.StateIdle {
		t.Fatalf("state = %s, want idle", got)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	if w := srv.do(http.MethodGet, "/healthz", nil); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestContentDisposition(t *testing.T) {
	got := contentDisposition("attachment", "견적서_a b.pdf")
	want := "attachment; filename=\"____a b.pdf\"; filename*=UTF-8''%EA%B2%AC%EC%A0%81%EC%84%9C_a%20b.pdf"
	if got != want {
		t.Fatalf("contentDisposition() = %q, want %q", got, want)
	}
}
