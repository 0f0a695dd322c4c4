package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/saruni-spec/pin-registration/domain"
	"github.com/saruni-spec/pin-registration/internal/http/middleware"
	"github.com/saruni-spec/pin-registration/internal/mocks"
)

func draftTestRouter(svc *mocks.MockDraftService, msisdn string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if msisdn != "" {
		r.Use(func(c *gin.Context) { c.Set(middleware.CtxMSISDN, msisdn) })
	}
	h := NewDraftHandlers(svc, "254")
	r.POST("/drafts/:workflow", h.SaveDraft)
	r.GET("/drafts/:workflow", h.GetDraft)
	r.DELETE("/drafts/:workflow", h.ClearDraft)
	r.GET("/drafts/:workflow/totals", h.DraftTotals)
	return r
}

func TestDraftHandlers_SaveDraft(t *testing.T) {
	t.Run("verified caller uses the session msisdn", func(t *testing.T) {
		svc := mocks.NewMockDraftService()
		var gotMSISDN string
		var gotWorkflow domain.Workflow
		svc.SaveDraftFunc = func(ctx context.Context, workflow domain.Workflow, msisdn string, patch domain.DraftPatch) (*domain.Draft, error) {
			gotMSISDN = msisdn
			gotWorkflow = workflow
			return &domain.Draft{Workflow: workflow, MSISDN: msisdn}, nil
		}
		r := draftTestRouter(svc, "254712345678")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/drafts/sales_invoice", strings.NewReader(`{"draft": {"invoice_number": "INV-1"}}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "254712345678", gotMSISDN)
		assert.Equal(t, domain.WorkflowSalesInvoice, gotWorkflow)
	})

	t.Run("guest without a phone is a 400", func(t *testing.T) {
		r := draftTestRouter(mocks.NewMockDraftService(), "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/drafts/sales_invoice", strings.NewReader(`{"draft": {}}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown workflow is a 404", func(t *testing.T) {
		svc := mocks.NewMockDraftService()
		svc.SaveDraftFunc = func(ctx context.Context, workflow domain.Workflow, msisdn string, patch domain.DraftPatch) (*domain.Draft, error) {
			return nil, domain.ErrUnknownWorkflow
		}
		r := draftTestRouter(svc, "254712345678")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/drafts/mystery", strings.NewReader(`{"draft": {}}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid line item is a 400", func(t *testing.T) {
		svc := mocks.NewMockDraftService()
		svc.SaveDraftFunc = func(ctx context.Context, workflow domain.Workflow, msisdn string, patch domain.DraftPatch) (*domain.Draft, error) {
			return nil, domain.ErrLineItemQuantity
		}
		r := draftTestRouter(svc, "254712345678")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/drafts/sales_invoice", strings.NewReader(`{"draft": {"items": [{"name": "Cement", "quantity": 0}]}}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDraftHandlers_GetDraft(t *testing.T) {
	t.Run("missing draft is a 404", func(t *testing.T) {
		svc := mocks.NewMockDraftService()
		svc.GetDraftFunc = func(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Draft, error) {
			return nil, domain.ErrDraftNotFound
		}
		r := draftTestRouter(svc, "254712345678")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/drafts/sales_invoice", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("guest may pass a phone as query param", func(t *testing.T) {
		svc := mocks.NewMockDraftService()
		var gotMSISDN string
		svc.GetDraftFunc = func(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Draft, error) {
			gotMSISDN = msisdn
			return &domain.Draft{Workflow: workflow, MSISDN: msisdn}, nil
		}
		r := draftTestRouter(svc, "")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/drafts/sales_invoice?phone=0712345678", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "254712345678", gotMSISDN)
	})
}

func TestDraftHandlers_DraftTotals(t *testing.T) {
	svc := mocks.NewMockDraftService()
	r := draftTestRouter(svc, "254712345678")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/drafts/sales_invoice/totals", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subtotal"`)
	assert.Contains(t, w.Body.String(), `"total"`)
}
