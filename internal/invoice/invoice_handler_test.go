package invoice_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-truck-business/internal/invoice"
	invoiceerrors "go-truck-business/internal/invoice/errors"
	"go-truck-business/internal/invoice/mock"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(svc invoice.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := invoice.NewHandler(svc)
	g := r.Group("/invoices")
	g.GET("", h.GetAll)
	g.GET("/year/:year", h.GetByYear)
	g.GET("/:id", h.GetByID)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestInvoiceHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(invoice.InvoiceResponse{
			ID:               1,
			Amount:           decimal.NewFromInt(100),
			RemainingBalance: decimal.NewFromInt(100),
			PaymentStatus:    invoice.PaymentUnpaid,
		}, nil)

		w := do(setupRouter(svc), http.MethodPost, "/invoices",
			`{"invoice_no":"INV-1","customer_name":"PTT","issue_date":"2025-01-01","amount":"100"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"payment_status":"UNPAID"`)
	})

	t.Run("missing invoice number", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		w := do(setupRouter(mock.NewMockService(ctrl)), http.MethodPost, "/invoices",
			`{"customer_name":"PTT","issue_date":"2025-01-01"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(invoice.InvoiceResponse{}, invoiceerrors.ErrInvoiceNoExists)

		w := do(setupRouter(svc), http.MethodPost, "/invoices",
			`{"invoice_no":"INV-1","customer_name":"PTT","issue_date":"2025-01-01"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestInvoiceHandler_DeleteAndYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	svc.EXPECT().Delete(gomock.Any(), uint(2)).Return(invoiceerrors.ErrInvoiceNotFound)
	svc.EXPECT().GetByYear(gomock.Any(), "2025").Return([]invoice.InvoiceResponse{}, nil)

	r := setupRouter(svc)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/invoices/2", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/invoices/year/2025", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/invoices/0", `{}`).Code)
}
