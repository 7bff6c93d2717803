package employee_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-truck-business/internal/employee"
	employeeerrors "go-truck-business/internal/employee/errors"
	employeeMock "go-truck-business/internal/employee/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

func setupHandlerTest(t *testing.T) (*gin.Engine, *employeeMock.MockService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	h := employee.NewHandler(svc)

	r := gin.New()
	r.GET("/employees", h.GetAll)
	r.GET("/employees/options", h.GetOptions)
	r.GET("/employees/:id", h.GetByID)
	r.POST("/employees", h.Create)
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Delete)
	return r, svc
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r, svc := setupHandlerTest(t)
		svc.EXPECT().
			Create(gomock.Any(), employee.CreateEmployeeRequest{Name: "Somchai", Position: "Driver", Phone: "0812"}).
			Return(employee.EmployeeResponse{ID: "EMP001", Name: "Somchai"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"name":"Somchai","position":"Driver","phone":"0812"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.JSONEq(t, `{"id":"EMP001","name":"Somchai","position":"","phone":"","profile_image_path":null}`, string(env.Data))
	})

	t.Run("missing phone", func(t *testing.T) {
		r, _ := setupHandlerTest(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"name":"Somchai","position":"Driver"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestEmployeeHandler_GetAll_FilterSortPage(t *testing.T) {
	r, svc := setupHandlerTest(t)
	svc.EXPECT().GetAll(gomock.Any()).Return([]employee.EmployeeResponse{
		{ID: "EMP001", Name: "Somchai"},
		{ID: "EMP002", Name: "Niran"},
		{ID: "EMP003", Name: "Somsak"},
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?q=som&sort_by=name&sort_dir=desc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var items []employee.EmployeeResponse
	assert.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
	assert.Equal(t, "EMP003", items[0].ID)
	assert.EqualValues(t, 2, env.Meta["total"])
}

func TestEmployeeHandler_OptionsRouteIsNotAnID(t *testing.T) {
	r, svc := setupHandlerTest(t)
	svc.EXPECT().GetOptions(gomock.Any()).Return([]employee.EmployeeOption{{ID: "EMP001", Name: "Somchai"}}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/options", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeHandler_GetByID_NotFound(t *testing.T) {
	r, svc := setupHandlerTest(t)
	svc.EXPECT().GetByID(gomock.Any(), "EMP404").Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/EMP404", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
}

func TestEmployeeHandler_Delete(t *testing.T) {
	r, svc := setupHandlerTest(t)
	svc.EXPECT().Delete(gomock.Any(), "EMP001").Return(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/EMP001", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Employee deleted successfully")
}
