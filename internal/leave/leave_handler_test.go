package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-truck-business/internal/leave"
	leaveerrors "go-truck-business/internal/leave/errors"
	"go-truck-business/internal/leave/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
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

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		svc.EXPECT().
			Create(gomock.Any(), leave.CreateLeaveRequest{EmployeeID: "EMP001", LeaveDate: "2025-02-03", LeaveType: "SICK", ApprovedBy: "admin"}).
			Return(leave.LeaveResponse{LeaveID: 1, EmployeeID: "EMP001", LeaveDate: "2025-02-03"}, nil)

		h := leave.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/leaves", `{"employee_id":"EMP001","leave_date":"2025-02-03","leave_type":"SICK","approved_by":"admin"}`)
		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decodeEnvelope(t, w.Body.Bytes()).Ok)
	})

	t.Run("approved_by is required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := leave.NewHandler(mock.NewMockService(ctrl))
		c, w := newContext(http.MethodPost, "/leaves", `{"employee_id":"EMP001","leave_date":"2025-02-03","leave_type":"SICK"}`)
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(leave.LeaveResponse{}, leaveerrors.ErrLeaveAlreadyExists)

		h := leave.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/leaves", `{"employee_id":"EMP001","leave_date":"2025-02-03","leave_type":"SICK","approved_by":"admin"}`)
		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	svc.EXPECT().
		GetAll(gomock.Any(), leave.ListFilter{EmployeeID: "EMP001", Year: 2025, Month: 2}).
		Return([]leave.LeaveResponse{{LeaveID: 1}}, nil)

	h := leave.NewHandler(svc)
	c, w := newContext(http.MethodGet, "/leaves?employeeId=EMP001&year=2025&month=2", "")
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLeaveHandler_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := leave.NewHandler(mock.NewMockService(ctrl))

	for _, id := range []string{"abc", "0", "-1"} {
		c, w := newContext(http.MethodGet, "/leaves/"+id, "")
		c.Params = gin.Params{{Key: "id", Value: id}}
		h.GetByID(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
	}
}

func TestLeaveHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	svc.EXPECT().
		Update(gomock.Any(), uint(3), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uint, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, "2025-02-04", *req.LeaveDate)
			assert.Nil(t, req.EmployeeID)
			return leave.LeaveResponse{LeaveID: id, LeaveDate: *req.LeaveDate}, nil
		})

	h := leave.NewHandler(svc)
	c, w := newContext(http.MethodPut, "/leaves/3", `{"leave_date":"2025-02-04"}`)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLeaveHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	svc.EXPECT().Delete(gomock.Any(), uint(5)).Return(leaveerrors.ErrLeaveNotFound)

	h := leave.NewHandler(svc)
	c, w := newContext(http.MethodDelete, "/leaves/5", "")
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
