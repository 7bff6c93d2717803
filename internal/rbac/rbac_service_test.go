package rbac

import (
	"testing"

	"go-truck-business/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return NewService(e)
}

func TestService_Enforce(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"staff reads attendance", "STAFF", "attendance", "read", true},
		{"staff checks in", "staff", "attendance", "check", true},
		{"staff cannot delete attendance", "STAFF", "attendance", "delete", false},
		{"staff cannot touch income", "STAFF", "income", "read", false},
		{"admin wildcard", "ADMIN", "invoice", "delete", true},
		{"admin inherits staff", "ADMIN", "leave", "create", true},
		{"empty role", "", "attendance", "read", false},
		{"unknown role", "DRIVER", "attendance", "read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Enforce(tt.role, tt.resource, tt.action)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Permissions(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.Permissions("STAFF")
	assert.NoError(t, err)
	assert.Contains(t, perms, PermissionResponse{Resource: "attendance", Action: "check"})
	assert.NotContains(t, perms, PermissionResponse{Resource: "*", Action: "*"})

	perms, err = svc.Permissions("ADMIN")
	assert.NoError(t, err)
	assert.Contains(t, perms, PermissionResponse{Resource: "*", Action: "*"})
	assert.Contains(t, perms, PermissionResponse{Resource: "leave", Action: "create"})
}
