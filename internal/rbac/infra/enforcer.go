package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// ADMIN inherits every STAFF grant through g, so p lines stay short.
const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

var defaultPolicies = [][]string{
	{RoleStaff, "employee", "read"},
	{RoleStaff, "attendance", "read"},
	{RoleStaff, "attendance", "check"},
	{RoleStaff, "leave", "read"},
	{RoleStaff, "leave", "create"},
	{RoleStaff, "day_status", "read"},
	{RoleStaff, "monthly_summary", "read"},
	{RoleAdmin, "*", "*"},
}

var defaultGroupings = [][]string{
	{RoleAdmin, RoleStaff},
}

// NewEnforcer builds an in-memory enforcer loaded with the default role policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := e.AddPolicies(defaultPolicies); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicies(defaultGroupings); err != nil {
		return nil, err
	}
	return e, nil
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}
