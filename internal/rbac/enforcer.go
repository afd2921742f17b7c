package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// The access model is a plain ACL keyed on user type. There are exactly
// two types (admin, user) and the policy never changes at runtime, so
// both the model and the rules live here instead of external files.
const aclModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

var policyRules = [][]string{
	{"admin", "role", "manage"},
	{"admin", "user", "manage"},
	{"admin", "task", "manage"},
	{"admin", "routine", "manage"},
	{"admin", "assignment", "assign"},
	{"admin", "assignment", "audit"},
	{"admin", "assignment", "delete"},
	{"admin", "report", "read"},

	{"user", "assignment", "read_own"},
	{"user", "assignment", "complete"},
	{"user", "assignment", "reject"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(aclModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, rule := range policyRules {
		if _, err := e.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
