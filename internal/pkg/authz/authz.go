// Package authz decides which session roles may call which routes, using a
// casbin RBAC model whose policies come from configuration.
package authz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

var ErrInvalidPolicy = errors.New("authz: policy must be \"role, path, method\"")

// Authorizer answers whether role may perform method on route.
type Authorizer interface {
	Allow(role, route, method string) (bool, error)
}

// Config lists policies as "role, path, method" lines and role inheritance
// as "role, parent" lines.
type Config struct {
	Policies []string
	Roles    []string
}

// Casbin is the Authorizer backed by an in-memory casbin enforcer.
type Casbin struct {
	enforcer *casbin.Enforcer
}

func NewCasbin(cfg Config) (*Casbin, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies, err := splitRules(cfg.Policies, 3)
	if err != nil {
		return nil, err
	}
	if len(policies) > 0 {
		if _, err := e.AddPolicies(policies); err != nil {
			return nil, err
		}
	}

	roles, err := splitRules(cfg.Roles, 2)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if _, err := e.AddGroupingPolicy(r[0], r[1]); err != nil {
			return nil, err
		}
	}

	return &Casbin{enforcer: e}, nil
}

func (c *Casbin) Allow(role, route, method string) (bool, error) {
	return c.enforcer.Enforce(role, route, method)
}

func splitRules(lines []string, width int) ([][]string, error) {
	out := make([][]string, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, ",")
		if len(parts) != width {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, line)
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		out = append(out, parts)
	}
	return out, nil
}
