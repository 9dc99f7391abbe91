// Package permissions maps identity-provider roles onto application
// permissions. The mapping is static configuration: either the built-in
// policy below or a casbin policy file supplied via ROLE_POLICY_FILE.
package permissions

import (
	"fmt"
	"strings"

	"go-timers/pkg/config"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

// Permission identifiers checked by route handlers.
const (
	TimersView       = "timers:view"
	TimersViewSecret = "timers:view_secret"
	TimersCreate     = "timers:create"
	TimersDelete     = "timers:delete"
	StandingsView    = "standings:view"
	StandingsManage  = "standings:manage"
	AdminJobs        = "admin:jobs"
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
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// defaultPolicy grants: members can view, FCs can manage timers and
// standings (including secret timers), admins can additionally run jobs.
var defaultPolicy = [][]string{
	{"p", "member", "timers", "view"},
	{"p", "member", "standings", "view"},
	{"p", "fc", "timers", "view_secret"},
	{"p", "fc", "timers", "create"},
	{"p", "fc", "timers", "delete"},
	{"p", "fc", "standings", "manage"},
	{"p", "admin", "admin", "jobs"},
	{"g", "fc", "member"},
	{"g", "admin", "fc"},
}

// Manager answers role → permission questions for the route layer.
type Manager struct {
	enforcer *casbin.Enforcer
}

// NewManager builds the enforcer from ROLE_POLICY_FILE when set, otherwise
// from the built-in default policy.
func NewManager() (*Manager, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build permission model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if policyFile := config.GetEnv("ROLE_POLICY_FILE", ""); policyFile != "" {
		enforcer, err = casbin.NewEnforcer(m, fileadapter.NewAdapter(policyFile))
		if err != nil {
			return nil, fmt.Errorf("failed to load policy file %s: %w", policyFile, err)
		}
	} else {
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return nil, fmt.Errorf("failed to create enforcer: %w", err)
		}
		for _, rule := range defaultPolicy {
			switch rule[0] {
			case "p":
				_, err = enforcer.AddPolicy(rule[1], rule[2], rule[3])
			case "g":
				_, err = enforcer.AddGroupingPolicy(rule[1], rule[2])
			}
			if err != nil {
				return nil, fmt.Errorf("failed to add policy rule %v: %w", rule, err)
			}
		}
	}

	return &Manager{enforcer: enforcer}, nil
}

// HasPermission reports whether any of the given roles grants the
// permission, which is expressed as "<resource>:<action>".
func (m *Manager) HasPermission(roles []string, permission string) bool {
	resource, action, found := strings.Cut(permission, ":")
	if !found {
		return false
	}

	for _, role := range roles {
		if ok, err := m.enforcer.Enforce(role, resource, action); err == nil && ok {
			return true
		}
	}
	return false
}
