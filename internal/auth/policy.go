package auth

import (
	"strings"

	"github.com/spec-kit/records-service/internal/domain"
)

// Rule is one entry of the authorization table: requests matching Method
// and PathPrefix are allowed only for the listed roles.
type Rule struct {
	Method     string
	PathPrefix string
	Roles      []domain.Role
}

// Policy is the access decision table consulted after identity resolution.
// Rules are scanned in declared order and the first match wins; a request
// matching no rule is allowed for any authenticated principal. The table is
// built once at startup and never mutated, so it is safe to share across
// requests.
type Policy struct {
	public []string
	rules  []Rule
}

// NewPolicy builds a policy from a public-route allowlist and an ordered
// rule table.
func NewPolicy(public []string, rules []Rule) *Policy {
	return &Policy{public: public, rules: rules}
}

// IsPublic reports whether the path is reachable without authentication.
func (p *Policy) IsPublic(path string) bool {
	for _, prefix := range p.public {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Allows decides whether a principal with the given role may perform
// method on path.
func (p *Policy) Allows(method, path string, role domain.Role) bool {
	for _, rule := range p.rules {
		if rule.Method != method {
			continue
		}
		if !strings.HasPrefix(path, rule.PathPrefix) {
			continue
		}
		for _, allowed := range rule.Roles {
			if allowed == role {
				return true
			}
		}
		return false
	}
	// No explicit rule: any authenticated principal may proceed.
	return true
}

// Rules exposes the table for inspection.
func (p *Policy) Rules() []Rule {
	return p.rules
}

// RecordPrefixes lists the protected record route prefixes.
var RecordPrefixes = []string{
	"/api/v1/invoices",
	"/api/v1/list-items",
	"/api/v1/sales",
	"/api/v1/purchases",
	"/api/v1/stocks",
	"/api/v1/orders",
	"/api/v1/items",
	"/api/v1/refunds-cancelled",
}

// DefaultPolicy declares the startup authorization table: reads are open to
// every role, writes to admin and operator, deletes to admin only.
func DefaultPolicy() *Policy {
	public := []string{"/auth", "/health", "/docs"}

	readers := []domain.Role{domain.RoleAdmin, domain.RoleOperator, domain.RolePartner}
	writers := []domain.Role{domain.RoleAdmin, domain.RoleOperator}
	admins := []domain.Role{domain.RoleAdmin}

	rules := make([]Rule, 0, len(RecordPrefixes)*4)
	for _, prefix := range RecordPrefixes {
		rules = append(rules,
			Rule{Method: "GET", PathPrefix: prefix, Roles: readers},
			Rule{Method: "POST", PathPrefix: prefix, Roles: writers},
			Rule{Method: "PUT", PathPrefix: prefix, Roles: writers},
			Rule{Method: "DELETE", PathPrefix: prefix, Roles: admins},
		)
	}
	return NewPolicy(public, rules)
}
