package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/records-service/internal/domain"
)

func TestPolicyFirstMatchWins(t *testing.T) {
	policy := NewPolicy(nil, []Rule{
		{Method: "GET", PathPrefix: "/records", Roles: []domain.Role{domain.RoleAdmin, domain.RoleOperator, domain.RolePartner}},
		{Method: "POST", PathPrefix: "/records", Roles: []domain.Role{domain.RoleAdmin, domain.RoleOperator}},
		{Method: "DELETE", PathPrefix: "/records", Roles: []domain.Role{domain.RoleAdmin}},
	})

	assert.True(t, policy.Allows("GET", "/records/5", domain.RolePartner))
	assert.True(t, policy.Allows("POST", "/records/5", domain.RoleOperator))
	assert.False(t, policy.Allows("POST", "/records/5", domain.RolePartner))
	assert.False(t, policy.Allows("DELETE", "/records/5", domain.RolePartner))
	assert.False(t, policy.Allows("DELETE", "/records/5", domain.RoleOperator))
	assert.True(t, policy.Allows("DELETE", "/records/5", domain.RoleAdmin))
}

func TestPolicyEarlierRuleShadowsLater(t *testing.T) {
	policy := NewPolicy(nil, []Rule{
		{Method: "GET", PathPrefix: "/records/special", Roles: []domain.Role{domain.RoleAdmin}},
		{Method: "GET", PathPrefix: "/records", Roles: []domain.Role{domain.RoleAdmin, domain.RolePartner}},
	})

	assert.False(t, policy.Allows("GET", "/records/special/1", domain.RolePartner))
	assert.True(t, policy.Allows("GET", "/records/other", domain.RolePartner))
}

func TestPolicyCatchAllAllowsAuthenticated(t *testing.T) {
	policy := NewPolicy(nil, []Rule{
		{Method: "DELETE", PathPrefix: "/records", Roles: []domain.Role{domain.RoleAdmin}},
	})

	// Paths with no matching rule are open to any authenticated role.
	assert.True(t, policy.Allows("GET", "/reports/summary", domain.RolePartner))
	assert.True(t, policy.Allows("POST", "/records/1", domain.RolePartner))
}

func TestPolicyIsPublic(t *testing.T) {
	policy := NewPolicy([]string{"/auth", "/health", "/docs"}, nil)

	assert.True(t, policy.IsPublic("/auth/login"))
	assert.True(t, policy.IsPublic("/auth/health"))
	assert.True(t, policy.IsPublic("/health/ready"))
	assert.True(t, policy.IsPublic("/docs/index.html"))
	assert.False(t, policy.IsPublic("/api/v1/invoices"))
}

func TestDefaultPolicyMatrix(t *testing.T) {
	policy := DefaultPolicy()

	for _, prefix := range RecordPrefixes {
		assert.True(t, policy.Allows("GET", prefix, domain.RolePartner), prefix)
		assert.True(t, policy.Allows("POST", prefix, domain.RoleOperator), prefix)
		assert.True(t, policy.Allows("PUT", prefix, domain.RoleOperator), prefix)
		assert.False(t, policy.Allows("POST", prefix, domain.RolePartner), prefix)
		assert.False(t, policy.Allows("DELETE", prefix, domain.RoleOperator), prefix)
		assert.True(t, policy.Allows("DELETE", prefix, domain.RoleAdmin), prefix)
	}

	assert.True(t, policy.IsPublic("/auth/login"))
	assert.False(t, policy.IsPublic("/api/v1/items"))
}
