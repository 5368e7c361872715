package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

func okRequest() Request {
	return Request{
		Environment:  "development",
		TargetSchema: "synthetic",
		RecordCounts: entity.RecordCounts{entity.KindOrders: 500},
	}
}

func TestGuard_AllowsCleanRequest(t *testing.T) {
	assert.Empty(t, NewGuard().Check(okRequest()))
}

// TestGuard_ProductionUnconditional: production is rejected even when an
// operator misconfigures the allow-list to include it.
func TestGuard_ProductionUnconditional(t *testing.T) {
	g := NewGuard()
	g.AllowedEnvironments = append(g.AllowedEnvironments, "production")

	req := okRequest()
	req.Environment = "production"
	violations := g.Check(req)
	require.Len(t, violations, 1)
	assert.Equal(t, CheckEnvironment, violations[0].Check)
	assert.Equal(t, SeverityCritical, violations[0].Severity)
}

// TestGuard_PublicSchemaUnconditional: "public" stays protected even if
// removed from the configured protected list.
func TestGuard_PublicSchemaUnconditional(t *testing.T) {
	g := NewGuard()
	g.ProtectedSchemas = nil

	req := okRequest()
	req.TargetSchema = "public"
	violations := g.Check(req)
	require.Len(t, violations, 1)
	assert.Equal(t, CheckSchema, violations[0].Check)
	assert.Equal(t, SeverityCritical, violations[0].Severity)
}

func TestGuard_UnknownEnvironmentRejected(t *testing.T) {
	req := okRequest()
	req.Environment = "qa-eu-1"
	violations := NewGuard().Check(req)
	require.Len(t, violations, 1)
	assert.Equal(t, CheckEnvironment, violations[0].Check)
	assert.Contains(t, violations[0].Reason, "qa-eu-1")
}

func TestGuard_EmptySchemaRejected(t *testing.T) {
	req := okRequest()
	req.TargetSchema = ""
	violations := NewGuard().Check(req)
	require.Len(t, violations, 1)
	assert.Equal(t, CheckSchema, violations[0].Check)
}

func TestGuard_VolumeCeiling(t *testing.T) {
	g := NewGuard()
	g.MaxRecordsPerEntity = 1000

	req := okRequest()
	req.RecordCounts = entity.RecordCounts{
		entity.KindOrders:    1001,
		entity.KindAuditLogs: 2500,
		entity.KindUsers:     10,
	}
	violations := g.Check(req)
	require.Len(t, violations, 2)
	for _, v := range violations {
		assert.Equal(t, CheckVolume, v.Check)
	}
}

// TestGuard_CollectsAllFailures: the three checks are independent, so a
// doomed request reports every problem at once.
func TestGuard_CollectsAllFailures(t *testing.T) {
	g := NewGuard()
	g.MaxRecordsPerEntity = 10

	req := Request{
		Environment:  "production",
		TargetSchema: "public",
		RecordCounts: entity.RecordCounts{entity.KindOrders: 100},
	}
	violations := g.Check(req)
	require.Len(t, violations, 3)

	checks := map[string]bool{}
	for _, v := range violations {
		checks[v.Check] = true
	}
	assert.True(t, checks[CheckEnvironment])
	assert.True(t, checks[CheckSchema])
	assert.True(t, checks[CheckVolume])
}

func TestGuard_CaseAndWhitespaceNormalized(t *testing.T) {
	req := okRequest()
	req.Environment = "  Development "
	req.TargetSchema = "PUBLIC"

	violations := NewGuard().Check(req)
	require.Len(t, violations, 1)
	assert.Equal(t, CheckSchema, violations[0].Check)
}

func TestResolveEnvironment_Default(t *testing.T) {
	t.Setenv(EnvVar, "")
	assert.Equal(t, "development", ResolveEnvironment())

	t.Setenv(EnvVar, "staging")
	assert.Equal(t, "staging", ResolveEnvironment())
}
