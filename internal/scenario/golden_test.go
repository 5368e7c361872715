package scenario

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TestBuiltinProfiles_Golden pins the canonical JSON form of the shipped
// profiles. Entity rates and distribution weights are load-bearing test
// fixtures downstream; changing one should be a deliberate, reviewed act.
//
// Regenerate with: go test ./internal/scenario -update
func TestBuiltinProfiles_Golden(t *testing.T) {
	m := NewManager()
	g := goldie.New(t)

	for _, name := range []string{"normal-ops", "outage"} {
		p, err := m.Get(name)
		require.NoError(t, err)

		data, err := json.MarshalIndent(p, "", "  ")
		require.NoError(t, err)
		g.Assert(t, name, append(data, '\n'))
	}
}
