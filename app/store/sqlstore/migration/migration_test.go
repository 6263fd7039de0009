package migration

import (
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("v1_2_13")
	require.NoError(t, err)
	assert.Equal(t, version{1, 2, 13}, v)

	_, err = parseVersion("1.2.3")
	assert.Error(t, err)
	_, err = parseVersion("v1_2")
	assert.Error(t, err)
}

func TestVersionOrdering(t *testing.T) {
	a, _ := parseVersion("v0_0_19")
	b, _ := parseVersion("v1_0_0")
	assert.True(t, a.lessOrEqual(b))
	assert.False(t, b.lessOrEqual(a))
	assert.True(t, a.lessOrEqual(a))
}

func TestPendingSkipsAppliedAndUnmetDependencies(t *testing.T) {
	registered := []Migration{
		{Version: "v0_0_1", Name: "base"},
		{Version: "v0_0_2", Name: "mid", DependsOn: "v0_0_1"},
		{Version: "v0_0_3", Name: "top", DependsOn: "v0_0_2"},
		{Version: "v2_0_0", Name: "future"},
	}

	// Nothing applied: only migrations with satisfied deps are pending.
	todo, err := pending(registered, map[string]bool{}, "v1_0_0")
	require.NoError(t, err)
	assert.Equal(t, []string{"v0_0_1"}, versionsOf(todo))

	// Base applied: v0_0_2 unlocks, v0_0_3 still blocked.
	todo, err = pending(registered, map[string]bool{"v0_0_1": true}, "v1_0_0")
	require.NoError(t, err)
	assert.Equal(t, []string{"v0_0_2"}, versionsOf(todo))

	// Everything below target applied.
	todo, err = pending(registered,
		map[string]bool{"v0_0_1": true, "v0_0_2": true, "v0_0_3": true}, "v1_0_0")
	require.NoError(t, err)
	assert.Empty(t, todo)
}

func TestPendingRespectsTargetCeiling(t *testing.T) {
	todo, err := pending(Registered(), map[string]bool{}, "v0_0_10")
	require.NoError(t, err)
	for _, m := range todo {
		v, _ := parseVersion(m.Version)
		ceiling, _ := parseVersion("v0_0_10")
		assert.True(t, v.lessOrEqual(ceiling), "version %s exceeds target", m.Version)
	}
}

func TestPendingAscendingOrder(t *testing.T) {
	todo, err := pending(Registered(), map[string]bool{"v0_0_1": true}, TargetVersion)
	require.NoError(t, err)

	got := versionsOf(todo)
	for i := 1; i < len(got); i++ {
		a, _ := parseVersion(got[i-1])
		b, _ := parseVersion(got[i])
		assert.True(t, a.lessOrEqual(b))
	}
}

func TestChecksumStableAndSensitive(t *testing.T) {
	m := Migration{Version: "v0_0_1", Name: "x", UpSQL: []string{"CREATE TABLE t (id INT)"}}
	assert.Equal(t, m.Checksum(), m.Checksum())

	changed := m
	changed.UpSQL = []string{"CREATE TABLE t (id BIGINT)"}
	assert.NotEqual(t, m.Checksum(), changed.Checksum())
}

func TestRegisteredVersionsParseAndDepsExist(t *testing.T) {
	known := lo.SliceToMap(Registered(), func(m Migration) (string, bool) { return m.Version, true })

	for _, m := range Registered() {
		_, err := parseVersion(m.Version)
		require.NoError(t, err, m.Version)
		if m.DependsOn != "" {
			assert.True(t, known[m.DependsOn], "dependency %s of %s not registered", m.DependsOn, m.Version)
		}
		assert.NotEmpty(t, m.UpSQL, m.Version)
		assert.NotEmpty(t, m.DownSQL, m.Version)
	}
}

func TestAlertMigrationsApplyStandalone(t *testing.T) {
	// Operators run single applies out of order: v1_0_0 then v0_0_19 on
	// an empty schema must both succeed, so neither may depend on an
	// earlier version and every statement has to guard its target.
	for _, version := range []string{"v1_0_0", "v0_0_19"} {
		m, ok := lo.Find(Registered(), func(m Migration) bool { return m.Version == version })
		require.True(t, ok, version)
		assert.Empty(t, m.DependsOn, version)
		for _, stmt := range m.UpSQL {
			guarded := strings.Contains(stmt, "IF NOT EXISTS") || strings.Contains(stmt, "IF EXISTS")
			assert.True(t, guarded, "%s: %s", version, stmt)
		}
	}
}

func versionsOf(ms []Migration) []string {
	return lo.Map(ms, func(m Migration, _ int) string { return m.Version })
}
