package defs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Types(), 6)

	for _, typ := range []EnemyType{EnemyBoss, EnemyCommander} {
		def, err := c.Lookup(typ)
		require.NoError(t, err)
		assert.True(t, def.Elite)
		assert.Zero(t, def.GroupChance)
	}
}

func TestLookupUnknownType(t *testing.T) {
	_, err := DefaultCatalog().Lookup("DRAGON")
	assert.ErrorIs(t, err, ErrUnknownEnemyType)
}

func TestValidateRejectsMalformed(t *testing.T) {
	base := DefaultCatalog()[EnemyGrunt]

	bad := base
	bad.Health = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDefinition)

	bad = base
	bad.DetectionRange = bad.AttackRange / 2
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDefinition)

	bad = base
	bad.Roaming.TargetChangeMax = bad.Roaming.TargetChangeMin - 1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDefinition)

	bad = base
	bad.GroupChance = 1.5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDefinition)

	c := Catalog{"WRONG_KEY": base}
	assert.ErrorIs(t, c.Validate(), ErrInvalidDefinition)
}

func TestLoadEnemyDefinitions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "enemies.json")
	data := `[
		{"id": "GRUNT", "name": "Grunt", "health": 50, "speed": 2, "damage": 5,
		 "attack_range": 2, "detection_range": 10, "attack_delay": 1, "points": 10,
		 "hitbox_radius": 0.5, "group_chance": 0.5,
		 "roaming": {"radius": 5, "speed_multiplier": 0.5, "target_change_min": 1, "target_change_max": 2}}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadEnemyDefinitions(path)
	require.NoError(t, err)
	def, err := c.Lookup(EnemyGrunt)
	require.NoError(t, err)
	assert.Equal(t, 50.0, def.Health)
	assert.Equal(t, 2.0, def.Roaming.TargetChangeMax)
}

func TestParseEnemyDefinitionsErrors(t *testing.T) {
	_, err := ParseEnemyDefinitions([]byte(`not json`))
	assert.Error(t, err)

	dup := `[{"id":"A","health":1,"attack_range":1,"detection_range":1},
	         {"id":"A","health":1,"attack_range":1,"detection_range":1}]`
	_, err = ParseEnemyDefinitions([]byte(dup))
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = LoadEnemyDefinitions(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestWeightsForWave(t *testing.T) {
	first := WeightsForWave(1)
	require.Len(t, first, 2)
	assert.Equal(t, EnemyGrunt, first[0].Type)
	assert.Equal(t, EnemyScout, first[1].Type)

	assert.Len(t, WeightsForWave(4), 2)
	assert.Len(t, WeightsForWave(5), 4)
	assert.Equal(t, 20, WeightsForWave(25)[3].Weight)
}

func TestEliteForWave(t *testing.T) {
	_, ok := EliteForWave(1)
	assert.False(t, ok)
	_, ok = EliteForWave(9)
	assert.False(t, ok)

	typ, ok := EliteForWave(5)
	assert.True(t, ok)
	assert.Equal(t, EnemyCommander, typ)

	typ, _ = EliteForWave(10)
	assert.Equal(t, EnemyBoss, typ)
	typ, _ = EliteForWave(11)
	assert.Equal(t, EnemyCommander, typ)
	typ, _ = EliteForWave(20)
	assert.Equal(t, EnemyBoss, typ)
}
