// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadEnemyDefinitions reads an enemy definitions file (a JSON array) into a Catalog.
func LoadEnemyDefinitions(path string) (Catalog, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy definitions file: %w", err)
	}
	return ParseEnemyDefinitions(file)
}

// ParseEnemyDefinitions decodes and validates a JSON enemy catalog.
func ParseEnemyDefinitions(data []byte) (Catalog, error) {
	var enemyDefs []EnemyDefinition
	if err := json.Unmarshal(data, &enemyDefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal enemy definitions: %w", err)
	}

	catalog := make(Catalog, len(enemyDefs))
	for _, def := range enemyDefs {
		if _, dup := catalog[def.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDefinition, def.ID)
		}
		catalog[def.ID] = def
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}
