package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Garde-fous sur les fichiers de migration : chaque fichier porte les deux
// marqueurs goose, et les clés étrangères sensibles du schéma initial sont
// bien déclarées.

func readMigrations(t *testing.T) map[string]string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	out := make(map[string]string, len(files))
	for _, f := range files {
		raw, err := os.ReadFile(f)
		require.NoError(t, err)
		out[filepath.Base(f)] = string(raw)
	}
	return out
}

func TestMigrationsCarryGooseMarkers(t *testing.T) {
	for name, sql := range readMigrations(t) {
		assert.Contains(t, sql, "-- +goose Up", name)
		assert.Contains(t, sql, "-- +goose Down", name)
	}
}

func TestInitSchemaForeignKeys(t *testing.T) {
	sql := readMigrations(t)["00001_init.sql"]
	require.NotEmpty(t, sql)

	// L'expéditeur d'une notification doit survivre à la notification ;
	// le destinataire emporte les siennes en partant.
	assert.Contains(t, sql,
		"sender_id   TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT")
	assert.Contains(t, sql,
		"receiver_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE")

	// Une commande bloque la suppression de son client et de son mode de
	// livraison ; un coupon supprimé ne casse pas l'historique.
	assert.Contains(t, sql, "REFERENCES users(id) ON DELETE RESTRICT")
	assert.Contains(t, sql, "REFERENCES coupons(id) ON DELETE SET NULL")
	assert.Contains(t, sql, "REFERENCES delivery_types(id) ON DELETE RESTRICT")

	// Le sous-arbre d'une commande part avec elle.
	assert.Contains(t, sql, "REFERENCES orders(id) ON DELETE CASCADE")
	assert.Contains(t, sql, "REFERENCES item_orders(id) ON DELETE CASCADE")

	_, hasSeed := readMigrations(t)["00002_seed_delivery_types.sql"]
	assert.True(t, hasSeed)
}

func TestInitSchemaDefaultsMatchEnums(t *testing.T) {
	sql := readMigrations(t)["00001_init.sql"]
	require.NotEmpty(t, sql)

	// Les valeurs par défaut SQL doivent coller aux constantes Go :
	// RoleClient est la chaîne vide, le type de notification par défaut
	// est Message.
	assert.Contains(t, sql, "role              TEXT NOT NULL DEFAULT ''")
	assert.Contains(t, sql, "type        TEXT NOT NULL DEFAULT 'Message'")
	assert.Contains(t, sql, "status           TEXT NOT NULL DEFAULT 'Pending'")
}
