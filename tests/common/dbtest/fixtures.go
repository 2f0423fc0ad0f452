//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt of DefaultPassword
const (
	DefaultPassword     = "password123"
	defaultPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
)

const (
	DefaultPropertyCode = "VILLA-1"
	DefaultUnitA        = "A"
	DefaultUnitB        = "B"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, name, password_hash, role, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, strings.Split(email, "@")[0], defaultPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

func DeactivateUser(t *testing.T, db DBLike, email string) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE users SET is_active = false WHERE email = $1", email)
	require.NoError(t, err)
}

func CreateTestGuest(t *testing.T, db DBLike, name, email string) uuid.UUID {
	t.Helper()

	guestID := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO guests (id, name, email) VALUES ($1, $2, $3)", guestID, name, email)
	require.NoError(t, err)
	return guestID
}

// DefaultProperty returns the seeded property and its units keyed by unit code.
func DefaultProperty(t *testing.T, db DBLike) (uuid.UUID, map[string]uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	var propertyID uuid.UUID
	err := db.QueryRow(ctx, "SELECT id FROM properties WHERE code = $1", DefaultPropertyCode).Scan(&propertyID)
	require.NoError(t, err)

	units := map[string]uuid.UUID{}
	for _, code := range []string{DefaultUnitA, DefaultUnitB} {
		var id uuid.UUID
		err := db.QueryRow(ctx, "SELECT id FROM units WHERE property_id = $1 AND unit_code = $2", propertyID, code).Scan(&id)
		require.NoError(t, err)
		units[code] = id
	}
	return propertyID, units
}

func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", table, where), args...).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts the one property with two units that booking tests build on
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	propertyID := uuid.New()
	tag, err := pool.Exec(ctx, `
		INSERT INTO properties (id, code, name, address) VALUES ($1, $2, 'Villa Serena', '1 Beach Road')
		ON CONFLICT (code) DO NOTHING;
	`, propertyID, DefaultPropertyCode)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return nil
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO units (id, property_id, unit_code, name) VALUES
		    (gen_random_uuid(), $1, $2, 'Garden suite'),
		    (gen_random_uuid(), $1, $3, 'Sea view');
	`, propertyID, DefaultUnitA, DefaultUnitB)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
