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

	"court-booking/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestResource(t *testing.T, db DBLike, name, resourceType, hourlyRate string, available bool) uuid.UUID {
	t.Helper()

	resourceID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO resources (id, name, type, hourly_rate, available) VALUES ($1, $2, $3, $4::numeric, $5)",
		resourceID, name, resourceType, hourlyRate, available)
	require.NoError(t, err)

	return resourceID
}

// CreateTestReservation inserts an active reservation directly, bypassing the booking rules.
func CreateTestReservation(t *testing.T, db DBLike, resourceID, userID uuid.UUID, date, start, end string) uuid.UUID {
	t.Helper()

	startMinute, endMinute, err := schedule.NormalizeRange(start, end)
	require.NoError(t, err)

	reservationID := uuid.New()
	_, err = db.Exec(context.Background(), `
		INSERT INTO reservations (id, resource_id, user_id, booking_date, start_time, end_time, start_minute, end_minute, status, total_price)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, 'confirmed', 0)`,
		reservationID, resourceID, userID, date, start, end, startMinute, endMinute)
	require.NoError(t, err)

	return reservationID
}

func CountOutboxEvents(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM outbox_events WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO resources (id, name, type, hourly_rate, available) VALUES
		    ('00000000-0000-0000-0000-000000000001', 'Cancha 1', 'futbol', 25000.00, true),
		    ('00000000-0000-0000-0000-000000000002', 'Padel 1', 'padel', 18000.00, true)
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
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
		    AND tablename NOT IN ('schema_migrations')`)
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
