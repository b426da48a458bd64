package pgstore

import (
	"context"

	"github.com/google/uuid"
)

const resourceColumns = `id, name, type, hourly_rate::text, available, description, location, created_at, updated_at`

const getResourceByID = `-- name: GetResourceByID :one
SELECT ` + resourceColumns + `
FROM resources
WHERE id = $1
`

func (q *Queries) GetResourceByID(ctx context.Context, db DBTX, id uuid.UUID) (Resource, error) {
	row := db.QueryRow(ctx, getResourceByID, id)
	var i Resource
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Type,
		&i.HourlyRate,
		&i.Available,
		&i.Description,
		&i.Location,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listResources = `-- name: ListResources :many
SELECT ` + resourceColumns + `
FROM resources
ORDER BY name, id
`

func (q *Queries) ListResources(ctx context.Context, db DBTX) ([]Resource, error) {
	rows, err := db.Query(ctx, listResources)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Resource
	for rows.Next() {
		var i Resource
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Type,
			&i.HourlyRate,
			&i.Available,
			&i.Description,
			&i.Location,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
