package repository

import (
	"context"
	"database/sql"

	"github.com/skylane/airport-reservation/internal/model"
)

// RouteRepo provides CRUD and filtered listing over the routes table.
// The (source, destination) pair is unique at the schema level.
type RouteRepo struct{ DB *sql.DB }

func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{DB: db} }

func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO routes (source_id, destination_id, distance) VALUES (?,?,?)",
		rt.SourceID, rt.DestinationID, rt.Distance)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// List returns routes with resolved airport names. Non-empty source or
// destination filters match case-insensitively against the airport name or
// its closest big city.
func (r *RouteRepo) List(ctx context.Context, source, destination string) ([]model.Route, error) {
	q := `SELECT r.id, r.source_id, r.destination_id, r.distance, src.name, dst.name
	      FROM routes r
	      JOIN airports src ON src.id = r.source_id
	      JOIN airports dst ON dst.id = r.destination_id
	      LEFT JOIN cities sc ON sc.id = src.city_id
	      LEFT JOIN cities dc ON dc.id = dst.city_id
	      WHERE 1=1`
	args := []interface{}{}
	if source != "" {
		q += " AND (src.name LIKE ? OR sc.name LIKE ?)"
		like := "%" + source + "%"
		args = append(args, like, like)
	}
	if destination != "" {
		q += " AND (dst.name LIKE ? OR dc.name LIKE ?)"
		like := "%" + destination + "%"
		args = append(args, like, like)
	}
	q += " ORDER BY src.name, dst.name"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Route, 0)
	for rows.Next() {
		var rt model.Route
		if err := rows.Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance,
			&rt.SourceName, &rt.DestinationName); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (model.Route, error) {
	const q = `SELECT r.id, r.source_id, r.destination_id, r.distance, src.name, dst.name
	           FROM routes r
	           JOIN airports src ON src.id = r.source_id
	           JOIN airports dst ON dst.id = r.destination_id
	           WHERE r.id=? LIMIT 1`
	var rt model.Route
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&rt.ID, &rt.SourceID, &rt.DestinationID,
		&rt.Distance, &rt.SourceName, &rt.DestinationName)
	if err == sql.ErrNoRows {
		return rt, ErrRouteNotFound
	}
	return rt, err
}

func (r *RouteRepo) Update(ctx context.Context, rt model.Route) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE routes SET source_id=?, destination_id=?, distance=? WHERE id=?",
		rt.SourceID, rt.DestinationID, rt.Distance, rt.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, rt.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *RouteRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM routes WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRouteNotFound
	}
	return nil
}
