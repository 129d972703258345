package repository

import (
	"context"
	"database/sql"

	"github.com/skylane/airport-reservation/internal/model"
)

// AirportRepo provides CRUD over the airports table. The closest-big-city
// reference is optional.
type AirportRepo struct{ DB *sql.DB }

func NewAirportRepo(db *sql.DB) *AirportRepo { return &AirportRepo{DB: db} }

func (r *AirportRepo) Create(ctx context.Context, a *model.Airport) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO airports (name, city_id) VALUES (?,?)", a.Name, a.CityID)
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
	a.ID = uint64(id)
	return nil
}

func (r *AirportRepo) List(ctx context.Context) ([]model.Airport, error) {
	const q = `SELECT a.id, a.name, a.city_id, ci.name
	           FROM airports a LEFT JOIN cities ci ON ci.id = a.city_id
	           ORDER BY ci.name, a.name`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Airport, 0)
	for rows.Next() {
		var (
			a        model.Airport
			cityID   sql.NullInt64
			cityName sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Name, &cityID, &cityName); err != nil {
			return nil, err
		}
		if cityID.Valid {
			id := uint64(cityID.Int64)
			a.CityID = &id
		}
		if cityName.Valid {
			name := cityName.String
			a.CityName = &name
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AirportRepo) GetByID(ctx context.Context, id uint64) (model.Airport, error) {
	const q = `SELECT a.id, a.name, a.city_id, ci.name
	           FROM airports a LEFT JOIN cities ci ON ci.id = a.city_id
	           WHERE a.id=? LIMIT 1`
	var (
		a        model.Airport
		cityID   sql.NullInt64
		cityName sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &cityID, &cityName)
	if err == sql.ErrNoRows {
		return a, ErrAirportNotFound
	}
	if err != nil {
		return a, err
	}
	if cityID.Valid {
		v := uint64(cityID.Int64)
		a.CityID = &v
	}
	if cityName.Valid {
		v := cityName.String
		a.CityName = &v
	}
	return a, nil
}

func (r *AirportRepo) Update(ctx context.Context, a model.Airport) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE airports SET name=?, city_id=? WHERE id=?", a.Name, a.CityID, a.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *AirportRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM airports WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAirportNotFound
	}
	return nil
}
