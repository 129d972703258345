package repository

import (
	"context"
	"database/sql"

	"github.com/skylane/airport-reservation/internal/model"
)

// CityRepo provides CRUD over the cities table. List and Get resolve the
// country name in the same query, mirroring the list serializers of the
// catalog.
type CityRepo struct{ DB *sql.DB }

func NewCityRepo(db *sql.DB) *CityRepo { return &CityRepo{DB: db} }

func (r *CityRepo) Create(ctx context.Context, c *model.City) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO cities (name, country_id) VALUES (?,?)", c.Name, c.CountryID)
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
	c.ID = uint64(id)
	return nil
}

func (r *CityRepo) List(ctx context.Context) ([]model.City, error) {
	const q = `SELECT ci.id, ci.name, ci.country_id, co.name
	           FROM cities ci JOIN countries co ON co.id = ci.country_id
	           ORDER BY ci.name`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.City, 0)
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID, &c.CountryName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CityRepo) GetByID(ctx context.Context, id uint64) (model.City, error) {
	const q = `SELECT ci.id, ci.name, ci.country_id, co.name
	           FROM cities ci JOIN countries co ON co.id = ci.country_id
	           WHERE ci.id=? LIMIT 1`
	var c model.City
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.CountryID, &c.CountryName)
	if err == sql.ErrNoRows {
		return c, ErrCityNotFound
	}
	return c, err
}

func (r *CityRepo) Update(ctx context.Context, c model.City) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE cities SET name=?, country_id=? WHERE id=?", c.Name, c.CountryID, c.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *CityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM cities WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCityNotFound
	}
	return nil
}
