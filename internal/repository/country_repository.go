package repository

import (
	"context"
	"database/sql"

	"github.com/skylane/airport-reservation/internal/model"
)

// CountryRepo provides CRUD over the countries table.
type CountryRepo struct{ DB *sql.DB }

func NewCountryRepo(db *sql.DB) *CountryRepo { return &CountryRepo{DB: db} }

func (r *CountryRepo) Create(ctx context.Context, c *model.Country) error {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO countries (name) VALUES (?)", c.Name)
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

func (r *CountryRepo) List(ctx context.Context) ([]model.Country, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM countries ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Country, 0)
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CountryRepo) GetByID(ctx context.Context, id uint64) (model.Country, error) {
	var c model.Country
	err := r.DB.QueryRowContext(ctx, "SELECT id, name FROM countries WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return c, ErrCountryNotFound
	}
	return c, err
}

func (r *CountryRepo) Update(ctx context.Context, c model.Country) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE countries SET name=? WHERE id=?", c.Name, c.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// either missing or unchanged; disambiguate with a lookup
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *CountryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM countries WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCountryNotFound
	}
	return nil
}
