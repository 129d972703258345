package repository

import (
	"context"
	"database/sql"

	"github.com/skylane/airport-reservation/internal/model"
)

// CrewRepo provides CRUD over the crews table.
type CrewRepo struct{ DB *sql.DB }

func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{DB: db} }

func (r *CrewRepo) Create(ctx context.Context, c *model.Crew) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO crews (first_name, last_name) VALUES (?,?)", c.FirstName, c.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

func (r *CrewRepo) List(ctx context.Context) ([]model.Crew, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, first_name, last_name FROM crews ORDER BY last_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Crew, 0)
	for rows.Next() {
		var c model.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (model.Crew, error) {
	var c model.Crew
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, first_name, last_name FROM crews WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.FirstName, &c.LastName)
	if err == sql.ErrNoRows {
		return c, ErrCrewNotFound
	}
	return c, err
}

func (r *CrewRepo) Update(ctx context.Context, c model.Crew) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE crews SET first_name=?, last_name=? WHERE id=?", c.FirstName, c.LastName, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *CrewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM crews WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCrewNotFound
	}
	return nil
}
