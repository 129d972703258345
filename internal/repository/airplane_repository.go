package repository

import (
	"context"
	"database/sql"

	"github.com/skylane/airport-reservation/internal/model"
)

// AirplaneTypeRepo provides CRUD over the airplane_types table.
type AirplaneTypeRepo struct{ DB *sql.DB }

func NewAirplaneTypeRepo(db *sql.DB) *AirplaneTypeRepo { return &AirplaneTypeRepo{DB: db} }

func (r *AirplaneTypeRepo) Create(ctx context.Context, t *model.AirplaneType) error {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO airplane_types (name) VALUES (?)", t.Name)
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
	t.ID = uint64(id)
	return nil
}

func (r *AirplaneTypeRepo) List(ctx context.Context) ([]model.AirplaneType, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM airplane_types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AirplaneType, 0)
	for rows.Next() {
		var t model.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *AirplaneTypeRepo) GetByID(ctx context.Context, id uint64) (model.AirplaneType, error) {
	var t model.AirplaneType
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM airplane_types WHERE id=? LIMIT 1", id).Scan(&t.ID, &t.Name)
	if err == sql.ErrNoRows {
		return t, ErrTypeNotFound
	}
	return t, err
}

func (r *AirplaneTypeRepo) Update(ctx context.Context, t model.AirplaneType) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE airplane_types SET name=? WHERE id=?", t.Name, t.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, t.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *AirplaneTypeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM airplane_types WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTypeNotFound
	}
	return nil
}

// AirplaneRepo provides CRUD over the airplanes table. Seat grid
// dimensions are validated by the handler before insert; the schema check
// is the backstop.
type AirplaneRepo struct{ DB *sql.DB }

func NewAirplaneRepo(db *sql.DB) *AirplaneRepo { return &AirplaneRepo{DB: db} }

func (r *AirplaneRepo) Create(ctx context.Context, a *model.Airplane) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO airplanes (name, row_count, seats_in_row, airplane_type_id) VALUES (?,?,?,?)",
		a.Name, a.Rows, a.SeatsInRow, a.TypeID)
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

func (r *AirplaneRepo) List(ctx context.Context) ([]model.Airplane, error) {
	const q = `SELECT a.id, a.name, a.row_count, a.seats_in_row, a.airplane_type_id, t.name
	           FROM airplanes a JOIN airplane_types t ON t.id = a.airplane_type_id
	           ORDER BY t.name, a.name`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Airplane, 0)
	for rows.Next() {
		var a model.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.TypeID, &a.TypeName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AirplaneRepo) GetByID(ctx context.Context, id uint64) (model.Airplane, error) {
	const q = `SELECT a.id, a.name, a.row_count, a.seats_in_row, a.airplane_type_id, t.name
	           FROM airplanes a JOIN airplane_types t ON t.id = a.airplane_type_id
	           WHERE a.id=? LIMIT 1`
	var a model.Airplane
	err := r.DB.QueryRowContext(ctx, q, id).
		Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.TypeID, &a.TypeName)
	if err == sql.ErrNoRows {
		return a, ErrPlaneNotFound
	}
	return a, err
}

func (r *AirplaneRepo) Update(ctx context.Context, a model.Airplane) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE airplanes SET name=?, row_count=?, seats_in_row=?, airplane_type_id=? WHERE id=?",
		a.Name, a.Rows, a.SeatsInRow, a.TypeID, a.ID)
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

func (r *AirplaneRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM airplanes WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlaneNotFound
	}
	return nil
}
