package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/skylane/airport-reservation/internal/model"
)

// FlightRepo provides flight creation, filtered listing and detail
// retrieval. Listing computes tickets_available as capacity minus issued
// tickets in one aggregate SELECT, so count and capacity always come from
// a single consistent snapshot.
type FlightRepo struct{ DB *sql.DB }

func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{DB: db} }

// FlightFilter narrows List. Source and Destination are case-insensitive
// contains matches on airport names; the time bounds are half-open date
// ranges on departure and arrival.
type FlightFilter struct {
	Source          string
	Destination     string
	DepartureAfter  *time.Time
	DepartureBefore *time.Time
	ArrivalAfter    *time.Time
	ArrivalBefore   *time.Time
}

// Create inserts a flight and its crew assignments in one transaction.
// The (airplane, departure_time) unique key maps to ErrDuplicate; a crew
// id that does not exist maps to ErrCrewNotFound via the FK failure.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES (?,?,?,?)",
		f.RouteID, f.AirplaneID, f.DepartureTime.UTC(), f.ArrivalTime.UTC())
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
	f.ID = uint64(id)

	for _, crewID := range f.CrewIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO flight_crew (flight_id, crew_id) VALUES (?,?)", f.ID, crewID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update rewrites a flight and replaces its crew assignments. Existing
// tickets keep their seats; shrinking the airplane under sold seats is an
// operations problem this API does not try to solve.
func (r *FlightRepo) Update(ctx context.Context, f model.Flight) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE flights SET route_id=?, airplane_id=?, departure_time=?, arrival_time=? WHERE id=?",
		f.RouteID, f.AirplaneID, f.DepartureTime.UTC(), f.ArrivalTime.UTC(), f.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists uint64
		err := tx.QueryRowContext(ctx, "SELECT id FROM flights WHERE id=? LIMIT 1", f.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrFlightNotFound
		}
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM flight_crew WHERE flight_id=?", f.ID); err != nil {
		return err
	}
	for _, crewID := range f.CrewIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO flight_crew (flight_id, crew_id) VALUES (?,?)", f.ID, crewID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a flight. Tickets cascade at the schema level, so this
// is restricted to flights without sales by the handler check.
func (r *FlightRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM flights WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFlightNotFound
	}
	return nil
}

// TicketCount reports how many tickets exist for a flight.
func (r *FlightRepo) TicketCount(ctx context.Context, id uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE flight_id=?", id).Scan(&n)
	return n, err
}

// List returns flight summaries matching the filter, newest departure
// first. Availability is derived inside the query:
// rows * seats_in_row - COUNT(tickets).
func (r *FlightRepo) List(ctx context.Context, filter FlightFilter) ([]model.FlightSummary, error) {
	q := `SELECT f.id, f.departure_time, f.arrival_time,
	             src.name, dst.name, a.name,
	             a.row_count * a.seats_in_row,
	             CAST(a.row_count * a.seats_in_row AS SIGNED) - COUNT(t.id)
	      FROM flights f
	      JOIN routes r   ON r.id = f.route_id
	      JOIN airports src ON src.id = r.source_id
	      JOIN airports dst ON dst.id = r.destination_id
	      JOIN airplanes a ON a.id = f.airplane_id
	      LEFT JOIN tickets t ON t.flight_id = f.id
	      WHERE 1=1`
	args := []interface{}{}
	if filter.Source != "" {
		q += " AND src.name LIKE ?"
		args = append(args, "%"+filter.Source+"%")
	}
	if filter.Destination != "" {
		q += " AND dst.name LIKE ?"
		args = append(args, "%"+filter.Destination+"%")
	}
	if filter.DepartureAfter != nil {
		q += " AND f.departure_time >= ?"
		args = append(args, filter.DepartureAfter.UTC())
	}
	if filter.DepartureBefore != nil {
		q += " AND f.departure_time < ?"
		args = append(args, filter.DepartureBefore.UTC())
	}
	if filter.ArrivalAfter != nil {
		q += " AND f.arrival_time >= ?"
		args = append(args, filter.ArrivalAfter.UTC())
	}
	if filter.ArrivalBefore != nil {
		q += " AND f.arrival_time < ?"
		args = append(args, filter.ArrivalBefore.UTC())
	}
	q += " GROUP BY f.id, f.departure_time, f.arrival_time, src.name, dst.name, a.name, a.row_count, a.seats_in_row"
	q += " ORDER BY f.departure_time DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.FlightSummary, 0)
	for rows.Next() {
		var s model.FlightSummary
		if err := rows.Scan(&s.ID, &s.DepartureTime, &s.ArrivalTime,
			&s.RouteSource, &s.RouteDestination, &s.AirplaneName,
			&s.AirplaneCapacity, &s.TicketsAvailable); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachCrewNames(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachCrewNames fills the Crew field of each summary with full names.
func (r *FlightRepo) attachCrewNames(ctx context.Context, flights []model.FlightSummary) error {
	byID := make(map[uint64]*model.FlightSummary, len(flights))
	for i := range flights {
		flights[i].Crew = []string{}
		byID[flights[i].ID] = &flights[i]
	}
	if len(flights) == 0 {
		return nil
	}
	const q = `SELECT fc.flight_id, c.first_name, c.last_name
	           FROM flight_crew fc JOIN crews c ON c.id = fc.crew_id
	           ORDER BY c.last_name`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			flightID uint64
			crew     model.Crew
		)
		if err := rows.Scan(&flightID, &crew.FirstName, &crew.LastName); err != nil {
			return err
		}
		if s, ok := byID[flightID]; ok {
			s.Crew = append(s.Crew, crew.FullName())
		}
	}
	return rows.Err()
}

// GetDetail returns a flight with its resolved route, airplane, crew and
// all taken places.
func (r *FlightRepo) GetDetail(ctx context.Context, id uint64) (model.FlightDetail, error) {
	const q = `SELECT f.id, f.departure_time, f.arrival_time,
	                  r.id, r.source_id, r.destination_id, r.distance, src.name, dst.name,
	                  a.id, a.name, a.row_count, a.seats_in_row, a.airplane_type_id, t.name
	           FROM flights f
	           JOIN routes r ON r.id = f.route_id
	           JOIN airports src ON src.id = r.source_id
	           JOIN airports dst ON dst.id = r.destination_id
	           JOIN airplanes a ON a.id = f.airplane_id
	           JOIN airplane_types t ON t.id = a.airplane_type_id
	           WHERE f.id=? LIMIT 1`
	var d model.FlightDetail
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.DepartureTime, &d.ArrivalTime,
		&d.Route.ID, &d.Route.SourceID, &d.Route.DestinationID, &d.Route.Distance,
		&d.Route.SourceName, &d.Route.DestinationName,
		&d.Airplane.ID, &d.Airplane.Name, &d.Airplane.Rows, &d.Airplane.SeatsInRow,
		&d.Airplane.TypeID, &d.Airplane.TypeName)
	if err == sql.ErrNoRows {
		return d, ErrFlightNotFound
	}
	if err != nil {
		return d, err
	}

	d.Crew = []model.Crew{}
	crewRows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.first_name, c.last_name
		 FROM flight_crew fc JOIN crews c ON c.id = fc.crew_id
		 WHERE fc.flight_id=? ORDER BY c.last_name`, id)
	if err != nil {
		return d, err
	}
	defer crewRows.Close()
	for crewRows.Next() {
		var c model.Crew
		if err := crewRows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return d, err
		}
		d.Crew = append(d.Crew, c)
	}
	if err := crewRows.Err(); err != nil {
		return d, err
	}

	d.TakenPlaces = []model.SeatRef{}
	seatRows, err := r.DB.QueryContext(ctx,
		"SELECT row_no, seat_no FROM tickets WHERE flight_id=? ORDER BY row_no, seat_no", id)
	if err != nil {
		return d, err
	}
	defer seatRows.Close()
	for seatRows.Next() {
		var s model.SeatRef
		if err := seatRows.Scan(&s.Row, &s.Seat); err != nil {
			return d, err
		}
		d.TakenPlaces = append(d.TakenPlaces, s)
	}
	return d, seatRows.Err()
}
