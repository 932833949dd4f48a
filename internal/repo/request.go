package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

// RequestRepo defines the persistence operations for join Requests.
// Every method that participates in a reservation decision is expected to run
// on a transaction-bound repo (see Store.InTx), so all reads observe the same
// snapshot the decision commits against.
type RequestRepo interface {
	// Create inserts a new request and returns the persisted record.
	// Returns domain.ErrConflict if an active (pending or approved) request
	// already exists for the same (ride, passenger) pair — enforced by the
	// partial unique index.
	Create(ctx context.Context, req domain.Request) (domain.Request, error)

	// GetByID retrieves a single request by its UUID primary key.
	// Returns domain.ErrNotFound if no request with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error)

	// GetByRideAndPassenger retrieves the request for a (ride, passenger)
	// pair, whatever its status. Returns domain.ErrNotFound if none exists.
	GetByRideAndPassenger(ctx context.Context, rideID, passengerID uuid.UUID) (domain.Request, error)

	// UpdateStatus sets the status of a request and returns the updated
	// record. Returns domain.ErrNotFound if no request with that ID exists.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (domain.Request, error)

	// Delete removes a request by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountApproved returns the number of approved requests for a ride at the
	// current transaction snapshot. This is the authoritative confirmed-seat
	// count; it is never cached.
	CountApproved(ctx context.Context, rideID uuid.UUID) (int, error)

	// ListDetailsByRide returns all requests for a ride joined with their
	// passengers' profiles, oldest first.
	ListDetailsByRide(ctx context.Context, rideID uuid.UUID) ([]domain.RequestDetail, error)

	// ListTicketsByPassenger returns all requests made by a passenger joined
	// with their rides and hosts, newest first. A non-nil status restricts
	// the result to requests in that state.
	ListTicketsByPassenger(ctx context.Context, passengerID uuid.UUID, status *domain.RequestStatus) ([]domain.RequestTicket, error)
}

// pgRequestRepo is the Postgres implementation of RequestRepo.
type pgRequestRepo struct {
	db db
}

// NewRequestRepo constructs a RequestRepo backed by the provided db connection.
// In production pass a Store-managed transaction; in tests pass a pgx.Tx for
// rollback isolation.
func NewRequestRepo(db db) RequestRepo {
	return &pgRequestRepo{db: db}
}

const requestColumns = `id, ride_id, passenger_id, status, created_at, updated_at`

func (r *pgRequestRepo) Create(ctx context.Context, req domain.Request) (domain.Request, error) {
	const q = `
		INSERT INTO requests (ride_id, passenger_id)
		VALUES (@ride_id, @passenger_id)
		RETURNING ` + requestColumns

	args := pgx.NamedArgs{
		"ride_id":      req.RideID,
		"passenger_id": req.PassengerID,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRequest(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Request{}, fmt.Errorf("repo.RequestRepo.Create: active request exists: %w", domain.ErrConflict)
		}
		return domain.Request{}, fmt.Errorf("repo.RequestRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error) {
	const q = `SELECT ` + requestColumns + ` FROM requests WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRequest(row)
	if err != nil {
		return domain.Request{}, fmt.Errorf("repo.RequestRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgRequestRepo) GetByRideAndPassenger(ctx context.Context, rideID, passengerID uuid.UUID) (domain.Request, error) {
	const q = `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE ride_id = @ride_id AND passenger_id = @passenger_id
		ORDER BY created_at DESC
		LIMIT 1`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"ride_id": rideID, "passenger_id": passengerID})
	result, err := scanRequest(row)
	if err != nil {
		return domain.Request{}, fmt.Errorf("repo.RequestRepo.GetByRideAndPassenger: %w", err)
	}
	return result, nil
}

func (r *pgRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (domain.Request, error) {
	const q = `
		UPDATE requests
		SET status = @status, updated_at = now()
		WHERE id = @id
		RETURNING ` + requestColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)})
	result, err := scanRequest(row)
	if err != nil {
		return domain.Request{}, fmt.Errorf("repo.RequestRepo.UpdateStatus: %w", err)
	}
	return result, nil
}

func (r *pgRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM requests WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.RequestRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RequestRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgRequestRepo) CountApproved(ctx context.Context, rideID uuid.UUID) (int, error) {
	const q = `SELECT count(*) FROM requests WHERE ride_id = @ride_id AND status = 'approved'`

	var count int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"ride_id": rideID}).Scan(&count); err != nil {
		return 0, fmt.Errorf("repo.RequestRepo.CountApproved: %w", err)
	}
	return count, nil
}

func (r *pgRequestRepo) ListDetailsByRide(ctx context.Context, rideID uuid.UUID) ([]domain.RequestDetail, error) {
	const q = `
		SELECT q.id, q.ride_id, q.passenger_id, q.status, q.created_at, q.updated_at,
		       u.id, u.first_name, u.last_name, u.email, u.phone_number,
		       u.total_ratings, u.average_rating, u.created_at
		FROM requests q
		JOIN users u ON u.id = q.passenger_id
		WHERE q.ride_id = @ride_id
		ORDER BY q.created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ride_id": rideID})
	if err != nil {
		return nil, fmt.Errorf("repo.RequestRepo.ListDetailsByRide: %w", err)
	}
	defer rows.Close()

	var details []domain.RequestDetail
	for rows.Next() {
		var (
			d           domain.RequestDetail
			id          pgtype.UUID
			rdID        pgtype.UUID
			passengerID pgtype.UUID
			uID         pgtype.UUID
		)
		err := rows.Scan(&id, &rdID, &passengerID, &d.Request.Status, &d.Request.CreatedAt, &d.Request.UpdatedAt,
			&uID, &d.Passenger.FirstName, &d.Passenger.LastName, &d.Passenger.Email, &d.Passenger.PhoneNumber,
			&d.Passenger.RatingStats.TotalRatings, &d.Passenger.RatingStats.AverageRating, &d.Passenger.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repo.RequestRepo.ListDetailsByRide: scan: %w", err)
		}
		d.Request.ID = uuid.UUID(id.Bytes)
		d.Request.RideID = uuid.UUID(rdID.Bytes)
		d.Request.PassengerID = uuid.UUID(passengerID.Bytes)
		d.Passenger.ID = uuid.UUID(uID.Bytes)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RequestRepo.ListDetailsByRide: rows: %w", err)
	}

	return details, nil
}

func (r *pgRequestRepo) ListTicketsByPassenger(ctx context.Context, passengerID uuid.UUID, status *domain.RequestStatus) ([]domain.RequestTicket, error) {
	q := `
		SELECT q.id, q.ride_id, q.passenger_id, q.status, q.created_at, q.updated_at,
		       r.id, r.host_id, r.origin, r.destination, r.departs_at, r.capacity,
		       r.price, r.description, r.created_at, r.updated_at,
		       u.id, u.first_name, u.last_name, u.email, u.phone_number,
		       u.total_ratings, u.average_rating, u.created_at
		FROM requests q
		JOIN rides r ON r.id = q.ride_id
		JOIN users u ON u.id = r.host_id
		WHERE q.passenger_id = @passenger_id`

	args := pgx.NamedArgs{"passenger_id": passengerID}
	if status != nil {
		q += ` AND q.status = @status`
		args["status"] = string(*status)
	}
	q += ` ORDER BY q.created_at DESC`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.RequestRepo.ListTicketsByPassenger: %w", err)
	}
	defer rows.Close()

	var tickets []domain.RequestTicket
	for rows.Next() {
		var (
			t      domain.RequestTicket
			qID    pgtype.UUID
			qRide  pgtype.UUID
			qPass  pgtype.UUID
			rID    pgtype.UUID
			rHost  pgtype.UUID
			hostID pgtype.UUID
		)
		err := rows.Scan(&qID, &qRide, &qPass, &t.Request.Status, &t.Request.CreatedAt, &t.Request.UpdatedAt,
			&rID, &rHost, &t.Ride.Origin, &t.Ride.Destination, &t.Ride.DepartsAt, &t.Ride.Capacity,
			&t.Ride.Price, &t.Ride.Description, &t.Ride.CreatedAt, &t.Ride.UpdatedAt,
			&hostID, &t.Host.FirstName, &t.Host.LastName, &t.Host.Email, &t.Host.PhoneNumber,
			&t.Host.RatingStats.TotalRatings, &t.Host.RatingStats.AverageRating, &t.Host.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repo.RequestRepo.ListTicketsByPassenger: scan: %w", err)
		}
		t.Request.ID = uuid.UUID(qID.Bytes)
		t.Request.RideID = uuid.UUID(qRide.Bytes)
		t.Request.PassengerID = uuid.UUID(qPass.Bytes)
		t.Ride.ID = uuid.UUID(rID.Bytes)
		t.Ride.HostID = uuid.UUID(rHost.Bytes)
		t.Host.ID = uuid.UUID(hostID.Bytes)
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RequestRepo.ListTicketsByPassenger: rows: %w", err)
	}

	return tickets, nil
}

// scanRequest maps a single database row into a domain.Request.
func scanRequest(s scanner) (domain.Request, error) {
	var (
		req         domain.Request
		id          pgtype.UUID
		rideID      pgtype.UUID
		passengerID pgtype.UUID
	)

	err := s.Scan(&id, &rideID, &passengerID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Request{}, domain.ErrNotFound
		}
		return domain.Request{}, err
	}

	req.ID = uuid.UUID(id.Bytes)
	req.RideID = uuid.UUID(rideID.Bytes)
	req.PassengerID = uuid.UUID(passengerID.Bytes)
	return req, nil
}
