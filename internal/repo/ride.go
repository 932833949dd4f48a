package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

// RideRepo defines the persistence operations for Rides.
type RideRepo interface {
	// Create inserts a new ride and returns the persisted record.
	Create(ctx context.Context, ride domain.Ride) (domain.Ride, error)

	// GetByID retrieves a single ride by its UUID primary key.
	// Returns domain.ErrNotFound if no ride with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Ride, error)

	// Update overwrites the mutable fields of an existing ride and returns the
	// updated record. Returns domain.ErrNotFound if no ride with that ID exists.
	Update(ctx context.Context, ride domain.Ride) (domain.Ride, error)

	// Search returns rides matching the filter, joined with their host
	// profiles. Results are always restricted to rides departing today or
	// later, exclude rides hosted by excludeHost, and are ordered by
	// departs_at ascending then created_at descending.
	Search(ctx context.Context, filter domain.RideFilter, excludeHost uuid.UUID, p domain.PaginationParams) ([]domain.RideSummary, error)

	// ListByHost returns all rides hosted by hostID, newest first.
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Ride, error)
}

// pgRideRepo is the Postgres implementation of RideRepo.
type pgRideRepo struct {
	db db
}

// NewRideRepo constructs a RideRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRideRepo(db db) RideRepo {
	return &pgRideRepo{db: db}
}

const rideColumns = `id, host_id, origin, destination, departs_at, capacity, price,
		description, created_at, updated_at`

func (r *pgRideRepo) Create(ctx context.Context, ride domain.Ride) (domain.Ride, error) {
	const q = `
		INSERT INTO rides (host_id, origin, destination, departs_at, capacity, price, description)
		VALUES (@host_id, @origin, @destination, @departs_at, @capacity, @price, @description)
		RETURNING ` + rideColumns

	args := pgx.NamedArgs{
		"host_id":     ride.HostID,
		"origin":      ride.Origin,
		"destination": ride.Destination,
		"departs_at":  ride.DepartsAt,
		"capacity":    ride.Capacity,
		"price":       ride.Price, // nil becomes NULL
		"description": ride.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRide(row)
	if err != nil {
		return domain.Ride{}, fmt.Errorf("repo.RideRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgRideRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Ride, error) {
	const q = `SELECT ` + rideColumns + ` FROM rides WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRide(row)
	if err != nil {
		return domain.Ride{}, fmt.Errorf("repo.RideRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgRideRepo) Update(ctx context.Context, ride domain.Ride) (domain.Ride, error) {
	const q = `
		UPDATE rides
		SET origin      = @origin,
		    destination = @destination,
		    departs_at  = @departs_at,
		    capacity    = @capacity,
		    price       = @price,
		    description = @description,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + rideColumns

	args := pgx.NamedArgs{
		"id":          ride.ID,
		"origin":      ride.Origin,
		"destination": ride.Destination,
		"departs_at":  ride.DepartsAt,
		"capacity":    ride.Capacity,
		"price":       ride.Price,
		"description": ride.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRide(row)
	if err != nil {
		return domain.Ride{}, fmt.Errorf("repo.RideRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgRideRepo) Search(ctx context.Context, filter domain.RideFilter, excludeHost uuid.UUID, p domain.PaginationParams) ([]domain.RideSummary, error) {
	// The WHERE clause is assembled from fixed fragments with named
	// placeholders; user input only ever travels as an argument.
	conds := []string{
		"r.departs_at >= date_trunc('day', now())",
		"r.host_id <> @exclude_host",
	}
	args := pgx.NamedArgs{
		"exclude_host": excludeHost,
		"limit":        p.Limit,
		"offset":       p.Offset(),
	}

	if filter.Origin != "" {
		conds = append(conds, "r.origin ILIKE @origin")
		args["origin"] = "%" + filter.Origin + "%"
	}
	if filter.Destination != "" {
		conds = append(conds, "r.destination ILIKE @destination")
		args["destination"] = "%" + filter.Destination + "%"
	}
	if filter.Date != nil {
		conds = append(conds, "r.departs_at >= date_trunc('day', @date::timestamptz)")
		conds = append(conds, "r.departs_at < date_trunc('day', @date::timestamptz) + interval '1 day'")
		args["date"] = *filter.Date
	}

	q := `
		SELECT r.id, r.host_id, r.origin, r.destination, r.departs_at, r.capacity,
		       r.price, r.description, r.created_at, r.updated_at,
		       u.id, u.first_name, u.last_name, u.email, u.phone_number,
		       u.total_ratings, u.average_rating, u.created_at
		FROM rides r
		JOIN users u ON u.id = r.host_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY r.departs_at ASC, r.created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.RideRepo.Search: %w", err)
	}
	defer rows.Close()

	var results []domain.RideSummary
	for rows.Next() {
		s, err := scanRideSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RideRepo.Search: scan: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RideRepo.Search: rows: %w", err)
	}

	return results, nil
}

func (r *pgRideRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Ride, error) {
	const q = `SELECT ` + rideColumns + ` FROM rides WHERE host_id = @host_id ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"host_id": hostID})
	if err != nil {
		return nil, fmt.Errorf("repo.RideRepo.ListByHost: %w", err)
	}
	defer rows.Close()

	var rides []domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RideRepo.ListByHost: scan: %w", err)
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RideRepo.ListByHost: rows: %w", err)
	}

	return rides, nil
}

// scanRide maps a single database row into a domain.Ride.
// It handles the UUID and nullable price conversions.
func scanRide(s scanner) (domain.Ride, error) {
	var (
		ride   domain.Ride
		id     pgtype.UUID
		hostID pgtype.UUID
	)

	err := s.Scan(&id, &hostID, &ride.Origin, &ride.Destination, &ride.DepartsAt,
		&ride.Capacity, &ride.Price, &ride.Description, &ride.CreatedAt, &ride.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Ride{}, domain.ErrNotFound
		}
		return domain.Ride{}, err
	}

	ride.ID = uuid.UUID(id.Bytes)
	ride.HostID = uuid.UUID(hostID.Bytes)
	return ride, nil
}

// scanRideSummary maps a joined ride+host row into a domain.RideSummary.
func scanRideSummary(s scanner) (domain.RideSummary, error) {
	var (
		out    domain.RideSummary
		id     pgtype.UUID
		hostID pgtype.UUID
		uID    pgtype.UUID
	)

	err := s.Scan(&id, &hostID, &out.Ride.Origin, &out.Ride.Destination, &out.Ride.DepartsAt,
		&out.Ride.Capacity, &out.Ride.Price, &out.Ride.Description, &out.Ride.CreatedAt, &out.Ride.UpdatedAt,
		&uID, &out.Host.FirstName, &out.Host.LastName, &out.Host.Email, &out.Host.PhoneNumber,
		&out.Host.RatingStats.TotalRatings, &out.Host.RatingStats.AverageRating, &out.Host.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RideSummary{}, domain.ErrNotFound
		}
		return domain.RideSummary{}, err
	}

	out.Ride.ID = uuid.UUID(id.Bytes)
	out.Ride.HostID = uuid.UUID(hostID.Bytes)
	out.Host.ID = uuid.UUID(uID.Bytes)
	return out, nil
}
