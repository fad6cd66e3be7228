package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
)

type AppointmentRepo interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, limit, offset int) ([]domain.Appointment, error)
}

type AppointmentRepoImpl struct{ pool *pgxpool.Pool }

func NewAppointmentRepo(pool *pgxpool.Pool) *AppointmentRepoImpl {
	return &AppointmentRepoImpl{pool: pool}
}

const appointmentCols = `id, client_name, client_email,
appt_date, appt_time, country, service, reason, created_at`

func (r *AppointmentRepoImpl) Create(ctx context.Context, a *domain.Appointment) error {
	const q = `INSERT INTO appointments (
    id, client_name, client_email,
    appt_date, appt_time, country, service, reason, created_at
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q,
		a.ID, a.ClientName, a.ClientEmail,
		a.Date, a.Time, string(a.Country), a.Service, a.Reason, a.CreatedAt,
	)
	return err
}

func (r *AppointmentRepoImpl) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	const q = `SELECT ` + appointmentCols + ` FROM appointments WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Appointment
	var country string
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.ClientName, &a.ClientEmail,
		&a.Date, &a.Time, &country, &a.Service, &a.Reason, &a.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	a.Country = domain.Country(country)
	return &a, err
}

func (r *AppointmentRepoImpl) List(ctx context.Context, limit, offset int) ([]domain.Appointment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const q = `SELECT ` + appointmentCols + ` FROM appointments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		var country string
		if err := rows.Scan(
			&a.ID, &a.ClientName, &a.ClientEmail,
			&a.Date, &a.Time, &country, &a.Service, &a.Reason, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.Country = domain.Country(country)
		out = append(out, a)
	}
	return out, rows.Err()
}
