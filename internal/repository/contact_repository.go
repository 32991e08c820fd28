package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/embercoffee/contact-service/internal/domain"
)

// CountFilter narrows Count queries. All fields are optional and combined
// with AND when set.
type CountFilter struct {
	CreatedFrom *time.Time
	Status      *domain.ContactStatus
}

// ContactRepository encapsulates contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	List(ctx context.Context) ([]domain.Contact, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter CountFilter) (int64, error)
	CreatedAtInRange(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (name, email, phone, message, attachment_url)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, status, created_at`
	return r.pool.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Message,
		contact.AttachmentURL,
	).Scan(&contact.ID, &contact.Status, &contact.CreatedAt)
}

func (r *contactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	const query = `
        SELECT id, name, email, phone, message, attachment_url, status, created_at
        FROM contacts ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContacts(rows)
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	const query = `UPDATE contacts SET status=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM contacts WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) Count(ctx context.Context, filter CountFilter) (int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM contacts WHERE %s`, strings.Join(clauses, " AND "))

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *contactRepository) CreatedAtInRange(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	const query = `
        SELECT created_at FROM contacts
        WHERE created_at >= $1 AND created_at <= $2
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []time.Time
	for rows.Next() {
		var createdAt time.Time
		if err := rows.Scan(&createdAt); err != nil {
			return nil, err
		}
		result = append(result, createdAt)
	}
	return result, rows.Err()
}

func scanContacts(rows pgx.Rows) ([]domain.Contact, error) {
	var result []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&contact.Phone,
			&contact.Message,
			&contact.AttachmentURL,
			&contact.Status,
			&contact.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}
