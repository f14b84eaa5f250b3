package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Almas2004/led/internal/models"
	"github.com/Almas2004/led/internal/utils"
)

// LeadRepository handles data access for leads.
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository creates a new LeadRepository.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// List returns all leads, newest first.
func (r *LeadRepository) List(ctx context.Context) ([]models.Lead, error) {
	const q = `SELECT * FROM leads ORDER BY id DESC`
	leads := []models.Lead{}
	if err := r.db.SelectContext(ctx, &leads, q); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetByID returns a single lead.
func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	const q = `SELECT * FROM leads WHERE id = $1`
	var l models.Lead
	if err := r.db.GetContext(ctx, &l, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Create inserts a lead and fills in its id.
func (r *LeadRepository) Create(ctx context.Context, l *models.Lead) error {
	const q = `
        INSERT INTO leads (created_at, name, phone, city, message, page_url, source, product_id, solution_id, status, manager_note)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id`

	return r.db.QueryRowxContext(ctx, q,
		l.CreatedAt, l.Name, l.Phone, l.City, l.Message, l.PageURL, l.Source,
		l.ProductID, l.SolutionID, l.Status, l.ManagerNote,
	).Scan(&l.ID)
}

// Update applies the non-nil fields of upd. Only status and manager note
// are ever written after capture.
func (r *LeadRepository) Update(ctx context.Context, id int64, upd models.LeadUpdate) error {
	var sets []string
	var args []interface{}
	if upd.Status != nil {
		args = append(args, *upd.Status)
		sets = append(sets, "status = $"+strconv.Itoa(len(args)))
	}
	if upd.ManagerNote != nil {
		args = append(args, *upd.ManagerNote)
		sets = append(sets, "manager_note = $"+strconv.Itoa(len(args)))
	}

	if len(sets) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}

	args = append(args, id)
	q := `UPDATE leads SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(len(args))
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
