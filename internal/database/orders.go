package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"ppf-order-backend/internal/models"
)

// PostgresRepository stores orders in the flat orders table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(connectionString string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) List() ([]models.Order, error) {
	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT %s
		FROM orders
		ORDER BY %s DESC
	`, orderColumns, colCreatedAt))
	if err != nil {
		return nil, storageError("list orders", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var row OrderRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, storageError("scan order", err)
		}
		orders = append(orders, row.ToOrder())
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list orders", err)
	}

	return orders, nil
}

func (r *PostgresRepository) Get(id string) (*models.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrNotFound
	}

	var row OrderRow
	err := r.db.QueryRow(fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE %s = $1
	`, orderColumns, colID), id).Scan(row.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, storageError("get order", err)
	}

	order := row.ToOrder()
	return &order, nil
}

func (r *PostgresRepository) Create(input models.NewOrder) (*models.Order, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	in := ToRow(models.Order{
		ID:         uuid.NewString(),
		Package:    input.Package,
		Vehicle:    input.Vehicle,
		Customer:   input.Customer,
		JobRequest: input.JobRequest,
		PhotoURL:   input.PhotoURL,
		Status:     models.StatusPending,
	})

	names, values := in.insertColumns()
	placeholders := make([]string, len(names))
	for i := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	var row OrderRow
	err := r.db.QueryRow(fmt.Sprintf(`
		INSERT INTO orders (%s)
		VALUES (%s)
		RETURNING %s
	`, strings.Join(names, ", "), strings.Join(placeholders, ", "), orderColumns), values...).Scan(row.scanTargets()...)
	if err != nil {
		return nil, storageError("create order", err)
	}

	order := row.ToOrder()
	return &order, nil
}

// Update locks the order before validating the patch, so a missing order
// is reported as not found whatever the body holds.
func (r *PostgresRepository) Update(id string, patch models.OrderPatch) (*models.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrNotFound
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, storageError("update order", err)
	}
	defer tx.Rollback()

	var row OrderRow
	err = tx.QueryRow(fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE %s = $1
		FOR UPDATE
	`, orderColumns, colID), id).Scan(row.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, storageError("update order", err)
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if assignments := PatchColumns(patch); len(assignments) > 0 {
		sets := make([]string, len(assignments))
		args := make([]any, 0, len(assignments)+1)
		for i, a := range assignments {
			sets[i] = fmt.Sprintf("%s = $%d", a.Column, i+1)
			args = append(args, a.Value)
		}
		args = append(args, id)

		query := fmt.Sprintf(`
			UPDATE orders
			SET %s
			WHERE %s = $%d
			RETURNING %s
		`, strings.Join(sets, ", "), colID, len(args), orderColumns)

		if err := tx.QueryRow(query, args...).Scan(row.scanTargets()...); err != nil {
			return nil, storageError("update order", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("update order", err)
	}

	order := row.ToOrder()
	return &order, nil
}

func (r *PostgresRepository) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.ErrNotFound
	}

	result, err := r.db.Exec(fmt.Sprintf(`
		DELETE FROM orders
		WHERE %s = $1
	`, colID), id)
	if err != nil {
		return storageError("delete order", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("delete order", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", models.ErrStorage, op, err)
}
