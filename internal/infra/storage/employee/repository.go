package employee

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	"github.com/wissen-infra/seat-booking-service/pkg/dbmetrics"
	"github.com/wissen-infra/seat-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с сотрудниками
// Сотрудники заводятся внешним админским инструментом, поэтому
// репозиторий только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectEmployees().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	emp, err := scanEmployee(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	return emp, nil
}

// List получает всех сотрудников, отсортированных по батчу и имени
func (r *Repository) List(ctx context.Context) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectEmployees().
		OrderBy("batch ASC, name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}

func selectEmployees() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"name",
		"email",
		"batch",
		"role",
		"created_at",
	).From("employees")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var emp domain.Employee
	var createdAt sql.NullTime

	err := row.Scan(
		&emp.ID,
		&emp.Name,
		&emp.Email,
		&emp.Batch,
		&emp.Role,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	emp.CreatedAt = createdAt.Time
	return &emp, nil
}
