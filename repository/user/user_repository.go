package user

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/customer-hub/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.UserEntity, error)
	List(ctx context.Context, filter *model.CustomerListFilter, searchOrderIDs []uint64) ([]model.UserEntity, error)
	Count(ctx context.Context, filter *model.CustomerListFilter, searchOrderIDs []uint64) (int64, error)
	Update(ctx context.Context, id uint64, upd *model.CustomerUpdate) (*model.UserEntity, error)
	UpdateAggregates(ctx context.Context, id uint64, aggr *model.OrderAggregates) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) (bool, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

// safeColumns excludes password_hash so authenticated identities and customer
// projections never carry credentials.
const (
	safeColumns     = `id, name, email, roles, total_amount, order_count, last_order_id, last_order_date, created_at, updated_at`
	insertUserQuery = `INSERT INTO user (name, email, roles, password_hash, created_at) VALUES (?, ?, ?, ?, NOW())`
	getUserBase     = `SELECT id, name, email, roles, password_hash, total_amount, order_count, last_order_id, last_order_date, created_at, updated_at FROM user WHERE true`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	roles, err := data.Roles.Value()
	if err != nil {
		return nil, err
	}

	result, err := s.conn.ExecContext(ctx, insertUserQuery, data.Name, data.Email, roles, data.PasswordHash)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.UserEntity, error) {
	var entity model.UserEntity
	query := "SELECT " + safeColumns + " FROM user WHERE id = ?"
	if err := s.conn.QueryRowxContext(ctx, query, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, filter *model.CustomerListFilter, searchOrderIDs []uint64) ([]model.UserEntity, error) {
	where, args := buildListWhere(filter, searchOrderIDs)

	query := "SELECT " + safeColumns + " FROM user WHERE true" + where
	query += " ORDER BY " + filter.SortColumn + sortDirection(filter.SortDesc)
	query += " LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Skip())

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}

	var entities []model.UserEntity
	if err := s.conn.SelectContext(ctx, &entities, query, expanded...); err != nil {
		return nil, err
	}
	return entities, nil
}

func (s *SQL) Count(ctx context.Context, filter *model.CustomerListFilter, searchOrderIDs []uint64) (int64, error) {
	where, args := buildListWhere(filter, searchOrderIDs)

	query, expanded, err := sqlx.In("SELECT COUNT(*) FROM user WHERE true"+where, args...)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, query, expanded...); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *SQL) Update(ctx context.Context, id uint64, upd *model.CustomerUpdate) (*model.UserEntity, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *upd.Email)
	}
	if upd.Roles != nil {
		roles, err := upd.Roles.Value()
		if err != nil {
			return nil, err
		}
		sets = append(sets, "roles = ?")
		args = append(args, roles)
	}

	if len(sets) > 0 {
		sets = append(sets, "updated_at = NOW()")
		query := "UPDATE user SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		args = append(args, id)
		if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

func (s *SQL) UpdateAggregates(ctx context.Context, id uint64, aggr *model.OrderAggregates) error {
	query := `UPDATE user SET total_amount = ?, order_count = ?, last_order_id = ?, last_order_date = ? WHERE id = ?`
	_, err := s.conn.ExecContext(ctx, query, aggr.TotalAmount, aggr.OrderCount, aggr.LastOrderID, aggr.LastOrderDate, id)
	return err
}

func (s *SQL) DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) (bool, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM user WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// buildListWhere accumulates AND clauses for every bound present in the filter.
// A slice arg is left unexpanded for sqlx.In.
func buildListWhere(f *model.CustomerListFilter, searchOrderIDs []uint64) (string, []any) {
	var query string
	args := make([]any, 0, 10)

	if f.RegistrationFrom != nil {
		query += " AND created_at >= ?"
		args = append(args, *f.RegistrationFrom)
	}
	if f.RegistrationTo != nil {
		query += " AND created_at <= ?"
		args = append(args, *f.RegistrationTo)
	}
	if f.LastOrderFrom != nil {
		query += " AND last_order_date >= ?"
		args = append(args, *f.LastOrderFrom)
	}
	if f.LastOrderTo != nil {
		query += " AND last_order_date <= ?"
		args = append(args, *f.LastOrderTo)
	}
	if f.TotalAmountFrom != nil {
		query += " AND total_amount >= ?"
		args = append(args, *f.TotalAmountFrom)
	}
	if f.TotalAmountTo != nil {
		query += " AND total_amount <= ?"
		args = append(args, *f.TotalAmountTo)
	}
	if f.OrderCountFrom != nil {
		query += " AND order_count >= ?"
		args = append(args, *f.OrderCountFrom)
	}
	if f.OrderCountTo != nil {
		query += " AND order_count <= ?"
		args = append(args, *f.OrderCountTo)
	}

	if f.Search != "" {
		pattern := "%" + EscapeLike(f.Search) + "%"
		if len(searchOrderIDs) > 0 {
			query += " AND (name LIKE ? OR last_order_id IN (?))"
			args = append(args, pattern, searchOrderIDs)
		} else {
			query += " AND name LIKE ?"
			args = append(args, pattern)
		}
	}

	return query, args
}

func sortDirection(desc bool) string {
	if desc {
		return " DESC"
	}
	return " ASC"
}

// EscapeLike escapes MySQL LIKE wildcards so user input matches literally
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
