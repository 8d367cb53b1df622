package order

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/customer-hub/model"
	userrepo "github.com/muhammadheryan/customer-hub/repository/user"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.OrderEntity, error)
	FindIDsByDeliveryAddress(ctx context.Context, term string) ([]uint64, error)
	AggregatesByUser(ctx context.Context, userID uint64) (*model.OrderAggregates, error)
	DetachByUserTx(ctx context.Context, tx *sqlx.Tx, userID uint64) error
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.OrderEntity, error) {
	var entity model.OrderEntity
	query := "SELECT id, user_id, delivery_address, total, status, created_at, updated_at FROM `order` WHERE id = ?"
	if err := s.conn.QueryRowxContext(ctx, query, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// FindIDsByDeliveryAddress returns ids of orders whose delivery address
// contains the term, case-insensitively. Only ids are selected.
func (s *SQL) FindIDsByDeliveryAddress(ctx context.Context, term string) ([]uint64, error) {
	pattern := "%" + userrepo.EscapeLike(term) + "%"

	var ids []uint64
	query := "SELECT id FROM `order` WHERE delivery_address LIKE ?"
	if err := s.conn.SelectContext(ctx, &ids, query, pattern); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *SQL) AggregatesByUser(ctx context.Context, userID uint64) (*model.OrderAggregates, error) {
	var row struct {
		TotalAmount   float64       `db:"total_amount"`
		OrderCount    int           `db:"order_count"`
		LastOrderDate sql.NullTime  `db:"last_order_date"`
		LastOrderID   sql.NullInt64 `db:"last_order_id"`
	}

	query := "SELECT COALESCE(SUM(total), 0) AS total_amount, COUNT(*) AS order_count, " +
		"MAX(created_at) AS last_order_date, " +
		"(SELECT id FROM `order` WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1) AS last_order_id " +
		"FROM `order` WHERE user_id = ?"
	if err := s.conn.QueryRowxContext(ctx, query, userID, userID).StructScan(&row); err != nil {
		return nil, err
	}

	aggr := &model.OrderAggregates{
		TotalAmount: row.TotalAmount,
		OrderCount:  row.OrderCount,
	}
	if row.LastOrderDate.Valid {
		t := row.LastOrderDate.Time
		aggr.LastOrderDate = &t
	}
	if row.LastOrderID.Valid {
		id := uint64(row.LastOrderID.Int64)
		aggr.LastOrderID = &id
	}
	return aggr, nil
}

// DetachByUserTx clears the owner reference on a customer's orders so the
// order history survives the customer's deletion.
func (s *SQL) DetachByUserTx(ctx context.Context, tx *sqlx.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET user_id = NULL WHERE user_id = ?", userID)
	return err
}
