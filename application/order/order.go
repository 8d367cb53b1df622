package order

import (
	"context"

	"github.com/muhammadheryan/customer-hub/application/authz"
	"github.com/muhammadheryan/customer-hub/constant"
	"github.com/muhammadheryan/customer-hub/model"
	orderrepo "github.com/muhammadheryan/customer-hub/repository/order"
	cerr "github.com/muhammadheryan/customer-hub/utils/errors"
	"github.com/muhammadheryan/customer-hub/utils/logger"
	"go.uber.org/zap"
)

type OrderApp interface {
	GetByID(ctx context.Context, id uint64) (*model.OrderResponse, error)
	OwnerLoader() authz.OwnerLoader
}

type orderAppImpl struct {
	orderRepo orderrepo.OrderRepository
}

func NewOrderApp(orderRepo orderrepo.OrderRepository) OrderApp {
	return &orderAppImpl{orderRepo: orderRepo}
}

func (s *orderAppImpl) GetByID(ctx context.Context, id uint64) (*model.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetByID] err orderRepo.GetByID", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	return &model.OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		DeliveryAddress: order.DeliveryAddress,
		Total:           order.Total,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
	}, nil
}

// OwnerLoader adapts the order store to the ownership guard. Detached orders
// report owner 0, which never matches a real identity.
func (s *orderAppImpl) OwnerLoader() authz.OwnerLoader {
	return func(ctx context.Context, id uint64) (uint64, bool, error) {
		order, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return 0, false, err
		}
		if order == nil {
			return 0, false, nil
		}
		if order.UserID == nil {
			return 0, true, nil
		}
		return *order.UserID, true, nil
	}
}
