package customer

import (
	"context"
	"net/url"
	"time"

	"github.com/muhammadheryan/customer-hub/constant"
	"github.com/muhammadheryan/customer-hub/model"
	orderrepo "github.com/muhammadheryan/customer-hub/repository/order"
	txrepo "github.com/muhammadheryan/customer-hub/repository/tx"
	userrepo "github.com/muhammadheryan/customer-hub/repository/user"
	"github.com/muhammadheryan/customer-hub/thirdparty/rabbitmq"
	cerr "github.com/muhammadheryan/customer-hub/utils/errors"
	"github.com/muhammadheryan/customer-hub/utils/logger"
	validatorx "github.com/muhammadheryan/customer-hub/utils/validator"
	"go.uber.org/zap"
)

type CustomerApp interface {
	List(ctx context.Context, query url.Values) (*model.CustomerListResponse, error)
	GetByID(ctx context.Context, id uint64) (*model.CustomerResponse, error)
	Update(ctx context.Context, id uint64, body map[string]interface{}) (*model.CustomerResponse, error)
	Delete(ctx context.Context, id uint64) (*model.CustomerResponse, error)
	RefreshAggregates(ctx context.Context, userID uint64) error
}

type customerAppImpl struct {
	txRepo    txrepo.TxRepository
	userRepo  userrepo.UserRepository
	orderRepo orderrepo.OrderRepository
	publisher *rabbitmq.Publisher
}

func NewCustomerApp(txRepo txrepo.TxRepository, userRepo userrepo.UserRepository, orderRepo orderrepo.OrderRepository, publisher *rabbitmq.Publisher) CustomerApp {
	return &customerAppImpl{txRepo: txRepo, userRepo: userRepo, orderRepo: orderRepo, publisher: publisher}
}

func (s *customerAppImpl) List(ctx context.Context, query url.Values) (*model.CustomerListResponse, error) {
	filter, err := BuildListFilter(query)
	if err != nil {
		return nil, err
	}

	// The related-order lookup runs before the customer query so the search
	// clause can widen into "last order is one of these"
	var searchOrderIDs []uint64
	if filter.Search != "" {
		searchOrderIDs, err = s.orderRepo.FindIDsByDeliveryAddress(ctx, filter.Search)
		if err != nil {
			logger.Error("[List] err orderRepo.FindIDsByDeliveryAddress", zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
	}

	users, err := s.userRepo.List(ctx, filter, searchOrderIDs)
	if err != nil {
		logger.Error("[List] err userRepo.List", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	total, err := s.userRepo.Count(ctx, filter, searchOrderIDs)
	if err != nil {
		logger.Error("[List] err userRepo.Count", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	customers := make([]model.CustomerResponse, 0, len(users))
	for i := range users {
		customers = append(customers, toCustomerResponse(&users[i]))
	}

	totalPages := (total + int64(filter.Limit) - 1) / int64(filter.Limit)

	return &model.CustomerListResponse{
		Customers: customers,
		Pagination: model.Pagination{
			TotalUsers:  total,
			TotalPages:  totalPages,
			CurrentPage: filter.Page,
			PageSize:    filter.Limit,
		},
	}, nil
}

func (s *customerAppImpl) GetByID(ctx context.Context, id uint64) (*model.CustomerResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetByID] err userRepo.GetByID", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	res := toCustomerResponse(user)
	return &res, nil
}

func (s *customerAppImpl) Update(ctx context.Context, id uint64, body map[string]interface{}) (*model.CustomerResponse, error) {
	upd, err := extractUpdate(body)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Update(ctx, id, upd)
	if err != nil {
		logger.Error("[Update] err userRepo.Update", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	res := toCustomerResponse(user)
	return &res, nil
}

func (s *customerAppImpl) Delete(ctx context.Context, id uint64) (*model.CustomerResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[Delete] err userRepo.GetByID", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Delete] begin tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	// orders outlive their customer, only the owner reference is cleared
	if err := s.orderRepo.DetachByUserTx(ctx, tx, id); err != nil {
		logger.Error("[Delete] detach orders", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	deleted, err := s.userRepo.DeleteTx(ctx, tx, id)
	if err != nil {
		logger.Error("[Delete] delete user", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if !deleted {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Delete] commit tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if s.publisher != nil {
		msg := rabbitmq.CustomerDeletedMessage{
			UserID:    user.ID,
			Email:     user.Email,
			DeletedAt: time.Now(),
		}
		if err := s.publisher.PublishCustomerDeleted(msg); err != nil {
			logger.Error("[Delete] publish customer deleted", zap.String("error", err.Error()))
		}
	}

	res := toCustomerResponse(user)
	return &res, nil
}

// RefreshAggregates recomputes the denormalized order summary on the customer
// row. Called by the internal endpoint the order-completed consumer hits.
func (s *customerAppImpl) RefreshAggregates(ctx context.Context, userID uint64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error("[RefreshAggregates] err userRepo.GetByID", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return cerr.SetCustomError(constant.ErrNotFound)
	}

	aggr, err := s.orderRepo.AggregatesByUser(ctx, userID)
	if err != nil {
		logger.Error("[RefreshAggregates] err orderRepo.AggregatesByUser", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.userRepo.UpdateAggregates(ctx, userID, aggr); err != nil {
		logger.Error("[RefreshAggregates] err userRepo.UpdateAggregates", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// extractUpdate whitelists the PATCH body: only correctly typed name, email
// and roles values are picked up, anything else is ignored silently.
func extractUpdate(body map[string]interface{}) (*model.CustomerUpdate, error) {
	upd := &model.CustomerUpdate{}

	if name, ok := body["name"].(string); ok {
		upd.Name = &name
	}

	if email, ok := body["email"].(string); ok {
		if err := validatorx.ValidateVar(email, "required,email,max=100"); err != nil {
			return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
		}
		upd.Email = &email
	}

	if rawRoles, ok := body["roles"].([]interface{}); ok {
		roles := make(constant.RoleList, 0, len(rawRoles))
		for _, raw := range rawRoles {
			str, ok := raw.(string)
			if !ok || !constant.ValidRole(constant.Role(str)) {
				return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
			}
			roles = append(roles, constant.Role(str))
		}
		upd.Roles = &roles
	}

	return upd, nil
}

func toCustomerResponse(u *model.UserEntity) model.CustomerResponse {
	return model.CustomerResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Roles:         u.Roles,
		TotalAmount:   u.TotalAmount,
		OrderCount:    u.OrderCount,
		LastOrderID:   u.LastOrderID,
		LastOrderDate: u.LastOrderDate,
	}
}
