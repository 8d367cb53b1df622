package transport_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	customerapp "github.com/muhammadheryan/customer-hub/application/customer"
	orderapp "github.com/muhammadheryan/customer-hub/application/order"
	uploadapp "github.com/muhammadheryan/customer-hub/application/upload"
	userapp "github.com/muhammadheryan/customer-hub/application/user"
	"github.com/muhammadheryan/customer-hub/cmd/config"
	"github.com/muhammadheryan/customer-hub/constant"
	ordermocks "github.com/muhammadheryan/customer-hub/mocks/repository/order"
	txmocks "github.com/muhammadheryan/customer-hub/mocks/repository/tx"
	usermocks "github.com/muhammadheryan/customer-hub/mocks/repository/user"
	"github.com/muhammadheryan/customer-hub/model"
	redisrepo "github.com/muhammadheryan/customer-hub/repository/redis"
	"github.com/muhammadheryan/customer-hub/transport"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "transport-test-secret"

type testServer struct {
	handler   http.Handler
	userRepo  *usermocks.UserRepository
	orderRepo *ordermocks.OrderRepository
	txRepo    *txmocks.TxRepository
	cfg       *config.Config
}

// newTestServer wires the real application layer onto repository mocks, so
// requests travel the same middleware and guard chain as in production. The
// rate limiter runs against an absent Redis client and fails open.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     testSecret,
			JWTExpiration: time.Hour,
		},
		RateLimit: config.RateLimitConfig{Window: time.Minute, Max: 1000},
		Upload: config.UploadConfig{
			Dir:        t.TempDir(),
			PublicPath: "uploads",
			MaxSize:    1024,
		},
		Internal: config.InternalConfig{APIKey: "internal-key"},
		CORS:     config.CORSConfig{Origin: "*"},
	}

	userRepo := usermocks.NewUserRepository(t)
	orderRepo := ordermocks.NewOrderRepository(t)
	txRepo := txmocks.NewTxRepository(t)

	uApp := userapp.NewUserApp(cfg, userRepo)
	cApp := customerapp.NewCustomerApp(txRepo, userRepo, orderRepo, nil)
	oApp := orderapp.NewOrderApp(orderRepo)
	upApp, err := uploadapp.NewUploadApp(cfg)
	if err != nil {
		t.Fatalf("NewUploadApp() error = %v", err)
	}

	handler := transport.NewTransport(cfg, uApp, cApp, oApp, upApp, redisrepo.NewRepository())

	return &testServer{
		handler:   handler,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		txRepo:    txRepo,
		cfg:       cfg,
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func adminIdentity() *model.UserEntity {
	return &model.UserEntity{ID: 1, Name: "Root", Email: "root@example.com", Roles: constant.RoleList{constant.RoleAdmin}}
}

func customerIdentity() *model.UserEntity {
	return &model.UserEntity{ID: 2, Name: "Carol", Email: "carol@example.com", Roles: constant.RoleList{constant.RoleCustomer}}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func assertErrorBody(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantType constant.ErrorType) {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, wantStatus, rec.Body.String())
	}
	var body struct {
		ErrorCode string `json:"error_code"`
	}
	decodeBody(t, rec, &body)
	if body.ErrorCode != constant.ErrorTypeCode[wantType] {
		t.Fatalf("error_code = %s, want %s", body.ErrorCode, constant.ErrorTypeCode[wantType])
	}
}

func TestLoginThenListCustomers(t *testing.T) {
	s := newTestServer(t)

	password := "s3cret!!"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	admin := adminIdentity()
	adminWithHash := *admin
	adminWithHash.PasswordHash = string(hash)

	s.userRepo.
		On("Get", mock.Anything, &model.UserFilter{Email: admin.Email}).
		Return(&adminWithHash, nil).
		Once()
	s.userRepo.
		On("GetByID", mock.Anything, admin.ID).
		Return(admin, nil)
	s.userRepo.
		On("List", mock.Anything, mock.MatchedBy(func(filter *model.CustomerListFilter) bool {
			return filter.Page == 1 && filter.Limit == 3 &&
				filter.SortColumn == "total_amount" && !filter.SortDesc
		}), []uint64(nil)).
		Return([]model.UserEntity{
			{ID: 3, Name: "A", TotalAmount: 10},
			{ID: 4, Name: "B", TotalAmount: 20},
			{ID: 5, Name: "C", TotalAmount: 30},
		}, nil).
		Once()
	s.userRepo.
		On("Count", mock.Anything, mock.Anything, []uint64(nil)).
		Return(int64(7), nil).
		Once()

	// login for a token
	loginBody, _ := json.Marshal(map[string]string{"email": admin.Email, "password": password})
	rec := s.do(httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(loginBody)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var login model.LoginResponse
	decodeBody(t, rec, &login)
	if login.Token == "" {
		t.Fatal("login returned empty token")
	}

	// list with the issued token
	req := httptest.NewRequest(http.MethodGet, "/customers?page=1&limit=3&sortField=totalAmount&sortOrder=asc", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = s.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, body %s", rec.Code, rec.Body.String())
	}

	var list model.CustomerListResponse
	decodeBody(t, rec, &list)
	if len(list.Customers) != 3 {
		t.Fatalf("customers = %d, want 3", len(list.Customers))
	}
	if list.Pagination.PageSize != 3 || list.Pagination.CurrentPage != 1 {
		t.Fatalf("pagination = %+v, want page 1 size 3", list.Pagination)
	}
	if list.Pagination.TotalUsers != 7 || list.Pagination.TotalPages != 3 {
		t.Fatalf("pagination = %+v, want 7 users over 3 pages", list.Pagination)
	}
}

func TestCustomersGuardChain(t *testing.T) {
	t.Run("401 without a token", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(httptest.NewRequest(http.MethodGet, "/customers", nil))
		assertErrorBody(t, rec, http.StatusUnauthorized, constant.ErrUnauthorize)
	})

	t.Run("401 with an expired token, reported distinctly", func(t *testing.T) {
		s := newTestServer(t)
		req := httptest.NewRequest(http.MethodGet, "/customers", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "1", -time.Hour))
		rec := s.do(req)
		assertErrorBody(t, rec, http.StatusUnauthorized, constant.ErrTokenExpired)
	})

	t.Run("403 for a customer role", func(t *testing.T) {
		s := newTestServer(t)
		cust := customerIdentity()
		s.userRepo.On("GetByID", mock.Anything, cust.ID).Return(cust, nil)

		req := httptest.NewRequest(http.MethodGet, "/customers", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "2", time.Hour))
		rec := s.do(req)
		assertErrorBody(t, rec, http.StatusForbidden, constant.ErrForbidden)
	})

	t.Run("400 on a malformed filter value", func(t *testing.T) {
		s := newTestServer(t)
		admin := adminIdentity()
		s.userRepo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)

		req := httptest.NewRequest(http.MethodGet, "/customers?totalAmountFrom=abc", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "1", time.Hour))
		rec := s.do(req)
		assertErrorBody(t, rec, http.StatusBadRequest, constant.ErrInvalidRequest)
	})

	t.Run("404 for an unknown customer id", func(t *testing.T) {
		s := newTestServer(t)
		admin := adminIdentity()
		s.userRepo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
		s.userRepo.On("GetByID", mock.Anything, uint64(999)).Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers/999", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "1", time.Hour))
		rec := s.do(req)
		assertErrorBody(t, rec, http.StatusNotFound, constant.ErrNotFound)
	})
}

func TestOrdersOwnershipGuard(t *testing.T) {
	ownerID := uint64(2)
	order := &model.OrderEntity{ID: 9, UserID: &ownerID, DeliveryAddress: "1 Main Street", Total: 42, Status: 1}

	t.Run("owner can read the order", func(t *testing.T) {
		s := newTestServer(t)
		cust := customerIdentity()
		s.userRepo.On("GetByID", mock.Anything, cust.ID).Return(cust, nil)
		// once for the ownership check, once for the handler
		s.orderRepo.On("GetByID", mock.Anything, uint64(9)).Return(order, nil).Twice()

		req := httptest.NewRequest(http.MethodGet, "/orders/9", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "2", time.Hour))
		rec := s.do(req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var res model.OrderResponse
		decodeBody(t, rec, &res)
		if res.ID != 9 || res.UserID == nil || *res.UserID != ownerID {
			t.Fatalf("order = %+v", res)
		}
	})

	t.Run("another customer gets 403", func(t *testing.T) {
		s := newTestServer(t)
		other := &model.UserEntity{ID: 8, Roles: constant.RoleList{constant.RoleCustomer}}
		s.userRepo.On("GetByID", mock.Anything, other.ID).Return(other, nil)
		s.orderRepo.On("GetByID", mock.Anything, uint64(9)).Return(order, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders/9", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "8", time.Hour))
		rec := s.do(req)
		assertErrorBody(t, rec, http.StatusForbidden, constant.ErrForbidden)
	})

	t.Run("admin reads any order", func(t *testing.T) {
		s := newTestServer(t)
		admin := adminIdentity()
		s.userRepo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
		// admin bypass skips the ownership load, only the handler fetches
		s.orderRepo.On("GetByID", mock.Anything, uint64(9)).Return(order, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders/9", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "1", time.Hour))
		rec := s.do(req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown order is 404 before the ownership verdict", func(t *testing.T) {
		s := newTestServer(t)
		cust := customerIdentity()
		s.userRepo.On("GetByID", mock.Anything, cust.ID).Return(cust, nil)
		s.orderRepo.On("GetByID", mock.Anything, uint64(404)).Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders/404", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "2", time.Hour))
		rec := s.do(req)
		assertErrorBody(t, rec, http.StatusNotFound, constant.ErrNotFound)
	})
}

func TestInternalRefreshAggregates(t *testing.T) {
	t.Run("accepted with the service key", func(t *testing.T) {
		s := newTestServer(t)
		lastOrderID := uint64(12)
		now := time.Now()
		s.userRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.UserEntity{ID: 5}, nil).Once()
		s.orderRepo.On("AggregatesByUser", mock.Anything, uint64(5)).
			Return(&model.OrderAggregates{TotalAmount: 99, OrderCount: 2, LastOrderID: &lastOrderID, LastOrderDate: &now}, nil).
			Once()
		s.userRepo.On("UpdateAggregates", mock.Anything, uint64(5), mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/internal/v1/customers/5/refresh-aggregates", nil)
		req.Header.Set("Authorization", "Bearer internal-key")
		rec := s.do(req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejected with a wrong key", func(t *testing.T) {
		s := newTestServer(t)
		req := httptest.NewRequest(http.MethodPost, "/internal/v1/customers/5/refresh-aggregates", nil)
		req.Header.Set("Authorization", "Bearer not-the-key")
		rec := s.do(req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})
}

func TestUploadEndpoint(t *testing.T) {
	s := newTestServer(t)
	admin := adminIdentity()
	s.userRepo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)

	var body bytes.Buffer
	mw := newMultipart(t, &body, "file", "avatar.png", []byte("png bytes"))

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "1", time.Hour))
	rec := s.do(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res model.UploadResponse
	decodeBody(t, rec, &res)
	if res.OriginalName != "avatar.png" {
		t.Fatalf("originalName = %s", res.OriginalName)
	}
}

func newMultipart(t *testing.T, buf *bytes.Buffer, field, filename string, content []byte) string {
	t.Helper()
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return w.FormDataContentType()
}
