package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	customerapp "github.com/muhammadheryan/customer-hub/application/customer"
	orderapp "github.com/muhammadheryan/customer-hub/application/order"
	uploadapp "github.com/muhammadheryan/customer-hub/application/upload"
	userapp "github.com/muhammadheryan/customer-hub/application/user"
	"github.com/muhammadheryan/customer-hub/cmd/config"
	"github.com/muhammadheryan/customer-hub/constant"
	"github.com/muhammadheryan/customer-hub/model"
	redisrepo "github.com/muhammadheryan/customer-hub/repository/redis"
	cerr "github.com/muhammadheryan/customer-hub/utils/errors"
	validatorx "github.com/muhammadheryan/customer-hub/utils/validator"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp     userapp.UserApp
	CustomerApp customerapp.CustomerApp
	OrderApp    orderapp.OrderApp
	UploadApp   uploadapp.UploadApp
}

func NewTransport(cfg *config.Config, userApp userapp.UserApp, customerApp customerapp.CustomerApp, orderApp orderapp.OrderApp, uploadApp uploadapp.UploadApp, redisRepo redisrepo.Repository) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		UserApp:     userApp,
		CustomerApp: customerApp,
		OrderApp:    orderApp,
		UploadApp:   uploadApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Uploaded files
	mux.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	// Public routes
	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)

	// Protected routes, guard chains composed per route
	mux.HandleFunc("/customers", requireRoles(rh.ListCustomers, constant.RoleAdmin)).Methods(http.MethodGet)
	mux.HandleFunc("/customers/{id}", requireRoles(rh.GetCustomer, constant.RoleAdmin)).Methods(http.MethodGet)
	mux.HandleFunc("/customers/{id}", requireRoles(rh.UpdateCustomer, constant.RoleAdmin)).Methods(http.MethodPatch)
	mux.HandleFunc("/customers/{id}", requireRoles(rh.DeleteCustomer, constant.RoleAdmin)).Methods(http.MethodDelete)
	mux.HandleFunc("/orders/{id}", requireOwnerOrAdmin(orderApp.OwnerLoader(), "id", rh.GetOrder)).Methods(http.MethodGet)
	mux.HandleFunc("/upload", rh.Upload).Methods(http.MethodPost)

	// Internal routes for service-to-service calls
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(cfg.Internal.APIKey))
	internal.HandleFunc("/customers/{id}/refresh-aggregates", rh.RefreshAggregates).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(RateLimitMiddleware(cfg, redisRepo))
	mux.Use(AuthMiddleware(userApp))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.Origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(mux)
}

// Register handler
// @Summary Register user
// @Description Register a new customer account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errorResponse
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email and password and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errorResponse
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListCustomers handler
// @Summary List customers
// @Description Paginated customer list with range filters, search and sorting
// @Tags Customers
// @Produce json
// @Param page query int false "Page number (1-indexed)"
// @Param limit query int false "Page size, capped at 10"
// @Param sortField query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Param search query string false "Name or delivery address substring"
// @Success 200 {object} model.CustomerListResponse
// @Failure 400 {object} errorResponse
// @Security BearerAuth
// @Router /customers [get]
func (s *RestHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	res, err := s.CustomerApp.List(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetCustomer handler
// @Summary Get customer by id
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} model.CustomerResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /customers/{id} [get]
func (s *RestHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CustomerApp.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateCustomer handler
// @Summary Update customer
// @Description Updates name, email and roles; other body fields are ignored
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} model.CustomerResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /customers/{id} [patch]
func (s *RestHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CustomerApp.Update(r.Context(), id, body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteCustomer handler
// @Summary Delete customer
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} model.CustomerResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (s *RestHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CustomerApp.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get order by id
// @Description Accessible to the order's owner or an admin
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.OrderResponse
// @Failure 403 {object} errorResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.OrderApp.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Upload handler
// @Summary Upload a file
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} model.UploadResponse
// @Failure 400 {object} errorResponse
// @Security BearerAuth
// @Router /upload [post]
func (s *RestHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrNoFileUploaded))
		return
	}
	defer file.Close()

	res, err := s.UploadApp.Save(r.Context(), file, header)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// RefreshAggregates handler for the order-completed consumer
func (s *RestHandler) RefreshAggregates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.CustomerApp.RefreshAggregates(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]string{"status": "ok"})
}

func pathID(r *http.Request) (uint64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	return id, nil
}
