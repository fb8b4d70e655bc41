package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billingapp "github.com/ebilling/backend/internal/application/billing"
	identityapp "github.com/ebilling/backend/internal/application/identity"
	supportapp "github.com/ebilling/backend/internal/application/support"
	"github.com/ebilling/backend/internal/infrastructure/auth"
	"github.com/ebilling/backend/internal/infrastructure/config"
	"github.com/ebilling/backend/internal/infrastructure/persistence"
	"github.com/ebilling/backend/internal/interfaces/http/handler"
	"github.com/ebilling/backend/internal/interfaces/http/middleware"
	"github.com/ebilling/backend/internal/interfaces/http/router"
)

// apiServer wires the full HTTP stack against a containerized database.
type apiServer struct {
	engine *gin.Engine
	db     *TestDB
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()

	testDB := NewTestDB(t)
	logger := zap.NewNop()

	accountRepo := persistence.NewGormAccountRepository(testDB.DB)
	adminRepo := persistence.NewGormAdminRepository(testDB.DB)
	connectionRepo := persistence.NewGormConnectionRepository(testDB.DB)
	consumptionRepo := persistence.NewGormConsumptionRepository(testDB.DB)
	billRepo := persistence.NewGormBillRepository(testDB.DB)
	paymentRepo := persistence.NewGormPaymentRepository(testDB.DB)
	complaintRepo := persistence.NewGormComplaintRepository(testDB.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-access-secret",
		RefreshSecret:          "integration-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "ebilling-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	authService := identityapp.NewAuthService(accountRepo, adminRepo, jwtService, blacklist, logger)
	accountService := identityapp.NewAccountService(accountRepo, connectionRepo, billRepo, logger)
	connectionService := billingapp.NewConnectionService(connectionRepo, accountRepo, logger)
	billingService := billingapp.NewBillingService(billRepo, connectionRepo, consumptionRepo, accountRepo, logger)
	paymentService := billingapp.NewPaymentService(paymentRepo, billRepo, logger)
	complaintService := supportapp.NewComplaintService(complaintRepo, logger)

	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID(), gin.Recovery())

	router.Setup(engine, router.Config{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         logger,
	}, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Account:    handler.NewAccountHandler(accountService),
		Connection: handler.NewConnectionHandler(connectionService),
		Bill:       handler.NewBillHandler(billingService),
		Payment:    handler.NewPaymentHandler(paymentService),
		Complaint:  handler.NewComplaintHandler(complaintService),
	})

	return &apiServer{engine: engine, db: testDB}
}

func (s *apiServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, "expected success response, got: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error.Code
}

func login(t *testing.T, s *apiServer, role, email, password string) identityapp.LoginResult {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"role":     role,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var result struct {
		Token struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"token"`
		Subject identityapp.SubjectInfo `json:"subject"`
	}
	decodeData(t, w, &result)

	return identityapp.LoginResult{
		AccessToken:  result.Token.AccessToken,
		RefreshToken: result.Token.RefreshToken,
		Subject:      result.Subject,
	}
}

func TestBillingPortalEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	s := newAPIServer(t)

	// Seeded default admin can sign in.
	admin := login(t, s, "admin", "admin@ebill.com", "admin123")
	require.NotEmpty(t, admin.AccessToken)
	assert.Equal(t, "Admin User", admin.Subject.Name)

	// No token, no access.
	w := s.do(t, http.MethodGet, "/api/v1/admin/accounts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Admin registers a portal account.
	w = s.do(t, http.MethodPost, "/api/v1/admin/accounts", admin.AccessToken, gin.H{
		"name":     "Asha Verma",
		"email":    "asha@example.com",
		"phone":    "9876543210",
		"password": "secret-pass-1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var account identityapp.AccountInfo
	decodeData(t, w, &account)
	assert.Equal(t, "asha@example.com", account.Email)

	user := login(t, s, "user", "asha@example.com", "secret-pass-1")

	// Role gates run both ways and reject with 401.
	w = s.do(t, http.MethodGet, "/api/v1/admin/accounts", user.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/user/bills", admin.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Admin hooks up a connection for the account.
	w = s.do(t, http.MethodPost, "/api/v1/admin/connections", admin.AccessToken, gin.H{
		"account_id":  account.ID,
		"meter_no":    "MTR-1001",
		"tariff_type": "residential",
		"tariff_rate": "5.50",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var connection billingapp.ConnectionResult
	decodeData(t, w, &connection)
	assert.Equal(t, "MTR-1001", connection.MeterNo)

	// Meter numbers are unique across the portal.
	w = s.do(t, http.MethodPost, "/api/v1/admin/connections", admin.AccessToken, gin.H{
		"account_id":  account.ID,
		"meter_no":    "MTR-1001",
		"tariff_type": "commercial",
		"tariff_rate": "8.00",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", errorCode(t, w))

	// Admin issues a bill; the amount is rate times units, fixed now.
	dueDate := time.Now().Add(15 * 24 * time.Hour).UTC()
	w = s.do(t, http.MethodPost, "/api/v1/admin/bills", admin.AccessToken, gin.H{
		"connection_id":  connection.ID,
		"units_consumed": "120.5",
		"due_date":       dueDate.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var bill billingapp.BillResult
	decodeData(t, w, &bill)
	assert.True(t, bill.Amount.Equal(decimal.RequireFromString("662.75")),
		"expected 662.75, got %s", bill.Amount)

	// The user sees the bill as unpaid.
	w = s.do(t, http.MethodGet, "/api/v1/user/bills", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var bills []billingapp.BillResult
	decodeData(t, w, &bills)
	require.Len(t, bills, 1)
	assert.Equal(t, "UNPAID", bills[0].Status)

	// The consumption history carries the billed reading.
	w = s.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/user/consumption?connection_id=%s", connection.ID),
		user.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var readings []billingapp.ConsumptionResult
	decodeData(t, w, &readings)
	require.Len(t, readings, 1)
	assert.True(t, readings[0].Units.Equal(decimal.RequireFromString("120.5")))

	// The user pays the bill and gets an invoice.
	w = s.do(t, http.MethodPost, "/api/v1/user/payments", user.AccessToken, gin.H{
		"bill_id": bill.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payment billingapp.PaymentResult
	decodeData(t, w, &payment)
	assert.Equal(t, "PAID", payment.Status)
	assert.True(t, payment.Amount.Equal(bill.Amount))

	// Paying the same bill again is rejected.
	w = s.do(t, http.MethodPost, "/api/v1/user/payments", user.AccessToken, gin.H{
		"bill_id": bill.ID,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", errorCode(t, w))

	w = s.do(t, http.MethodGet, "/api/v1/user/payments", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payments []billingapp.PaymentResult
	decodeData(t, w, &payments)
	require.Len(t, payments, 1)
	assert.NotEmpty(t, payments[0].InvoiceNo)

	// The bill now shows as paid.
	w = s.do(t, http.MethodGet, "/api/v1/user/bills", user.AccessToken, nil)
	decodeData(t, w, &bills)
	require.Len(t, bills, 1)
	assert.Equal(t, "PAID", bills[0].Status)

	// The user files a complaint; the admin reviews it.
	w = s.do(t, http.MethodPost, "/api/v1/user/complaints", user.AccessToken, gin.H{
		"description": "Meter reading looks wrong for August",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var complaint supportapp.ComplaintResult
	decodeData(t, w, &complaint)
	assert.Equal(t, "pending", complaint.Status)

	w = s.do(t, http.MethodGet, "/api/v1/admin/complaints", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var complaints []supportapp.ComplaintWithAuthor
	decodeData(t, w, &complaints)
	require.Len(t, complaints, 1)
	assert.Equal(t, "asha@example.com", complaints[0].Author.Email)

	w = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/admin/complaints/%s", complaint.ID),
		admin.AccessToken, gin.H{"status": "under_review"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated supportapp.ComplaintResult
	decodeData(t, w, &updated)
	assert.Equal(t, "under_review", updated.Status)
	require.NotNil(t, updated.AdminID)

	// Unknown statuses never reach the service.
	w = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/admin/complaints/%s", complaint.ID),
		admin.AccessToken, gin.H{"status": "resolved"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Deleting the account removes everything hanging off it.
	w = s.do(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/admin/accounts/%s", account.ID),
		admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/admin/bills", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &bills)
	assert.Empty(t, bills)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"role":     "user",
		"email":    "asha@example.com",
		"password": "secret-pass-1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	s := newAPIServer(t)
	admin := login(t, s, "admin", "admin@ebill.com", "admin123")

	// Refresh rotates the access token.
	w := s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refresh_token": admin.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var refreshed struct {
		Token struct {
			AccessToken string `json:"access_token"`
		} `json:"token"`
	}
	decodeData(t, w, &refreshed)
	require.NotEmpty(t, refreshed.Token.AccessToken)

	w = s.do(t, http.MethodGet, "/api/v1/admin/accounts", refreshed.Token.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A refresh token is not an access token.
	w = s.do(t, http.MethodGet, "/api/v1/admin/accounts", admin.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout revokes both tokens.
	w = s.do(t, http.MethodPost, "/api/v1/auth/logout", admin.AccessToken, gin.H{
		"refresh_token": admin.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/admin/accounts", admin.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REVOKED", errorCode(t, w))
}
