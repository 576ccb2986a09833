package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staking-eligibility-service/internal/adapter/http/dto"
	"staking-eligibility-service/internal/core/domain"
	"staking-eligibility-service/internal/core/ports"
	"staking-eligibility-service/internal/core/ports/mocks"
	"staking-eligibility-service/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doGet(h gin.HandlerFunc, target string, params gin.Params) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params
	h(c)
	return w
}

// --- Wallet Handler Tests ---

func TestWalletsByCategory_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIngest := mocks.NewMockIngestionService(ctrl)
	mockQuery := mocks.NewMockRewardQueryService(ctrl)
	h := NewWalletHandler(mockIngest, mockQuery)

	mockIngest.EXPECT().Run(gomock.Any()).Return(&ports.IngestionResult{
		RunID: "run-1",
		Grouped: domain.GroupedWallets{
			SoldBeforeCutoff:  []string{"0xaaa"},
			PurchasedInWindow: []string{"0xbbb", "0xccc"},
		},
		Rows:   3,
		Stored: 3,
	}, nil)

	w := doGet(h.WalletsByCategory, "/api/v1/wallets-by-category", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "run-1", data["run_id"])
	assert.Len(t, data["purchased_in_window"], 2)
	assert.Equal(t, float64(3), data["rows"])
}

func TestWalletsByCategory_SourceUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIngest := mocks.NewMockIngestionService(ctrl)
	h := NewWalletHandler(mockIngest, mocks.NewMockRewardQueryService(ctrl))

	mockIngest.EXPECT().Run(gomock.Any()).
		Return(nil, apperror.ErrSourceUnavailable(errors.New("no such file")))

	w := doGet(h.WalletsByCategory, "/api/v1/wallets-by-category", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SRC_001", resp["error_code"])
}

func TestWallets_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuery := mocks.NewMockRewardQueryService(ctrl)
	h := NewWalletHandler(mocks.NewMockIngestionService(ctrl), mockQuery)

	now := time.Date(2024, 8, 10, 12, 0, 0, 0, time.UTC)
	mockQuery.EXPECT().Wallets(gomock.Any()).Return([]domain.WalletRecord{
		{Address: "0xaaa", Category: domain.CategorySoldBeforeCutoff, CreatedAt: now, UpdatedAt: now},
		{Address: "0xbbb", Category: domain.CategoryLatePurchase, CreatedAt: now, UpdatedAt: now},
	}, nil)

	w := doGet(h.Wallets, "/api/v1/wallets", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	items := data["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "0xaaa", first["address"])
	assert.Equal(t, "sold_before_cutoff", first["category"])
	assert.Equal(t, "2024-08-10T12:00:00Z", first["created_at"])
}

func TestWalletRewardDetails_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuery := mocks.NewMockRewardQueryService(ctrl)
	h := NewWalletHandler(mocks.NewMockIngestionService(ctrl), mockQuery)

	mockQuery.EXPECT().WalletReward(gomock.Any(), "0xabc", 1000.0).Return(&domain.RewardSchedule{
		Address:         "0xabc",
		Category:        domain.CategoryPurchasedInWindow,
		MaxStakePercent: 25,
		StakeAmount:     250,
		TotalReward:     1000,
		Tranches:        domain.Tranches{Day60: 150, Day120: 250, Day180: 600},
	}, nil)

	w := doGet(h.WalletRewardDetails, "/api/v1/wallet-reward-details/0xabc/1000",
		gin.Params{{Key: "address", Value: "0xabc"}, {Key: "amount", Value: "1000"}})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "0xabc", data["address"])
	assert.Equal(t, float64(1000), data["total_reward"])
	tranches := data["tranches"].(map[string]interface{})
	assert.Equal(t, float64(600), tranches["day180"])
}

func TestWalletRewardDetails_BadAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWalletHandler(mocks.NewMockIngestionService(ctrl), mocks.NewMockRewardQueryService(ctrl))

	w := doGet(h.WalletRewardDetails, "/api/v1/wallet-reward-details/0xabc/lots",
		gin.Params{{Key: "address", Value: "0xabc"}, {Key: "amount", Value: "lots"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VAL_001", resp["error_code"])
}

func TestWalletRewardDetails_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuery := mocks.NewMockRewardQueryService(ctrl)
	h := NewWalletHandler(mocks.NewMockIngestionService(ctrl), mockQuery)

	mockQuery.EXPECT().WalletReward(gomock.Any(), "0xmissing", 5.0).
		Return(nil, apperror.ErrWalletNotFound("0xmissing"))

	w := doGet(h.WalletRewardDetails, "/api/v1/wallet-reward-details/0xmissing/5",
		gin.Params{{Key: "address", Value: "0xmissing"}, {Key: "amount", Value: "5"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWalletDetails_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuery := mocks.NewMockRewardQueryService(ctrl)
	h := NewWalletHandler(mocks.NewMockIngestionService(ctrl), mockQuery)

	mockQuery.EXPECT().WalletDetails(gomock.Any(), "0xabc").Return(&domain.RewardSchedule{
		Address:         "0xabc",
		Category:        domain.CategorySoldBeforeCutoff,
		MaxStakePercent: 100,
		StakeAmount:     500,
		TotalReward:     2000,
		Tranches:        domain.Tranches{Day60: 300, Day120: 500, Day180: 1200},
	}, nil)

	w := doGet(h.WalletDetails, "/api/v1/wallet-details/0xabc",
		gin.Params{{Key: "address", Value: "0xabc"}})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2000), data["total_reward"])
}

func TestWalletDetails_BalanceUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuery := mocks.NewMockRewardQueryService(ctrl)
	h := NewWalletHandler(mocks.NewMockIngestionService(ctrl), mockQuery)

	mockQuery.EXPECT().WalletDetails(gomock.Any(), "0xabc").
		Return(nil, apperror.ErrBalanceUnavailable("0xabc"))

	w := doGet(h.WalletDetails, "/api/v1/wallet-details/0xabc",
		gin.Params{{Key: "address", Value: "0xabc"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WLT_003", resp["error_code"])
}

// --- Auth Handler Tests ---

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "operator-key").Return("jwt-token", expiry, nil)

	body, _ := json.Marshal(dto.LoginRequest{AccessKey: "operator-key"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "jwt-token", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestLogin_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewAuthHandler(mocks.NewMockAuthService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "wrong").
		Return("", time.Time{}, apperror.ErrInvalidCredentials())

	body, _ := json.Marshal(dto.LoginRequest{AccessKey: "wrong"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Health Check Tests ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck_AllHealthy(t *testing.T) {
	w := doGet(HealthCheck(stubChecker{name: "postgresql"}, stubChecker{name: "redis"}), "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	w := doGet(HealthCheck(
		stubChecker{name: "postgresql"},
		stubChecker{name: "redis", err: errors.New("connection refused")},
	), "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	redisDep := deps["redis"].(map[string]interface{})
	assert.Equal(t, "unhealthy", redisDep["status"])
}

// --- Router Tests ---

func TestRouter_IngestionGuardedWhenAuthRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockToken := mocks.NewMockTokenService(ctrl)
	mockToken.EXPECT().Validate("good-token").Return(&ports.TokenClaims{Subject: "operator"}, nil)

	mockIngest := mocks.NewMockIngestionService(ctrl)
	mockIngest.EXPECT().Run(gomock.Any()).Return(&ports.IngestionResult{RunID: "run-1"}, nil)

	r := SetupRouter(RouterDeps{
		IngestionSvc: mockIngest,
		QuerySvc:     mocks.NewMockRewardQueryService(ctrl),
		AuthSvc:      mocks.NewMockAuthService(ctrl),
		TokenSvc:     mockToken,
		RequireAuth:  true,
		Logger:       zerolog.Nop(),
	})

	// No token => 401
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/wallets-by-category", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token => 200
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets-by-category", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_OpenWhenNoAuthConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIngest := mocks.NewMockIngestionService(ctrl)
	mockIngest.EXPECT().Run(gomock.Any()).Return(&ports.IngestionResult{RunID: "run-1"}, nil)

	r := SetupRouter(RouterDeps{
		IngestionSvc: mockIngest,
		QuerySvc:     mocks.NewMockRewardQueryService(ctrl),
		Logger:       zerolog.Nop(),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/wallets-by-category", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Login route absent without an auth service.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
