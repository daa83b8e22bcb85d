package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-protocol/noah-client/internal/api/shared/dto"
	apierrors "github.com/noah-protocol/noah-client/internal/api/shared/errors"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/mocks"
)

const ownerHex = "0x1111111111111111111111111111111111111111"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testMocks struct {
	ctrl     *gomock.Controller
	executor *mocks.MockAPIExecutor
	router   *gin.Engine
}

func setupTest(t *testing.T) *testMocks {
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)
	router := gin.New()
	SetupRoutes(router, NewHandler(exec))
	return &testMocks{ctrl: ctrl, executor: exec, router: router}
}

func tearDownTest(tm *testMocks) {
	tm.ctrl.Finish()
}

func (tm *testMocks) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	tm.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthCheck(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	w := tm.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"noah-api"}`, w.Body.String())
}

func TestGetArk(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.executor.EXPECT().GetArk(gomock.Any(), ownerHex).Return(&dto.ArkResponse{Owner: ownerHex, ChainID: "31337"}, nil)

	w := tm.get("/api/v1/arks/" + ownerHex)
	require.Equal(t, http.StatusOK, w.Code)

	var ark dto.ArkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ark))
	assert.Equal(t, ownerHex, ark.Owner)
	assert.Equal(t, "31337", ark.ChainID)
}

func TestGetArk_NotFound(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.executor.EXPECT().GetArk(gomock.Any(), ownerHex).Return(nil, nil)

	w := tm.get("/api/v1/arks/" + ownerHex)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierrors.ErrCodeNotFound, decodeError(t, w).Code)
}

func TestGetArk_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   apierrors.ErrorCode
	}{
		{"bad request", apierrors.NewBadRequestError("Invalid address"), http.StatusBadRequest, apierrors.ErrCodeBadRequest},
		{"validation", apierrors.NewValidationError("too many"), http.StatusUnprocessableEntity, apierrors.ErrCodeValidationFailed},
		{"service", apierrors.NewServiceError("rpc down"), http.StatusBadGateway, apierrors.ErrCodeServiceError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, apierrors.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			defer tearDownTest(tm)

			tm.executor.EXPECT().GetArk(gomock.Any(), "0xabc").Return(nil, tt.err)

			w := tm.get("/api/v1/arks/0xabc")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestGetActivity(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.executor.EXPECT().GetActivity(gomock.Any(), ownerHex, "42161").
		Return(&dto.ActivityResponse{Address: ownerHex, ChainID: "42161", Cached: true}, nil)

	w := tm.get("/api/v1/activity/" + ownerHex + "?chain_id=42161")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ActivityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
	assert.False(t, resp.Stale)
}

func TestGetActivity_DefaultChain(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.executor.EXPECT().GetActivity(gomock.Any(), ownerHex, "").Return(&dto.ActivityResponse{}, nil)

	w := tm.get("/api/v1/activity/" + ownerHex)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetAllowances_TokenList(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.executor.EXPECT().GetAllowances(gomock.Any(), ownerHex, []string{"0xa", "0xb", "0xc"}).
		Return(&dto.AllowanceListResponse{Missing: 1}, nil)

	w := tm.get("/api/v1/allowances/" + ownerHex + "?tokens=0xa,0xb&tokens=%200xc%20")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AllowanceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Missing)
}

func TestGetAllowances_NoTokens(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.executor.EXPECT().GetAllowances(gomock.Any(), ownerHex, gomock.Nil()).
		Return(&dto.AllowanceListResponse{AllApproved: true}, nil)

	w := tm.get("/api/v1/allowances/" + ownerHex)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(nil))
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", "", " c ,"}))
}
