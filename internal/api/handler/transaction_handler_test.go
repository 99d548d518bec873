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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/statement-ledger/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionService) PatchCategory(ctx context.Context, id uuid.UUID, category string) (*transaction.Transaction, error) {
	args := m.Called(ctx, id, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionService) ClearAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func storedTransaction() *transaction.Transaction {
	return &transaction.Transaction{
		ID:        uuid.New(),
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Merchant:  "STARBUCKS",
		Amount:    decimal.RequireFromString("-4.50"),
		Type:      transaction.TypeDebit,
		Category:  "Dining",
		BatchID:   uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
}

func TestTransactionHandler_List(t *testing.T) {
	t.Run("all transactions", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		stored := storedTransaction()
		mockService.On("List", mock.Anything, transaction.ListFilter{}).Return([]*transaction.Transaction{stored}, nil)

		router := setupTestRouter()
		router.GET("/transactions", h.List)

		req, _ := http.NewRequest(http.MethodGet, "/transactions", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		resp := decodeResponse(t, rr)
		var txs []TransactionResponse
		dataBytes, _ := json.Marshal(resp.Data)
		require.NoError(t, json.Unmarshal(dataBytes, &txs))
		require.Len(t, txs, 1)
		assert.Equal(t, stored.ID.String(), txs[0].ID)
		assert.Equal(t, "2024-03-01", txs[0].Date)
		assert.InDelta(t, -4.50, txs[0].Amount, 1e-9)
	})

	t.Run("month filter", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		month := transaction.Month{Year: 2024, Month: time.March}
		mockService.On("List", mock.Anything, transaction.ListFilter{Month: &month}).Return([]*transaction.Transaction{}, nil)

		router := setupTestRouter()
		router.GET("/transactions", h.List)

		req, _ := http.NewRequest(http.MethodGet, "/transactions?month=2024-03", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("empty store lists cleanly", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		mockService.On("List", mock.Anything, transaction.ListFilter{}).Return([]*transaction.Transaction{}, nil)

		router := setupTestRouter()
		router.GET("/transactions", h.List)

		req, _ := http.NewRequest(http.MethodGet, "/transactions", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.Nil(t, resp.Error)
	})

	t.Run("invalid month parameter", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		router := setupTestRouter()
		router.GET("/transactions", h.List)

		for _, bad := range []string{"2024", "2024-13", "march"} {
			req, _ := http.NewRequest(http.MethodGet, "/transactions?month="+bad, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code, "month %q", bad)
		}
		mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("service error", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		mockService.On("List", mock.Anything, transaction.ListFilter{}).Return(nil, errors.New("db error"))

		router := setupTestRouter()
		router.GET("/transactions", h.List)

		req, _ := http.NewRequest(http.MethodGet, "/transactions", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestTransactionHandler_PatchCategory(t *testing.T) {
	patchBody := func(category string) *bytes.Buffer {
		body, _ := json.Marshal(PatchCategoryRequest{Category: category})
		return bytes.NewBuffer(body)
	}

	t.Run("success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		stored := storedTransaction()
		stored.Category = "Treats"
		stored.CategoryIsUserSet = true
		mockService.On("PatchCategory", mock.Anything, stored.ID, "Treats").Return(stored, nil)

		router := setupTestRouter()
		router.PATCH("/transactions/:id", h.PatchCategory)

		req, _ := http.NewRequest(http.MethodPatch, "/transactions/"+stored.ID.String(), patchBody("Treats"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		resp := decodeResponse(t, rr)
		var tx TransactionResponse
		dataBytes, _ := json.Marshal(resp.Data)
		require.NoError(t, json.Unmarshal(dataBytes, &tx))
		assert.Equal(t, "Treats", tx.Category)
		assert.True(t, tx.CategoryIsUserSet)
	})

	t.Run("invalid transaction id", func(t *testing.T) {
		h := NewTransactionHandler(testLogger(), new(MockTransactionService))
		router := setupTestRouter()
		router.PATCH("/transactions/:id", h.PatchCategory)

		req, _ := http.NewRequest(http.MethodPatch, "/transactions/not-a-uuid", patchBody("Treats"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing category field", func(t *testing.T) {
		h := NewTransactionHandler(testLogger(), new(MockTransactionService))
		router := setupTestRouter()
		router.PATCH("/transactions/:id", h.PatchCategory)

		req, _ := http.NewRequest(http.MethodPatch, "/transactions/"+uuid.NewString(), bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("whitespace category", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		id := uuid.New()
		mockService.On("PatchCategory", mock.Anything, id, "   ").Return(nil, transaction.ErrEmptyCategory)

		router := setupTestRouter()
		router.PATCH("/transactions/:id", h.PatchCategory)

		req, _ := http.NewRequest(http.MethodPatch, "/transactions/"+id.String(), patchBody("   "))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_ARGUMENT", resp.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		id := uuid.New()
		mockService.On("PatchCategory", mock.Anything, id, "Treats").Return(nil, transaction.ErrTransactionNotFound{ID: id})

		router := setupTestRouter()
		router.PATCH("/transactions/:id", h.PatchCategory)

		req, _ := http.NewRequest(http.MethodPatch, "/transactions/"+id.String(), patchBody("Treats"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTransactionHandler_Clear(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		mockService.On("ClearAll", mock.Anything).Return(int64(42), nil)

		router := setupTestRouter()
		router.DELETE("/transactions/clear", h.Clear)

		req, _ := http.NewRequest(http.MethodDelete, "/transactions/clear", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		resp := decodeResponse(t, rr)
		var clear ClearResponse
		dataBytes, _ := json.Marshal(resp.Data)
		require.NoError(t, json.Unmarshal(dataBytes, &clear))
		assert.Equal(t, int64(42), clear.Deleted)
	})

	t.Run("idempotent on empty store", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		mockService.On("ClearAll", mock.Anything).Return(int64(0), nil)

		router := setupTestRouter()
		router.DELETE("/transactions/clear", h.Clear)

		req, _ := http.NewRequest(http.MethodDelete, "/transactions/clear", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(testLogger(), mockService)

		mockService.On("ClearAll", mock.Anything).Return(int64(0), errors.New("db error"))

		router := setupTestRouter()
		router.DELETE("/transactions/clear", h.Clear)

		req, _ := http.NewRequest(http.MethodDelete, "/transactions/clear", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
