package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderup_backend/internal/feature/address/domain/entity"
	"orderup_backend/internal/feature/address/transport/handler"
	"orderup_backend/internal/feature/address/transport/http/dto"
	"orderup_backend/internal/feature/address/usecase"
	jwtmw "orderup_backend/internal/platform/jwt"
)

type mockAddressUsecase struct {
	ListFunc   func(ctx context.Context, userID uint) ([]entity.Address, error)
	CreateFunc func(ctx context.Context, userID uint, in usecase.CreateInput) (*entity.Address, error)
	UpdateFunc func(ctx context.Context, userID, addressID uint, in usecase.UpdateInput) (*entity.Address, error)
	DeleteFunc func(ctx context.Context, userID, addressID uint) error
}

func (m *mockAddressUsecase) List(ctx context.Context, userID uint) ([]entity.Address, error) {
	return m.ListFunc(ctx, userID)
}

func (m *mockAddressUsecase) Create(ctx context.Context, userID uint, in usecase.CreateInput) (*entity.Address, error) {
	return m.CreateFunc(ctx, userID, in)
}

func (m *mockAddressUsecase) Update(ctx context.Context, userID, addressID uint, in usecase.UpdateInput) (*entity.Address, error) {
	return m.UpdateFunc(ctx, userID, addressID, in)
}

func (m *mockAddressUsecase) Delete(ctx context.Context, userID, addressID uint) error {
	return m.DeleteFunc(ctx, userID, addressID)
}

func newRouter(uc handler.AddressUsecase, userID uint) *gin.Engine {
	h := handler.NewAddressHandler(uc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID > 0 {
			c.Set(jwtmw.ContextUserID, userID)
		}
		c.Next()
	})
	r.GET("/addresses", h.List)
	r.POST("/addresses", h.Create)
	r.PUT("/addresses/:id", h.Update)
	r.DELETE("/addresses/:id", h.Delete)
	return r
}

func send(r http.Handler, method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddressHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uc := &mockAddressUsecase{ListFunc: func(_ context.Context, userID uint) ([]entity.Address, error) {
		assert.Equal(t, uint(7), userID)
		return []entity.Address{{ID: 1, FullAddress: "12 Bole Rd", City: "Addis Ababa", IsDefault: true}}, nil
	}}

	w := send(newRouter(uc, 7), http.MethodGet, "/addresses", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body []dto.AddressRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.True(t, body[0].IsDefault)

	w = send(newRouter(uc, 0), http.MethodGet, "/addresses", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddressHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		ucErr          error
		expectedStatus int
	}{
		{"created", `{"full_address":"12 Bole Rd","city":"Addis Ababa","is_default":true}`, nil, http.StatusCreated},
		{"missing city", `{"full_address":"12 Bole Rd"}`, nil, http.StatusBadRequest},
		{"blank after trim", `{"full_address":" ","city":"X"}`, usecase.ErrAddressRequired, http.StatusBadRequest},
		{"racing default", `{"full_address":"A","city":"X","is_default":true}`, usecase.ErrDefaultChanged, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAddressUsecase{CreateFunc: func(_ context.Context, userID uint, in usecase.CreateInput) (*entity.Address, error) {
				if tt.ucErr != nil {
					return nil, tt.ucErr
				}
				return &entity.Address{ID: 4, UserID: userID, FullAddress: in.FullAddress, City: in.City, IsDefault: in.IsDefault}, nil
			}}

			w := send(newRouter(uc, 7), http.MethodPost, "/addresses", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAddressHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uc := &mockAddressUsecase{UpdateFunc: func(_ context.Context, _ uint, addressID uint, in usecase.UpdateInput) (*entity.Address, error) {
		if addressID == 99 {
			return nil, usecase.ErrAddressNotFound
		}
		require.NotNil(t, in.IsDefault)
		return &entity.Address{ID: addressID, FullAddress: "A", City: "X", IsDefault: *in.IsDefault}, nil
	}}
	r := newRouter(uc, 7)

	w := send(r, http.MethodPut, "/addresses/3", `{"is_default":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	var body dto.AddressRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.IsDefault)

	assert.Equal(t, http.StatusNotFound, send(r, http.MethodPut, "/addresses/99", `{"is_default":true}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPut, "/addresses/abc", `{}`).Code)
}

func TestAddressHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uc := &mockAddressUsecase{DeleteFunc: func(_ context.Context, _ uint, addressID uint) error {
		if addressID != 3 {
			return usecase.ErrAddressNotFound
		}
		return nil
	}}
	r := newRouter(uc, 7)

	w := send(r, http.MethodDelete, "/addresses/3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"address deleted"}`, w.Body.String())
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodDelete, "/addresses/4", "").Code)
}
