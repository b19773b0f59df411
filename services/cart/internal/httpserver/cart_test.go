package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satancra/bookstore/pkg/bookclient"
	"github.com/satancra/bookstore/pkg/respond"
	"github.com/satancra/bookstore/pkg/userclient"
	"github.com/satancra/bookstore/services/cart/internal/models"
	"github.com/satancra/bookstore/services/cart/internal/repo"
	"github.com/satancra/bookstore/services/cart/internal/service"
)

type testEnv struct {
	E  *echo.Echo
	H  *CartHTTP
	DB *gorm.DB
}

type stubPricer struct {
	prices map[uint]float64
}

func (s stubPricer) GetBookDetails(_ context.Context, bookID uint) (*bookclient.BookDetails, error) {
	price, ok := s.prices[bookID]
	if !ok {
		return nil, bookclient.ErrNotFound
	}
	return &bookclient.BookDetails{ID: bookID, Title: "book", Price: price}, nil
}

type stubUsers struct{}

func (stubUsers) GetUser(_ context.Context, userID uint) (*userclient.UserInfo, error) {
	return &userclient.UserInfo{ID: userID, Username: "test_user", Phone: "555-0100"}, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	// :memory: is per-connection; keep the pool at one so every query sees
	// the same database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.CartItem{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	pricer := stubPricer{prices: map[uint]float64{1: 10.00, 2: 5.00}}
	svc := service.NewCartService(&repo.GormRepo{DB: db}, pricer, nil)

	return &testEnv{
		E:  echo.New(),
		H:  &CartHTTP{Svc: svc, Users: stubUsers{}},
		DB: db,
	}
}

func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) respond.Envelope {
	t.Helper()

	var env respond.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAddCartItemHandler(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/addcartitem", map[string]any{
		"userId": 1, "bookId": 1, "quantity": 2,
	})
	require.NoError(t, env.H.AddCartItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.True(t, resp.Success)

	var items int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Count(&items).Error)
	require.EqualValues(t, 1, items)
}

func TestAddCartItemHandler_UnknownBook(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/addcartitem", map[string]any{
		"userId": 1, "bookId": 999, "quantity": 1,
	})
	require.NoError(t, env.H.AddCartItem(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, respond.CodeNotFound, resp.Code)
}

func TestAddCartItemHandler_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/addcartitem", map[string]any{
		"userId": 1,
	})
	require.NoError(t, env.H.AddCartItem(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, respond.CodeValidation, resp.Code)
}

func TestCheckoutHandler(t *testing.T) {
	env := newTestEnv(t)

	for _, item := range []models.CartItem{
		{UserID: 1, BookID: 1, Quantity: 2},
		{UserID: 1, BookID: 2, Quantity: 1},
	} {
		require.NoError(t, env.DB.Create(&item).Error)
	}

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/checkout", map[string]any{
		"userId": 1, "address": "Main st 1", "paymentMethod": "card",
	})
	require.NoError(t, env.H.Checkout(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.True(t, resp.Success)

	data, _ := resp.Data.(map[string]any)
	require.EqualValues(t, 25.00, data["total"])
	require.NotZero(t, data["order_id"])
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/checkout", map[string]any{
		"userId": 1, "address": "Main st 1", "paymentMethod": "card",
	})
	require.NoError(t, env.H.Checkout(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, respond.CodeEmptyCart, resp.Code)
}

func TestCheckoutHandler_MissingAddress(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.DB.Create(&models.CartItem{UserID: 1, BookID: 1, Quantity: 1}).Error)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/checkout", map[string]any{
		"userId": 1, "paymentMethod": "card",
	})
	require.NoError(t, env.H.Checkout(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.Equal(t, respond.CodeValidation, resp.Code)
}

func TestGetOrderInfoHandler(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.DB.Create(&models.CartItem{UserID: 1, BookID: 1, Quantity: 1}).Error)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/checkout", map[string]any{
		"userId": 1, "address": "Main st 1", "paymentMethod": "card",
	})
	require.NoError(t, env.H.Checkout(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeEnvelope(t, rec)
	data, _ := resp.Data.(map[string]any)
	orderID := strconv.Itoa(int(data["order_id"].(float64)))

	rec2, c2 := env.doJSONRequest(http.MethodGet, "/cart/getorderinfo/"+orderID, nil)
	c2.SetParamNames("id")
	c2.SetParamValues(orderID)
	require.NoError(t, env.H.GetOrderInfo(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	info := decodeEnvelope(t, rec2)
	require.True(t, info.Success)

	infoData, _ := info.Data.(map[string]any)
	purchaser, _ := infoData["purchaser"].(map[string]any)
	require.Equal(t, "test_user", purchaser["username"])
	require.Equal(t, "555-0100", purchaser["phone"])
}

func TestGetOrderInfoHandler_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/cart/getorderinfo/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, env.H.GetOrderInfo(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatusHandler_UnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/updateorderstatus/1", map[string]any{
		"status": "teleported",
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.H.UpdateOrderStatus(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.Equal(t, respond.CodeValidation, resp.Code)
}
