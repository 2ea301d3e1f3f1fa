package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	authmw "github.com/parusoft/shop-backend/internal/middleware/auth"
	"github.com/parusoft/shop-backend/internal/models"
	"github.com/parusoft/shop-backend/internal/repo"
	"github.com/parusoft/shop-backend/internal/service"
	"github.com/parusoft/shop-backend/internal/transport"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	Auth *AuthHTTP
	Cart *CartHTTP
	Prod *ProductHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductReview{},
		&models.Cart{},
		&models.CartItem{},
	))

	r := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{
		Repo:          r,
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	}

	return &testEnv{
		T:    t,
		E:    echo.New(),
		DB:   db,
		Auth: &AuthHTTP{Svc: authSvc},
		Cart: &CartHTTP{Svc: &service.CartService{Repo: r}},
		Prod: &ProductHTTP{Svc: &service.CatalogService{Repo: r}},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) asUser(c echo.Context, user *models.User) {
	c.Set(authmw.UserContextKey, user)
	c.Set(authmw.UserIDContextKey, user.ID)
}

func (env *testEnv) seedUser() *models.User {
	env.T.Helper()
	user := models.User{
		Name:         "test user",
		Email:        "user-" + uuid.NewString() + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

func (env *testEnv) seedProduct(name string, price float64) *models.Product {
	env.T.Helper()
	product := models.Product{
		Name:        name,
		Category:    "test",
		Price:       price,
		Description: "test product",
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return &product
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) transport.Envelope {
	t.Helper()
	var env transport.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func reDecode(t *testing.T, data interface{}, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
