package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"shop_system/internal/catalog"
	"shop_system/internal/dbtest"
	"shop_system/internal/domain"
	"shop_system/internal/orders"
	"shop_system/internal/payment/paymenttest"
	"shop_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t          *testing.T
	db         *gorm.DB
	router     *gin.Engine
	gateway    *paymenttest.Gateway
	admin      domain.User
	user       domain.User
	adminToken string
	userToken  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := dbtest.New(t)
	gw := paymenttest.New()
	svc := orders.NewService(db, gw, nil, nil, orders.PolicyFree)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), Deps{
		DB:        db,
		Catalog:   catalog.NewStore(db),
		Orders:    svc,
		JWTSecret: testSecret,
	})
	s := &testServer{t: t, db: db, router: r, gateway: gw}
	s.admin = s.createUser("Admin", "admin@example.com", "adminpass", domain.RoleAdmin)
	s.user = s.createUser("John Doe", "john@example.com", "password123", domain.RoleUser)
	s.adminToken = s.token(s.admin.ID)
	s.userToken = s.token(s.user.ID)
	return s
}

func (s *testServer) createUser(name, email, password string, role int) domain.User {
	s.t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(s.t, err)
	u := domain.User{Name: name, Email: email, Password: hash, Phone: "555", Address: "Main St", Answer: "blue", Role: role}
	require.NoError(s.t, s.db.Create(&u).Error)
	return u
}

func (s *testServer) token(userID uint) string {
	s.t.Helper()
	tok, err := utils.GenerateJWT(userID, testSecret)
	require.NoError(s.t, err)
	return tok
}

// do sends body (JSON-encoded unless already a *bytes.Buffer) with an optional bearer token
func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return s.serve(req, token)
}

func (s *testServer) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// form sends a multipart product form; photo may be nil
func (s *testServer) form(method, path, token string, fields map[string]string, photo []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	if photo != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="photo"; filename="photo.png"`)
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		require.NoError(s.t, err)
		_, err = part.Write(photo)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.serve(req, token)
}

func (s *testServer) category(name string) domain.Category {
	s.t.Helper()
	c, err := catalog.NewStore(s.db).CreateCategory(context.Background(), name)
	require.NoError(s.t, err)
	return *c
}

func (s *testServer) product(name string, categoryID uint, price string) domain.Product {
	s.t.Helper()
	w := s.form(http.MethodPost, "/product/create-product", s.adminToken, map[string]string{
		"name":        name,
		"description": name + " description",
		"price":       price,
		"category":    fmt.Sprint(categoryID),
		"quantity":    "5",
		"shipping":    "true",
	}, []byte("\x89PNG fake"))
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		Products domain.Product `json:"products"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Products
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func jsonUnmarshal(w *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}
