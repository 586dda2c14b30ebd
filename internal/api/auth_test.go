package api

import (
	"net/http"
	"testing"

	"shop_system/internal/domain"
	"shop_system/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody() map[string]string {
	return map[string]string{
		"name":     "Jane",
		"email":    "Jane@Example.com",
		"password": "secret123",
		"phone":    "123",
		"address":  "Street 1",
		"answer":   "football",
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/register", "", registerBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User Register Successfully", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "answer")

	w = s.do(http.MethodPost, "/auth/register", "", registerBody())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Already Registered. Please login"}`, w.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	cases := []struct {
		field   string
		message string
	}{
		{"name", "Name is Required"},
		{"email", "Email is Required"},
		{"password", "Password is Required"},
		{"phone", "Phone number is Required"},
		{"address", "Address is Required"},
		{"answer", "Answer is Required"},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			body := registerBody()
			delete(body, tc.field)
			w := s.do(http.MethodPost, "/auth/register", "", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"message":"`+tc.message+`"}`, w.Body.String())
		})
	}

	body := registerBody()
	body["email"] = "invalid-email"
	w := s.do(http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Email format is invalid"}`, w.Body.String())
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "john@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["message"])

	w = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@example.com", "password": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Email is not registered", decode(t, w)["message"])

	w = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "john@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid Password"}`, w.Body.String())

	w = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "JOHN@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "login successfully", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "John Doe", user["name"])
	assert.NotContains(t, user, "password")
	claims, err := utils.ParseJWT(body["token"].(string), testSecret)
	require.NoError(t, err)
	assert.Equal(t, s.user.ID, claims.UserID)
}

func TestForgotPassword(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/forgot-password", "", map[string]string{"answer": "blue", "newPassword": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Email is required"}`, w.Body.String())

	w = s.do(http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "john@example.com", "answer": "red", "newPassword": "newpass1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Wrong Email or Answer", decode(t, w)["message"])

	w = s.do(http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "john@example.com", "answer": "blue", "newPassword": "newpass1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Password Reset Successfully"}`, w.Body.String())

	w = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "john@example.com", "password": "newpass1"})
	assert.Equal(t, true, decode(t, w)["success"])
}

func TestUpdateProfile(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/auth/profile", s.userToken, map[string]string{"password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Password is required and 6 character long"}`, w.Body.String())

	w = s.do(http.MethodPut, "/auth/profile", s.userToken, map[string]string{"name": "Johnny"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)["updatedUser"].(map[string]any)
	assert.Equal(t, "Johnny", updated["name"])
	assert.Equal(t, "555", updated["phone"], "unspecified fields are kept")
	assert.Equal(t, "Main St", updated["address"])

	var stored domain.User
	require.NoError(t, s.db.First(&stored, s.user.ID).Error)
	ok, err := utils.ComparePassword("password123", stored.Password)
	require.NoError(t, err)
	assert.True(t, ok, "password unchanged when omitted")

	w = s.do(http.MethodPut, "/auth/profile", "", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthChecks(t *testing.T) {
	s := newTestServer(t)

	assert.JSONEq(t, `{"ok":true}`, s.do(http.MethodGet, "/auth/user-auth", s.userToken, nil).Body.String())
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/auth/admin-auth", s.userToken, nil).Code)
	assert.JSONEq(t, `{"ok":true}`, s.do(http.MethodGet, "/auth/admin-auth", s.adminToken, nil).Body.String())
}
