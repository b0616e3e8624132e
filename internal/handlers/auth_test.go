package handlers_test

import (
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/inkgen/ai-blog/backend/internal/auth"
	"github.com/inkgen/ai-blog/backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app := newTestApp()
	email := gofakeit.Email()
	password := gofakeit.Password(true, true, true, false, false, 16)

	rec := app.request(t, http.MethodPost, "/register", models.RegisterRequest{
		Email:    email,
		Password: password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RegisterResponse
	decodeJSON(t, rec, &resp)
	require.Equal(t, "User created", resp.Message)
	require.NotZero(t, resp.UserID)

	stored, err := app.users.GetUserByEmail(email)
	require.NoError(t, err)
	require.Equal(t, resp.UserID, stored.ID)
	require.NotEqual(t, password, stored.PasswordHash)
	require.True(t, auth.CheckPassword(password, stored.PasswordHash))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp()
	req := models.RegisterRequest{
		Email:    gofakeit.Email(),
		Password: "first-password",
	}

	rec := app.request(t, http.MethodPost, "/register", req, "")
	require.Equal(t, http.StatusOK, rec.Code)

	req.Password = "second-password"
	rec = app.request(t, http.MethodPost, "/register", req, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, app.users.users, 1)
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	app := newTestApp()

	rec := app.request(t, http.MethodPost, "/register", map[string]string{
		"email": "not-an-email", "password": "secret",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodPost, "/register", map[string]string{
		"email": gofakeit.Email(),
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, app.users.users)
}

func TestToken(t *testing.T) {
	app := newTestApp()
	email := gofakeit.Email()
	user, _ := app.seedUser(t, email, "correct horse battery")

	rec := app.request(t, http.MethodPost, "/token", models.TokenRequest{
		Email:    email,
		Password: "correct horse battery",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenResponse
	decodeJSON(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := app.tokens.Decode(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.Email, claims.Subject)
}

func TestTokenInvalidCredentials(t *testing.T) {
	app := newTestApp()
	email := gofakeit.Email()
	app.seedUser(t, email, "right-password")

	rec := app.request(t, http.MethodPost, "/token", models.TokenRequest{
		Email:    email,
		Password: "wrong-password",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodPost, "/token", models.TokenRequest{
		Email:    gofakeit.Email(),
		Password: "whatever",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
