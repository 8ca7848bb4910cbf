package password

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) SetPassword(ctx context.Context, userID int64, in models.PasswordChange) error {
	return m.Called(ctx, userID, in).Error(0)
}

func TestPasswordHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	body := `{"new_password":"newpassword1","current_password":"oldpassword"}`
	change := models.PasswordChange{NewPassword: "newpassword1", CurrentPassword: "oldpassword"}

	t.Run("пароль изменён", func(t *testing.T) {
		svc := new(AuthServiceMock)
		svc.On("SetPassword", mock.Anything, int64(4), change).Return(nil)
		req := httptest.NewRequest(http.MethodPost, "/api/users/set_password/", bytes.NewBufferString(body))
		req = req.WithContext(middlewarectx.WithUser(req.Context(), &models.User{ID: 4}))
		rec := httptest.NewRecorder()

		New(logger, svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("неверный текущий пароль", func(t *testing.T) {
		svc := new(AuthServiceMock)
		svc.On("SetPassword", mock.Anything, int64(4), change).
			Return(apperr.Validation("current_password", "current_password: invalid password"))
		req := httptest.NewRequest(http.MethodPost, "/api/users/set_password/", bytes.NewBufferString(body))
		req = req.WithContext(middlewarectx.WithUser(req.Context(), &models.User{ID: 4}))
		rec := httptest.NewRecorder()

		New(logger, svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"errors":["current_password: invalid password"]}`, rec.Body.String())
	})

	t.Run("аноним", func(t *testing.T) {
		svc := new(AuthServiceMock)
		rec := httptest.NewRecorder()

		New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/set_password/", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
