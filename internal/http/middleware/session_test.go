package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/saruni-spec/pin-registration/domain"
	"github.com/saruni-spec/pin-registration/internal/mocks"
)

func TestSessionMW_Resolve(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(tokenSvc *mocks.MockTokenService, sessionRepo *mocks.MockSessionRepository) (*gin.Engine, *map[string]any) {
		captured := map[string]any{}
		r := gin.New()
		mw := NewSessionMW(tokenSvc, sessionRepo, "etims_auth_token")
		r.GET("/probe", mw.Resolve(), func(c *gin.Context) {
			captured[CtxRole] = c.GetString(CtxRole)
			captured[CtxMSISDN] = c.GetString(CtxMSISDN)
			captured[CtxBearer] = c.GetString(CtxBearer)
			c.Status(http.StatusOK)
		})
		return r, &captured
	}

	t.Run("no cookie leaves the caller a guest", func(t *testing.T) {
		r, captured := newRouter(mocks.NewMockTokenService(), mocks.NewMockSessionRepository())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, RoleGuest, (*captured)[CtxRole])
		assert.Empty(t, (*captured)[CtxMSISDN])
	})

	t.Run("valid cookie resolves to a verified caller", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		sessionRepo := mocks.NewMockSessionRepository()
		_ = sessionRepo.Create(context.Background(), &domain.Session{
			ID:        "sess-1",
			MSISDN:    "254700000000",
			Token:     "bearer-abc",
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(10 * time.Minute),
		})

		r, captured := newRouter(tokenSvc, sessionRepo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.AddCookie(&http.Cookie{Name: "etims_auth_token", Value: "signed-sess-1"})
		r.ServeHTTP(w, req)

		assert.Equal(t, RoleVerified, (*captured)[CtxRole])
		assert.Equal(t, "254700000000", (*captured)[CtxMSISDN])
		assert.Equal(t, "bearer-abc", (*captured)[CtxBearer])
	})

	t.Run("malformed cookie degrades to guest", func(t *testing.T) {
		r, captured := newRouter(mocks.NewMockTokenService(), mocks.NewMockSessionRepository())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.AddCookie(&http.Cookie{Name: "etims_auth_token", Value: "garbage"})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, RoleGuest, (*captured)[CtxRole])
	})

	t.Run("cookie pointing at a dead session degrades to guest", func(t *testing.T) {
		r, captured := newRouter(mocks.NewMockTokenService(), mocks.NewMockSessionRepository())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.AddCookie(&http.Cookie{Name: "etims_auth_token", Value: "signed-sess-gone"})
		r.ServeHTTP(w, req)

		assert.Equal(t, RoleGuest, (*captured)[CtxRole])
	})
}
