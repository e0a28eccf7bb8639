package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestPushPayload_Accessors(t *testing.T) {
	t.Run("empty payload", func(t *testing.T) {
		var p PushPayload
		assert.Equal(t, "", p.Title())
		assert.Equal(t, "", p.Body())
		assert.Equal(t, "", p.Image())
		assert.Nil(t, p.Link())
	})

	t.Run("full payload", func(t *testing.T) {
		p := PushPayload{
			Notification: &MessageNotification{Title: " Order Ready ", Body: "Your order #42 is ready", Image: "/img.png"},
			Data:         map[string]string{"link": "/orders/42"},
		}
		assert.Equal(t, "Order Ready", p.Title())
		assert.Equal(t, "Your order #42 is ready", p.Body())
		assert.Equal(t, "/img.png", p.Image())
		require.NotNil(t, p.Link())
		assert.Equal(t, "/orders/42", *p.Link())
	})

	t.Run("empty link is absent", func(t *testing.T) {
		p := PushPayload{Data: map[string]string{"link": ""}}
		assert.Nil(t, p.Link())
	})
}

func TestPermission_Granted(t *testing.T) {
	assert.True(t, PermissionGranted.Granted())
	assert.False(t, PermissionDenied.Granted())
	assert.False(t, PermissionDefault.Granted())
}

func TestGenerateAndValidToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "test", "user-1")
	require.NoError(t, err)

	claims, err := ValidToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "test", claims.Issuer)

	_, err = ValidToken([]byte("other"), token)
	assert.Error(t, err)
}

func TestEmptySecretRejected(t *testing.T) {
	_, err := GenerateToken(nil, "test", "admin")
	assert.ErrorIs(t, err, ErrEmptySecret)

	// a token signed with an empty hmac key must not validate against one
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "admin"}).SignedString([]byte(""))
	require.NoError(t, err)

	claims, err := ValidToken([]byte(""), forged)
	assert.ErrorIs(t, err, ErrEmptySecret)
	assert.Nil(t, claims)

	router := mux.NewRouter()
	router.Use(AuthMiddleware([]byte("")))
	router.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type nilCheckSource struct{}

func (*nilCheckSource) OnMessage(MessageHandler) Unsubscribe { return nil }

func TestIsNilSource(t *testing.T) {
	assert.True(t, IsNilSource(nil))

	var typed *nilCheckSource
	assert.True(t, IsNilSource(typed))

	assert.False(t, IsNilSource(&nilCheckSource{}))
}

func TestAuthMiddleware(t *testing.T) {
	token, err := GenerateToken(testSecret, "test", "user-7")
	require.NoError(t, err)

	router := mux.NewRouter()
	router.Use(AuthMiddleware(testSecret))
	router.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte(userID))
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "no header", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "user-7"},
		{name: "malformed header", header: token, wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
