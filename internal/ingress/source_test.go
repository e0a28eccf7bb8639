package ingress

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"dashnotify/internal/common"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "relay-secret"

func pushRequest(body, secret string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewBufferString(body))
	if secret != "" {
		req.Header.Set(SecretHeader, secret)
	}
	return req
}

func TestSource_DeliverAndUnsubscribe(t *testing.T) {
	source := NewSource(testSecret)

	var got []string
	unsubscribe := source.OnMessage(func(p common.PushPayload) {
		got = append(got, p.Title())
	})

	assert.Equal(t, 1, source.Deliver(common.PushPayload{Notification: &common.MessageNotification{Title: "one"}}))
	unsubscribe()
	assert.Equal(t, 0, source.Deliver(common.PushPayload{Notification: &common.MessageNotification{Title: "two"}}))

	assert.Equal(t, []string{"one"}, got)
}

func TestSource_DeliveryOrder(t *testing.T) {
	source := NewSource(testSecret)

	var order []int
	source.OnMessage(func(common.PushPayload) { order = append(order, 1) })
	source.OnMessage(func(common.PushPayload) { order = append(order, 2) })

	source.Deliver(common.PushPayload{})

	assert.Equal(t, []int{1, 2}, order)
}

func TestSource_Receive(t *testing.T) {
	source := NewSource(testSecret)
	router := mux.NewRouter()
	source.Routes(router)

	var received common.PushPayload
	source.OnMessage(func(p common.PushPayload) { received = p })

	body := `{"messageId":"m-1","notification":{"title":"Order Ready","body":"Your order #42 is ready"},"data":{"link":"/orders/42"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, pushRequest(body, testSecret))

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"delivered":1}`, rec.Body.String())
	assert.Equal(t, "m-1", received.MessageID)
	assert.Equal(t, "Order Ready", received.Title())
	require.NotNil(t, received.Link())
	assert.Equal(t, "/orders/42", *received.Link())
}

func TestSource_ReceiveMalformed(t *testing.T) {
	source := NewSource(testSecret)
	router := mux.NewRouter()
	source.Routes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, pushRequest(`{not json`, testSecret))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSource_ReceiveNoSubscribers(t *testing.T) {
	source := NewSource(testSecret)
	router := mux.NewRouter()
	source.Routes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, pushRequest(`{}`, testSecret))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"delivered":0}`, rec.Body.String())
}

func TestSource_ReceiveRejectsWithoutSecret(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		given      string
	}{
		{name: "missing header", configured: testSecret, given: ""},
		{name: "wrong secret", configured: testSecret, given: "guess"},
		{name: "source without secret", configured: "", given: ""},
		{name: "source without secret, header sent", configured: "", given: "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := NewSource(tt.configured)
			router := mux.NewRouter()
			source.Routes(router)

			delivered := 0
			source.OnMessage(func(common.PushPayload) { delivered++ })

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, pushRequest(`{"notification":{"title":"fake"}}`, tt.given))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, 0, delivered)
		})
	}
}
