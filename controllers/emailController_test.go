package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDispatcher struct {
	sent []mailer.Message
	err  error
}

func (f *fakeDispatcher) Send(message mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

func newEmailRouter(dispatcher mailer.Dispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.HandleMethodNotAllowed = true
	server.NoMethod(MethodNotAllowed)
	server.POST("/api/send-email", SendOrderEmail(dispatcher))
	return server
}

func orderEmailBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	payload := map[string]any{
		"orderNumber": "ORD-1700000000000-AB12CD34",
		"name":        "Ana Popescu",
		"email":       "ana@example.com",
		"phone":       "0712345678",
		"address":     "Str. Florilor 1, Bucuresti",
		"items": []map[string]any{
			{"productId": "p1", "name": "Oud Royal", "unitPrice": 250, "quantity": 2},
		},
		"total": 525,
		"notes": "",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestSendOrderEmailSuccess(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "owner@example.com")
	dispatcher := &fakeDispatcher{}
	server := newEmailRouter(dispatcher)

	request := httptest.NewRequest(http.MethodPost, "/api/send-email", orderEmailBody(t))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true}`, recorder.Body.String())

	require.Len(t, dispatcher.sent, 2)
	assert.Equal(t, "ana@example.com", dispatcher.sent[0].To)
	assert.Equal(t, "owner@example.com", dispatcher.sent[1].To)
	for _, message := range dispatcher.sent {
		assert.Contains(t, message.HTMLBody, "ORD-1700000000000-AB12CD34")
		assert.Contains(t, message.HTMLBody, "Oud Royal x2 - 500.00")
	}
}

func TestSendOrderEmailDeliveryFailure(t *testing.T) {
	dispatcher := &fakeDispatcher{err: errors.New("smtp: connection reset")}
	server := newEmailRouter(dispatcher)

	request := httptest.NewRequest(http.MethodPost, "/api/send-email", orderEmailBody(t))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "error")
}

func TestSendOrderEmailRejectsNonPost(t *testing.T) {
	server := newEmailRouter(&fakeDispatcher{})

	request := httptest.NewRequest(http.MethodGet, "/api/send-email", nil)
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestSendOrderEmailAcceptsZeroTotal(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "owner@example.com")
	dispatcher := &fakeDispatcher{}
	server := newEmailRouter(dispatcher)

	payload := map[string]any{
		"orderNumber": "ORD-1700000000000-AB12CD34",
		"name":        "Ana Popescu",
		"email":       "ana@example.com",
		"phone":       "0712345678",
		"address":     "Str. Florilor 1, Bucuresti",
		"items": []map[string]any{
			{"productId": "sample", "name": "Discovery Sample", "unitPrice": 0, "quantity": 1},
		},
		"total": 0,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/api/send-email", bytes.NewBuffer(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, dispatcher.sent, 2)
	assert.Contains(t, dispatcher.sent[0].HTMLBody, "Discovery Sample x1 - 0.00")
}

func newContactRouter(dispatcher mailer.Dispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.POST("/api/contact", SendContactMessage(dispatcher))
	return server
}

func TestSendContactMessageSuccess(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "owner@example.com")
	dispatcher := &fakeDispatcher{}
	server := newContactRouter(dispatcher)

	body := `{"name":"Ana Popescu","email":"ana@example.com","message":"Do you ship abroad?"}`
	request := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true}`, recorder.Body.String())

	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, "owner@example.com", dispatcher.sent[0].To)
	assert.Contains(t, dispatcher.sent[0].Subject, "Ana Popescu")
	assert.Contains(t, dispatcher.sent[0].HTMLBody, "ana@example.com")
	assert.Contains(t, dispatcher.sent[0].HTMLBody, "Do you ship abroad?")
}

func TestSendContactMessageDeliveryFailure(t *testing.T) {
	dispatcher := &fakeDispatcher{err: errors.New("smtp: connection reset")}
	server := newContactRouter(dispatcher)

	body := `{"name":"Ana","email":"ana@example.com","message":"Hello"}`
	request := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "error")
}

func TestSendContactMessageRejectsMissingFields(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	server := newContactRouter(dispatcher)

	request := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(`{"name":"Ana"}`))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, dispatcher.sent)
}

func TestSendOrderEmailRejectsMissingFields(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	server := newEmailRouter(dispatcher)

	request := httptest.NewRequest(http.MethodPost, "/api/send-email", bytes.NewBufferString(`{"name":"Ana"}`))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, dispatcher.sent)
}
