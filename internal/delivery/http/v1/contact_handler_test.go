package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"davinci-contact-api/config"
	v1 "davinci-contact-api/internal/delivery/http/v1"
	"davinci-contact-api/internal/delivery/http/response"
	"davinci-contact-api/internal/usecase"
	"davinci-contact-api/pkg/email"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg *email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		GinMode:                   gin.TestMode,
		CORSAllowedOrigins:        []string{"https://davinci.agency"},
		EmailProvider:             config.ProviderResend,
		ResendAPIKey:              "re_test",
		ContactEmailFrom:          "noreply@davinci.agency",
		ContactEmailTo:            "apps@davinci.agency",
		RateLimitWindowSeconds:    60,
		RateLimitContactThreshold: 100,
	}
}

func newTestRouter(sender email.Sender, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := email.NewEmailService(sender, cfg.ContactEmailFrom, cfg.ContactEmailTo)
	return v1.NewRouter(v1.RouterDeps{
		ContactUC: usecase.NewContactUsecase(svc),
		HealthUC:  usecase.NewHealthUsecase(svc, nil),
		Config:    cfg,
	})
}

func postContact(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const validBody = `{"name":"Anna Kowalska","email":"anna@example.com","message":"Potrzebujemy nowej strony."}`

func TestSubmitContact(t *testing.T) {
	t.Run("Should send exactly one email and return 200", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *email.Message) bool {
			return msg.Subject == "Nowa wiadomość od Anna Kowalska" &&
				strings.Contains(msg.HTML, "anna@example.com") &&
				strings.Contains(msg.HTML, "Potrzebujemy nowej strony.")
		})).Return("email_1", nil).Once()

		w := postContact(newTestRouter(sender, testConfig()), validBody)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.True(t, body.Success)
		assert.Equal(t, "Email sent successfully", body.Message)
		assert.NotEmpty(t, body.RequestID)
		sender.AssertExpectations(t)
	})

	t.Run("Should send twice for two identical submissions", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("email_x", nil)
		r := newTestRouter(sender, testConfig())

		assert.Equal(t, http.StatusOK, postContact(r, validBody).Code)
		assert.Equal(t, http.StatusOK, postContact(r, validBody).Code)
		sender.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("Should return 500 when the provider fails", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("resend: 503 unavailable")).Once()

		w := postContact(newTestRouter(sender, testConfig()), validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Error sending email", body.Message)
		assert.Nil(t, body.Error)
		sender.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("Should expose the provider error when configured", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("resend: 503 unavailable")).Once()
		cfg := testConfig()
		cfg.ExposeErrors = true

		body := decodeBody(t, postContact(newTestRouter(sender, cfg), validBody))
		assert.Equal(t, "Error sending email", body.Message)
		assert.Contains(t, body.Error, "resend: 503 unavailable")
	})

	t.Run("Should escape markup in the email body", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("email_1", nil).Once()

		w := postContact(newTestRouter(sender, testConfig()),
			`{"name":"<script>x</script>","email":"a@b.co","message":"<b>hi</b>"}`)
		require.Equal(t, http.StatusOK, w.Code)

		msg := sender.Calls[0].Arguments.Get(1).(*email.Message)
		assert.Contains(t, msg.HTML, "&lt;script&gt;x&lt;/script&gt;")
		assert.NotContains(t, msg.HTML, "<script>")
		assert.NotContains(t, msg.HTML, "<b>hi</b>")
	})

	t.Run("Should reject a missing message without sending", func(t *testing.T) {
		sender := new(MockSender)

		w := postContact(newTestRouter(sender, testConfig()), `{"name":"Jan","email":"jan@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Invalid contact form data", body.Message)
		assert.Contains(t, body.Error, "Message: is required")
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should reject malformed JSON and bad emails", func(t *testing.T) {
		sender := new(MockSender)
		r := newTestRouter(sender, testConfig())

		assert.Equal(t, http.StatusBadRequest, postContact(r, `{"name":`).Code)
		assert.Equal(t, http.StatusBadRequest, postContact(r, `{"name":"Jan","email":"nope","message":"hi"}`).Code)
		assert.Equal(t, http.StatusBadRequest, postContact(r, `{"name":"Jan\r\nBcc: x@y.z","email":"jan@example.com","message":"hi"}`).Code)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should reject oversized bodies", func(t *testing.T) {
		sender := new(MockSender)
		huge := `{"name":"Jan","email":"jan@example.com","message":"` + strings.Repeat("a", 70<<10) + `"}`

		w := postContact(newTestRouter(sender, testConfig()), huge)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should return 503 when email is not configured", func(t *testing.T) {
		w := postContact(newTestRouter(nil, testConfig()), validBody)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "Contact service temporarily unavailable", decodeBody(t, w).Message)
	})

	t.Run("Should rate limit repeated submissions", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("email_x", nil)
		cfg := testConfig()
		cfg.RateLimitContactThreshold = 1
		r := newTestRouter(sender, cfg)

		assert.Equal(t, http.StatusOK, postContact(r, validBody).Code)
		assert.Equal(t, http.StatusTooManyRequests, postContact(r, validBody).Code)
		sender.AssertNumberOfCalls(t, "Send", 1)
	})
}

func postContactFrom(r *gin.Engine, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContactRateLimitClientIP(t *testing.T) {
	spoofed := []string{"203.0.113.1", "203.0.113.2", "203.0.113.3", "203.0.113.4", "203.0.113.5"}

	t.Run("Should ignore X-Forwarded-For from untrusted peers", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("email_x", nil)
		cfg := testConfig()
		cfg.RateLimitContactThreshold = 1
		r := newTestRouter(sender, cfg)

		var codes []int
		for _, ip := range spoofed {
			codes = append(codes, postContactFrom(r, ip).Code)
		}

		assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
		sender.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("Should key on X-Forwarded-For behind a trusted proxy", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("email_x", nil)
		cfg := testConfig()
		cfg.RateLimitContactThreshold = 1
		cfg.TrustedProxies = []string{"192.0.2.1"}
		r := newTestRouter(sender, cfg)

		for _, ip := range spoofed {
			assert.Equal(t, http.StatusOK, postContactFrom(r, ip).Code)
		}
		assert.Equal(t, http.StatusTooManyRequests, postContactFrom(r, spoofed[0]).Code)
		sender.AssertNumberOfCalls(t, "Send", 5)
	})
}

func TestContactMethodNotAllowed(t *testing.T) {
	sender := new(MockSender)
	r := newTestRouter(sender, testConfig())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/contact", bytes.NewBufferString(validBody))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, "POST", w.Header().Get("Allow"))
			assert.Equal(t, "Method not allowed", decodeBody(t, w).Message)
		})
	}

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestPreflightIsNotA405(t *testing.T) {
	r := newTestRouter(new(MockSender), testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://davinci.agency")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://davinci.agency", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	r := newTestRouter(new(MockSender), testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w).Data.(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "disabled", data["redis"])
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(new(MockSender), testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/careers", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
