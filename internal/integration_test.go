package internal

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"onlinemaid-backend/config"
	"onlinemaid-backend/internal/api"
	"onlinemaid-backend/internal/notification"
	"onlinemaid-backend/internal/store"
	"onlinemaid-backend/internal/testutil"
)

type recordingSender struct {
	mu       sync.Mutex
	status   int
	payloads map[string][]string
}

func (s *recordingSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payloads == nil {
		s.payloads = map[string][]string{}
	}
	s.payloads[sub.Endpoint] = append(s.payloads[sub.Endpoint], string(payload))
	return &http.Response{StatusCode: s.status, Body: io.NopCloser(bytes.NewBufferString(""))}, nil
}

func (s *recordingSender) sent(endpoint string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.payloads[endpoint]...)
}

func (s *recordingSender) setStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
}

// TestContactEnquiryNotifiesStaff runs a contact form submission through the
// router, the store and the worker pool, down to the push transport.
func TestContactEnquiryNotifiesStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	cfg := config.Default()
	cfg.Database.Driver = config.DriverSQLite
	appStore := store.NewGormStore(testutil.NewMigratedDB(t))

	push := &webpush.Options{VAPIDPublicKey: "pub", VAPIDPrivateKey: "priv", TTL: cfg.Push.TTL}
	sender := &recordingSender{status: http.StatusCreated}
	pool := notification.NewWorkerPool(2, 8, appStore, push, logger).WithSender(sender)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	defer func() {
		cancel()
		pool.Wait()
	}()

	router := api.NewRouter(cfg, appStore, push, pool, logger)
	do := func(method, path, contentType, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.RemoteAddr = "198.51.100.20:5000"
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	const endpoint = "https://push.example.com/staff-1"
	w := do(http.MethodPut, "/api/subscriptions", "application/json",
		`{"endpoint":"`+endpoint+`","p256dh":"key","auth":"secret"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	form := url.Values{
		"first_name":               {"Siti"},
		"last_name":                {"Rahman"},
		"contact_number":           {"98765432"},
		"email":                    {"siti@example.org"},
		"maid_nationality":         {"IDN"},
		"maid_main_responsibility": {"CFI"},
		"maid_type":                {"TRA"},
		"maid_min_age":             {"28"},
		"maid_max_age":             {"40"},
		"remarks":                  {"Newborn arriving in March."},
	}
	w = do(http.MethodPost, "/api/contact", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Eventually(t, func() bool { return len(sender.sent(endpoint)) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t,
		"New enquiry from Siti Rahman: Indonesian, Care for Infants/Children, Transfer, age 28-40",
		sender.sent(endpoint)[0])

	// An expired subscription is dropped after the next notification.
	sender.setStatus(http.StatusGone)
	form.Set("first_name", "Ahmad")
	w = do(http.MethodPost, "/api/contact", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Eventually(t, func() bool {
		subs, err := appStore.ListSubscriptions(context.Background())
		return err == nil && len(subs) == 0
	}, 2*time.Second, 10*time.Millisecond)

	enquiries, err := appStore.ListContactEnquiries(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, enquiries, 2)

	w = do(http.MethodGet, "/admin/enquiries", "", "")
	assert.Equal(t, http.StatusForbidden, w.Code, "the caller is not on the admin list")
}
