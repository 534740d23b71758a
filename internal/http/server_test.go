package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"givetrack/internal/ledger"
)

func newTestServer(t *testing.T, opts ...ledger.Option) (*Server, *ledger.Store) {
	t.Helper()
	store := ledger.New(context.Background(), nil, opts...)
	srv := NewServer(":0", store, nil, Options{SubmitDelay: 0})
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, store
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHomeAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := get(srv, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("home status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Healthcare") {
		t.Fatalf("home body missing category name")
	}
	if !strings.Contains(body, "Alex Johnson") {
		t.Fatalf("home body missing recent donor")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := get(srv, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestHomeRejectsUnknownPath(t *testing.T) {
	srv, _ := newTestServer(t)
	if rr := get(srv, "/no-such-page"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCategoriesSearch(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := get(srv, "/categories?q=water")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Clean Water") {
		t.Fatalf("search should match Clean Water")
	}
	if strings.Contains(body, "Animal Welfare") {
		t.Fatalf("search should not include unrelated categories")
	}
}

func TestCreateDonationValidationAndSuccess(t *testing.T) {
	srv, store := newTestServer(t)
	before := len(store.Donations())

	// Wrong method
	rr := get(srv, "/donations")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Invalid amount
	rr = postForm(srv, "/donations", url.Values{
		"amount": {"abc"}, "name": {"Pat"}, "email": {"pat@example.com"}, "category": {"1"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad amount, got %d", rr.Code)
	}

	// Missing name
	rr = postForm(srv, "/donations", url.Values{
		"amount": {"25"}, "name": {"  "}, "email": {"pat@example.com"}, "category": {"1"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty name, got %d", rr.Code)
	}

	// Bad email
	rr = postForm(srv, "/donations", url.Values{
		"amount": {"25"}, "name": {"Pat"}, "email": {"not-an-email"}, "category": {"1"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad email, got %d", rr.Code)
	}

	if len(store.Donations()) != before {
		t.Fatalf("rejected submissions must not mutate the ledger")
	}

	// Success
	rr = postForm(srv, "/donations", url.Values{
		"amount": {"25"}, "name": {"Pat"}, "email": {"pat@example.com"}, "category": {"1"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	trigger := rr.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "donation:created") {
		t.Fatalf("missing donation:created trigger, got %q", trigger)
	}
	if !strings.Contains(rr.Body.String(), "/receipt?donation=") {
		t.Fatalf("success fragment missing receipt link")
	}
	if len(store.Donations()) != before+1 {
		t.Fatalf("donation not recorded")
	}
}

func TestCreateDonationAnonymousDisplay(t *testing.T) {
	srv, store := newTestServer(t)

	rr := postForm(srv, "/donations", url.Values{
		"amount": {"40"}, "name": {"Quiet Giver"}, "email": {"q@example.com"},
		"category": {"2"}, "anonymous": {"on"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "Quiet Giver") {
		t.Fatalf("anonymous donor name leaked into response")
	}

	d := store.Donations()[0]
	if !d.Anonymous || d.Name != "Quiet Giver" {
		t.Fatalf("stored record should keep the real name behind the flag, got %+v", d)
	}
}

func TestDonationInvalidatesCachedAggregates(t *testing.T) {
	var srv *Server
	store := ledger.New(context.Background(), nil, ledger.WithMutateHook(func() {
		if srv != nil {
			srv.InvalidateCaches()
		}
	}))
	srv = NewServer(":0", store, nil, Options{SubmitDelay: 0})
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	before := srv.categoryViews()
	var healthcareBefore categoryView
	for _, v := range before {
		if v.ID == "1" {
			healthcareBefore = v
		}
	}

	rr := postForm(srv, "/donations", url.Values{
		"amount": {"1000"}, "name": {"Pat"}, "email": {"pat@example.com"}, "category": {"1"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}

	after := srv.categoryViews()
	for _, v := range after {
		if v.ID == "1" && v.RaisedDisplay == healthcareBefore.RaisedDisplay {
			t.Fatalf("cached raised total not refreshed after donation")
		}
	}
}

func TestTestimonialsPage(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := get(srv, "/testimonials")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Michael Brown") {
		t.Fatalf("testimonial wall missing seeded story")
	}

	// Role filter excludes the other role's stories.
	rr = get(srv, "/testimonials?role=recipient")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "Michael Brown") {
		t.Fatalf("donor story should be filtered out")
	}
	if !strings.Contains(body, "Sarah Johnson") {
		t.Fatalf("recipient story missing from filtered wall")
	}
}

func TestCreateTestimonial(t *testing.T) {
	srv, store := newTestServer(t)
	before := len(store.Testimonials())

	// Missing message
	rr := postForm(srv, "/testimonials", url.Values{
		"name": {"Sam"}, "role": {"donor"}, "message": {""},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Bad role
	rr = postForm(srv, "/testimonials", url.Values{
		"name": {"Sam"}, "role": {"board-member"}, "message": {"Great cause"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad role, got %d", rr.Code)
	}

	// Success
	rr = postForm(srv, "/testimonials", url.Values{
		"name": {"Sam"}, "role": {"donor"}, "message": {"Great cause"}, "category": {"3"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "testimonial:created") {
		t.Fatalf("missing testimonial:created trigger")
	}
	if len(store.Testimonials()) != before+1 {
		t.Fatalf("testimonial not recorded")
	}
}

func TestProfilePage(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := get(srv, "/profile")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Total given") {
		t.Fatalf("profile missing summary block")
	}

	// Category filter narrows the grouped chart to one cause.
	rr = get(srv, "/profile?category=1&window=all")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body = rr.Body.String()
	if !strings.Contains(body, "Healthcare") {
		t.Fatalf("filtered profile missing selected cause")
	}
}

func TestReceipt(t *testing.T) {
	srv, store := newTestServer(t)

	id := store.Donations()[0].ID
	rr := get(srv, "/receipt?donation="+id)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), id) {
		t.Fatalf("receipt missing donation id")
	}

	if rr := get(srv, "/receipt?donation=nope"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown donation, got %d", rr.Code)
	}
	if rr := get(srv, "/receipt"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without id, got %d", rr.Code)
	}
}

func TestRateLimiterBlocksBursts(t *testing.T) {
	store := ledger.New(context.Background(), nil)
	srv := NewServer(":0", store, nil, Options{SubmitDelay: 0, RateLimitPerMinute: 2})
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	form := url.Values{
		"amount": {"5"}, "name": {"Pat"}, "email": {"pat@example.com"}, "category": {"1"},
	}

	var last int
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "10.0.0.1:1234"
		srv.Handler.ServeHTTP(rr, req)
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("third burst request should be limited, got %d", last)
	}

	// GETs are never limited.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET should not be rate limited, got %d", rr.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := get(srv, "/")
	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if rr.Header().Get(h) == "" {
			t.Fatalf("missing security header %s", h)
		}
	}
}
