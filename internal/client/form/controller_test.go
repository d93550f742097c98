package form_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/makeoverbyreet/makeover-contact/internal/client/form"
	"github.com/makeoverbyreet/makeover-contact/internal/client/notify"
)

// ---------- Mocks ----------

type recordingNotifier struct {
	mu    sync.Mutex
	shown []notify.Notification
}

func (r *recordingNotifier) Show(n notify.Notification) notify.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, n)
	return notify.Handle(len(r.shown))
}

func (r *recordingNotifier) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.shown...)
}

func (r *recordingNotifier) last() notify.Notification {
	all := r.all()
	if len(all) == 0 {
		return notify.Notification{}
	}
	return all[len(all)-1]
}

// ---------- Helpers ----------

func filled() form.Fields {
	return form.Fields{
		FirstName: " Jane ",
		LastName:  "Doe",
		Email:     " jane@x.com",
		Phone:     "555-1234",
		Service:   "Bridal",
		Message:   "  hello  ",
	}
}

func newController(t *testing.T, n form.Notifier, h http.HandlerFunc, opts ...form.Option) (*form.Controller, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]form.Option{form.WithEndpoint(srv.URL + "/contact"), form.WithHTTPClient(srv.Client())}, opts...)
	c := form.NewController(n, opts...)
	c.SetFields(filled())
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// ---------- Tests ----------

func TestSubmitSuccess(t *testing.T) {
	type seen struct {
		contentType string
		body        map[string]string
	}
	reqs := make(chan seen, 1)
	n := &recordingNotifier{}
	c, _ := newController(t, n, func(w http.ResponseWriter, r *http.Request) {
		var s seen
		s.contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&s.body)
		reqs <- s
		writeJSON(w, http.StatusOK, `{"success":true,"message":"ok"}`)
	})

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	req := <-reqs
	contentType, got := req.contentType, req.body

	if contentType != "application/json" {
		t.Errorf("content-type = %q", contentType)
	}
	want := map[string]string{
		"firstName": "Jane", "lastName": "Doe", "email": "jane@x.com", "phone": "555-1234",
		"service": "Bridal", "date": "", "message": "hello",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("payload[%s] = %q, want %q", k, got[k], v)
		}
	}

	shown := n.all()
	if len(shown) != 2 {
		t.Fatalf("notifications = %+v", shown)
	}
	if shown[0].Type != notify.Info || shown[0].Duration != 2*time.Second {
		t.Errorf("sending notification = %+v", shown[0])
	}
	if shown[1].Type != notify.Success {
		t.Errorf("result notification = %+v", shown[1])
	}
	if c.Fields() != (form.Fields{}) {
		t.Errorf("form not reset: %+v", c.Fields())
	}
}

func TestSubmitValidationSkipsNetwork(t *testing.T) {
	calls := make(chan struct{}, 1)
	n := &recordingNotifier{}
	c, _ := newController(t, n, func(w http.ResponseWriter, r *http.Request) {
		calls <- struct{}{}
	})
	f := filled()
	f.Phone = "   "
	c.SetFields(f)

	if err := c.Submit(context.Background()); !errors.Is(err, form.ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	if len(calls) != 0 {
		t.Error("network call made for invalid form")
	}
	if last := n.last(); last.Type != notify.Error || last.Title != "Validation Error" {
		t.Errorf("notification = %+v", last)
	}
	if b := c.Button(); b.Disabled || b.Label != form.IdleLabel {
		t.Errorf("button = %+v", b)
	}
}

func TestSubmitServerErrorUsesServerMessage(t *testing.T) {
	n := &recordingNotifier{}
	c, _ := newController(t, n, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"success":false,"error":"Please fill all required fields (Name, Email, Phone)."}`)
	})

	err := c.Submit(context.Background())
	var se *form.ServerError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadRequest {
		t.Fatalf("err = %v", err)
	}
	if last := n.last(); last.Type != notify.Error || last.Message != "Please fill all required fields (Name, Email, Phone)." {
		t.Errorf("notification = %+v", last)
	}
	if c.Fields() != filled() {
		t.Error("form reset after server error")
	}
}

func TestSubmitServerErrorNonJSON(t *testing.T) {
	n := &recordingNotifier{}
	c, _ := newController(t, n, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>bad gateway</html>", http.StatusBadGateway)
	})

	if err := c.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if last := n.last(); last.Message != "Failed to send message. Please try again." {
		t.Errorf("notification = %+v", last)
	}
}

func TestSubmitNetworkError(t *testing.T) {
	n := &recordingNotifier{}
	c, srv := newController(t, n, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	err := c.Submit(context.Background())
	if !errors.Is(err, form.ErrNetwork) {
		t.Fatalf("err = %v", err)
	}
	if last := n.last(); last.Title != "Network Error" {
		t.Errorf("notification = %+v", last)
	}
	if b := c.Button(); b.Disabled || b.Label != form.IdleLabel {
		t.Errorf("button = %+v", b)
	}
}

func TestButtonDisabledWhilePending(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusInternalServerError} {
		observed := make(chan form.Button, 1)
		var current atomic.Pointer[form.Controller]
		n := &recordingNotifier{}
		ctl, _ := newController(t, n, func(w http.ResponseWriter, r *http.Request) {
			observed <- current.Load().Button()
			writeJSON(w, status, `{}`)
		})
		current.Store(ctl)

		_ = ctl.Submit(context.Background())
		during := <-observed

		if !during.Disabled || during.Label != form.BusyLabel {
			t.Errorf("status %d: button during request = %+v", status, during)
		}
		if after := ctl.Button(); after.Disabled || after.Label != form.IdleLabel {
			t.Errorf("status %d: button after request = %+v", status, after)
		}
	}
}

func TestSecondSubmitWhilePendingIsIgnored(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var calls int
	var mu sync.Mutex
	n := &recordingNotifier{}
	c, _ := newController(t, n, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(entered)
		<-release
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-entered

	if err := c.Submit(context.Background()); !errors.Is(err, form.ErrSubmitInProgress) {
		t.Errorf("second submit err = %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("server calls = %d", calls)
	}
}

func TestButtonObserver(t *testing.T) {
	var states []form.Button
	n := &recordingNotifier{}
	c, _ := newController(t, n, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true}`)
	}, form.OnButtonChange(func(b form.Button) { states = append(states, b) }))

	if err := c.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(states) != 2 || !states[0].Disabled || states[1].Disabled {
		t.Errorf("states = %+v", states)
	}
}

func TestWorksWithNotificationCenter(t *testing.T) {
	center := notify.NewCenter()
	defer center.Close()
	c, _ := newController(t, center, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})

	if err := c.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	active := center.Active()
	if len(active) != 2 {
		t.Fatalf("active = %+v", active)
	}
	if active[1].Icon() != "✅" {
		t.Errorf("icon = %q", active[1].Icon())
	}
}
