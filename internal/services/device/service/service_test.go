package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/phone"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/crypt"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/store"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/domain"
	devicerepo "github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/repo"
	settingsdom "github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/domain"
)

// fakeSettings satisfies the settings port with canned values
type fakeSettings struct {
	dev        settingsdom.DeviceConfig
	configured bool
}

func (f fakeSettings) Get(context.Context) (settingsdom.Settings, error) {
	return settingsdom.Settings{}, nil
}

func (f fakeSettings) Update(context.Context, settingsdom.UpdateInput) (settingsdom.Settings, error) {
	return settingsdom.Settings{}, nil
}

func (f fakeSettings) Policy(context.Context) (phone.Policy, error) { return phone.Policy{}, nil }

func (f fakeSettings) Device(context.Context) (settingsdom.DeviceConfig, bool, error) {
	return f.dev, f.configured, nil
}

func newKeeper(t *testing.T) *crypt.Keeper {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return crypt.New(st)
}

func newRepo(t *testing.T) devicerepo.Repo {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return devicerepo.NewFiles(st)
}

// fakeDevice spins up a base station stand-in
func fakeDevice(t *testing.T, wantUser, wantPass string, refreshOK bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["username"] != wantUser || in["password"] != wantPass {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/system/central-phonebook", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !refreshOK {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "device busy"})
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"gigaset.local", "https://gigaset.local"},
		{"http://10.0.0.5", "http://10.0.0.5"},
		{"https://base/ ", "https://base"},
		{" https://base///", "https://base"},
	}
	for _, tc := range cases {
		if got := NormalizeURL(tc.in); got != tc.want {
			t.Fatalf("NormalizeURL(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestTest_SuccessAndBadCredentials(t *testing.T) {
	t.Parallel()

	srv := fakeDevice(t, "admin", "pw", true)
	s := New(newRepo(t), NewClient(), newKeeper(t), fakeSettings{})

	ok, err := s.Test(context.Background(), domain.TestInput{DeviceURL: srv.URL, Username: "admin", Password: "pw"})
	if err != nil {
		t.Fatalf("Test returned error: %v", err)
	}
	if !ok.Success {
		t.Fatalf("expected success, got %+v", ok)
	}

	bad, err := s.Test(context.Background(), domain.TestInput{DeviceURL: srv.URL, Username: "admin", Password: "nope"})
	if err != nil {
		t.Fatalf("Test returned error: %v", err)
	}
	if bad.Success {
		t.Fatalf("expected failure, got %+v", bad)
	}
	if bad.Message == "" {
		t.Fatal("failure must carry a message")
	}
}

func TestRefresh_FullCycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	srv := fakeDevice(t, "admin", "pw", true)

	keeper := newKeeper(t)
	enc, err := keeper.Encrypt("pw")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	rp := newRepo(t)
	s := New(rp, NewClient(), keeper, fakeSettings{
		dev:        settingsdom.DeviceConfig{DeviceURL: srv.URL, Username: "admin", Password: enc},
		configured: true,
	})

	res, err := s.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}

	ts, err := rp.Load(ctx)
	if err != nil {
		t.Fatalf("Load timestamps: %v", err)
	}
	if ts.DeviceRefreshed == nil {
		t.Fatal("refresh must record the device refresh timestamp")
	}
}

func TestRefresh_NotConfigured(t *testing.T) {
	t.Parallel()

	s := New(newRepo(t), NewClient(), newKeeper(t), fakeSettings{})
	if _, err := s.Refresh(context.Background()); err == nil {
		t.Fatal("expected error for unconfigured device")
	}
}

func TestRefresh_UndecryptablePassword(t *testing.T) {
	t.Parallel()

	s := New(newRepo(t), NewClient(), newKeeper(t), fakeSettings{
		dev:        settingsdom.DeviceConfig{DeviceURL: "gigaset.local", Username: "admin", Password: "junk:junk:junk"},
		configured: true,
	})
	if _, err := s.Refresh(context.Background()); err == nil {
		t.Fatal("expected error for undecryptable password")
	}
}

func TestRefresh_DeviceRejectsRefresh(t *testing.T) {
	t.Parallel()

	srv := fakeDevice(t, "admin", "pw", false)
	keeper := newKeeper(t)
	enc, _ := keeper.Encrypt("pw")

	s := New(newRepo(t), NewClient(), keeper, fakeSettings{
		dev:        settingsdom.DeviceConfig{DeviceURL: srv.URL, Username: "admin", Password: enc},
		configured: true,
	})
	res, err := s.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure result when the device rejects the refresh")
	}
}

func TestNeedsRefresh_Rules(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	ms := func(t time.Time) *int64 { v := t.UnixMilli(); return &v }

	s := New(newRepo(t), NewClient(), newKeeper(t), fakeSettings{})
	s.now = func() time.Time { return base }

	cases := []struct {
		name string
		ts   domain.Timestamps
		want bool
	}{
		{"never modified", domain.Timestamps{}, false},
		{"modified recently, never refreshed", domain.Timestamps{PhonebookModified: ms(base.Add(-time.Hour))}, true},
		{"modified after refresh", domain.Timestamps{
			PhonebookModified: ms(base.Add(-time.Hour)),
			DeviceRefreshed:   ms(base.Add(-2 * time.Hour)),
		}, true},
		{"refreshed after modification", domain.Timestamps{
			PhonebookModified: ms(base.Add(-2 * time.Hour)),
			DeviceRefreshed:   ms(base.Add(-time.Hour)),
		}, false},
		{"stale change auto-dismisses", domain.Timestamps{PhonebookModified: ms(base.Add(-25 * time.Hour))}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.needsRefresh(tc.ts); got != tc.want {
				t.Fatalf("needsRefresh(%+v) = %v want %v", tc.ts, got, tc.want)
			}
		})
	}
}

func TestStatus_ReflectsSettingsAndStamps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rp := newRepo(t)
	s := New(rp, NewClient(), newKeeper(t), fakeSettings{
		dev:        settingsdom.DeviceConfig{DeviceURL: "gigaset.local", Username: "admin", Password: "x:y:z", ShowRefreshReminder: true},
		configured: true,
	})

	if err := s.MarkPhonebookModified(ctx); err != nil {
		t.Fatalf("MarkPhonebookModified: %v", err)
	}

	st, err := s.Status(ctx)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if !st.Configured || !st.HasPassword || st.DeviceURL != "gigaset.local" {
		t.Fatalf("unexpected status %+v", st)
	}
	if !st.NeedsRefresh {
		t.Fatal("fresh modification should raise the refresh flag")
	}
	if st.PhonebookModified == nil {
		t.Fatal("modified timestamp missing from status")
	}
}
