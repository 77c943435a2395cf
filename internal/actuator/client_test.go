package actuator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newBridge(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL+"/", WithToken("tok"), WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return c
}

func TestNewHTTPClient_EmptyURL(t *testing.T) {
	if _, err := NewHTTPClient("  "); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}

func TestStart_SendsAuthAndAcceptsSuccess(t *testing.T) {
	var gotPath, gotAuth, gotMethod string
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAuth, gotMethod = r.URL.Path, r.Header.Get("Authorization"), r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	})

	before := testutil.ToFloat64(commandsTotal.WithLabelValues("start", "ok"))
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if gotPath != "/pump/start" || gotMethod != http.MethodPost || gotAuth != "Bearer tok" {
		t.Fatalf("unexpected request: %s %s auth=%q", gotMethod, gotPath, gotAuth)
	}
	if after := testutil.ToFloat64(commandsTotal.WithLabelValues("start", "ok")); after != before+1 {
		t.Fatalf("expected ok counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestStop_SuccessFalseIsNotAcknowledged(t *testing.T) {
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"serial port busy"}`))
	})
	err := c.Stop(context.Background())
	if !errors.Is(err, ErrNotAcknowledged) {
		t.Fatalf("expected ErrNotAcknowledged, got %v", err)
	}
}

func TestCommand_Non2xxIsNotAcknowledged(t *testing.T) {
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"boom"}`))
	})
	if err := c.Start(context.Background()); !errors.Is(err, ErrNotAcknowledged) {
		t.Fatalf("expected ErrNotAcknowledged, got %v", err)
	}
}

func TestCommand_TransportErrorIsNotNack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := NewHTTPClient(url)
	err := c.Start(context.Background())
	if err == nil || errors.Is(err, ErrNotAcknowledged) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestCommand_Serialized(t *testing.T) {
	var inflight, maxInflight int32
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inflight, 1)
		for {
			m := atomic.LoadInt32(&maxInflight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInflight, m, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inflight, -1)
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = c.Start(context.Background())
			} else {
				_ = c.Stop(context.Background())
			}
		}(i)
	}
	wg.Wait()
	if m := atomic.LoadInt32(&maxInflight); m != 1 {
		t.Fatalf("expected commands to be serialized, saw %d in flight", m)
	}
}

func TestReadSensors(t *testing.T) {
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sensors" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"humidite":42,"lumiere":610,"niveau_eau":80,"etat_pompe":1,"mode":"MANUEL"}`))
	})
	got, err := c.ReadSensors(context.Background())
	if err != nil {
		t.Fatalf("ReadSensors: %v", err)
	}
	want := SensorReading{Humidity: 42, Light: 610, WaterLevel: 80, PumpState: 1, Mode: "MANUEL"}
	if *got != want {
		t.Fatalf("got %+v want %+v", *got, want)
	}
}

func TestReadSensors_Non2xx(t *testing.T) {
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	if _, err := c.ReadSensors(context.Background()); err == nil {
		t.Fatalf("expected error on 503")
	}
}

func TestWithPaths(t *testing.T) {
	var got string
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Path
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	WithPaths("", "/api/arrosage/stop", "")(c)
	if err := c.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if got != "/api/arrosage/stop" {
		t.Fatalf("custom stop path not used: %q", got)
	}
}
