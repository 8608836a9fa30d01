package notify

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type recorder struct {
	titles []string
	bodies []string
	err    error
}

func (r *recorder) Notify(title, body string) error {
	r.titles = append(r.titles, title)
	r.bodies = append(r.bodies, body)
	return r.err
}

func TestSlowLoad(t *testing.T) {
	tests := []struct {
		name      string
		threshold time.Duration
		elapsed   time.Duration
		want      bool
	}{
		{"disabled", 0, time.Minute, false},
		{"fast", 2 * time.Second, time.Second, false},
		{"at threshold", 2 * time.Second, 2 * time.Second, true},
		{"slow", 2 * time.Second, 5 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			got := SlowLoad(r, tt.threshold, tt.elapsed, "Chicago", 1234567)
			if got != tt.want {
				t.Errorf("SlowLoad() = %v, want %v", got, tt.want)
			}
			if got && len(r.bodies) != 1 {
				t.Fatalf("expected one notification, got %d", len(r.bodies))
			}
			if got && !strings.Contains(r.bodies[0], "Chicago: 1,234,567 trips") {
				t.Errorf("body = %q, want it to mention the trip count", r.bodies[0])
			}
		})
	}
}

func TestSlowLoad_DeliveryError(t *testing.T) {
	r := &recorder{err: errors.New("no notification daemon")}
	if SlowLoad(r, time.Second, time.Minute, "Washington", 10) {
		t.Error("SlowLoad() should report failure when delivery fails")
	}
	if len(r.titles) != 1 {
		t.Errorf("expected one attempt, got %d", len(r.titles))
	}
}

func TestSlowLoad_NilNotifier(t *testing.T) {
	if SlowLoad(nil, time.Second, time.Minute, "Chicago", 1) {
		t.Error("SlowLoad(nil) should not notify")
	}
}

func TestNoop(t *testing.T) {
	var n Notifier = Noop{}
	if err := n.Notify("t", "b"); err != nil {
		t.Errorf("Noop.Notify() = %v, want nil", err)
	}
}
