package rate

import (
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	burst := 1

	interval := 10 * time.Millisecond
	lim := Every(interval)
	r := NewLimiter(burst, 100, lim)
	defer r.Stop()

	tooshort := 1 * time.Millisecond

	client := "test@test.com"
	expected := []bool{true, false, true, true, false, false}
	waits := []time.Duration{tooshort, interval, interval, tooshort, tooshort, tooshort}
	for i, exp := range expected {
		if got := r.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterWithBurst(t *testing.T) {
	client := "test@test.com"
	burst := 10

	interval := 100 * time.Millisecond
	lim := Every(interval)

	tooshort := 10 * time.Millisecond

	shortest := 1 * time.Millisecond

	expected := []bool{true, true, true, true, true, true, true, true, true, true}
	waits := []time.Duration{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	expected = append(expected, false, true, true, false, false, false)
	waits = append(waits, interval, interval, tooshort, tooshort, shortest, shortest)

	rr := NewLimiter(burst, 100, lim)
	defer rr.Stop()
	for i, exp := range expected {
		if got := rr.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterSweep(t *testing.T) {
	lim := NewLimiter(1, 5, Every(time.Second))
	defer lim.Stop()

	lim.Check("10.0.0.1")
	lim.Check("10.0.0.2")
	if got := lim.Clients(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	lim.sweep(time.Now().Add(time.Minute))
	if got := lim.Clients(); got != 2 {
		t.Fatalf("sweep before expiry: expected 2 clients, got %d", got)
	}

	lim.sweep(time.Now().Add(6 * time.Minute))
	if got := lim.Clients(); got != 0 {
		t.Fatalf("sweep after expiry: expected 0 clients, got %d", got)
	}

	// a swept client starts with a fresh bucket
	if !lim.Check("10.0.0.1") {
		t.Fatal("expected fresh bucket to allow the first request")
	}

	lim.Stop()
	lim.Stop()
}
