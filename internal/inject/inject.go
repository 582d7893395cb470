// Package inject supplies the simulated failure and latency decisions the
// order engine consults on every operation. Production uses the seeded
// random policy; tests plug in Fixed for deterministic paths.
package inject

import (
	"math/rand"
	"sync"
	"time"
)

// Injector is consulted by the engine at the points where the real system
// would hit an external dependency.
type Injector interface {
	// StockCheckFails simulates the warehouse rejecting a line item.
	StockCheckFails() bool
	// PaymentDenied simulates the payment gateway declining the charge.
	PaymentDenied() bool
	// InternalFault simulates an unexpected failure inside an update.
	InternalFault() bool
	// ProcessingDelay models payment/processing latency.
	ProcessingDelay() time.Duration
	// LookupDelay models read-path latency.
	LookupDelay() time.Duration
}

// Policy holds the probabilities and delay bounds for the random injector.
type Policy struct {
	StockFailChance   float64
	PaymentFailChance float64
	FaultChance       float64

	MinProcessingDelay time.Duration
	MaxProcessingDelay time.Duration
	MinLookupDelay     time.Duration
	MaxLookupDelay     time.Duration
}

// DefaultPolicy mirrors the simulation constants the service ships with:
// 5% stock failures, 15% payment denials, 5% internal faults.
func DefaultPolicy() Policy {
	return Policy{
		StockFailChance:    0.05,
		PaymentFailChance:  0.15,
		FaultChance:        0.05,
		MinProcessingDelay: 100 * time.Millisecond,
		MaxProcessingDelay: 400 * time.Millisecond,
		MinLookupDelay:     50 * time.Millisecond,
		MaxLookupDelay:     200 * time.Millisecond,
	}
}

// Random draws decisions from a private seeded source. The mutex matters:
// rand.Rand is not safe for the concurrent requests that share one injector.
type Random struct {
	mu     sync.Mutex
	rng    *rand.Rand
	policy Policy
}

// NewRandom builds a random injector. seed=0 seeds from the clock;
// a fixed seed makes a whole run reproducible.
func NewRandom(policy Policy, seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{rng: rand.New(rand.NewSource(seed)), policy: policy}
}

func (r *Random) chance(p float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < p
}

func (r *Random) between(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + time.Duration(r.rng.Int63n(int64(max-min)))
}

func (r *Random) StockCheckFails() bool { return r.chance(r.policy.StockFailChance) }
func (r *Random) PaymentDenied() bool   { return r.chance(r.policy.PaymentFailChance) }
func (r *Random) InternalFault() bool   { return r.chance(r.policy.FaultChance) }

func (r *Random) ProcessingDelay() time.Duration {
	return r.between(r.policy.MinProcessingDelay, r.policy.MaxProcessingDelay)
}

func (r *Random) LookupDelay() time.Duration {
	return r.between(r.policy.MinLookupDelay, r.policy.MaxLookupDelay)
}

// Fixed returns the same decision every time. Zero value: nothing fails,
// no delay.
type Fixed struct {
	FailStockCheck bool
	DenyPayment    bool
	Fault          bool
	Delay          time.Duration
}

func (f Fixed) StockCheckFails() bool          { return f.FailStockCheck }
func (f Fixed) PaymentDenied() bool            { return f.DenyPayment }
func (f Fixed) InternalFault() bool            { return f.Fault }
func (f Fixed) ProcessingDelay() time.Duration { return f.Delay }
func (f Fixed) LookupDelay() time.Duration     { return f.Delay }
