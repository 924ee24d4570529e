package services

import (
	"math"
	"sync"

	"github.com/diewo77/costopro/internal/policy"
	"github.com/diewo77/costopro/validation"
)

// RateBook holds the current foreign-to-base exchange rate in memory.
type RateBook struct {
	mu   sync.RWMutex
	rate float64
}

func NewRateBook(initial float64) *RateBook {
	return &RateBook{rate: initial}
}

func (b *RateBook) Rate() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rate
}

// SetRate replaces the rate. It must be a finite positive number.
func (b *RateBook) SetRate(session *Session, rate float64) error {
	if err := policy.Authorize(session.Role(), policy.OpUpdateRate); err != nil {
		return err
	}
	v := validation.Violations{}
	validation.PositiveFloat("exchange_rate", rate, v)
	if math.IsInf(rate, 0) {
		v.Add("exchange_rate", "out_of_range")
	}
	if err := validationErr(v); err != nil {
		return err
	}
	b.mu.Lock()
	b.rate = rate
	b.mu.Unlock()
	return nil
}
