// Package idgen produces entity identifiers and human-facing exam codes.
package idgen

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// Kind scopes generated ids by entity type.
type Kind string

const (
	KindExam     Kind = "exam"
	KindSection  Kind = "section"
	KindQuestion Kind = "question"
	KindAnswer   Kind = "answer"
	KindSession  Kind = "gsession"
)

// codeAlphabet is the restricted alphabet for exam codes. Codes are a
// best-effort random draw; store-wide uniqueness is the store's job.
const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
)

// Generator hands out process-unique ids per kind and random exam codes.
// Safe for concurrent use.
type Generator struct {
	mu       sync.Mutex
	counters map[Kind]*uint64
	rng      *rand.Rand
}

// New creates a Generator. seed fixes the exam-code RNG for tests;
// pass 0 for a time-based seed.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		counters: make(map[Kind]*uint64),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// NextID returns a monotonically distinct id scoped by kind, e.g.
// "question_17". No collision can occur within a process lifetime.
func (g *Generator) NextID(kind Kind) string {
	g.mu.Lock()
	ctr, ok := g.counters[kind]
	if !ok {
		ctr = new(uint64)
		g.counters[kind] = ctr
	}
	g.mu.Unlock()

	n := atomic.AddUint64(ctr, 1)
	return fmt.Sprintf("%s_%d", kind, n)
}

// NewExamCode returns an 8-character uppercase alphanumeric exam code.
// The caller must re-check store-wide uniqueness before persisting.
func (g *Generator) NewExamCode() string {
	buf := make([]byte, codeLength)
	g.mu.Lock()
	for i := range buf {
		buf[i] = codeAlphabet[g.rng.Intn(len(codeAlphabet))]
	}
	g.mu.Unlock()
	return string(buf)
}
