package suggest

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ChipCount is how many suggestions are shown on an empty chat.
const ChipCount = 3

// Fallback is shown when suggestions cannot be produced or fetched.
var Fallback = []string{
	"Explain the theory of relativity",
	"What are some healthy dinner recipes?",
	"Write a short story about a time traveler",
}

var defaultPrompts = []string{
	"Explain the theory of relativity",
	"What are some healthy dinner recipes?",
	"Write a short story about a time traveler",
	"How do I make a good cup of pour-over coffee?",
	"Summarize the history of the Roman Empire",
	"Give me a 3-day itinerary for Tokyo",
	"Explain how a neural network learns",
	"Write a haiku about the ocean",
	"What are the pros and cons of remote work?",
	"Help me plan a weekly workout routine",
	"Explain recursion with a simple example",
	"Suggest a few books for learning economics",
}

type Pool struct {
	mu      sync.Mutex
	prompts []string
	rng     *rand.Rand
}

func NewPool(prompts []string, seed int64) *Pool {
	cp := make([]string, len(prompts))
	copy(cp, prompts)
	return &Pool{prompts: cp, rng: rand.New(rand.NewSource(seed))}
}

// Default returns a pool over the built-in prompts.
func Default() *Pool {
	return NewPool(defaultPrompts, time.Now().UnixNano())
}

func (p *Pool) Size() int {
	return len(p.prompts)
}

// Sample draws n distinct prompts. It fails when the pool holds fewer than n.
func (p *Pool) Sample(n int) ([]string, error) {
	if n > len(p.prompts) {
		return nil, fmt.Errorf("suggestion pool has %d prompts, need %d", len(p.prompts), n)
	}

	p.mu.Lock()
	idx := p.rng.Perm(len(p.prompts))[:n]
	p.mu.Unlock()

	out := make([]string, n)
	for i, j := range idx {
		out[i] = p.prompts[j]
	}
	return out, nil
}

// Chips draws ChipCount prompts, or the fallback trio when the pool is too small.
func (p *Pool) Chips() []string {
	chips, err := p.Sample(ChipCount)
	if err != nil {
		return FallbackChips()
	}
	return chips
}

func FallbackChips() []string {
	out := make([]string, len(Fallback))
	copy(out, Fallback)
	return out
}
