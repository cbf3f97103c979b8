package oldruins

import "sync/atomic"

// Guard hands out generation tokens so that a result computed for an older
// generation can be recognised and dropped instead of overwriting newer state.
type Guard struct {
	gen atomic.Uint64
}

// Token identifies the generation an operation started in.
type Token uint64

// Current returns a token for the current generation without advancing it.
func (g *Guard) Current() Token {
	return Token(g.gen.Load())
}

// Advance invalidates every outstanding token.
func (g *Guard) Advance() {
	g.gen.Add(1)
}

// Valid reports whether t still belongs to the current generation.
func (g *Guard) Valid(t Token) bool {
	return g.gen.Load() == uint64(t)
}
