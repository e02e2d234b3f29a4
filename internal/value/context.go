package value

import "github.com/cespare/xxhash/v2"

// Context is the per-request tuple that parameterizes every deterministic
// choice the Value Builder makes. It's immutable within a single build
// call; recursing into an array or object element constructs a new
// Context rather than mutating this one.
type Context struct {
	// ID is the path parameter extracted for this request, or nil if
	// there wasn't one.
	ID *string

	// Seed is the current seed: the server's global base seed at the top
	// of a request, or a derived value for nested generation.
	Seed uint64

	// Size controls the length of any Generated array encountered while
	// building with this Context.
	Size uint64
}

// hashedKey computes the single scalar that drives every random-looking
// choice made while rendering ctx: hash64(id) + seed when an id is
// present, or seed alone otherwise. Go's unsigned arithmetic wraps on
// overflow, matching the reference implementation's wrapping add.
//
// The hash is github.com/cespare/xxhash/v2's Sum64String — a fast,
// non-cryptographic 64-bit hash. Nothing about its specific output is
// mandated by the design (any stable 64-bit hash satisfies the
// specification), but pinning one is what makes two builds of this server
// produce byte-identical responses for the same id and seed.
func hashedKey(ctx Context) uint64 {
	if ctx.ID != nil {
		return xxhash.Sum64String(*ctx.ID) + ctx.Seed
	}
	return ctx.Seed
}
