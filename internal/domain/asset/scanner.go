package asset

import (
	"context"
	"fmt"
	"strings"

	"github.com/assettrack/backend/internal/domain/shared"
)

// RegistryLookup is the read-only registry dependency the scanner needs
// to validate candidate tokens.
type RegistryLookup interface {
	ExistsActiveByTag(ctx context.Context, tag string) (bool, error)
}

// ScanState is the caller-held scanner state: the accepted search tokens
// and the unconsumed remainder of the raw input buffer. A fresh zero
// value starts a new scan session.
type ScanState struct {
	Accepted  []string `json:"accepted"`
	Remainder string   `json:"remainder"`
}

// Search returns the search string to feed into the filter engine: the
// accepted tokens plus the remainder, space-joined.
func (s ScanState) Search() string {
	parts := make([]string, 0, len(s.Accepted)+1)
	parts = append(parts, s.Accepted...)
	if s.Remainder != "" {
		parts = append(parts, s.Remainder)
	}
	return strings.Join(parts, " ")
}

func (s ScanState) contains(token string) bool {
	for _, t := range s.Accepted {
		if t == token {
			return true
		}
	}
	return false
}

// TokenScanner incrementally slices a stream of concatenated fixed-length
// tags (operator typing or device scan input) into validated search
// tokens. It holds no session state itself.
type TokenScanner struct {
	lookup RegistryLookup
}

// NewTokenScanner creates a scanner backed by the given registry lookup
func NewTokenScanner(lookup RegistryLookup) *TokenScanner {
	return &TokenScanner{lookup: lookup}
}

// Feed appends an input increment to the state's buffer and consumes every
// complete 24-character candidate: duplicates of already-accepted tokens
// are discarded, candidates unknown to the registry are dropped, known
// ones are accepted. The partial tail stays buffered for the next call.
// On a lookup failure the original state is returned unchanged so the
// caller can retry the same increment.
func (s *TokenScanner) Feed(ctx context.Context, state ScanState, input string) (ScanState, error) {
	next := ScanState{
		Accepted:  append([]string(nil), state.Accepted...),
		Remainder: state.Remainder + normalizeScanInput(input),
	}

	for len(next.Remainder) >= TagLength {
		candidate := next.Remainder[:TagLength]
		rest := next.Remainder[TagLength:]

		if !next.contains(candidate) {
			exists, err := s.lookup.ExistsActiveByTag(ctx, candidate)
			if err != nil {
				return state, fmt.Errorf("%w: tag lookup failed: %v", shared.ErrUpstream, err)
			}
			if exists {
				next.Accepted = append(next.Accepted, candidate)
			}
		}
		next.Remainder = rest
	}

	return next, nil
}

func normalizeScanInput(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range strings.ToUpper(input) {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
