package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// RunTokenizer wraps a base tokenizer and merges adjacent Space tokens and
// adjacent OtherChar tokens into a single token per run.
//
// The grammar accepts a run of same-kind characters exactly where it accepts
// each of them individually, so merging changes token counts but never the
// text stored in the document.
//
// Example:
//
//	Input:  "key  = a b\n"
//	Base:   O O O S S = S O S O \n
//	Runs:   "key", "  ", =, " ", "a", " ", "b", \n
type RunTokenizer struct {
	base    tokenizer.Tokenizer
	pending *tokenizer.Token // first token past the last run
}

// NewRunTokenizer creates a run-merging tokenizer over base.
func NewRunTokenizer(base tokenizer.Tokenizer) *RunTokenizer {
	return &RunTokenizer{base: base}
}

// NextToken returns the next token, merged with any following tokens of the
// same run kind.
func (rt *RunTokenizer) NextToken() (*tokenizer.Token, bool) {
	first, ok := rt.take()
	if !ok {
		return nil, false
	}
	if !mergesRuns(first.Kind()) {
		return first, true
	}

	value := append([]rune(nil), first.Value()...)
	merged := false
	for {
		next, ok := rt.base.NextToken()
		if !ok {
			break
		}
		if next.Kind() != first.Kind() {
			held := *next
			rt.pending = &held
			break
		}
		value = append(value, next.Value()...)
		merged = true
	}

	if !merged {
		return first, true
	}
	return tokenizer.NewToken(first.Kind(), value), true
}

// take returns a private copy of the pending token or the next base token.
// The framework may reuse token storage between calls.
func (rt *RunTokenizer) take() (*tokenizer.Token, bool) {
	if rt.pending != nil {
		token := rt.pending
		rt.pending = nil
		return token, true
	}
	token, ok := rt.base.NextToken()
	if !ok {
		return nil, false
	}
	held := *token
	return &held, true
}

// Initialize initializes the tokenizer with a string input.
func (rt *RunTokenizer) Initialize(input string) {
	rt.base.Initialize(input)
	rt.Reset()
}

// InitializeFromStream initializes the tokenizer with a pre-configured stream.
func (rt *RunTokenizer) InitializeFromStream(stream tokenizer.Stream) {
	rt.base.InitializeFromStream(stream)
	rt.Reset()
}

// Reset drops any held lookahead token.
func (rt *RunTokenizer) Reset() {
	rt.pending = nil
}

func mergesRuns(kind string) bool {
	return kind == TokenSpace || kind == TokenOtherChar
}
