package model

import (
	"context"
	"fmt"
	"strings"
)

// PaddingLeft pads shorter sequences on their left edge.
const PaddingLeft = "left"

// Tokenizer holds the special tokens of the loaded model and encodes text through the runtime.
type Tokenizer struct {
	PaddingSide    string
	MaxInputTokens int

	BOSToken string
	EOSToken string
	PadToken string

	// Ids are -1 when the model has no such token.
	BOSID int
	EOSID int
	PadID int
}

// Batch is a left-padded batch of encoded prompts.
type Batch struct {
	InputIDs      [][]int
	AttentionMask [][]int
}

// Unpadded returns the ids of row i whose attention mask is set.
func (b Batch) Unpadded(i int) []int {
	ids := make([]int, 0, len(b.InputIDs[i]))
	for j, id := range b.InputIDs[i] {
		if b.AttentionMask[i][j] == 1 {
			ids = append(ids, id)
		}
	}
	return ids
}

// loadTokenizer reads the special tokens from the runtime. A missing pad token is aliased to EOS.
func loadTokenizer(ctx context.Context, backend Backend, maxInputTokens int) (*Tokenizer, error) {
	props, err := backend.Props(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokenizer properties: %w", err)
	}

	if props.EOSToken == "" {
		return nil, fmt.Errorf("tokenizer defines no eos token")
	}

	tok := &Tokenizer{
		PaddingSide:    PaddingLeft,
		MaxInputTokens: maxInputTokens,
		BOSToken:       props.BOSToken,
		EOSToken:       props.EOSToken,
		PadToken:       props.PadToken,
		BOSID:          -1,
	}

	if tok.EOSID, err = specialTokenID(ctx, backend, tok.EOSToken); err != nil {
		return nil, err
	}

	if tok.BOSToken != "" {
		if tok.BOSID, err = specialTokenID(ctx, backend, tok.BOSToken); err != nil {
			return nil, err
		}
	}

	if tok.PadToken == "" {
		tok.PadToken = tok.EOSToken
		tok.PadID = tok.EOSID
	} else if tok.PadID, err = specialTokenID(ctx, backend, tok.PadToken); err != nil {
		return nil, err
	}

	return tok, nil
}

func specialTokenID(ctx context.Context, backend Backend, token string) (int, error) {
	ids, err := backend.Tokenize(ctx, token, true)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve special token %q: %w", token, err)
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("special token %q maps to %d ids, want 1", token, len(ids))
	}
	return ids[0], nil
}

// Encode tokenizes texts, truncates each to MaxInputTokens keeping the leading tokens,
// and left-pads the batch to its longest row.
func (t *Tokenizer) Encode(ctx context.Context, backend Backend, texts []string) (Batch, error) {
	rows := make([][]int, len(texts))
	longest := 0
	for i, text := range texts {
		ids, err := backend.Tokenize(ctx, text, false)
		if err != nil {
			return Batch{}, err
		}
		if t.MaxInputTokens > 0 && len(ids) > t.MaxInputTokens {
			ids = ids[:t.MaxInputTokens]
		}
		rows[i] = ids
		longest = max(longest, len(ids))
	}

	batch := Batch{
		InputIDs:      make([][]int, len(rows)),
		AttentionMask: make([][]int, len(rows)),
	}
	for i, ids := range rows {
		pad := longest - len(ids)
		input := make([]int, 0, longest)
		mask := make([]int, 0, longest)
		for range pad {
			input = append(input, t.PadID)
			mask = append(mask, 0)
		}
		for _, id := range ids {
			input = append(input, id)
			mask = append(mask, 1)
		}
		batch.InputIDs[i] = input
		batch.AttentionMask[i] = mask
	}
	return batch, nil
}

// SkipSpecial drops BOS, EOS and pad ids.
func (t *Tokenizer) SkipSpecial(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id == t.EOSID || id == t.PadID || (t.BOSID >= 0 && id == t.BOSID) {
			continue
		}
		out = append(out, id)
	}
	return out
}

var cleanupPairs = [][2]string{
	{" .", "."},
	{" ?", "?"},
	{" !", "!"},
	{" ,", ","},
	{" ' ", "'"},
	{" n't", "n't"},
	{" 'm", "'m"},
	{" 's", "'s"},
	{" 've", "'ve"},
	{" 're", "'re"},
}

// CleanUpTokenizationSpaces removes spaces that detokenization leaves before punctuation
// and English contractions. Replacements apply in order.
func CleanUpTokenizationSpaces(s string) string {
	for _, p := range cleanupPairs {
		s = strings.ReplaceAll(s, p[0], p[1])
	}
	return s
}
