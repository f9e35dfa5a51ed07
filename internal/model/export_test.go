package model

// SessionTokenizer exposes the session's tokenizer to external tests.
func SessionTokenizer(s *Session) *Tokenizer {
	return s.tokenizer
}
