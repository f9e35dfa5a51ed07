package llm

// TokenizeRequest is the payload for /tokenize.
type TokenizeRequest struct {
	Model        string `json:"model,omitempty"`
	Content      string `json:"content"`
	AddSpecial   bool   `json:"add_special"`
	ParseSpecial bool   `json:"parse_special"`
}

// TokenizeResponse is the response from /tokenize.
type TokenizeResponse struct {
	Tokens []int `json:"tokens"`
}

// DetokenizeRequest is the payload for /detokenize.
type DetokenizeRequest struct {
	Model  string `json:"model,omitempty"`
	Tokens []int  `json:"tokens"`
}

// DetokenizeResponse is the response from /detokenize.
type DetokenizeResponse struct {
	Content string `json:"content"`
}

// CompletionRequest is the payload for /completion.
// Prompt is sent as token ids so the server never re-tokenizes it.
// Model routes the request when the server runs several models.
type CompletionRequest struct {
	Model         string  `json:"model,omitempty"`
	Prompt        []int   `json:"prompt"`
	NPredict      int     `json:"n_predict"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	RepeatPenalty float64 `json:"repeat_penalty"`
	NProbs        int     `json:"n_probs"`
	Stream        bool    `json:"stream"`
	ReturnTokens  bool    `json:"return_tokens"`
	IgnoreEOS     bool    `json:"ignore_eos"`
	CachePrompt   bool    `json:"cache_prompt"`
}

// CompletionResponse is the response from /completion.
type CompletionResponse struct {
	Content         string `json:"content"`
	Tokens          []int  `json:"tokens"`
	TokensPredicted int    `json:"tokens_predicted"`
	TokensEvaluated int    `json:"tokens_evaluated"`
	StoppedEOS      bool   `json:"stopped_eos"`
	StoppedLimit    bool   `json:"stopped_limit"`
	Truncated       bool   `json:"truncated"`
}

// Props is the subset of /props the tokenizer setup needs.
type Props struct {
	ModelPath  string `json:"model_path"`
	BOSToken   string `json:"bos_token"`
	EOSToken   string `json:"eos_token"`
	PadToken   string `json:"pad_token,omitempty"`
	TotalSlots int    `json:"total_slots"`
}
