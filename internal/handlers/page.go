package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"instructchat/internal/config"
	"instructchat/internal/contextutil"
	"instructchat/internal/model"
	"instructchat/internal/render"
	"instructchat/internal/service"
)

// PageHandler serves the chat page and its form actions.
type PageHandler struct {
	controller          service.ChatController
	template            *template.Template
	title               string
	footer              string
	defaultMaxNewTokens int
}

// pageData holds template data for the chat page.
type pageData struct {
	Title        string
	Footer       string
	Turns        []render.Element
	MaxNewTokens int
	Min          int
	Max          int
	LoadError    string
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(controller service.ChatController, title, footer string, defaultMaxNewTokens int) *PageHandler {
	return &PageHandler{
		controller:          controller,
		template:            template.Must(template.New("page").Parse(pageTemplate)),
		title:               title,
		footer:              footer,
		defaultMaxNewTokens: config.ClampMaxNewTokens(defaultMaxNewTokens),
	}
}

// Index renders the chat page, or the blocking error page when the model is unavailable.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	data := pageData{
		Title:        h.title,
		Footer:       h.footer,
		MaxNewTokens: h.maxNewTokens(r.URL.Query().Get("max_new_tokens")),
		Min:          model.MinNewTokens,
		Max:          model.MaxNewTokens,
	}

	status := http.StatusOK
	if err := h.controller.Status(); err != nil {
		logger.WarnContext(ctx, "serving blocking error page", "error", err)
		data.LoadError = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		turns, err := h.controller.History(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load history", "error", err)
			http.Error(w, "failed to load chat history", http.StatusInternalServerError)
			return
		}
		data.Turns = render.Turns(turns)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.template.Execute(w, data); err != nil {
		logger.ErrorContext(ctx, "failed to execute page template", "error", err)
	}
}

// Submit handles the chat form and redirects back to the page.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		logger.WarnContext(ctx, "invalid form body", "error", err)
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	maxNewTokens := h.maxNewTokens(r.PostForm.Get("max_new_tokens"))
	_, err := h.controller.Submit(ctx, service.ChatRequest{
		Message:      r.PostForm.Get("message"),
		MaxNewTokens: maxNewTokens,
	})
	// An unavailable model is reported by the page itself.
	if err != nil && !errors.Is(err, service.ErrModelUnavailable) {
		logger.ErrorContext(ctx, "chat submission failed", "error", err)
		http.Error(w, "failed to process message", http.StatusInternalServerError)
		return
	}

	h.redirectHome(w, r, maxNewTokens)
}

// Clear handles the Clear Chat button and redirects back to the page.
func (h *PageHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.controller.Clear(ctx); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to clear chat", "error", err)
		http.Error(w, "failed to clear chat", http.StatusInternalServerError)
		return
	}

	_ = r.ParseForm()
	h.redirectHome(w, r, h.maxNewTokens(r.PostForm.Get("max_new_tokens")))
}

func (h *PageHandler) redirectHome(w http.ResponseWriter, r *http.Request, maxNewTokens int) {
	target := "/"
	if maxNewTokens != h.defaultMaxNewTokens {
		target += "?" + url.Values{"max_new_tokens": {strconv.Itoa(maxNewTokens)}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// maxNewTokens parses a slider value, falling back to the default and clamping to range.
func (h *PageHandler) maxNewTokens(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return h.defaultMaxNewTokens
	}
	return config.ClampMaxNewTokens(n)
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0;
      display: flex;
      min-height: 100vh;
      color: #262730;
    }
    aside {
      width: 260px;
      padding: 2rem 1.25rem;
      background: #f0f2f6;
      box-sizing: border-box;
    }
    main {
      flex: 1;
      padding: 2rem 3rem 5rem;
      max-width: 960px;
    }
    button {
      background-color: #4A90E2;
      color: white;
      border: none;
      border-radius: 8px;
      padding: 0.6rem 1.2rem;
      cursor: pointer;
    }
    button:disabled {
      opacity: 0.6;
      cursor: progress;
    }
    .chat-input-container {
      display: flex;
      gap: 10px;
      align-items: flex-start;
    }
    .chat-textarea {
      flex-grow: 1;
      height: 100px;
      padding: 0.75rem;
      border-radius: 8px;
      border: 1px solid #d0d4dc;
      font: inherit;
    }
    .send-button {
      min-width: 100px;
    }
    .chat-container {
      margin: 1.5rem 0 60px;
    }
    .user-message, .bot-message, .error-message {
      color: white;
      padding: 15px;
      border-radius: 15px;
      margin: 5px 0;
      clear: both;
      max-width: 80%;
      box-shadow: 0 2px 5px rgba(0,0,0,0.2);
    }
    .user-message {
      background-color: #4A90E2;
      float: right;
    }
    .bot-message {
      background-color: #50C878;
      float: left;
    }
    .error-message {
      background-color: #D9534F;
      float: left;
    }
    .bot-message p:first-child, .bot-message p:last-child {
      margin: 0;
    }
    .label {
      display: block;
      font-size: 0.75rem;
      opacity: 0.85;
      margin-bottom: 0.25rem;
    }
    .clear {
      clear: both;
    }
    .spinner {
      display: none;
      margin-top: 0.75rem;
      color: #808080;
    }
    .spinner.active {
      display: block;
    }
    .load-error {
      background: #fdecea;
      color: #8a1f11;
      border-radius: 8px;
      padding: 1rem 1.25rem;
    }
    .footer {
      position: fixed;
      bottom: 0;
      left: 0;
      width: 100%;
      padding: 10px;
      text-align: center;
      font-size: 14px;
      color: #808080;
      background: white;
    }
  </style>
</head>
<body>
{{- if .LoadError}}
  <main>
    <div class="load-error" role="alert">
      <strong>Failed to load the model. Please check the console for error messages.</strong>
      <p>{{.LoadError}}</p>
    </div>
  </main>
{{- else}}
  <aside>
    <h2>Generation Parameters</h2>
    <label for="max_new_tokens">Max Response Length: <output id="max_new_tokens_value">{{.MaxNewTokens}}</output></label>
    <input type="range" id="max_new_tokens" name="max_new_tokens" form="chat_form"
           min="{{.Min}}" max="{{.Max}}" value="{{.MaxNewTokens}}"
           oninput="document.getElementById('max_new_tokens_value').textContent = this.value">
    <form method="post" action="/clear" id="clear_form">
      <input type="hidden" name="max_new_tokens" value="{{.MaxNewTokens}}">
      <p><button type="submit">Clear Chat</button></p>
    </form>
  </aside>
  <main>
    <h1>{{.Title}}</h1>
    <p>Ask me anything!</p>
    <form method="post" action="/chat" id="chat_form">
      <div class="chat-input-container">
        <textarea class="chat-textarea" name="message" aria-label="Type your message:"></textarea>
        <button type="submit" class="send-button" id="send_button">Send</button>
      </div>
      <div class="spinner" id="spinner">Generating response...</div>
    </form>
    <div class="chat-container">
      {{- range .Turns}}
      <div class="{{.Class}}"><span class="label">{{.Label}}</span>{{.HTML}}</div>
      <div class="clear"></div>
      {{- end}}
    </div>
  </main>
  <script>
    document.getElementById('chat_form').addEventListener('submit', function () {
      document.getElementById('send_button').disabled = true;
      document.getElementById('spinner').classList.add('active');
    });
  </script>
{{- end}}
  <div class="footer">{{.Footer}}</div>
</body>
</html>`
