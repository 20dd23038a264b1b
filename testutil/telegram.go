package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// TelegramMessage is a sendMessage call, as received by TelegramServer
type TelegramMessage struct {
	Token     string
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// RespondFn decides the response to the n-th (1-indexed) sendMessage call
type RespondFn func(n int, m TelegramMessage) (status int, body string)

// RespondOK is the default RespondFn
func RespondOK(n int, m TelegramMessage) (int, string) {
	return http.StatusOK, `{"ok":true,"result":{"message_id":1}}`
}

// TelegramServer is a minimal stand-in for the Bot API. It only implements sendMessage.
type TelegramServer struct {
	*httptest.Server

	respond RespondFn

	mu       sync.Mutex
	messages []TelegramMessage
}

// NewTelegramServer starts a server that's closed when the test ends. A nil respond uses RespondOK.
func NewTelegramServer(t testing.TB, respond RespondFn) *TelegramServer {
	t.Helper()

	if respond == nil {
		respond = RespondOK
	}

	ts := &TelegramServer{
		respond: respond,
	}

	ts.Server = httptest.NewServer(http.HandlerFunc(ts.handle))
	t.Cleanup(ts.Close)

	return ts
}

func (ts *TelegramServer) handle(w http.ResponseWriter, r *http.Request) {
	// Paths look like /bot<token>/sendMessage
	path := strings.TrimPrefix(r.URL.Path, "/bot")
	i := strings.LastIndex(path, "/")
	if r.Method != http.MethodPost || i < 0 || path[i+1:] != "sendMessage" {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		return
	}

	var m TelegramMessage
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request"}`))
		return
	}

	m.Token = path[:i]

	ts.mu.Lock()
	ts.messages = append(ts.messages, m)
	n := len(ts.messages)
	ts.mu.Unlock()

	status, body := ts.respond(n, m)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Messages returns a copy of all messages received so far
func (ts *TelegramServer) Messages() []TelegramMessage {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	return append([]TelegramMessage(nil), ts.messages...)
}
