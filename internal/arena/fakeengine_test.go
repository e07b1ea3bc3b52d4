package arena

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dkoval/arena/internal/engineclient"
	"github.com/dkoval/arena/pkg/enginedto"
)

// fakeEngine is a scriptable stand-in for one remote engine service.
// reply decides the turn info returned after a move is applied; suggest
// decides the move returned by the nth suggestion query.
type fakeEngine struct {
	mu           sync.Mutex
	applied      []string
	created      int
	deleted      int
	suggestCalls int

	suggest   func(call int) string
	reply     func(move string) enginedto.TurnInfo
	thinkTime time.Duration

	srv *httptest.Server
}

func quietReply(moves ...string) func(string) enginedto.TurnInfo {
	if len(moves) == 0 {
		moves = []string{"a2a3"}
	}
	return func(string) enginedto.TurnInfo {
		return enginedto.TurnInfo{Moves: moves, InCheck: false}
	}
}

func newFakeEngine(t *testing.T, suggest func(int) string, reply func(string) enginedto.TurnInfo) *fakeEngine {
	t.Helper()
	fe := &fakeEngine{suggest: suggest, reply: reply}
	fe.srv = httptest.NewServer(http.HandlerFunc(fe.handle))
	t.Cleanup(fe.srv.Close)
	return fe
}

func (fe *fakeEngine) player(t *testing.T, name string, incrementMs, totalMs int64) *Player {
	t.Helper()
	p := NewPlayer(name, engineclient.NewClient(fe.srv.URL), incrementMs)
	p.Clock().Reset(totalMs)
	return p
}

func (fe *fakeEngine) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/games":
		fe.mu.Lock()
		fe.created++
		fe.mu.Unlock()
		writeJSON(w, enginedto.CreateGameResponse{Key: "g1"})

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/games/"):
		fe.mu.Lock()
		fe.deleted++
		fe.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/move"):
		var req enginedto.MoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fe.mu.Lock()
		fe.applied = append(fe.applied, req.Move)
		fe.mu.Unlock()
		writeJSON(w, enginedto.MoveResponse{TurnInfo: fe.reply(req.Move)})

	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/move_suggestion"):
		if fe.thinkTime > 0 {
			time.Sleep(fe.thinkTime)
		}
		fe.mu.Lock()
		call := fe.suggestCalls
		fe.suggestCalls++
		fe.mu.Unlock()
		writeJSON(w, enginedto.SuggestionResponse{Move: fe.suggest(call)})

	default:
		http.NotFound(w, r)
	}
}

func (fe *fakeEngine) appliedMoves() []string {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return append([]string(nil), fe.applied...)
}

func (fe *fakeEngine) suggestions() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.suggestCalls
}

func (fe *fakeEngine) sessions() (created, deleted int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.created, fe.deleted
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func noSuggestion(int) string { return "" }
