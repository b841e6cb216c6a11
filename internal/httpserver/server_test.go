package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/VinEdw/mastermind-pvp/internal/game"
	"github.com/VinEdw/mastermind-pvp/internal/palette"
	"github.com/VinEdw/mastermind-pvp/internal/store"
)

func newTestServer() *Server {
	return New(store.NewMemoryStore(), Options{Defaults: game.DefaultRules(), DailySalt: "test_salt"})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func newGame(t *testing.T, s *Server, path, body string) gameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, path, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST %s = %d %s", path, rec.Code, rec.Body.String())
	}
	return decode[gameRes](t, rec)
}

func TestHealthAndPalette(t *testing.T) {
	s := newTestServer()
	if rec := do(t, s, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("/health = %d", rec.Code)
	}
	rec := do(t, s, http.MethodGet, "/palette", "")
	entries := decode[[]palette.Entry](t, rec)
	if len(entries) != 10 || entries[0].ID != "1" || entries[9].ID != "0" {
		t.Fatalf("/palette = %+v", entries)
	}
}

func TestNewGameDefaults(t *testing.T) {
	s := newTestServer()
	res := newGame(t, s, "/game/new", "")
	if res.GameID == "" {
		t.Fatal("missing game id")
	}
	if res.Rules != game.DefaultRules() {
		t.Fatalf("rules = %+v", res.Rules)
	}
	if len(res.Palette) != 6 || res.Palette[0].Hex != "#0278ee" {
		t.Fatalf("palette = %+v", res.Palette)
	}
	if res.State != (game.State{Row: 0}) || len(res.Solution) != 0 {
		t.Fatalf("state = %+v solution = %v", res.State, res.Solution)
	}
}

func TestNewGameOptions(t *testing.T) {
	s := newTestServer()

	res := newGame(t, s, "/game/new?colors=3&slots=5&duplicates=on&guesses=2", "")
	want := game.Rules{Colors: 3, Slots: 5, Duplicates: true, Guesses: 2}
	if res.Rules != want {
		t.Fatalf("query rules = %+v, want %+v", res.Rules, want)
	}

	res = newGame(t, s, "/game/new?colors=3", `{"colors":8,"slots":6}`)
	if res.Rules.Colors != 8 || res.Rules.Slots != 6 {
		t.Fatalf("body should override query: %+v", res.Rules)
	}
}

func TestNewGameRejectsBadOptions(t *testing.T) {
	s := newTestServer()
	cases := []struct {
		path, body, code string
	}{
		{"/game/new?colors=3&slots=4", "", "invalid_config"},
		{"/game/new?colors=11", "", "invalid_config"},
		{"/game/new?guesses=0", "", "invalid_config"},
		{"/game/new?slots=20000000&duplicates=on", "", "invalid_config"},
		{"/game/new?slots=11&duplicates=on", "", "invalid_config"},
		{"/game/new?guesses=21", "", "invalid_config"},
		{"/game/new", `{"slots":2147483647,"duplicates":true}`, "invalid_config"},
		{"/game/new?slots=four", "", "bad_options"},
		{"/game/new?duplicates=maybe", "", "bad_options"},
		{"/game/new", `{"colors":`, "bad_options"},
		{"/game/new", `{"solution":["1","1","2","3"]}`, "invalid_config"},
	}
	for _, tc := range cases {
		rec := do(t, s, http.MethodPost, tc.path, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s %s = %d, want 400", tc.path, tc.body, rec.Code)
			continue
		}
		if got := decode[map[string]string](t, rec)["error"]; got != tc.code {
			t.Errorf("%s %s error = %q, want %q", tc.path, tc.body, got, tc.code)
		}
	}
	if n := s.store.Len(); n != 0 {
		t.Fatalf("rejected requests created %d sessions", n)
	}
}

func TestGuessFlow(t *testing.T) {
	s := newTestServer()
	g := newGame(t, s, "/game/new", `{"solution":["1","2","3","4"]}`)
	path := "/game/" + g.GameID

	rec := do(t, s, http.MethodPost, path+"/guess", `{"guess":["1","3","2","4"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("guess = %d %s", rec.Code, rec.Body.String())
	}
	res := decode[guessRes](t, rec)
	if !res.Accepted || res.Row != 0 || res.Feedback == nil {
		t.Fatalf("guess res = %+v", res)
	}
	if res.Feedback.Exact != 2 || res.Feedback.ColorOnly != 2 {
		t.Fatalf("feedback = %+v", res.Feedback)
	}
	wantPegs := []game.Peg{game.PegDark, game.PegDark, game.PegLight, game.PegLight}
	for i, p := range wantPegs {
		if res.Feedback.Pegs[i] != p {
			t.Fatalf("pegs = %v", res.Feedback.Pegs)
		}
	}
	if res.State.Row != 1 || len(res.Solution) != 0 {
		t.Fatalf("state = %+v solution = %v", res.State, res.Solution)
	}

	// Incomplete row: declined, no transition.
	res = decode[guessRes](t, do(t, s, http.MethodPost, path+"/guess", `{"guess":["1","",null,"4"]}`))
	if res.Accepted || res.State.Row != 1 || res.Feedback != nil {
		t.Fatalf("incomplete guess res = %+v", res)
	}

	rec = do(t, s, http.MethodPost, path+"/guess", `{"guess":["1","2","3"]}`)
	if rec.Code != http.StatusBadRequest || decode[map[string]string](t, rec)["error"] != "length_mismatch" {
		t.Fatalf("short guess = %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodPost, path+"/guess", `{"guess":["1","2","3","9"]}`)
	if rec.Code != http.StatusBadRequest || decode[map[string]string](t, rec)["error"] != "unknown_color" {
		t.Fatalf("unknown color = %d %s", rec.Code, rec.Body.String())
	}

	res = decode[guessRes](t, do(t, s, http.MethodPost, path+"/guess", `{"guess":["1","2","3","4"]}`))
	if !res.Accepted || !res.State.Finished || !res.State.Won || res.Row != 1 {
		t.Fatalf("winning res = %+v", res)
	}
	if len(res.Solution) != 4 || res.Solution[0] != "1" {
		t.Fatalf("solution not revealed: %v", res.Solution)
	}

	if rec := do(t, s, http.MethodPost, path+"/guess", `{"guess":["1","2","3","4"]}`); rec.Code != http.StatusConflict {
		t.Fatalf("guess after finish = %d", rec.Code)
	}

	state := decode[gameRes](t, do(t, s, http.MethodGet, path, ""))
	if len(state.Rows) != 2 || !state.State.Won || len(state.Solution) != 4 {
		t.Fatalf("GET state = %+v", state)
	}
}

func TestLossRevealsSolution(t *testing.T) {
	s := newTestServer()
	g := newGame(t, s, "/game/new?guesses=1", `{"solution":["1","2","3","4"]}`)
	res := decode[guessRes](t, do(t, s, http.MethodPost, "/game/"+g.GameID+"/guess", `{"guess":["4","3","2","1"]}`))
	if !res.State.Finished || res.State.Won {
		t.Fatalf("res = %+v", res)
	}
	if len(res.Solution) != 4 {
		t.Fatalf("solution = %v", res.Solution)
	}
}

func TestReset(t *testing.T) {
	s := newTestServer()
	g := newGame(t, s, "/game/new?guesses=1", "")
	path := "/game/" + g.GameID
	do(t, s, http.MethodPost, path+"/guess", `{"guess":["1","2","3","4"]}`)

	rec := do(t, s, http.MethodPost, path+"/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset = %d", rec.Code)
	}
	res := decode[gameRes](t, rec)
	if res.State != (game.State{Row: 0}) || len(res.Rows) != 0 || len(res.Solution) != 0 {
		t.Fatalf("after reset = %+v", res)
	}
}

func TestUnknownGame(t *testing.T) {
	s := newTestServer()
	if rec := do(t, s, http.MethodGet, "/game/missing", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("GET = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/game/missing/guess", `{"guess":[]}`); rec.Code != http.StatusNotFound {
		t.Fatalf("guess = %d", rec.Code)
	}
}

func TestDailySharesSolution(t *testing.T) {
	s := newTestServer()
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	a := newGame(t, s, "/daily/new", "")
	b := newGame(t, s, "/daily/new", "")
	if a.Daily != "2026-03-01" || a.GameID == b.GameID {
		t.Fatalf("daily sessions = %+v / %+v", a, b)
	}

	guess := `{"guess":["1","2","3","4"]}`
	ra := decode[guessRes](t, do(t, s, http.MethodPost, "/game/"+a.GameID+"/guess", guess))
	rb := decode[guessRes](t, do(t, s, http.MethodPost, "/game/"+b.GameID+"/guess", guess))
	if ra.Feedback.Exact != rb.Feedback.Exact || ra.Feedback.ColorOnly != rb.Feedback.ColorOnly {
		t.Fatalf("same day, different feedback: %+v vs %+v", ra.Feedback, rb.Feedback)
	}
}

func TestResponseFieldNames(t *testing.T) {
	s := newTestServer()
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	created := decode[map[string]any](t, do(t, s, http.MethodPost, "/daily/new", ""))
	if created["daily"] != "2026-03-01" {
		t.Fatalf("daily response = %v", created)
	}
	id, _ := created["gameId"].(string)

	res := decode[map[string]any](t, do(t, s, http.MethodPost, "/game/"+id+"/guess", `{"guess":["1","2","3","4"]}`))
	state, ok := res["state"].(map[string]any)
	if !ok {
		t.Fatalf("guess response has no state object: %v", res)
	}
	for _, k := range []string{"row", "finished", "won"} {
		if _, ok := state[k]; !ok {
			t.Errorf("state is missing %q: %v", k, state)
		}
	}
	if _, ok := res["finished"]; ok {
		t.Errorf("finished duplicated at top level: %v", res)
	}
}
