package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/logging"
	"github.com/ericogr/ninja-arena/internal/pacing"
	"github.com/ericogr/ninja-arena/internal/progression"
	"github.com/ericogr/ninja-arena/internal/roster"
	"github.com/ericogr/ninja-arena/internal/service"
	"github.com/ericogr/ninja-arena/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type fakeRepo struct {
	mu       sync.Mutex
	profiles map[string]*game.Profile
	records  []game.BattleRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: make(map[string]*game.Profile)}
}

func (r *fakeRepo) GetProfile(accountID string) (*game.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[accountID]
	if !ok {
		return nil, storage.ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (r *fakeRepo) SaveProfile(p *game.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.AccountID] = p.Clone()
	return nil
}

func (r *fakeRepo) SaveOutcome(p *game.Profile, rec *game.BattleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.AccountID] = p.Clone()
	r.records = append(r.records, *rec)
	return nil
}

func (r *fakeRepo) GetTopProfiles(limit int) ([]game.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]game.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stats.Wins > out[j].Stats.Wins })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) GetRecentBattles(accountID string, limit int) ([]game.BattleRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []game.BattleRecord
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].AccountID == accountID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

type testServer struct {
	router   *gin.Engine
	repo     *fakeRepo
	arena    *service.Arena
	sessions *Sessions
	sched    *pacing.ManualScheduler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logging.SetLogger(zap.NewNop())

	repo := newFakeRepo()
	arena := service.NewArena(service.Options{
		Repo:      repo,
		Catalog:   roster.Default(),
		Evaluator: progression.NewEvaluator(rand.New(rand.NewSource(5)), 0),
		Rand:      rand.New(rand.NewSource(9)),
	})
	sessions, err := NewSessions("test-secret", time.Hour, false)
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}
	sched := pacing.NewManualScheduler()
	h := NewHandler(arena, repo, sessions, pacing.New(sched, pacing.DefaultDelays()))
	r := gin.New()
	h.Register(r)
	return &testServer{router: r, repo: repo, arena: arena, sessions: sessions, sched: sched}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, constants.RouteAPIPrefix+path, &buf)
	req.Header.Set(constants.HeaderContentType, "application/json")
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func (s *testServer) signIn(t *testing.T, name string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, constants.RouteSession, "", gin.H{"name": name})
	if w.Code != http.StatusCreated {
		t.Fatalf("session: %d %s", w.Code, w.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, w, &out)
	if !strings.Contains(w.Header().Get("Set-Cookie"), constants.CookieSessionName+"=") {
		t.Fatalf("session cookie not set")
	}
	return out.Token
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, constants.RouteFighters, "", nil)
	var fighters []game.FighterDefinition
	decode(t, w, &fighters)
	if w.Code != http.StatusOK || len(fighters) != 10 || fighters[0].ID != "lloyd" {
		t.Fatalf("fighters: %d %v", w.Code, fighters)
	}

	w = s.do(t, http.MethodGet, constants.RouteWeapons, "", nil)
	var weapons struct {
		Weapons  []game.Weapon `json:"weapons"`
		MaxLevel int           `json:"max_level"`
	}
	decode(t, w, &weapons)
	if len(weapons.Weapons) != 4 || weapons.MaxLevel != game.DefaultMaxUpgradeLevel {
		t.Fatalf("weapons: %+v", weapons)
	}

	if w := s.do(t, http.MethodGet, constants.RouteVersion, "", nil); w.Code != http.StatusOK {
		t.Fatalf("version: %d", w.Code)
	}
}

func TestSessionAndProfileRoutes(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(t, http.MethodGet, constants.RouteProfile, "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, constants.RouteProfile, "garbage", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, constants.RouteSession, "", gin.H{"name": "  "}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a blank name, got %d", w.Code)
	}

	token := s.signIn(t, "Kai")
	w := s.do(t, http.MethodGet, constants.RouteProfile, token, nil)
	var p game.Profile
	decode(t, w, &p)
	if w.Code != http.StatusOK || p.DisplayName != "Kai" || p.Difficulty != 1 {
		t.Fatalf("profile: %d %+v", w.Code, p)
	}

	w = s.do(t, http.MethodPost, constants.RouteProfileDifficulty, token, gin.H{"difficulty": 12})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for difficulty 12, got %d", w.Code)
	}
	w = s.do(t, http.MethodPost, constants.RouteProfileDifficulty, token, gin.H{"difficulty": 6})
	decode(t, w, &p)
	if w.Code != http.StatusOK || p.Difficulty != 6 {
		t.Fatalf("difficulty: %d %+v", w.Code, p)
	}

	w = s.do(t, http.MethodPost, constants.RouteShopPurchase, token, gin.H{"character_id": "kai", "weapon_id": "katana"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for insufficient coins, got %d %s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodPost, constants.RouteShopPurchase, token, gin.H{"character_id": "kai", "weapon_id": "bo"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown weapon, got %d", w.Code)
	}
}

func TestBattleRoutesPlayOut(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, "Lloyd")

	w := s.do(t, http.MethodPost, constants.RouteBattles, token, gin.H{"fighter_id": "lloyd", "opponent_id": "pythor"})
	if w.Code != http.StatusCreated {
		t.Fatalf("start: %d %s", w.Code, w.Body.String())
	}
	var view service.BattleView
	decode(t, w, &view)
	if view.Guest || view.Snapshot.Opponent.ID != "pythor" {
		t.Fatalf("unexpected view %+v", view.Snapshot)
	}
	base := "/battles/" + view.Snapshot.ID

	w = s.do(t, http.MethodPost, base+"/advance", token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 with nothing pending, got %d", w.Code)
	}
	w = s.do(t, http.MethodPost, base+"/action", token, gin.H{"action": "special"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for an uncharged special, got %d", w.Code)
	}
	w = s.do(t, http.MethodPost, base+"/action", token, gin.H{"action": "defend"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a manual defend, got %d", w.Code)
	}
	other := s.signIn(t, "Cole")
	if w := s.do(t, http.MethodGet, base, other, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another account, got %d", w.Code)
	}

	w = s.do(t, http.MethodPost, base+"/auto", token, gin.H{"on": true})
	if w.Code != http.StatusOK {
		t.Fatalf("auto: %d %s", w.Code, w.Body.String())
	}
	var res service.ActionResult
	for i := 0; i < 1000; i++ {
		w = s.do(t, http.MethodPost, base+"/advance", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("advance %d: %d %s", i, w.Code, w.Body.String())
		}
		decode(t, w, &res)
		if res.Snapshot.Phase == engine.PhaseResolved {
			break
		}
	}
	if res.Snapshot.Phase != engine.PhaseResolved || res.Progression == nil {
		t.Fatalf("battle did not resolve with progression: %+v", res.Snapshot)
	}

	w = s.do(t, http.MethodGet, constants.RouteProfileBattles, token, nil)
	var history []game.BattleRecord
	decode(t, w, &history)
	if len(history) != 1 || history[0].BattleID != view.Snapshot.ID {
		t.Fatalf("history: %+v", history)
	}

	w = s.do(t, http.MethodGet, constants.RouteLeaderboard, "", nil)
	var board []leaderboardEntry
	decode(t, w, &board)
	if len(board) != 2 {
		t.Fatalf("leaderboard: %+v", board)
	}

	if w := s.do(t, http.MethodDelete, base, token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("abandon: %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, base, token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after abandon, got %d", w.Code)
	}
}

func TestGuestBattleAndStartErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, constants.RouteBattles, "", gin.H{"fighter_id": "jay"})
	var view service.BattleView
	decode(t, w, &view)
	if w.Code != http.StatusCreated || !view.Guest || view.Snapshot.Opponent.ID == "jay" {
		t.Fatalf("guest start: %d %+v", w.Code, view)
	}
	if w := s.do(t, http.MethodPost, constants.RouteBattles, "", gin.H{"fighter_id": "clouse"}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown fighter, got %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, constants.RouteBattles, "", gin.H{}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without fighter, got %d", w.Code)
	}

	token, err := s.sessions.Issue("no-profile", "Ghost")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if w := s.do(t, http.MethodPost, constants.RouteBattles, token, gin.H{"fighter_id": "jay"}); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing profile, got %d", w.Code)
	}
}

func TestSessionsRejectExpiredAndForeignTokens(t *testing.T) {
	s, _ := NewSessions("one", time.Minute, false)
	now := time.Unix(10000, 0)
	s.now = func() time.Time { return now }
	token, err := s.Issue("acc", "Zane")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := s.Parse(token)
	if err != nil || claims.Subject != "acc" || claims.Name != "Zane" {
		t.Fatalf("Parse: %v %+v", err, claims)
	}

	other, _ := NewSessions("two", time.Minute, false)
	if _, err := other.Parse(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
	now = now.Add(2 * time.Minute)
	if _, err := s.Parse(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestStreamPacesAutoMode(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	view, err := s.arena.StartBattle(service.StartRequest{FighterID: "nya", OpponentID: "morro"})
	if err != nil {
		t.Fatalf("StartBattle: %v", err)
	}
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + constants.RouteAPIPrefix + "/battles/" + view.Snapshot.ID + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var f streamFrame
	if err := conn.ReadJSON(&f); err != nil || f.Type != frameState {
		t.Fatalf("initial frame: %v %+v", err, f)
	}

	on := true
	if err := conn.WriteJSON(streamCommand{Auto: &on}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.ReadJSON(&f); err != nil || f.Type != frameState || !f.Snapshot.AutoMode {
		t.Fatalf("auto ack: %v %+v", err, f)
	}

	// The server kicks the pacer after replying; fire steps as they get queued.
	resolved := false
	for i := 0; i < 1000 && !resolved; i++ {
		deadline := time.Now().Add(2 * time.Second)
		for s.sched.Len() == 0 {
			if time.Now().After(deadline) {
				t.Fatalf("no step queued after %d frames", i)
			}
			time.Sleep(time.Millisecond)
		}
		s.sched.Fire()
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read step: %v", err)
		}
		if f.Type != frameStep {
			t.Fatalf("unexpected frame %+v", f)
		}
		resolved = f.Snapshot.Phase == engine.PhaseResolved
	}
	if !resolved || f.Snapshot.AutoMode {
		t.Fatalf("stream did not play the battle out: %+v", f.Snapshot)
	}
}
