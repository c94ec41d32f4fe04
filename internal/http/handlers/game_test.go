package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apihttp "snake_webapp/internal/http"

	"snake_webapp/internal/config"
	"snake_webapp/internal/service"
	"snake_webapp/internal/session"

	"github.com/gin-gonic/gin"
)

type snapshotBody struct {
	Token string   `json:"token"`
	Snake [][2]int `json:"snake"`
	Food  [2]int   `json:"food"`
	Score int      `json:"score"`
	State string   `json:"state"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		TickInterval:   200 * time.Millisecond,
		SessionTTL:     time.Minute,
		APIRateLimit:   10000,
		APIRateWindow:  time.Minute,
		GameRateLimit:  10000,
		GameRateWindow: time.Minute,
	}

	r := gin.New()
	apihttp.RegisterRoutes(r, session.NewStore(cfg.SessionTTL), cfg, "test")
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s %s response %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, out
}

func createGame(t *testing.T, r *gin.Engine) (string, snapshotBody) {
	t.Helper()
	w, _ := doJSON(t, r, "POST", "/api/v1/game/new", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("game/new status = %d", w.Code)
	}
	var body snapshotBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode new game: %v", err)
	}
	if body.Token == "" {
		t.Fatalf("game/new returned no token")
	}
	return body.Token, body
}

func TestNewGameEndpoint(t *testing.T) {
	r := newTestRouter(t)

	_, body := createGame(t, r)
	if body.State != "ready" {
		t.Fatalf("state = %s; want ready", body.State)
	}
	if body.Score != 0 {
		t.Fatalf("score = %d; want 0", body.Score)
	}
	if len(body.Snake) != 3 {
		t.Fatalf("snake length = %d; want 3", len(body.Snake))
	}
	if body.Snake[0] != [2]int{10, 10} {
		t.Fatalf("head = %v; want [10,10]", body.Snake[0])
	}
	for _, seg := range body.Snake {
		if seg == body.Food {
			t.Fatalf("food %v on snake", body.Food)
		}
	}
}

func TestStateEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token, _ := createGame(t, r)

	w, out := doJSON(t, r, "GET", "/api/v1/game/state", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("game/state status = %d", w.Code)
	}
	if out["state"] != "ready" {
		t.Fatalf("state = %v; want ready", out["state"])
	}
}

func TestStateRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, "GET", "/api/v1/game/state", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", w.Code)
	}

	w, _ = doJSON(t, r, "GET", "/api/v1/game/state", "bogus-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401 for bad token", w.Code)
	}
}

func TestStartEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token, _ := createGame(t, r)

	w, out := doJSON(t, r, "POST", "/api/v1/game/start", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("game/start status = %d", w.Code)
	}
	if out["success"] != true || out["state"] != "playing" {
		t.Fatalf("start response = %v", out)
	}

	// starting twice is a no-op with success=false
	_, out = doJSON(t, r, "POST", "/api/v1/game/start", token, nil)
	if out["success"] != false || out["state"] != "playing" {
		t.Fatalf("second start response = %v", out)
	}
}

func TestMoveEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token, _ := createGame(t, r)
	doJSON(t, r, "POST", "/api/v1/game/start", token, nil)

	w, out := doJSON(t, r, "POST", "/api/v1/game/move", token, gin.H{"direction": "down"})
	if w.Code != http.StatusOK || out["success"] != true {
		t.Fatalf("move response = %d %v", w.Code, out)
	}

	// next tick must move down
	_, out = doJSON(t, r, "POST", "/api/v1/game/update", token, nil)
	snakeVal := out["snake"].([]any)
	head := snakeVal[0].([]any)
	if head[0].(float64) != 10 || head[1].(float64) != 11 {
		t.Fatalf("head after down tick = %v; want [10,11]", head)
	}
}

func TestMoveRejectsInvalidDirection(t *testing.T) {
	r := newTestRouter(t)
	token, _ := createGame(t, r)
	doJSON(t, r, "POST", "/api/v1/game/start", token, nil)

	w, _ := doJSON(t, r, "POST", "/api/v1/game/move", token, gin.H{"direction": "diagonal"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}

	// the rejected request left the engine alone: next tick still moves right
	_, out := doJSON(t, r, "POST", "/api/v1/game/update", token, nil)
	head := out["snake"].([]any)[0].([]any)
	if head[0].(float64) != 11 || head[1].(float64) != 10 {
		t.Fatalf("head = %v; want [11,10] (still moving right)", head)
	}
}

func TestUpdateBeforeStartIsNoop(t *testing.T) {
	r := newTestRouter(t)
	token, created := createGame(t, r)

	_, out := doJSON(t, r, "POST", "/api/v1/game/update", token, nil)
	if out["state"] != "ready" {
		t.Fatalf("state = %v; want ready", out["state"])
	}
	head := out["snake"].([]any)[0].([]any)
	if int(head[0].(float64)) != created.Snake[0][0] {
		t.Fatalf("update before start moved the snake")
	}
}

func TestUpdateAdvancesSnake(t *testing.T) {
	r := newTestRouter(t)
	token, _ := createGame(t, r)
	doJSON(t, r, "POST", "/api/v1/game/start", token, nil)

	for i := 1; i <= 4; i++ {
		_, out := doJSON(t, r, "POST", "/api/v1/game/update", token, nil)
		head := out["snake"].([]any)[0].([]any)
		if int(head[0].(float64)) != 10+i {
			t.Fatalf("tick %d: head x = %v; want %d", i, head[0], 10+i)
		}
	}
}

func TestResetEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token, _ := createGame(t, r)
	doJSON(t, r, "POST", "/api/v1/game/start", token, nil)
	doJSON(t, r, "POST", "/api/v1/game/update", token, nil)

	w, out := doJSON(t, r, "POST", "/api/v1/game/reset", token, nil)
	if w.Code != http.StatusOK || out["state"] != "ready" || out["score"].(float64) != 0 {
		t.Fatalf("reset response = %d %v", w.Code, out)
	}
}

func TestSessionsAreIsolatedOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	tokenA, _ := createGame(t, r)
	tokenB, _ := createGame(t, r)

	doJSON(t, r, "POST", "/api/v1/game/start", tokenA, nil)

	_, out := doJSON(t, r, "GET", "/api/v1/game/state", tokenB, nil)
	if out["state"] != "ready" {
		t.Fatalf("session B state = %v; want ready (A started, not B)", out["state"])
	}
}

func TestLegacyAPIRoutes(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, "POST", "/api/game/new", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("legacy game/new status = %d", w.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/health", "/healthz", "/readyz"} {
		w, _ := doJSON(t, r, "GET", path, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, w.Code)
		}
	}
}
