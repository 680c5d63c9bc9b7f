package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/pitchlab/gaffer/internal/adapters/http/api"
	event "github.com/pitchlab/gaffer/internal/domain/event"
	sim "github.com/pitchlab/gaffer/internal/domain/sim"
	"github.com/pitchlab/gaffer/internal/domain/squad"
	"github.com/pitchlab/gaffer/internal/domain/tactic"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeEngine implements api.Dependencies with canned responses.
type fakeEngine struct {
	ticks int
}

func (f *fakeEngine) Teams() [2]string { return [2]string{"Rovers", "Wanderers"} }

func (f *fakeEngine) TeamAdvice(_ context.Context, team string, minute int) (tactic.TeamAdvice, error) {
	if err := event.ValidateMinute(minute); err != nil {
		return tactic.TeamAdvice{}, err
	}
	return tactic.TeamAdvice{Team: team, Minute: minute, Rule: tactic.RuleHoldSteady, Suggestion: "hold"}, nil
}

func (f *fakeEngine) PlayerAdvice(_ context.Context, playerID string) (tactic.PlayerAdvice, error) {
	if playerID != "rov-10" {
		return tactic.PlayerAdvice{}, fmt.Errorf("%q: %w", playerID, sim.ErrUnknownPlayer)
	}
	return tactic.PlayerAdvice{Player: playerID, Rule: "fwd/default", Suggestion: "push"}, nil
}

func (f *fakeEngine) Tick(_ context.Context, n int) (int, error) {
	if n < 1 {
		n = 1
	}
	f.ticks += n
	return f.ticks, nil
}

func (f *fakeEngine) Positions(context.Context) ([]sim.State, error) {
	return []sim.State{{
		Player:   squad.Player{ID: "rov-10", Team: "Rovers", Role: squad.RoleFWD},
		Position: event.Point{X: 70, Y: 40},
	}}, nil
}

func (f *fakeEngine) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func TestInsightsEndpoint(t *testing.T) {
	Convey("Given the insights endpoint", t, func() {
		mux := newMux(&fakeEngine{})

		Convey("A valid minute returns both teams' advice", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/insights/45", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Minute int                 `json:"minute"`
				Teams  []tactic.TeamAdvice `json:"teams"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Minute, ShouldEqual, 45)
			So(resp.Teams, ShouldHaveLength, 2)
			So(resp.Teams[0].Team, ShouldEqual, "Rovers")
		})

		Convey("A non-numeric minute is a 400", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/insights/abc", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An out-of-range minute is a 400", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/insights/121", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(rec.Body.String(), ShouldContainSubstring, "minute")
		})
	})
}

func TestAdviceEndpoint(t *testing.T) {
	Convey("Given the advice endpoint", t, func() {
		mux := newMux(&fakeEngine{})

		Convey("A known player gets advice", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/advice/rov-10", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "fwd/default")
		})

		Convey("An unknown player is a 404", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/advice/ghost", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A missing player id is a 400", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/advice/", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestTickAndPositions(t *testing.T) {
	Convey("Given the tick and positions endpoints", t, func() {
		engine := &fakeEngine{}
		mux := newMux(engine)

		Convey("An empty tick body advances one step", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tick", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"ticks":1`)
		})

		Convey("A steps payload advances that many", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tick", strings.NewReader(`{"steps":5}`)))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"ticks":5`)
		})

		Convey("GET on tick is not found", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tick", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Positions returns the tracked states", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/positions", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "rov-10")
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the operational endpoints", t, func() {
		mux := newMux(&fakeEngine{})

		Convey("Health reports ok", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "ok")
		})

		Convey("Stats passes the engine view through", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"started":true`)
		})
	})
}
