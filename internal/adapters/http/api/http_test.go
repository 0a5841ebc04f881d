package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fightcard/internal/adapters/http/api"
	"github.com/okian/fightcard/internal/domain/model"
)

var (
	errNoEvents = errors.New("could not find any upcoming events")
	errNoFights = errors.New("no fights found for this event")
	errFetch    = errors.New("failed to fetch event data")
)

// Mock implementations for testing
type mockDependencies struct {
	events    model.Catalog
	eventsErr error
	event     map[string]model.Catalog
	eventErr  error
	calls     []string
}

func (m *mockDependencies) Events(_ context.Context) (model.Catalog, error) {
	m.calls = append(m.calls, "events")
	if m.eventsErr != nil {
		return nil, m.eventsErr
	}
	return m.events, nil
}

func (m *mockDependencies) Event(_ context.Context, id string) (model.Catalog, error) {
	m.calls = append(m.calls, "event:"+id)
	if m.eventErr != nil {
		return nil, m.eventErr
	}
	c, ok := m.event[id]
	if !ok {
		return nil, errNoFights
	}
	return c, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func fight(a, b string) model.Fight {
	return model.Fight{WeightDivision: "Bout", Fighter1Name: a, Fighter2Name: b}
}

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		return "unparseable: " + w.Body.String()
	}
	return body["error"]
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDependencies{
			events: model.Catalog{
				"ufc-310": {fight("Pantoja", "Asakura")},
				"ufc-311": {fight("Makhachev", "Tsarukyan")},
			},
			event: map[string]model.Catalog{
				"ufc-310": {"ufc-310": {fight("Pantoja", "Asakura")}},
			},
		}
		stats := &mockStatsProvider{stats: map[string]interface{}{"crawls": map[string]int{"bulk_ok": 1}}}
		server := api.NewServer(deps, stats)
		mux := http.NewServeMux()
		server.Register(context.Background(), mux)

		Convey("When requesting all events", func() {
			w := serve(mux, http.MethodGet, "/api/events")

			Convey("Then the catalog is returned keyed by slug", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				var got map[string][]map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				So(got["ufc-310"][0]["fighter1_name"], ShouldEqual, "Pantoja")
			})

			Convey("Then empty fields are present rather than omitted", func() {
				So(w.Body.String(), ShouldContainSubstring, `"fighter1_rank":""`)
				So(w.Body.String(), ShouldContainSubstring, `"event_date":""`)
			})
		})

		Convey("When the crawl finds no seed", func() {
			deps.eventsErr = errNoEvents
			w := serve(mux, http.MethodGet, "/api/events")

			Convey("Then 404 carries the capitalized message", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(errorBody(w), ShouldEqual, "Could not find any upcoming events")
			})
		})

		Convey("When the crawl finds no events", func() {
			deps.events = model.Catalog{}
			w := serve(mux, http.MethodGet, "/api/events")

			Convey("Then an empty object is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "{}")
			})
		})

		Convey("When requesting a single event", func() {
			w := serve(mux, http.MethodGet, "/api/event/ufc-310")

			Convey("Then a one-entry object is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got map[string][]model.Fight
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got["ufc-310"][0].Fighter2Name, ShouldEqual, "Asakura")
				So(deps.calls, ShouldResemble, []string{"event:ufc-310"})
			})
		})

		Convey("When the event has no fights", func() {
			w := serve(mux, http.MethodGet, "/api/event/ufc-999")

			Convey("Then 404 says so", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(errorBody(w), ShouldEqual, "No fights found for this event")
			})
		})

		Convey("When the event cannot be fetched", func() {
			deps.eventErr = fmt.Errorf("%w: %s", errFetch, "fetch https://x/event/y: 503 Service Unavailable")
			w := serve(mux, http.MethodGet, "/api/event/y")

			Convey("Then 404 carries the failure detail", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(errorBody(w), ShouldEqual, "Failed to fetch event data: fetch https://x/event/y: 503 Service Unavailable")
			})
		})

		Convey("When the id is empty or nested", func() {
			empty := serve(mux, http.MethodGet, "/api/event/")
			nested := serve(mux, http.MethodGet, "/api/event/a/b")

			Convey("Then 404 is returned without crawling", func() {
				So(empty.Code, ShouldEqual, http.StatusNotFound)
				So(errorBody(empty), ShouldEqual, "bad request")
				So(nested.Code, ShouldEqual, http.StatusNotFound)
				So(errorBody(nested), ShouldEqual, "bad request")
				So(deps.calls, ShouldBeEmpty)
			})
		})

		Convey("When using a method other than GET", func() {
			w := serve(mux, http.MethodPost, "/api/events")

			Convey("Then 405 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, http.MethodGet)
				So(errorBody(w), ShouldEqual, "method not allowed")
				So(deps.calls, ShouldBeEmpty)
			})
		})

		Convey("And health endpoint should expose metrics", func() {
			serve(mux, http.MethodGet, "/api/events")
			w := serve(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "fightcard_crawler_http_requests_total")
		})

		Convey("And stats endpoint should be accessible", func() {
			w := serve(mux, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "bulk_ok")
		})

		Convey("And unknown routes are not found", func() {
			w := serve(mux, http.MethodGet, "/unknown")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
