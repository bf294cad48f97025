package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MohamedMohamady125/projectusa/internal/adapters/http/api"
	"github.com/MohamedMohamady125/projectusa/internal/adapters/repository"
	"github.com/MohamedMohamady125/projectusa/internal/domain/altitude"
	"github.com/MohamedMohamady125/projectusa/internal/domain/convert"
	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
	"github.com/MohamedMohamady125/projectusa/internal/domain/standards"
	"github.com/MohamedMohamady125/projectusa/internal/domain/types"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies backs the handlers with real domain objects plus
// controllable ingest behavior.
type mockDependencies struct {
	converter *convert.Converter
	catalog   *standards.Catalog
	adjuster  *altitude.Adjuster

	seen           map[string]bool
	enqueueSuccess bool
	enqueued       []model.Submission

	topN    []types.Entry
	rank    types.Entry
	rankErr error
	topNErr error
}

func newMockDependencies(t *testing.T) *mockDependencies {
	t.Helper()
	converter := convert.New()
	catalog, err := standards.New(standards.WithConverter(converter))
	if err != nil {
		t.Fatalf("standards catalog: %v", err)
	}
	return &mockDependencies{
		converter:      converter,
		catalog:        catalog,
		adjuster:       altitude.New(),
		seen:           make(map[string]bool),
		enqueueSuccess: true,
	}
}

func (m *mockDependencies) Convert(r model.SwimResult, target course.Course) (convert.Result, error) {
	return m.converter.Convert(r, target)
}

func (m *mockDependencies) ConvertMany(results []model.SwimResult, target course.Course) []convert.Outcome {
	return m.converter.ConvertMany(results, target)
}

func (m *mockDependencies) Compare(r model.SwimResult, division standards.Division, gender standards.Gender) (standards.Comparison, error) {
	return m.catalog.Compare(r, division, gender)
}

func (m *mockDependencies) Standard(division standards.Division, gender standards.Gender, event course.Event) (swimtime.Time, error) {
	return m.catalog.Lookup(division, gender, event)
}

func (m *mockDependencies) Standards(division standards.Division, gender standards.Gender) (map[string]swimtime.Time, error) {
	return m.catalog.Standards(division, gender)
}

func (m *mockDependencies) AdjustAltitude(r model.SwimResult, elevationMeters float64) (model.SwimResult, error) {
	return m.adjuster.Adjust(r, elevationMeters)
}

func (m *mockDependencies) SeenAndRecord(ctx context.Context, id string) bool {
	if m.seen[id] {
		return true
	}
	m.seen[id] = true
	return false
}

func (m *mockDependencies) Unrecord(ctx context.Context, id string) {
	delete(m.seen, id)
}

func (m *mockDependencies) Enqueue(ctx context.Context, sub model.Submission) bool {
	if m.enqueueSuccess {
		m.enqueued = append(m.enqueued, sub)
		return true
	}
	return false
}

func (m *mockDependencies) TopN(ctx context.Context, event course.Event, n int) ([]types.Entry, error) {
	if m.topNErr != nil {
		return nil, m.topNErr
	}
	if n > len(m.topN) {
		return m.topN, nil
	}
	return m.topN[:n], nil
}

func (m *mockDependencies) Rank(ctx context.Context, event course.Event, swimmerID string) (types.Entry, error) {
	if m.rankErr != nil {
		return types.Entry{}, m.rankErr
	}
	return m.rank, nil
}

type mockStatsProvider struct {
	stats types.ServiceStats
}

func (m *mockStatsProvider) GetStats() types.ServiceStats {
	return m.stats
}

func newTestMux(t *testing.T, deps *mockDependencies) *http.ServeMux {
	t.Helper()
	stats := types.ServiceStats{Started: true, WorkerCount: 4, RankedSwimmers: 2}
	server := api.NewServer(deps, &mockStatsProvider{stats: stats}, api.Config{
		MaxRankingLimit: 100,
		MaxBatchSize:    10,
	})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func doJSON(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t, newMockDependencies(t))

		Convey("The health endpoint should be accessible", func() {
			w := doJSON(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("The stats endpoint should return the pipeline snapshot", func() {
			w := doJSON(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			var stats types.ServiceStats
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats.Started, ShouldBeTrue)
			So(stats.WorkerCount, ShouldEqual, 4)
			So(stats.RankedSwimmers, ShouldEqual, 2)
		})
	})
}

func TestConvertEndpoint(t *testing.T) {
	Convey("Given the convert endpoint", t, func() {
		mux := newTestMux(t, newMockDependencies(t))

		Convey("A 50 free SCY time converts to LCM", func() {
			w := doJSON(mux, "POST", "/convert",
				`{"event":"50_free","course":"SCY","time":"50.00","target_course":"LCM"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["time"], ShouldEqual, "57.83")
			So(resp["course"], ShouldEqual, "LCM")
		})

		Convey("A 400 LCM free maps to the 500 SCY event", func() {
			w := doJSON(mux, "POST", "/convert",
				`{"event":"400_free","course":"LCM","time":"4:00.00","target_course":"SCY"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["event"], ShouldEqual, "500_free")
		})

		Convey("An unpublished factor yields 422", func() {
			w := doJSON(mux, "POST", "/convert",
				`{"event":"100_back","course":"SCY","time":"55.00","target_course":"SCM"}`)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(w.Body.String(), ShouldContainSubstring, "conversion_unavailable")
		})

		Convey("A malformed time yields 400", func() {
			w := doJSON(mux, "POST", "/convert",
				`{"event":"50_free","course":"SCY","time":"fast","target_course":"LCM"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An unknown course yields 400", func() {
			w := doJSON(mux, "POST", "/convert",
				`{"event":"50_free","course":"XCY","time":"50.00","target_course":"LCM"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("GET is not routed", func() {
			w := doJSON(mux, "GET", "/convert", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestConvertBatchEndpoint(t *testing.T) {
	Convey("Given the batch convert endpoint", t, func() {
		mux := newTestMux(t, newMockDependencies(t))

		Convey("Bad slots report errors without aborting the batch", func() {
			w := doJSON(mux, "POST", "/convert/batch",
				`{"target_course":"SCY","results":[
					{"event":"100_free","course":"LCM","time":"52.00"},
					{"event":"100_free","course":"LCM","time":"bogus"},
					{"event":"200_back","course":"LCM","time":"2:10.00"}
				]}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Results []struct {
					OK    bool   `json:"ok"`
					Time  string `json:"time"`
					Error string `json:"error"`
				} `json:"results"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(len(resp.Results), ShouldEqual, 3)
			So(resp.Results[0].OK, ShouldBeTrue)
			So(resp.Results[1].OK, ShouldBeFalse)
			So(resp.Results[1].Error, ShouldNotBeEmpty)
			So(resp.Results[2].OK, ShouldBeTrue)
		})

		Convey("An oversized batch is rejected", func() {
			slots := make([]string, 11)
			for i := range slots {
				slots[i] = `{"event":"50_free","course":"SCY","time":"22.00"}`
			}
			body := `{"target_course":"LCM","results":[` + strings.Join(slots, ",") + `]}`
			w := doJSON(mux, "POST", "/convert/batch", body)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "batch_too_large")
		})

		Convey("An empty batch is rejected", func() {
			w := doJSON(mux, "POST", "/convert/batch", `{"target_course":"LCM","results":[]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestCompareEndpoint(t *testing.T) {
	Convey("Given the compare endpoint", t, func() {
		mux := newTestMux(t, newMockDependencies(t))

		Convey("A time under the standard is met", func() {
			w := doJSON(mux, "POST", "/compare",
				`{"event":"50_free","course":"SCY","time":"19.50","division":"d1","gender":"men"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["met"], ShouldEqual, true)
			So(resp["standard"], ShouldEqual, "19.85")
		})

		Convey("An LCM time is converted before comparison", func() {
			w := doJSON(mux, "POST", "/compare",
				`{"event":"50_free","course":"LCM","time":"24.00","division":"d2","gender":"men"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["converted"], ShouldEqual, "20.75")
			So(resp["met"], ShouldEqual, true)
		})

		Convey("An unknown division yields 400", func() {
			w := doJSON(mux, "POST", "/compare",
				`{"event":"50_free","course":"SCY","time":"19.50","division":"d9","gender":"men"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An event with no tabulated standard yields 404", func() {
			w := doJSON(mux, "POST", "/compare",
				`{"event":"25_free","course":"SCY","time":"12.00","division":"d1","gender":"men"}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestAltitudeEndpoint(t *testing.T) {
	Convey("Given the altitude endpoint", t, func() {
		mux := newTestMux(t, newMockDependencies(t))

		Convey("A time swum above the threshold is corrected", func() {
			w := doJSON(mux, "POST", "/altitude",
				`{"event":"100_free","course":"SCY","time":"52.00","elevation_m":1850}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["time"], ShouldEqual, "51.22")
		})

		Convey("A time below the threshold passes through", func() {
			w := doJSON(mux, "POST", "/altitude",
				`{"event":"100_free","course":"SCY","time":"52.00","elevation_m":300}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["time"], ShouldEqual, "52.00")
		})

		Convey("A negative elevation yields 400", func() {
			w := doJSON(mux, "POST", "/altitude",
				`{"event":"100_free","course":"SCY","time":"52.00","elevation_m":-10}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "invalid_elevation")
		})
	})
}

func TestTimesEndpoint(t *testing.T) {
	Convey("Given the times ingest endpoint", t, func() {
		deps := newMockDependencies(t)
		mux := newTestMux(t, deps)

		body := `{"submission_id":"sub-1","swimmer_id":"sw-9","event":"100_free","course":"LCM","time":"58.00","meet_name":"Sectionals","meet_date":"2026-03-14T09:00:00Z"}`

		Convey("A fresh submission is accepted", func() {
			w := doJSON(mux, "POST", "/times", body)
			So(w.Code, ShouldEqual, http.StatusAccepted)
			So(len(deps.enqueued), ShouldEqual, 1)
			So(deps.enqueued[0].SwimmerID, ShouldEqual, "sw-9")
			So(deps.enqueued[0].Result.Time.String(), ShouldEqual, "58.00")
		})

		Convey("A replayed submission id is flagged duplicate", func() {
			So(doJSON(mux, "POST", "/times", body).Code, ShouldEqual, http.StatusAccepted)
			w := doJSON(mux, "POST", "/times", body)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "duplicate")
			So(len(deps.enqueued), ShouldEqual, 1)
		})

		Convey("Backpressure yields 429 and rolls back the seen mark", func() {
			deps.enqueueSuccess = false
			So(doJSON(mux, "POST", "/times", body).Code, ShouldEqual, http.StatusTooManyRequests)

			deps.enqueueSuccess = true
			So(doJSON(mux, "POST", "/times", body).Code, ShouldEqual, http.StatusAccepted)
		})

		Convey("A submission missing its swimmer id yields 400", func() {
			w := doJSON(mux, "POST", "/times",
				`{"submission_id":"sub-2","event":"100_free","course":"LCM","time":"58.00"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "swimmer_id")
		})
	})
}

func TestRankingsEndpoint(t *testing.T) {
	Convey("Given the rankings endpoint", t, func() {
		deps := newMockDependencies(t)
		deps.topN = []types.Entry{
			{Rank: 1, SwimmerID: "sw-1", Event: "100_free", Time: "43.80", Seconds: 43.80},
			{Rank: 2, SwimmerID: "sw-2", Event: "100_free", Time: "44.10", Seconds: 44.10},
		}
		mux := newTestMux(t, deps)

		Convey("Entries come back in rank order", func() {
			w := doJSON(mux, "GET", "/rankings?event=100_free&limit=10", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			var entries []types.Entry
			So(json.Unmarshal(w.Body.Bytes(), &entries), ShouldBeNil)
			So(len(entries), ShouldEqual, 2)
			So(entries[0].SwimmerID, ShouldEqual, "sw-1")
		})

		Convey("A missing event parameter yields 400", func() {
			w := doJSON(mux, "GET", "/rankings?limit=10", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A limit over the maximum yields 400", func() {
			w := doJSON(mux, "GET", "/rankings?event=100_free&limit=101", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "limit_exceeded")
		})
	})
}

func TestRankEndpoint(t *testing.T) {
	Convey("Given the rank endpoint", t, func() {
		deps := newMockDependencies(t)
		deps.rank = types.Entry{Rank: 3, SwimmerID: "sw-7", Event: "200_fly", Time: "1:55.40", Seconds: 115.40}
		mux := newTestMux(t, deps)

		Convey("A ranked swimmer is returned", func() {
			w := doJSON(mux, "GET", "/rank/200_fly/sw-7", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			var entry types.Entry
			So(json.Unmarshal(w.Body.Bytes(), &entry), ShouldBeNil)
			So(entry.Rank, ShouldEqual, 3)
		})

		Convey("An unranked swimmer yields 404", func() {
			deps.rankErr = repository.ErrNotFound
			w := doJSON(mux, "GET", "/rank/200_fly/sw-0", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A malformed path yields 400", func() {
			w := doJSON(mux, "GET", "/rank/200_fly", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStandardsEndpoint(t *testing.T) {
	Convey("Given the standards endpoint", t, func() {
		mux := newTestMux(t, newMockDependencies(t))

		Convey("A single event lookup returns one entry", func() {
			w := doJSON(mux, "GET", "/standards?division=d1&gender=men&event=50_free", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "19.85")
		})

		Convey("Listing returns every tabulated event for the pair", func() {
			w := doJSON(mux, "GET", "/standards?division=d2&gender=women", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Course    string `json:"course"`
				Standards []struct {
					Event string `json:"event"`
				} `json:"standards"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Course, ShouldEqual, "SCY")
			So(len(resp.Standards), ShouldBeGreaterThan, 5)
		})

		Convey("An event outside the sheet yields 404", func() {
			w := doJSON(mux, "GET", "/standards?division=d1&gender=men&event=25_free", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("An unknown gender yields 400", func() {
			w := doJSON(mux, "GET", "/standards?division=d1&gender=mixed", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
