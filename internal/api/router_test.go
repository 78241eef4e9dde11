package api

import (
	"checkpoint-route-service/internal/adapters/memory"
	"checkpoint-route-service/internal/api/dto"
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"checkpoint-route-service/internal/zones"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler     http.Handler
	checkpoints *memory.CheckpointStore
	sequences   *memory.SequenceStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cps := memory.NewCheckpointStore(
		domain.CheckpointNode{
			CheckpointID: "cpA", Name: "Posto Alua", DistrictID: "d-erati", DistrictName: "Eráti",
			ProvinceName: "Nampula", CheckpointType: domain.CheckpointInterprovincial,
			Links: domain.Links{EasternNext: "cpB"},
		},
		domain.CheckpointNode{
			CheckpointID: "cpB", Name: "Posto Chiúre", DistrictID: "d-chiure", DistrictName: "Chiúre",
			ProvinceName: "Cabo Delgado", CheckpointType: domain.CheckpointInterprovincial,
			Links: domain.Links{WesternNext: "cpA"},
		},
		domain.CheckpointNode{
			CheckpointID: "cpC", Name: "Posto Memba", DistrictID: "d-memba", DistrictName: "Memba",
			ProvinceName: "Nampula", CheckpointType: domain.CheckpointInterdistrital,
		},
	)
	districts := memory.NewDistrictStore(
		domain.District{DistrictID: "d-erati", Name: "Eráti"},
		domain.District{DistrictID: "d-chiure", Name: "Chiúre"},
		domain.District{DistrictID: "d-memba", Name: "Memba"},
	)
	directions := memory.NewDirectionStore()
	directions.Put("ship1", "dir1", "d-erati", "d-chiure")
	directions.Put("ship1", "dir2", "d-erati", "")
	sequences := memory.NewSequenceStore()

	gs, err := zones.Load()
	require.NoError(t, err)

	h := NewRouter(Dependencies{
		Checkpoints:   cps,
		Districts:     districts,
		Directions:    directions,
		Sequences:     sequences,
		Zones:         zones.NewResolver(gs, zones.WithPathLimit(5)),
		Metrics:       obs.NewMetrics(),
		SearchTimeout: 2 * time.Second,
	})

	return &testEnv{handler: h, checkpoints: cps, sequences: sequences}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndRequestID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = env.do(t, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthReportsUnreachableDatabase(t *testing.T) {
	h := NewRouter(Dependencies{
		Metrics: obs.NewMetrics(),
		Ping:    func(context.Context) error { return errors.New("connection refused") },
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unreachable", decode[map[string]string](t, rec)["database"])
}

func TestCheckpointPathsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/checkpoints/paths?departure=d-erati&destination=d-chiure&rank=true", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.ListPathsResponse](t, rec)
	require.Len(t, res.Paths, 1)
	assert.Equal(t, []string{"cpA", "cpB"}, res.Paths[0].CheckpointIDs)
	assert.Equal(t, []string{"Eráti", "Chiúre"}, res.Paths[0].Path)
	assert.True(t, res.Paths[0].Verified)
}

func TestCheckpointPathsFallbackHasEmptyIDs(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/checkpoints/paths?departure=d-erati&destination=d-memba", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"checkpoint_ids":[]`)

	res := decode[dto.ListPathsResponse](t, rec)
	require.Len(t, res.Paths, 1)
	assert.Equal(t, []string{"Eráti", "Memba"}, res.Paths[0].Path)
	assert.False(t, res.Paths[0].Verified)
}

func TestCheckpointPathsBadQuery(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{
		"/checkpoints/paths?departure=d-erati",
		"/checkpoints/paths?departure=d-erati&destination=d-chiure&max=-1",
		"/checkpoints/paths?departure=d-erati&destination=d-chiure&rank=maybe",
	} {
		rec := env.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestListCheckpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/checkpoints", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.ListCheckpointsResponse](t, rec)
	require.Len(t, res.Checkpoints, 3)
	require.NotNil(t, res.Checkpoints[0].Links.EasternNext)
	assert.Equal(t, "cpB", *res.Checkpoints[0].Links.EasternNext)
	assert.Nil(t, res.Checkpoints[0].Links.NorthernNext)
}

func TestLinkAndUnlinkEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/checkpoints/cpB/links/north", `{"neighbor_id":"cpC"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	b, _ := env.checkpoints.Get("cpB")
	c, _ := env.checkpoints.Get("cpC")
	assert.Equal(t, "cpC", b.NorthernNext)
	assert.Equal(t, "cpB", c.SouthernNext)

	rec = env.do(t, http.MethodDelete, "/checkpoints/cpC/links/south", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	b, _ = env.checkpoints.Get("cpB")
	assert.Empty(t, b.NorthernNext)
}

func TestUpdateLinksEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/checkpoints/cpC/links", `{"western_next_id":"cpA"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	a, _ := env.checkpoints.Get("cpA")
	c, _ := env.checkpoints.Get("cpC")
	assert.Equal(t, "cpA", c.WesternNext)
	assert.Equal(t, "cpB", a.EasternNext, "reverse slot is not written")

	rec = env.do(t, http.MethodPut, "/checkpoints/cpC/links", `{"northern_next_id":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodPut, "/checkpoints/cpC/links", `{"northern_next_id":"cpC"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = env.do(t, http.MethodPut, "/checkpoints/ghost/links", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLinkEndpointErrors(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name, method, target, body string
		want                       int
	}{
		{"bad direction", http.MethodPut, "/checkpoints/cpA/links/up", `{"neighbor_id":"cpB"}`, http.StatusBadRequest},
		{"missing neighbor", http.MethodPut, "/checkpoints/cpA/links/north", `{}`, http.StatusBadRequest},
		{"unknown field", http.MethodPut, "/checkpoints/cpA/links/north", `{"neighbor_id":"cpB","x":1}`, http.StatusBadRequest},
		{"self link", http.MethodPut, "/checkpoints/cpA/links/north", `{"neighbor_id":"cpA"}`, http.StatusBadRequest},
		{"unknown checkpoint", http.MethodPut, "/checkpoints/cpA/links/north", `{"neighbor_id":"ghost"}`, http.StatusNotFound},
		{"unlink unknown", http.MethodDelete, "/checkpoints/ghost/links/north", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, tc.method, tc.target, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestShipmentPathsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/shipments/ship1/directions/dir1/paths", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[dto.ListPathsResponse](t, rec)
	assert.Equal(t, "d-erati", res.DepartureDistrictID)
	require.Len(t, res.Paths, 1)
	assert.Equal(t, []string{"cpA", "cpB"}, res.Paths[0].CheckpointIDs)

	rec = env.do(t, http.MethodGet, "/shipments/ship1/directions/nope/paths", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/shipments/ship1/directions/dir2/paths", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSequenceEndpoints(t *testing.T) {
	env := newTestEnv(t)
	target := "/shipments/ship1/directions/dir1/sequence"

	for range 2 {
		rec := env.do(t, http.MethodPut, target, `{"checkpoint_ids":["cpA","cpB"],"sync_id":"s1"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res := decode[dto.SaveSequenceResponse](t, rec)
		assert.True(t, res.Success)
	}

	rec := env.do(t, http.MethodGet, target+"?after=cpA", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.SequenceResponse](t, rec)
	require.Len(t, res.Checkpoints, 2)
	assert.Equal(t, 1, res.Checkpoints[0].SequenceOrder)
	assert.Equal(t, "cpA", res.Checkpoints[0].CheckpointID)
	assert.Equal(t, string(domain.PathSystemGenerated), res.Checkpoints[0].Label)
	require.NotNil(t, res.NextCheckpointID)
	assert.Equal(t, "cpB", *res.NextCheckpointID)

	rec = env.do(t, http.MethodGet, target+"?after=cpB", "")
	res = decode[dto.SequenceResponse](t, rec)
	assert.Nil(t, res.NextCheckpointID)
}

func TestSaveSequenceValidation(t *testing.T) {
	env := newTestEnv(t)
	target := "/shipments/ship1/directions/dir1/sequence"

	for _, body := range []string{
		`{}`,
		`{"checkpoint_ids":["cpA",""]}`,
		`{"checkpoint_ids":["cpA","  "]}`,
		`{"checkpoint_ids":["cpA"],"label":"WHATEVER"}`,
		`{"checkpoint_ids":["cpA"]}{"checkpoint_ids":["cpB"]}`,
	} {
		rec := env.do(t, http.MethodPut, target, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec := env.do(t, http.MethodPut, target, `{"checkpoint_ids":["cpA"],"label":"CHANGED_DUE_TO_REJECTION"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestZonePathsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/zones/paths?from=Pemba&to=Chi%C3%BAre", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[dto.ZonePathsResponse](t, rec)
	assert.NotEmpty(t, res.AllPaths)
	assert.LessOrEqual(t, len(res.AllPaths), 5)
	assert.Equal(t, []string{"Pemba", "Mecúfi", "Chiúre"}, res.FewestHops)

	rec = env.do(t, http.MethodGet, "/zones/paths?from=Pemba", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/zones/paths?from=Atlantis&to=Pemba", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[dto.ZonePathsResponse](t, rec)
	assert.Empty(t, res.AllPaths)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/checkpoints/paths?departure=d-erati&destination=d-chiure", "")

	rec := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `checkpoint_route_path_searches_total{outcome="verified"} 1`)
}
