package web

import (
	"context"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/offer-board/internal/config"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/maxaizer/offer-board/internal/form"
	"github.com/maxaizer/offer-board/internal/services"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) GetReferenceItems(ctx context.Context, path string) ([]models.ReferenceItem, error) {
	args := m.Called(ctx, path)
	items, _ := args.Get(0).([]models.ReferenceItem)
	return items, args.Error(1)
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, state form.State) form.State {
	return m.Called(ctx, state).Get(0).(form.State)
}

type mockDashboard struct {
	mock.Mock
}

func (m *mockDashboard) Dashboard(ctx context.Context) (*services.Dashboard, error) {
	args := m.Called(ctx)
	dashboard, _ := args.Get(0).(*services.Dashboard)
	return dashboard, args.Error(1)
}

type testServer struct {
	handler   http.Handler
	loader    *mockLoader
	submitter *mockSubmitter
	dashboard *mockDashboard
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	loader := &mockLoader{}
	loader.On("GetReferenceItems", mock.Anything, "/api/office-locations/").Return([]models.ReferenceItem{
		{"idOfficeLocation": float64(1), "fullName": "Corvallis, OR"},
		{"idOfficeLocation": float64(7), "fullName": "Remote"},
	}, nil)
	loader.On("GetReferenceItems", mock.Anything, "/api/offer-sources/").Return([]models.ReferenceItem{
		{"idOfferSource": float64(2), "type": "Career Fair"},
	}, nil)
	loader.On("GetReferenceItems", mock.Anything, mock.Anything).Return([]models.ReferenceItem{}, nil)

	ts := &testServer{loader: loader, submitter: &mockSubmitter{}, dashboard: &mockDashboard{}}

	server, err := NewServer(
		config.WebConfig{Port: 3000, MetricsPort: 8080, SessionTTL: time.Minute},
		"offer-board",
		Dependencies{References: loader, Submitter: ts.submitter, Dashboard: ts.dashboard},
	)
	require.NoError(t, err)
	ts.handler = server.Handler()
	return ts
}

func (ts *testServer) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	ts.handler.ServeHTTP(recorder, req)
	return recorder
}

func (ts *testServer) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (ts *testServer) post(values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req, cookies...)
}

func sessionCookieOf(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == sessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func Test_Form_RendersDefaultsAndOptions(t *testing.T) {

	assert := assert.New(t)
	ts := newTestServer(t)

	recorder := ts.get("/")

	assert.Equal(http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(body, "OSU Fulltime Offer Database")
	assert.Contains(body, `value="1.00"`)
	assert.Contains(body, `<option value="N/A" selected>N/A</option>`)
	assert.Contains(body, `<option value="Corvallis, OR">Corvallis, OR</option>`)
	assert.Contains(body, `<option value="Career Fair">Career Fair</option>`)
	assert.Contains(body, `href="/view-data"`)
	assert.NotContains(body, "Submit Error")
	sessionCookieOf(t, recorder)
}

func Test_Form_SubmitAppliesFieldsAndShowsOfferID(t *testing.T) {

	assert := assert.New(t)
	ts := newTestServer(t)

	var submitted form.State
	ts.submitter.On("Submit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { submitted = args.Get(1).(form.State) }).
		Return(func() form.State {
			id := int64(42)
			return form.State{Draft: models.OfferDraft{UserName: "alice"}, LastOfferID: &id}
		}()).Once()

	recorder := ts.post(url.Values{
		"action":           {"submit"},
		"userName":         {"alice"},
		"offerDate":        {"2021-05-08"},
		"bigTechOffer":     {"1"},
		"salary":           {"90000"},
		"gpa":              {"3.899"},
		"timeInProgram":    {"0.9"},
		"idOfficeLocation": {"Remote"},
		"idOfferSource":    {"N/A"},
	})

	assert.Equal(http.StatusOK, recorder.Code)
	assert.Contains(recorder.Body.String(), "Last Offer input ID: 42")

	draft := submitted.Draft
	assert.Equal("alice", draft.UserName)
	assert.Equal("2021-05-08", draft.OfferDate)
	assert.Equal(1, draft.BigTechOffer)
	assert.Equal(90000, *draft.Salary)
	assert.Equal(3.9, *draft.GPA)
	assert.Equal("3.90", submitted.GPAText)
	assert.Equal(0.9, *draft.TimeInProgram)
	assert.Equal(int64(7), *draft.IDOfficeLocation)
	assert.Nil(draft.IDOfferSource)
	ts.submitter.AssertExpectations(t)
}

func Test_Form_FieldErrorsBlockSubmit(t *testing.T) {

	assert := assert.New(t)
	ts := newTestServer(t)

	recorder := ts.post(url.Values{
		"action":   {"submit"},
		"userName": {"bob"},
		"salary":   {"lots"},
		"gpa":      {"3.2abc"},
	})

	assert.Equal(http.StatusUnprocessableEntity, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(body, "not an integer")
	assert.Contains(body, "not a number")
	assert.Contains(body, `value="3.2abc"`, "typed text is kept for correction")
	assert.Contains(body, `value="bob"`)
	ts.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func Test_Form_SubmitErrorCallout(t *testing.T) {
	ts := newTestServer(t)
	ts.submitter.On("Submit", mock.Anything, mock.Anything).
		Return(form.State{Error: "HTTP error, response not ok: userName cannot be empty"})

	recorder := ts.post(url.Values{"action": {"submit"}, "userName": {""}})

	body := recorder.Body.String()
	assert.Contains(t, body, "Submit Error")
	assert.Contains(t, body, "HTTP error, response not ok: userName cannot be empty")
}

func Test_Form_DraftSurvivesBetweenRequestsAndResets(t *testing.T) {

	assert := assert.New(t)
	ts := newTestServer(t)

	first := ts.post(url.Values{"userName": {"carol"}, "ageOfCandidate": {"31"}})
	assert.Equal(http.StatusOK, first.Code)
	cookie := sessionCookieOf(t, first)

	again := ts.get("/", cookie)
	assert.Contains(again.Body.String(), `value="carol"`)
	assert.Contains(again.Body.String(), `value="31"`)

	reset := ts.post(url.Values{"action": {"reset"}, "userName": {"ignored"}}, cookie)
	assert.NotContains(reset.Body.String(), "carol")
	assert.NotContains(reset.Body.String(), "ignored")

	afterReset := ts.get("/", cookie)
	assert.NotContains(afterReset.Body.String(), "carol")
}

func Test_Form_MalformedSessionCookieStartsNewSession(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.get("/", &http.Cookie{Name: sessionCookie, Value: "not-a-uuid"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEqual(t, "not-a-uuid", sessionCookieOf(t, recorder).Value)
}

func Test_Form_FailingReferenceListRendersSentinelOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	loader := &mockLoader{}
	loader.On("GetReferenceItems", mock.Anything, mock.Anything).Return(nil, errors.New("backend down"))

	server, err := NewServer(config.WebConfig{Port: 1, MetricsPort: 2}, "offer-board",
		Dependencies{References: loader, Submitter: &mockSubmitter{}, Dashboard: &mockDashboard{}})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/add-data", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 5, strings.Count(recorder.Body.String(), `<option value="N/A" selected>N/A</option>`))
}

type unreliableLoader struct {
	down atomic.Bool
}

func (l *unreliableLoader) GetReferenceItems(_ context.Context, path string) ([]models.ReferenceItem, error) {
	if l.down.Load() {
		return nil, errors.New("backend down")
	}
	if path == "/api/office-locations/" {
		return []models.ReferenceItem{{"idOfficeLocation": float64(7), "fullName": "Remote"}}, nil
	}
	return []models.ReferenceItem{}, nil
}

func Test_Form_FailedReferenceListKeepsStoredChoice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	loader := &unreliableLoader{}
	submitter := &mockSubmitter{}
	var submitted form.State
	submitter.On("Submit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { submitted = args.Get(1).(form.State) }).
		Return(form.New())

	server, err := NewServer(config.WebConfig{Port: 1, MetricsPort: 2}, "offer-board",
		Dependencies{References: loader, Submitter: submitter, Dashboard: &mockDashboard{}})
	require.NoError(t, err)
	ts := &testServer{handler: server.Handler()}

	first := ts.post(url.Values{"userName": {"erin"}, "idOfficeLocation": {"Remote"}})
	require.Equal(t, http.StatusOK, first.Code)
	cookie := sessionCookieOf(t, first)

	loader.down.Store(true)
	recorder := ts.post(url.Values{"action": {"submit"}, "userName": {"erin"}, "idOfficeLocation": {"Remote"}}, cookie)

	assert.Equal(t, http.StatusOK, recorder.Code)
	submitter.AssertNumberOfCalls(t, "Submit", 1)
	require.NotNil(t, submitted.Draft.IDOfficeLocation)
	assert.Equal(t, int64(7), *submitted.Draft.IDOfficeLocation)
}

func Test_Dashboard_Renders(t *testing.T) {

	assert := assert.New(t)
	ts := newTestServer(t)
	ts.dashboard.On("Dashboard", mock.Anything).Return(&services.Dashboard{
		TotalOffers:           "1,654",
		AverageSalary:         "$123,457",
		NonFaangAverageSalary: "N/A",
		SalaryGroups:          []services.SalaryBar{{Range: "50000-99999", Count: "11", Percent: 100}},
	}, nil)

	recorder := ts.get("/view-data")

	assert.Equal(http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(body, "Total Data Points: <span class=\"subtle\">1,654</span>")
	assert.Contains(body, "$123,457")
	assert.Contains(body, "Average Salary without FAANG: <span class=\"subtle\">N/A</span>")
	assert.Contains(body, "50000-99999")
	assert.Contains(body, `<a href="/view-data" class="active">View Data</a>`)
}

func Test_Dashboard_BackendFailureRendersBadGateway(t *testing.T) {
	ts := newTestServer(t)
	ts.dashboard.On("Dashboard", mock.Anything).Return(nil, errors.New("backend down"))

	recorder := ts.get("/view-data")

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Offer data unavailable")
}

func Test_Health(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.get("/health")

	require.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "offer-board", body["service"])
	assert.Equal(t, Version, body["version"])
}

func Test_NewServer_RequiresDependencies(t *testing.T) {
	_, err := NewServer(config.WebConfig{}, "offer-board", Dependencies{})
	assert.Error(t, err)
}
