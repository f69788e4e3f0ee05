package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alumnidir/internal/cache"
	"alumnidir/internal/db"
	"alumnidir/internal/handler"
	"alumnidir/internal/metrics"
	"alumnidir/internal/model"
	"alumnidir/internal/repository"
	"alumnidir/internal/service"
)

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newCachedTestServer(t, nil)
}

func newCachedTestServer(t *testing.T, c *cache.Client) *testServer {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	gormDB, err := db.Open(db.Options{
		Driver:   "sqlite",
		DSN:      "file:router_" + name + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	userRepo := repository.NewUserRepository(gormDB)
	users := service.NewUserService(userRepo, c, time.Minute)
	profiles := service.NewProfileService(userRepo, repository.NewInternshipRepository(gormDB), repository.NewProjectRepository(gormDB), c, time.Minute)
	lookups := service.NewLookupService(repository.NewLookupRepository(gormDB))

	reg := prometheus.NewRegistry()
	e := echo.New()
	Register(e, zap.NewNop(), metrics.NewHTTPMetrics("test", reg), reg, Handlers{
		Health: handler.NewHealthHandler(gormDB),
		User:   handler.NewUserHandler(users, profiles, false),
		Lookup: handler.NewLookupHandler(lookups, false),
	})
	return &testServer{e: e, db: gormDB}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *testServer) addUser(t *testing.T, body string) uint {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint(decode(t, rec)["user_id"].(float64))
}

func TestRoot(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Backend is running successfully", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz?check=db", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["db_status"])

	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec = s.do(t, http.MethodGet, "/healthz?check=db", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateUser(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/users", `{"first_name":"Ana","last_name":"Lee","email_id":"a@x.com","admission_year":2021}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "User added successfully", body["message"])
	assert.NotZero(t, body["user_id"])

	rec = s.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.UserSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, 2021, users[0].AdmissionYear)
	assert.Equal(t, "Ana", users[0].FirstName)

	id := uint(body["user_id"].(float64))
	rec = s.do(t, http.MethodGet, "/users/"+strconv.Itoa(int(id))+"/record", "")
	require.Equal(t, http.StatusOK, rec.Code)
	record := decode(t, rec)
	assert.Equal(t, "", record["phone_number"])
	assert.Equal(t, "", record["gender"])
	assert.Nil(t, record["dob"])
}

func TestCreateUser_MissingFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/users", `{"first_name":"Ana","email_id":"a@x.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Required fields missing", body["error"])
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.ElementsMatch(t, []interface{}{"last_name", "admission_year"}, body["details"])

	rec = s.do(t, http.MethodGet, "/users", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateUser_MalformedBody(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/users", `{"first_name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, rec)["code"])
}

func TestUpdateUser(t *testing.T) {
	s := newTestServer(t)
	id := s.addUser(t, `{"first_name":"Ana","last_name":"Lee","email_id":"a@x.com","admission_year":2021,"phone_number":"555","bio":"hello"}`)
	path := "/users/" + strconv.Itoa(int(id))

	rec := s.do(t, http.MethodPut, path, `{"first_name":"Anna","last_name":"Lee","email_id":"anna@x.com","dob":"2001-04-12"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Profile saved successfully!"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, path+"/record", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Anna", user.FirstName)
	assert.Equal(t, "anna@x.com", user.EmailID)
	assert.Equal(t, "", user.PhoneNumber)
	assert.Equal(t, "", user.Bio)
	assert.Equal(t, 2021, user.AdmissionYear)
	require.NotNil(t, user.Dob)
	assert.Equal(t, "2001-04-12", user.Dob.Format("2006-01-02"))
}

func TestUpdateUser_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/users/999999", `{"first_name":"Ghost"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decode(t, rec)["error"])

	var count int64
	require.NoError(t, s.db.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteUser(t *testing.T) {
	s := newTestServer(t)
	id := s.addUser(t, `{"first_name":"Ana","last_name":"Lee","email_id":"a@x.com","admission_year":2021}`)
	path := "/users/" + strconv.Itoa(int(id))

	for i := 0; i < 2; i++ {
		rec := s.do(t, http.MethodDelete, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"User deleted successfully"}`, rec.Body.String())
	}

	rec := s.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodGet, path+"/record", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidID(t *testing.T) {
	s := newTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/users/abc"},
		{http.MethodGet, "/users/0/record"},
		{http.MethodPut, "/users/-1"},
		{http.MethodDelete, "/users/1.5"},
	} {
		rec := s.do(t, tc.method, tc.path, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.path)
		assert.Equal(t, "INVALID_ID", decode(t, rec)["code"], tc.path)
	}
}

func TestGetProfile(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	lookups := repository.NewLookupRepository(s.db)
	programme, err := lookups.FindOrCreateProgramme(ctx, "B.Tech")
	require.NoError(t, err)

	id := s.addUser(t, `{"first_name":"Ana","last_name":"Lee","email_id":"a@x.com","admission_year":2021,"programme_id":`+
		strconv.Itoa(int(programme.ProgrammeID))+`}`)

	internships := repository.NewInternshipRepository(s.db)
	projects := repository.NewProjectRepository(s.db)
	for _, company := range []string{"Acme", "Globex"} {
		require.NoError(t, internships.Create(ctx, &model.Internship{UserID: id, CompanyName: company}))
	}
	for _, name := range []string{"Compiler", "Kernel", "Shell"} {
		require.NoError(t, projects.Create(ctx, &model.Project{UserID: id, ProjectName: name}))
	}

	rec := s.do(t, http.MethodGet, "/users/"+strconv.Itoa(int(id)), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var profile model.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Ana", profile.FirstName)
	require.NotNil(t, profile.ProgrammeName)
	assert.Equal(t, "B.Tech", *profile.ProgrammeName)
	assert.Nil(t, profile.BranchName)
	assert.Len(t, profile.Internships, 2)
	assert.Len(t, profile.Projects, 3)
	assert.Equal(t, "Acme", profile.Internships[0].CompanyName)
}

func TestGetProfile_NoChildren(t *testing.T) {
	s := newTestServer(t)
	id := s.addUser(t, `{"first_name":"Ana","last_name":"Lee","email_id":"a@x.com","admission_year":2021}`)

	rec := s.do(t, http.MethodGet, "/users/"+strconv.Itoa(int(id)), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []interface{}{}, body["internships"])
	assert.Equal(t, []interface{}{}, body["projects"])
	assert.Nil(t, body["programme_name"])
}

func TestGetProfile_NotFound(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/users/999999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decode(t, rec)["error"])
}

func TestDirectoryAndLookups(t *testing.T) {
	s := newTestServer(t)
	s.addUser(t, `{"first_name":"Ana","last_name":"Lee","email_id":"a@x.com","admission_year":2021}`)

	rec := s.do(t, http.MethodGet, "/directory", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []model.DirectoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "N/A", entries[0].ExamPrep)

	rec = s.do(t, http.MethodGet, "/programmes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/branches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestStoreFailureIsReported(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.db.Migrator().DropTable(&model.Project{}, &model.Internship{}, &model.User{}))

	rec := s.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
	assert.Contains(t, body["error"], "users")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/users", "")

	rec := s.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/users",service="test",status="200"} 1`)
}

func TestCachedReadsStayFresh(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	defer c.Close()

	s := newCachedTestServer(t, c)
	id := s.addUser(t, `{"first_name":"Ana","last_name":"Lee","email_id":"a@x.com","admission_year":2021}`)
	path := "/users/" + strconv.Itoa(int(id))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, "").Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path+"/record", "").Code)
	assert.True(t, mr.Exists("profile:"+strconv.Itoa(int(id))))
	assert.True(t, mr.Exists("user:"+strconv.Itoa(int(id))))

	rec := s.do(t, http.MethodPut, path, `{"first_name":"Anna","last_name":"Lee","email_id":"a@x.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Anna", decode(t, rec)["first_name"])
	rec = s.do(t, http.MethodGet, path+"/record", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Anna", decode(t, rec)["first_name"])

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, path+"/record", "").Code)
}

func TestCreateUser_StringAdmissionYear(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/users", `{"first_name":"Ana","last_name":"Lee","email_id":"a@x.com","admission_year":"2021"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, rec)["code"])

	rec = s.do(t, http.MethodGet, "/users", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}
