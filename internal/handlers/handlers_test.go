package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/murmur-app/backend/internal/models"
	"github.com/murmur-app/backend/internal/repositories"
	"github.com/murmur-app/backend/internal/services"
	"github.com/murmur-app/backend/validators"
)

// testAPI wires handlers over services backed by the in-memory store
type testAPI struct {
	echo     *echo.Echo
	store    *repositories.MemoryStore
	murmur   *MurmurHandler
	timeline *TimelineHandler
	like     *LikeHandler
	user     *UserHandler
	follow   *FollowHandler
}

func newTestAPI() *testAPI {
	e := echo.New()
	e.Validator = validators.NewValidator()

	store := repositories.NewMemoryStore()
	engagement := services.NewEngagementService(store, store)
	return &testAPI{
		echo:     e,
		store:    store,
		murmur:   NewMurmurHandler(services.NewMurmurService(store, store)),
		timeline: NewTimelineHandler(services.NewTimelineService(store, store, store, engagement)),
		like:     NewLikeHandler(engagement),
		user:     NewUserHandler(services.NewUserService(store, store), services.NewMurmurService(store, store)),
		follow:   NewFollowHandler(services.NewSocialGraphService(store, store)),
	}
}

func (a *testAPI) addUser(t *testing.T, name string) uint {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com"}
	if err := a.store.CreateUser(user); err != nil {
		t.Fatal(err)
	}
	return user.ID
}

func (a *testAPI) addMurmur(t *testing.T, userID uint, text string) uint {
	t.Helper()
	murmur := &models.Murmur{UserID: userID, Text: text}
	if err := a.store.CreateMurmur(murmur); err != nil {
		t.Fatal(err)
	}
	return murmur.ID
}

// request builds an echo context with the authenticated viewer set, the
// way JWTAuthMiddleware would leave it
func (a *testAPI) request(method, target, body string, viewerID uint) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := a.echo.NewContext(req, rec)
	c.Set("viewerID", viewerID)
	return c, rec
}

func setIDParam(c echo.Context, id uint) {
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(id), 10))
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an *echo.HTTPError, got nil")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected an *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestCreateMurmur(t *testing.T) {
	api := newTestAPI()
	viewer := api.addUser(t, "alice")

	c, rec := api.request(http.MethodPost, "/api/me/murmurs", `{"text":"hello world"}`, viewer)
	if err := api.murmur.CreateMurmur(c); err != nil {
		t.Fatalf("CreateMurmur: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["text"] != "hello world" {
		t.Errorf("text = %v, want hello world", body["text"])
	}
	if body["likeCount"] != float64(0) {
		t.Errorf("likeCount = %v, want 0", body["likeCount"])
	}
	if body["userId"] != float64(viewer) {
		t.Errorf("userId = %v, want %d", body["userId"], viewer)
	}
	if _, ok := body["createdAt"]; !ok {
		t.Error("response missing createdAt")
	}
}

func TestCreateMurmurValidation(t *testing.T) {
	api := newTestAPI()
	viewer := api.addUser(t, "alice")

	tests := []struct {
		name string
		body string
	}{
		{"empty text", `{"text":""}`},
		{"missing text", `{}`},
		{"text over 500 code points", `{"text":"` + strings.Repeat("x", 501) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := api.request(http.MethodPost, "/api/me/murmurs", tt.body, viewer)
			err := api.murmur.CreateMurmur(c)
			if got := httpStatus(t, err); got != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", got)
			}
		})
	}
}

func TestCreateMurmurAtTextLimit(t *testing.T) {
	api := newTestAPI()
	viewer := api.addUser(t, "alice")

	// 500 multi-byte code points must pass: the limit counts code
	// points, not bytes.
	c, rec := api.request(http.MethodPost, "/api/me/murmurs", `{"text":"`+strings.Repeat("あ", 500)+`"}`, viewer)
	if err := api.murmur.CreateMurmur(c); err != nil {
		t.Fatalf("CreateMurmur at limit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestDeleteMurmur(t *testing.T) {
	api := newTestAPI()
	author := api.addUser(t, "author")
	other := api.addUser(t, "other")
	murmurID := api.addMurmur(t, author, "mine")

	c, _ := api.request(http.MethodDelete, "/", "", other)
	setIDParam(c, murmurID)
	if got := httpStatus(t, api.murmur.DeleteMurmur(c)); got != http.StatusForbidden {
		t.Errorf("delete by non-owner status = %d, want 403", got)
	}

	c, rec := api.request(http.MethodDelete, "/", "", author)
	setIDParam(c, murmurID)
	if err := api.murmur.DeleteMurmur(c); err != nil {
		t.Fatalf("DeleteMurmur: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	c, _ = api.request(http.MethodDelete, "/", "", author)
	setIDParam(c, murmurID)
	if got := httpStatus(t, api.murmur.DeleteMurmur(c)); got != http.StatusNotFound {
		t.Errorf("delete of deleted murmur status = %d, want 404", got)
	}
}

func TestLikeMurmurStatusCodes(t *testing.T) {
	api := newTestAPI()
	author := api.addUser(t, "author")
	viewer := api.addUser(t, "viewer")
	murmurID := api.addMurmur(t, author, "likeable")

	c, rec := api.request(http.MethodPost, "/", "", viewer)
	setIDParam(c, murmurID)
	if err := api.like.LikeMurmur(c); err != nil {
		t.Fatalf("LikeMurmur: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["likeCount"] != float64(1) {
		t.Errorf("likeCount = %v, want 1", body["likeCount"])
	}

	c, _ = api.request(http.MethodPost, "/", "", viewer)
	setIDParam(c, murmurID)
	if got := httpStatus(t, api.like.LikeMurmur(c)); got != http.StatusConflict {
		t.Errorf("duplicate like status = %d, want 409", got)
	}

	c, _ = api.request(http.MethodPost, "/", "", viewer)
	setIDParam(c, 999)
	if got := httpStatus(t, api.like.LikeMurmur(c)); got != http.StatusNotFound {
		t.Errorf("like of missing murmur status = %d, want 404", got)
	}
}

func TestUnlikeMurmurStatusCodes(t *testing.T) {
	api := newTestAPI()
	author := api.addUser(t, "author")
	viewer := api.addUser(t, "viewer")
	murmurID := api.addMurmur(t, author, "likeable")

	c, _ := api.request(http.MethodDelete, "/", "", viewer)
	setIDParam(c, murmurID)
	if got := httpStatus(t, api.like.UnlikeMurmur(c)); got != http.StatusNotFound {
		t.Errorf("unlike without like status = %d, want 404", got)
	}

	c, _ = api.request(http.MethodPost, "/", "", viewer)
	setIDParam(c, murmurID)
	if err := api.like.LikeMurmur(c); err != nil {
		t.Fatal(err)
	}

	c, rec := api.request(http.MethodDelete, "/", "", viewer)
	setIDParam(c, murmurID)
	if err := api.like.UnlikeMurmur(c); err != nil {
		t.Fatalf("UnlikeMurmur: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["likeCount"] != float64(0) {
		t.Errorf("likeCount = %v, want 0", body["likeCount"])
	}
}

func TestFollowStatusCodes(t *testing.T) {
	api := newTestAPI()
	alice := api.addUser(t, "alice")
	bob := api.addUser(t, "bob")

	c, _ := api.request(http.MethodPost, "/", "", alice)
	setIDParam(c, alice)
	if got := httpStatus(t, api.follow.FollowUser(c)); got != http.StatusBadRequest {
		t.Errorf("self-follow status = %d, want 400", got)
	}

	c, _ = api.request(http.MethodPost, "/", "", alice)
	setIDParam(c, 999)
	if got := httpStatus(t, api.follow.FollowUser(c)); got != http.StatusNotFound {
		t.Errorf("follow missing target status = %d, want 404", got)
	}

	c, rec := api.request(http.MethodPost, "/", "", alice)
	setIDParam(c, bob)
	if err := api.follow.FollowUser(c); err != nil {
		t.Fatalf("FollowUser: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	c, _ = api.request(http.MethodPost, "/", "", alice)
	setIDParam(c, bob)
	if got := httpStatus(t, api.follow.FollowUser(c)); got != http.StatusConflict {
		t.Errorf("duplicate follow status = %d, want 409", got)
	}

	c, _ = api.request(http.MethodDelete, "/", "", alice)
	setIDParam(c, bob)
	if err := api.follow.UnfollowUser(c); err != nil {
		t.Fatalf("UnfollowUser: %v", err)
	}
	c, _ = api.request(http.MethodDelete, "/", "", alice)
	setIDParam(c, bob)
	if got := httpStatus(t, api.follow.UnfollowUser(c)); got != http.StatusNotFound {
		t.Errorf("second unfollow status = %d, want 404", got)
	}
}

func TestGetTimelineResponse(t *testing.T) {
	api := newTestAPI()
	viewer := api.addUser(t, "viewer")
	author := api.addUser(t, "author")

	c, _ := api.request(http.MethodPost, "/", "", viewer)
	setIDParam(c, author)
	if err := api.follow.FollowUser(c); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		api.addMurmur(t, author, "post")
	}

	c, rec := api.request(http.MethodGet, "/api/murmurs?page=1&limit=2", "", viewer)
	if err := api.timeline.GetTimeline(c); err != nil {
		t.Fatalf("GetTimeline: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var page models.TimelinePage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(page.Data) != 2 {
		t.Errorf("len(data) = %d, want 2", len(page.Data))
	}
	if page.Meta.Total != 3 || page.Meta.TotalPages != 2 {
		t.Errorf("meta = %+v, want total=3 totalPages=2", page.Meta)
	}
	if page.Data[0].UserName != "author" {
		t.Errorf("userName = %q, want author", page.Data[0].UserName)
	}
}

func TestGetUserProfile(t *testing.T) {
	api := newTestAPI()
	alice := api.addUser(t, "alice")
	bob := api.addUser(t, "bob")

	c, _ := api.request(http.MethodPost, "/", "", bob)
	setIDParam(c, alice)
	if err := api.follow.FollowUser(c); err != nil {
		t.Fatal(err)
	}

	c, rec := api.request(http.MethodGet, "/", "", bob)
	setIDParam(c, alice)
	if err := api.user.GetUser(c); err != nil {
		t.Fatalf("GetUser: %v", err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatal(err)
	}
	if profile.FollowerCount != 1 || !profile.IsFollowing {
		t.Errorf("profile = %+v, want followerCount=1 isFollowing=true", profile)
	}

	c, _ = api.request(http.MethodGet, "/", "", bob)
	setIDParam(c, 999)
	if got := httpStatus(t, api.user.GetUser(c)); got != http.StatusNotFound {
		t.Errorf("missing user status = %d, want 404", got)
	}
}

func TestGetUserMurmurs(t *testing.T) {
	api := newTestAPI()
	author := api.addUser(t, "author")
	viewer := api.addUser(t, "viewer")
	api.addMurmur(t, author, "one")
	api.addMurmur(t, author, "two")

	c, rec := api.request(http.MethodGet, "/", "", viewer)
	setIDParam(c, author)
	if err := api.user.GetUserMurmurs(c); err != nil {
		t.Fatalf("GetUserMurmurs: %v", err)
	}

	var murmurs []models.Murmur
	if err := json.Unmarshal(rec.Body.Bytes(), &murmurs); err != nil {
		t.Fatal(err)
	}
	if len(murmurs) != 2 {
		t.Errorf("len = %d, want 2", len(murmurs))
	}
}
