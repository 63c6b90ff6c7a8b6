package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thereayou/studnet/internal/config"
	"github.com/thereayou/studnet/internal/database"
	"github.com/thereayou/studnet/internal/handlers"
	"github.com/thereayou/studnet/internal/middleware"
	"github.com/thereayou/studnet/internal/models"
	"github.com/thereayou/studnet/pkg/auth"
)

// fakeStore реализует services.Store в памяти, чтобы гонять хендлеры
// без живой Mongo. Часы логические: каждый insert на секунду позже.
type fakeStore struct {
	mu          sync.Mutex
	now         time.Time
	users       map[string]models.User
	groups      map[string]models.Group
	memberships []models.Membership
	messages    []models.Message
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		now:    time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		users:  make(map[string]models.User),
		groups: make(map[string]models.Group),
	}
}

func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return database.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := f.tick()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID.Hex()] = *user
	return nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (f *fakeStore) CreateGroup(ctx context.Context, group *models.Group) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if group.ID.IsZero() {
		group.ID = primitive.NewObjectID()
	}
	now := f.tick()
	group.CreatedAt = now
	group.UpdatedAt = now
	f.groups[group.ID.Hex()] = *group
	return nil
}

func (f *fakeStore) GetGroupByID(ctx context.Context, id string) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &g, nil
}

func (f *fakeStore) ListGroups(ctx context.Context) ([]models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Group, 0, len(f.groups))
	for _, g := range f.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) DeleteGroup(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.groups[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.groups, id)
	return nil
}

func (f *fakeStore) AddMember(ctx context.Context, groupID, userID string) error {
	groupOID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return database.ErrNotFound
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return database.ErrNotFound
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.memberships {
		if m.GroupID == groupOID && m.UserID == userOID {
			return database.ErrDuplicateMembership
		}
	}
	f.memberships = append(f.memberships, models.Membership{
		ID:        primitive.NewObjectID(),
		GroupID:   groupOID,
		UserID:    userOID,
		CreatedAt: f.tick(),
	})
	return nil
}

func (f *fakeStore) RemoveMember(ctx context.Context, groupID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.memberships[:0]
	for _, m := range f.memberships {
		if m.GroupID.Hex() == groupID && m.UserID.Hex() == userID {
			continue
		}
		kept = append(kept, m)
	}
	f.memberships = kept
	return nil
}

func (f *fakeStore) ListMembershipsByGroups(ctx context.Context, groupIDs []string) ([]models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		want[id] = true
	}
	var out []models.Membership
	for _, m := range f.memberships {
		if want[m.GroupID.Hex()] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteMembershipsByGroup(ctx context.Context, groupID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.memberships[:0]
	for _, m := range f.memberships {
		if m.GroupID.Hex() != groupID {
			kept = append(kept, m)
		}
	}
	f.memberships = kept
	return nil
}

func (f *fakeStore) CreateMessage(ctx context.Context, message *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}
	message.CreatedAt = f.tick()
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeStore) ListMessagesByGroup(ctx context.Context, groupID string) ([]models.Message, error) {
	if _, err := primitive.ObjectIDFromHex(groupID); err != nil {
		return nil, database.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Message
	for _, m := range f.messages {
		if m.GroupID.Hex() == groupID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) DeleteMessagesByGroup(ctx context.Context, groupID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.messages[:0]
	for _, m := range f.messages {
		if m.GroupID.Hex() != groupID {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

type env struct {
	router *gin.Engine
	store  *fakeStore
	jwt    *auth.JWTManager
	cfg    *config.Config
}

// newEnv поднимает роутер с теми же маршрутами, что и боевой, но на fakeStore
func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		InstitutionDomain: "@stud.rau.ro",
		JWTSecret:         "test-secret",
		TokenTTL:          7 * 24 * time.Hour,
		UploadDir:         t.TempDir(),
	}
	store := newFakeStore()
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	logger := zap.NewNop()

	authH := handlers.NewAuthHandler(store, jwtMgr, cfg, logger)
	groupH := handlers.NewGroupHandler(store, logger)
	messageH := handlers.NewMessageHandler(store, logger)
	profileH := handlers.NewProfileHandler(store, logger)
	storageH := handlers.NewStorageHandler(cfg.UploadDir, logger)

	r := gin.New()
	guard := middleware.AuthMiddleware(jwtMgr, store)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", authH.Register)
	authGroup.POST("/login", authH.Login)
	authGroup.POST("/logout", authH.Logout)
	authGroup.GET("/session", guard, authH.Session)

	groups := r.Group("/groups", guard)
	groups.GET("", groupH.List)
	groups.POST("", groupH.Create)
	groups.GET("/:id", groupH.Get)
	groups.DELETE("/:id", groupH.Delete)
	groups.POST("/:id/join", groupH.Join)
	groups.POST("/:id/leave", groupH.Leave)

	messages := r.Group("/messages", guard)
	messages.GET("/group/:groupId", messageH.ListByGroup)
	messages.POST("", messageH.Send)

	profiles := r.Group("/profiles", guard)
	profiles.GET("", profileH.List)
	profiles.GET("/me", profileH.Me)

	r.POST("/storage/upload", guard, storageH.Upload)

	return &env{router: r, store: store, jwt: jwtMgr, cfg: cfg}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json %q: %v", rec.Body.String(), err)
	}
	return body
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json %q: %v", rec.Body.String(), err)
	}
	return body
}

// register заводит аккаунт и возвращает (userID, token)
func (e *env) register(t *testing.T, email, password, fullName, faculty string) (string, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email": email, "password": password, "fullName": fullName, "faculty": faculty,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", email, rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	user := body["user"].(map[string]any)
	session := body["session"].(map[string]any)
	return user["id"].(string), session["access_token"].(string)
}

// createGroup создаёт группу под данным токеном и возвращает её id
func (e *env) createGroup(t *testing.T, token, name string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/groups", token, map[string]any{
		"name": name, "faculty": "Management", "year": 2,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group %s: status = %d, body = %s", name, rec.Code, rec.Body.String())
	}
	group := decode(t, rec)["group"].(map[string]any)
	return group["id"].(string)
}
