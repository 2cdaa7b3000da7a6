package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/murmur-app/backend/internal/models"
	"github.com/murmur-app/backend/internal/repositories"
)

// testEnv wires every service over one in-memory store
type testEnv struct {
	store       *repositories.MemoryStore
	socialGraph *SocialGraphService
	engagement  *EngagementService
	timeline    *TimelineService
	murmurs     *MurmurService
	users       *UserService
}

func newTestEnv() *testEnv {
	store := repositories.NewMemoryStore()
	engagement := NewEngagementService(store, store)
	return &testEnv{
		store:       store,
		socialGraph: NewSocialGraphService(store, store),
		engagement:  engagement,
		timeline:    NewTimelineService(store, store, store, engagement),
		murmurs:     NewMurmurService(store, store),
		users:       NewUserService(store, store),
	}
}

func (env *testEnv) addUser(t *testing.T, name string) uint {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com"}
	if err := env.store.CreateUser(user); err != nil {
		t.Fatalf("CreateUser(%s): %v", name, err)
	}
	return user.ID
}

func (env *testEnv) addMurmur(t *testing.T, userID uint, text string) uint {
	t.Helper()
	murmur := &models.Murmur{UserID: userID, Text: text}
	if err := env.store.CreateMurmur(murmur); err != nil {
		t.Fatalf("CreateMurmur(%q): %v", text, err)
	}
	return murmur.ID
}

// addMurmurAt creates a murmur with an explicit timestamp so ordering
// tests do not depend on wall-clock resolution.
func (env *testEnv) addMurmurAt(t *testing.T, userID uint, text string, createdAt time.Time) uint {
	t.Helper()
	murmur := &models.Murmur{UserID: userID, Text: text, CreatedAt: createdAt}
	if err := env.store.CreateMurmur(murmur); err != nil {
		t.Fatalf("CreateMurmur(%q): %v", text, err)
	}
	return murmur.ID
}

func (env *testEnv) follow(t *testing.T, followerID, targetID uint) {
	t.Helper()
	if err := env.socialGraph.Follow(followerID, targetID); err != nil {
		t.Fatalf("Follow(%d, %d): %v", followerID, targetID, err)
	}
}

func (env *testEnv) likeCount(t *testing.T, murmurID uint) int {
	t.Helper()
	murmur, err := env.store.GetMurmurByID(murmurID)
	if err != nil {
		t.Fatalf("GetMurmurByID(%d): %v", murmurID, err)
	}
	return murmur.LikeCount
}

func seedMurmurs(t *testing.T, env *testEnv, userID uint, n int) []uint {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := make([]uint, n)
	for i := 0; i < n; i++ {
		ids[i] = env.addMurmurAt(t, userID, fmt.Sprintf("murmur %d", i+1), base.Add(time.Duration(i)*time.Minute))
	}
	return ids
}
