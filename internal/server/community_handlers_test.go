package server

import (
	"context"
	"net/http"
	"testing"

	"commune/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommunity_AssignsCreatorAndIncreasingIDs(t *testing.T) {
	t.Parallel()

	s, app, _ := newTestServer(t)
	alice := createTestUser(t, s.db, "alice", "password123")
	token := loginToken(t, s, alice.ID)

	var lastID uint
	for _, name := range []string{"Hiking", "Cycling", "Climbing"} {
		resp := doJSON(t, app, http.MethodPost, "/api/communities", models.InsertCommunity{
			Name:        name,
			Description: "Trails",
			Thumbnail:   "x",
			IsLocal:     true,
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var community models.Community
		decodeBody(t, resp, &community)
		assert.Equal(t, alice.ID, community.CreatorID)
		assert.Greater(t, community.ID, lastID)
		assert.False(t, community.CreatedAt.IsZero())
		lastID = community.ID
	}
}

func TestCreateCommunity_InvalidInputFieldErrors(t *testing.T) {
	t.Parallel()

	s, app, db := newTestServer(t)
	user := createTestUser(t, s.db, "bob", "password123")
	token := loginToken(t, s, user.ID)

	resp := doJSON(t, app, http.MethodPost, "/api/communities", models.InsertCommunity{
		Description: "no name or thumbnail",
	}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "INVALID_INPUT", body.Code)

	fields := make([]string, 0, len(body.Fields))
	for _, fe := range body.Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "thumbnail"}, fields)

	// Validation failures must never reach persistence.
	var count int64
	require.NoError(t, db.Model(&models.Community{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMutations_UnauthenticatedProduceNoSideEffects(t *testing.T) {
	t.Parallel()

	s, app, db := newTestServer(t)
	owner := createTestUser(t, s.db, "owner", "password123")
	require.NoError(t, db.Create(&models.Community{
		Name: "Hiking", Description: "Trails", Thumbnail: "x", CreatorID: owner.ID,
	}).Error)

	targets := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/api/communities", models.InsertCommunity{Name: "X", Description: "Y", Thumbnail: "z"}},
		{http.MethodPost, "/api/communities/1/join", nil},
		{http.MethodPost, "/api/communities/1/leave", nil},
		{http.MethodPost, "/api/communities/1/posts", models.InsertPost{Title: "Hi", Content: "Hello"}},
	}

	for _, target := range targets {
		resp := doJSON(t, app, target.method, target.path, target.body, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", target.method, target.path)
		_ = resp.Body.Close()
	}

	var communities, memberships, posts int64
	require.NoError(t, db.Model(&models.Community{}).Count(&communities).Error)
	require.NoError(t, db.Model(&models.Membership{}).Count(&memberships).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.EqualValues(t, 1, communities)
	assert.Zero(t, memberships)
	assert.Zero(t, posts)
}

func TestListCommunities_Search(t *testing.T) {
	t.Parallel()

	s, app, db := newTestServer(t)
	owner := createTestUser(t, s.db, "owner", "password123")

	for _, c := range []models.Community{
		{Name: "Hiking", Description: "Mountain trails", Thumbnail: "x", CreatorID: owner.ID},
		{Name: "Cooking", Description: "Recipes and hikes through flavor", Thumbnail: "x", CreatorID: owner.ID},
		{Name: "Chess", Description: "Openings", Thumbnail: "x", CreatorID: owner.ID},
	} {
		require.NoError(t, db.Create(&c).Error)
	}

	// Empty and omitted query both return the full set
	for _, target := range []string{"/api/communities", "/api/communities?q="} {
		resp := doJSON(t, app, http.MethodGet, target, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var all []models.Community
		decodeBody(t, resp, &all)
		assert.Len(t, all, 3, target)
	}

	// Case-insensitive substring match covers name and description
	resp := doJSON(t, app, http.MethodGet, "/api/communities?q=HIK", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var matched []models.Community
	decodeBody(t, resp, &matched)
	require.Len(t, matched, 2)
	names := []string{matched[0].Name, matched[1].Name}
	assert.ElementsMatch(t, []string{"Hiking", "Cooking"}, names)
}

func TestGetCommunity_NotFound(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/communities/999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestJoinTwiceLeaveOnce_RemovesMembershipEntirely(t *testing.T) {
	t.Parallel()

	s, app, db := newTestServer(t)
	alice := createTestUser(t, s.db, "alice", "password123")
	token := loginToken(t, s, alice.ID)

	community := models.Community{Name: "Hiking", Description: "Trails", Thumbnail: "x", CreatorID: alice.ID}
	require.NoError(t, db.Create(&community).Error)

	// Joining twice inserts duplicate rows; the schema does not prevent it.
	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/communities/1/join", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	var memberships int64
	require.NoError(t, db.Model(&models.Membership{}).Count(&memberships).Error)
	assert.EqualValues(t, 2, memberships)

	// One leave deletes every matching row.
	resp := doJSON(t, app, http.MethodPost, "/api/communities/1/leave", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	isMember, err := s.communityRepo.IsMember(context.Background(), alice.ID, community.ID)
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestJoinAndLeave_MissingCommunity404(t *testing.T) {
	t.Parallel()

	s, app, _ := newTestServer(t)
	alice := createTestUser(t, s.db, "alice", "password123")
	token := loginToken(t, s, alice.ID)

	for _, target := range []string{"/api/communities/42/join", "/api/communities/42/leave"} {
		resp := doJSON(t, app, http.MethodPost, target, nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)
		_ = resp.Body.Close()
	}
}

func TestLeaveWithoutJoin_IsNoOp(t *testing.T) {
	t.Parallel()

	s, app, db := newTestServer(t)
	alice := createTestUser(t, s.db, "alice", "password123")
	token := loginToken(t, s, alice.ID)

	require.NoError(t, db.Create(&models.Community{
		Name: "Hiking", Description: "Trails", Thumbnail: "x", CreatorID: alice.ID,
	}).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/communities/1/leave", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
