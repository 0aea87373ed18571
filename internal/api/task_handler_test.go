package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCatalogue creates priorities High(1) and Low(2) and category Work(1),
// and returns tokens for alice (High) and bob (Low).
func seedCatalogue(t *testing.T, s *testServer) (alice, bob string) {
	t.Helper()
	s.do("POST", "/priorities/", map[string]string{"name": "High"}, "")
	s.do("POST", "/priorities/", map[string]string{"name": "Low"}, "")
	alice = s.register("alice", 1)
	bob = s.register("bob", 2)

	rec := s.do("POST", "/categories/", map[string]string{"name": "Work"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	return alice, bob
}

func TestTaskRoutes_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	alice, bob := seedCatalogue(t, s)

	rec := s.do("POST", "/tasks/", map[string]interface{}{
		"title":        "Write report",
		"description":  "quarterly",
		"priority_id":  2,
		"category_ids": []int64{1},
	}, bob)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"id": 1,
		"title": "Write report",
		"description": "quarterly",
		"completed": false,
		"priority": "Low",
		"categories": [{"id": 1, "name": "Work"}]
	}`, rec.Body.String())

	rec = s.do("PUT", "/tasks/1", map[string]interface{}{"completed": true, "category_ids": []int64{}}, bob)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	task := decodeBody[TaskResponse](t, rec)
	assert.True(t, task.Completed)
	assert.Empty(t, task.Categories)
	assert.Equal(t, "Write report", task.Title)

	rec = s.do("GET", "/tasks/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]TaskResponse](t, rec), 1)

	rec = s.do("DELETE", "/tasks/1", nil, bob)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Access denied: insufficient priority"}`, rec.Body.String())

	rec = s.do("DELETE", "/tasks/1", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, rec.Body.String())

	rec = s.do("GET", "/tasks/1", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Task not found"}`, rec.Body.String())
}

func TestTaskRoutes_BadReferences(t *testing.T) {
	s := newTestServer(t)
	alice, _ := seedCatalogue(t, s)

	rec := s.do("POST", "/tasks/", map[string]interface{}{"title": "x", "priority_id": 9}, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Priority not found"}`, rec.Body.String())

	rec = s.do("POST", "/tasks/", map[string]interface{}{"title": "x", "priority_id": 1, "category_ids": []int64{9}}, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Category not found"}`, rec.Body.String())
	assert.Equal(t, 0, s.stores.Tasks.Count())
}

func TestTaskRoutes_UpdateRejectsBlankTitle(t *testing.T) {
	s := newTestServer(t)
	alice, _ := seedCatalogue(t, s)

	rec := s.do("POST", "/tasks/", map[string]interface{}{"title": "t", "priority_id": 1}, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do("PUT", "/tasks/1", map[string]interface{}{"title": "   "}, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Validation error: task title cannot be empty"}`, rec.Body.String())

	rec = s.do("GET", "/tasks/1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t", decodeBody[TaskResponse](t, rec).Title)
}

func TestTaskRoutes_RequireAuthentication(t *testing.T) {
	s := newTestServer(t)
	seedCatalogue(t, s)

	rec := s.do("POST", "/tasks/", map[string]interface{}{"title": "x", "priority_id": 1}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Authorization header required"}`, rec.Body.String())

	rec = s.do("DELETE", "/tasks/1", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
}

func TestCategoryRoutes(t *testing.T) {
	s := newTestServer(t)
	alice, bob := seedCatalogue(t, s)

	rec := s.do("POST", "/categories/", map[string]string{"name": "Work"}, bob)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Category already exists"}`, rec.Body.String())

	rec = s.do("GET", "/categories/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Work"}]`, rec.Body.String())

	rec = s.do("PUT", "/categories/1", map[string]string{"name": "Office"}, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Office"}`, rec.Body.String())

	rec = s.do("PUT", "/categories/5", map[string]string{"name": "Home"}, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Category not found"}`, rec.Body.String())

	rec = s.do("DELETE", "/categories/1", nil, bob)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do("DELETE", "/categories/1", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Category deleted successfully"}`, rec.Body.String())
}
