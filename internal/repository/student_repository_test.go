package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/gateway"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	"github.com/SawaDev/remix-of-eduadmin-pro/pkg/config"
)

type token string

func (t token) Token(context.Context) (string, error) { return string(t), nil }

func newBackend(t *testing.T, register func(*gin.Engine)) (*gateway.Client, *cache.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	register(engine)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	cfg := config.APIConfig{BaseURL: server.URL, Prefix: "/api/v1", Timeout: 5 * time.Second}
	client := gateway.NewClient(cfg, token("t"), zap.NewNop(), gateway.NewMetrics())
	return client, cache.NewStore(zap.NewNop())
}

func TestStudentListServedFromCacheUntilInvalidated(t *testing.T) {
	calls := 0
	client, store := newBackend(t, func(e *gin.Engine) {
		e.GET("/api/v1/students", func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"data": []gin.H{{"id": 1, "full_name": "Aziza", "status": "ACTIVE"}}})
		})
	})
	repo := NewStudentRepository(client, store)

	first, err := repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	second, err := repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	store.InvalidateCollection(cache.CollectionStudents)
	_, err = repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestStudentListDistinctFiltersDistinctEntries(t *testing.T) {
	calls := 0
	client, store := newBackend(t, func(e *gin.Engine) {
		e.GET("/api/v1/students", func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"data": []gin.H{}})
		})
	})
	repo := NewStudentRepository(client, store)

	_, err := repo.List(context.Background(), models.StudentFilter{Search: "aziza"})
	require.NoError(t, err)
	_, err = repo.List(context.Background(), models.StudentFilter{Search: "botir"})
	require.NoError(t, err)
	_, err = repo.List(context.Background(), models.StudentFilter{Search: "aziza"})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestNewPoolDecodesBothBuckets(t *testing.T) {
	client, store := newBackend(t, func(e *gin.Engine) {
		e.GET("/api/v1/students/new-pool", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"data": gin.H{
				"new_students":      []gin.H{{"id": 42, "full_name": "Nigora", "status": "NEW_STUDENT"}},
				"previously_active": []gin.H{{"id": 9, "full_name": "Jasur", "status": "ACTIVE"}},
			}})
		})
	})
	repo := NewStudentRepository(client, store)

	pool, err := repo.NewPool(context.Background())
	require.NoError(t, err)
	require.Len(t, pool.NewStudents, 1)
	require.Len(t, pool.PreviouslyActive, 1)
	assert.Equal(t, models.StudentStatusNew, pool.NewStudents[0].Status)
}

func TestGroupDetailCachedPerGroup(t *testing.T) {
	calls := map[string]int{}
	client, store := newBackend(t, func(e *gin.Engine) {
		e.GET("/api/v1/groups/:id", func(c *gin.Context) {
			calls[c.Param("id")]++
			c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": 7, "name": "B1 evening", "level": "B1"}})
		})
	})
	repo := NewGroupRepository(client, store)

	_, err := repo.Detail(context.Background(), 7)
	require.NoError(t, err)
	_, err = repo.Detail(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, calls["7"])

	store.Invalidate(cache.DetailKey(cache.CollectionGroupDetail, 7))
	_, err = repo.Detail(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, calls["7"])
}

func TestActivateSendsExactPayload(t *testing.T) {
	var got map[string]interface{}
	client, store := newBackend(t, func(e *gin.Engine) {
		e.POST("/api/v1/students/activate", func(c *gin.Context) {
			require.NoError(t, c.BindJSON(&got))
			c.JSON(http.StatusOK, gin.H{"data": gin.H{"ok": true}})
		})
	})
	repo := NewGroupRepository(client, store)

	err := repo.Activate(context.Background(), dto.ActivateStudentRequest{StudentID: 42, GroupID: 7, Level: "B1"})
	require.NoError(t, err)
	assert.Equal(t, float64(42), got["student_id"])
	assert.Equal(t, float64(7), got["group_id"])
	assert.Equal(t, "B1", got["level"])
}
