package httpctx

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akorchagin/taskvault/internal/model"
)

func TestUser_Roundtrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	u := model.User{ID: uuid.New(), Email: "ann@x.com"}
	SetUser(c, u)

	got, ok := User(c)
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestUser_Absent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := User(c)
	assert.False(t, ok)
}
