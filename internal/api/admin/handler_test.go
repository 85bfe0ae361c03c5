package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"historinhas-api/database"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db

	return mock, func() {
		database.DB = originalDB
		mockDB.Close()
	}
}

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/users", ListAllUsers)
	return r
}

func getUsers(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/users", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestListAllUsersEmptyIsArray(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "role", "is_verified", "created_at"}))
	mock.ExpectQuery(`SELECT .* FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "plan_type", "status", "created_at"}))

	w := getUsers(adminRouter())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllUsersAttachesCurrentPlan(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "role", "is_verified", "created_at"}).
			AddRow(7, "Maria Silva", "maria@example.com", "user", true, now).
			AddRow(8, "João Souza", "joao@example.com", "user", true, now))

	// newest row first: user 7 renewed onto family after an old magic sub
	mock.ExpectQuery(`SELECT .* FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "plan_type", "status", "created_at"}).
			AddRow(2, 7, "family", "active", now).
			AddRow(1, 7, "magic", "canceled", now.AddDate(0, -2, 0)))

	w := getUsers(adminRouter())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"plan_type":"family"`)
	assert.NotContains(t, w.Body.String(), `"plan_type":"magic"`)
	assert.Contains(t, w.Body.String(), "joao@example.com")
	assert.NoError(t, mock.ExpectationsWereMet())
}
