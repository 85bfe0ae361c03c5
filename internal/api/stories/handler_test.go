package stories

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"historinhas-api/config"
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

// Without an API key the client stops before any network call, so reaching
// the generic generation error proves the request bound and the child
// resolved.
func withoutAPIKey(t *testing.T) {
	original := config.OPENAI_API_KEY
	config.OPENAI_API_KEY = ""
	t.Cleanup(func() { config.OPENAI_API_KEY = original })
}

func storyRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
	})
	r.POST("/stories/generate", GenerateStory)
	return r
}

func postGenerate(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/stories/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func childColumns() []string {
	return []string{"id", "user_id", "name", "age", "gender", "created_at"}
}

func TestGenerateAcceptsChildAttributes(t *testing.T) {
	withoutAPIKey(t)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .* FROM "children"`).
		WillReturnRows(sqlmock.NewRows(childColumns()).
			AddRow(3, 7, "Alice", 5, "menina", time.Now()))

	r := storyRouter(7)
	w := postGenerate(t, r, `{"childName":"Alice","childAge":6,"childGender":"menina","storyTheme":"Fundo do Mar"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Não foi possível gerar a história")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateAcceptsChildID(t *testing.T) {
	withoutAPIKey(t)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .* FROM "children"`).
		WillReturnRows(sqlmock.NewRows(childColumns()).
			AddRow(3, 7, "Alice", 5, "menina", time.Now()))

	r := storyRouter(7)
	w := postGenerate(t, r, `{"child_id":3,"storyTheme":"Espaço"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Não foi possível gerar a história")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateRequiresTheme(t *testing.T) {
	r := storyRouter(7)
	w := postGenerate(t, r, `{"childName":"Alice"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateRequiresChildReference(t *testing.T) {
	r := storyRouter(7)
	w := postGenerate(t, r, `{"storyTheme":"Dinossauros"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Informe a criança")
}

func TestGenerateUnknownChildName(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .* FROM "children"`).
		WillReturnRows(sqlmock.NewRows(childColumns()))

	r := storyRouter(7)
	w := postGenerate(t, r, `{"childName":"Bruno","storyTheme":"Floresta"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Criança não encontrada")
}

func TestGenerateRejectsInvalidAge(t *testing.T) {
	r := storyRouter(7)
	w := postGenerate(t, r, `{"childName":"Alice","childAge":42,"storyTheme":"Circo"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "idade")
}
