package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/anandmuthunayagam/Mahizh/internal/config"
	"github.com/anandmuthunayagam/Mahizh/internal/database"
	"github.com/anandmuthunayagam/Mahizh/internal/models"
	"github.com/anandmuthunayagam/Mahizh/internal/router"
	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret     = "test-secret"
	testSetupToken = "test-setup-token"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// one shared in-memory database per test
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT:    config.JWTConfig{Secret: testSecret, ExpireHours: 24},
		Security: config.SecurityConfig{
			BcryptCost: 4, // fastest cost, fine for tests
			SetupToken: testSetupToken,
		},
		App: config.AppSubConfig{PageSize: 50},
	}
	return router.SetupRouter(cfg, db), db
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := util.GenerateToken(testSecret, 1, models.RoleAdmin, "", time.Hour)
	if err != nil {
		t.Fatalf("generate admin token: %v", err)
	}
	return token
}

func userToken(t *testing.T, homeNo string) string {
	t.Helper()
	token, err := util.GenerateToken(testSecret, 2, models.RoleUser, homeNo, time.Hour)
	if err != nil {
		t.Fatalf("generate user token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doMultipart sends a multipart form. When fileName is non-empty a
// "file" part with the given bytes and content type is included.
func doMultipart(t *testing.T, r *gin.Engine, method, path, token string,
	fields map[string]string, fileName, fileType string, fileData []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileName != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
		hdr.Set("Content-Type", fileType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(fileData); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeData unwraps the {"code":0,"data":{...}} success envelope.
func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	if envelope.Code != util.CodeOK {
		t.Fatalf("response code = %d, want %d (body %s)", envelope.Code, util.CodeOK, w.Body.String())
	}
	return envelope.Data
}

// decodeError unwraps the error envelope and returns the business code.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) (int, string) {
	t.Helper()

	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error response %q: %v", w.Body.String(), err)
	}
	return envelope.Code, envelope.Message
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}

func seedDirectory(t *testing.T, db *gorm.DB, homeNo, ownerName, ownerPhone, residentName, residentPhone string) {
	t.Helper()
	rec := models.OwnerResident{
		HomeNo:   homeNo,
		Owner:    models.Contact{Name: ownerName, Phone: ownerPhone},
		Resident: models.Contact{Name: residentName, Phone: residentPhone},
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed directory %s: %v", homeNo, err)
	}
}
