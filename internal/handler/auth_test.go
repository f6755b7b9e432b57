package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anandmuthunayagam/Mahizh/internal/models"
	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
)

func registerAdmin(t *testing.T, r *gin.Engine, username, password string) {
	t.Helper()
	w := doRegister(t, r, username, password, testSetupToken)
	requireStatus(t, w, http.StatusOK)
}

func doRegister(t *testing.T, r *gin.Engine, username, password, setupToken string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/admin/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if setupToken != "" {
		req.Header.Set("X-Setup-Token", setupToken)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRegister_RequiresSetupToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRegister(t, r, "admin", "secret123", "")
	requireStatus(t, w, http.StatusForbidden)

	w = doRegister(t, r, "admin", "secret123", "wrong-token")
	requireStatus(t, w, http.StatusForbidden)

	w = doRegister(t, r, "admin", "secret123", testSetupToken)
	requireStatus(t, w, http.StatusOK)

	// one-shot: a second registration is refused even with the token
	w = doRegister(t, r, "admin2", "secret123", testSetupToken)
	requireStatus(t, w, http.StatusForbidden)
}

func TestAdminLogin_GenericInvalidCredentials(t *testing.T) {
	r, _ := newTestRouter(t)
	registerAdmin(t, r, "admin", "secret123")

	// wrong password and unknown username return the same message
	w := doJSON(t, r, http.MethodPost, "/api/auth/admin/login", "", map[string]string{
		"username": "admin", "password": "wrong",
	})
	requireStatus(t, w, http.StatusUnauthorized)
	_, wrongPwdMsg := decodeError(t, w)

	w = doJSON(t, r, http.MethodPost, "/api/auth/admin/login", "", map[string]string{
		"username": "nobody", "password": "wrong",
	})
	requireStatus(t, w, http.StatusUnauthorized)
	_, unknownUserMsg := decodeError(t, w)

	if wrongPwdMsg != unknownUserMsg {
		t.Errorf("messages differ (%q vs %q); allows username enumeration", wrongPwdMsg, unknownUserMsg)
	}
}

func TestAdminLogin_IssuesUsableToken(t *testing.T) {
	r, _ := newTestRouter(t)
	registerAdmin(t, r, "admin", "secret123")

	w := doJSON(t, r, http.MethodPost, "/api/auth/admin/login", "", map[string]string{
		"username": "admin", "password": "secret123",
	})
	requireStatus(t, w, http.StatusOK)
	data := decodeData(t, w)
	token := data["token"].(string)

	claims, err := util.ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", claims.Role)
	}
	if claims.HomeNo != "" {
		t.Errorf("admin token carries homeNo %q", claims.HomeNo)
	}

	// the issued token works against an admin route
	w = doJSON(t, r, http.MethodGet, "/api/owner-residents", token, nil)
	requireStatus(t, w, http.StatusOK)
}

func TestCreateUser_RoleAlwaysUser(t *testing.T) {
	r, db := newTestRouter(t)

	// caller tries to elevate; stored role must stay "user"
	w := doJSON(t, r, http.MethodPost, "/api/auth/admin/create-user", adminToken(t), map[string]interface{}{
		"username": "ravi",
		"password": "secret123",
		"homeNo":   "G1",
		"role":     "admin",
	})
	requireStatus(t, w, http.StatusOK)

	var user models.User
	if err := db.Where("username = ?", "ravi").First(&user).Error; err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %q, want user", user.Role)
	}
	if user.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	r, _ := newTestRouter(t)

	body := map[string]interface{}{
		"username": "ravi", "password": "secret123", "homeNo": "G1",
	}
	w := doJSON(t, r, http.MethodPost, "/api/auth/admin/create-user", adminToken(t), body)
	requireStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/auth/admin/create-user", adminToken(t), body)
	requireStatus(t, w, http.StatusBadRequest)
	code, _ := decodeError(t, w)
	if code != util.CodeConflict {
		t.Errorf("code = %d, want conflict %d", code, util.CodeConflict)
	}
}

func TestCreateUser_InvalidHomeNo(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/admin/create-user", adminToken(t), map[string]interface{}{
		"username": "ravi", "password": "secret123", "homeNo": "X7",
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestUserLogin_TokenCarriesHomeNo(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/admin/create-user", adminToken(t), map[string]interface{}{
		"username": "meena", "password": "secret123", "homeNo": "F1",
	})
	requireStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/auth/user/login", "", map[string]string{
		"username": "meena", "password": "secret123",
	})
	requireStatus(t, w, http.StatusOK)
	data := decodeData(t, w)

	claims, err := util.ParseToken(testSecret, data["token"].(string))
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Role != models.RoleUser || claims.HomeNo != "F1" {
		t.Errorf("claims = %s/%s, want user/F1", claims.Role, claims.HomeNo)
	}
}

func TestCreateUser_UserTokenForbidden(t *testing.T) {
	r, db := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/admin/create-user", userToken(t, "G1"), map[string]interface{}{
		"username": "mallory", "password": "secret123", "homeNo": "G1",
	})
	requireStatus(t, w, http.StatusForbidden)

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("user rows = %d, want 0 after forbidden create", count)
	}
}
