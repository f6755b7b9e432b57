package handler_test

import (
	"net/http"
	"testing"

	"github.com/anandmuthunayagam/Mahizh/internal/models"
)

func TestAuditTrail_RecordsAdminMutations(t *testing.T) {
	r, db := newTestRouter(t)
	seedDirectory(t, db, "G1", "Asha", "9999900000", "Ravi", "9999911111")

	w := doJSON(t, r, http.MethodPost, "/api/collections", adminToken(t), map[string]interface{}{
		"homeNo": "G1", "amount": 500, "month": "January", "year": 2026,
	})
	requireStatus(t, w, http.StatusOK)

	// reads are not audited
	w = doJSON(t, r, http.MethodGet, "/api/owner-residents", adminToken(t), nil)
	requireStatus(t, w, http.StatusOK)

	var logs []models.AuditLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("query logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("audit rows = %d, want 1", len(logs))
	}
	if logs[0].Method != http.MethodPost || logs[0].Path != "/api/collections" {
		t.Errorf("audit row = %s %s, want POST /api/collections", logs[0].Method, logs[0].Path)
	}
	if logs[0].Role != models.RoleAdmin {
		t.Errorf("audit role = %q, want admin", logs[0].Role)
	}

	w = doJSON(t, r, http.MethodGet, "/api/logs", adminToken(t), nil)
	requireStatus(t, w, http.StatusOK)
	data := decodeData(t, w)
	if n := len(data["items"].([]interface{})); n != 1 {
		t.Errorf("listed logs = %d, want 1", n)
	}
}

func TestAuditLogs_ResidentForbidden(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/logs", userToken(t, "G1"), nil)
	requireStatus(t, w, http.StatusForbidden)
}
