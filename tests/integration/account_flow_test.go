package integration

import (
	"net/http"
	"testing"
)

func TestResetFlow(t *testing.T) {
	app := setupApp(t)
	setQuote(t, app, "ACME", "Acme Corp", "100.00")

	token, _ := app.registerUser(t, "trader", "password123")

	rec := app.request("POST", "/api/v1/trades/buy", `{"symbol":"ACME","shares":30}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("buy failed: %d %s", rec.Code, rec.Body.String())
	}

	// Declining leaves everything untouched
	rec = app.request("POST", "/api/v1/account/reset", `{"confirmed":false}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("declined reset failed: %d %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["reset"] != false {
		t.Error("expected reset false when declined")
	}

	rec = app.request("GET", "/api/v1/portfolio", "", token)
	portfolio := parseJSON(t, rec)["portfolio"].(map[string]interface{})
	if len(portfolio["holdings"].([]interface{})) != 1 {
		t.Error("expected holdings untouched after declined reset")
	}

	// Confirming wipes the ledger and restores the starting balance
	rec = app.request("POST", "/api/v1/account/reset", `{"confirmed":true}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset failed: %d %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["reset"] != true {
		t.Error("expected reset true when confirmed")
	}

	rec = app.request("GET", "/api/v1/portfolio", "", token)
	portfolio = parseJSON(t, rec)["portfolio"].(map[string]interface{})
	if len(portfolio["holdings"].([]interface{})) != 0 {
		t.Error("expected no holdings after reset")
	}
	if portfolio["cash"] != "10000.00" {
		t.Errorf("expected cash 10000.00 after reset, got %v", portfolio["cash"])
	}

	rec = app.request("GET", "/api/v1/history", "", token)
	history := parseJSON(t, rec)["history"].(map[string]interface{})
	if history["total_items"].(float64) != 0 {
		t.Errorf("expected empty history after reset, got %v", history["total_items"])
	}
}

func TestChangePasswordFlow(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "alice", "password123")

	// Wrong current password is rejected
	rec := app.request("PUT", "/api/v1/account/password",
		`{"current_password":"wrong","new_password":"newpassword456","confirmation":"newpassword456"}`, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	// Correct rotation succeeds
	rec = app.request("PUT", "/api/v1/account/password",
		`{"current_password":"password123","new_password":"newpassword456","confirmation":"newpassword456"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("password change failed: %d %s", rec.Code, rec.Body.String())
	}

	// The old password stops working, the new one works
	rec = app.request("POST", "/api/v1/auth/login",
		`{"username":"alice","password":"password123"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected old password to be rejected, got %d", rec.Code)
	}

	app.loginUser(t, "alice", "newpassword456")
}
