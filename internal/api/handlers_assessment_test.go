package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestCreateAssessmentIssuesSealedSessionCookie(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))
	created := client.startAssessment()

	if token, _ := created["token"].(string); strings.Count(token, ".") != 2 {
		t.Fatalf("expected JWT token in body, got %q", token)
	}
	if !strings.HasPrefix(client.cookie.Value, secureCookieVersion+".") {
		t.Fatalf("expected sealed cookie value, got %q", client.cookie.Value)
	}
	if strings.Contains(client.cookie.Value, created["token"].(string)) {
		t.Fatal("session cookie must not carry the raw token")
	}
	if !client.cookie.HttpOnly {
		t.Fatal("expected session cookie to be httpOnly")
	}

	step, _ := created["step"].(map[string]any)
	if step["section"] != "personal" || step["progress_label"] != "Step 1 of 8" {
		t.Fatalf("unexpected first step: %v", step)
	}
	if step["title"] != "Personal Information" {
		t.Fatalf("expected localized title, got %v", step["title"])
	}
}

func TestAssessmentRoutesRequireSession(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))

	body := client.doJSON(http.MethodGet, "/api/assessment/step", nil, http.StatusUnauthorized)
	if body["error"] != "session_required" {
		t.Fatalf("expected session_required, got %v", body["error"])
	}
	if body["message"] != "Start an assessment first." {
		t.Fatalf("expected localized message, got %v", body["message"])
	}

	client.doJSON(http.MethodGet, "/api/results", nil, http.StatusUnauthorized)
}

func TestTamperedSessionCookieIsRejected(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))
	client.startAssessment()

	client.cookie.Value = client.cookie.Value[:len(client.cookie.Value)-2] + "AA"
	client.doJSON(http.MethodGet, "/api/assessment/step", nil, http.StatusUnauthorized)
}

func TestBearerTokenAuthenticatesWithoutCookie(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))
	created := client.startAssessment()

	client.cookie = nil
	client.bearer = created["token"].(string)
	step := client.doJSON(http.MethodGet, "/api/assessment/step", nil, http.StatusOK)
	if step["section"] != "personal" {
		t.Fatalf("expected personal step, got %v", step["section"])
	}

	client.bearer = "not-a-token"
	client.doJSON(http.MethodGet, "/api/assessment/step", nil, http.StatusUnauthorized)
}

func TestNextStepBlockedListsMissingFields(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))
	client.startAssessment()

	body := client.doJSON(http.MethodPost, "/api/assessment/step/next", map[string]any{
		"edits": []map[string]any{edit("age", "22")},
	}, http.StatusUnprocessableEntity)

	missing, _ := body["missing"].([]any)
	if len(missing) != 2 || missing[0] != "biologicalSex" || missing[1] != "primaryGoals" {
		t.Fatalf("missing = %v, want [biologicalSex primaryGoals]", missing)
	}
	step, _ := body["step"].(map[string]any)
	if step["can_advance"] != false {
		t.Fatalf("expected can_advance=false, got %v", step["can_advance"])
	}

	current := client.doJSON(http.MethodGet, "/api/assessment/step", nil, http.StatusOK)
	values, _ := current["values"].(map[string]any)
	if values["age"] != "" {
		t.Fatalf("blocked navigation committed age=%v", values["age"])
	}
}

func TestCheckStepReportsTopPriorityGate(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))
	client.startAssessment()

	body := client.doJSON(http.MethodPost, "/api/assessment/step/check", map[string]any{
		"edits": []map[string]any{
			edit("age", "22"),
			edit("biologicalSex", "female"),
			choices("primaryGoals", "improve_fitness", "sleep_quality"),
		},
	}, http.StatusOK)

	missing, _ := body["missing"].([]any)
	if len(missing) != 1 || missing[0] != "topPriority" {
		t.Fatalf("missing = %v, want [topPriority]", missing)
	}
	options, _ := body["options"].(map[string]any)
	topOptions, _ := options["topPriority"].([]any)
	if len(topOptions) != 2 {
		t.Fatalf("topPriority options = %v, want the two chosen goals", topOptions)
	}
}

func TestCheckStepRejectsUnknownOption(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))
	client.startAssessment()

	body := client.doJSON(http.MethodPost, "/api/assessment/step/check", map[string]any{
		"edits": []map[string]any{edit("biologicalSex", "robot")},
	}, http.StatusBadRequest)
	if body["error"] != "unknown_option" {
		t.Fatalf("expected unknown_option, got %v", body["error"])
	}
}

func TestBackFromFirstStepConflicts(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))
	client.startAssessment()

	body := client.doJSON(http.MethodPost, "/api/assessment/step/back", nil, http.StatusConflict)
	if body["error"] != "no_previous_step" {
		t.Fatalf("expected no_previous_step, got %v", body["error"])
	}
}

func TestSubmitBeforeLastStepConflicts(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))
	client.startAssessment()

	client.doJSON(http.MethodPost, "/api/assessment/submit", map[string]any{"choice": "submit"}, http.StatusConflict)
	client.doJSON(http.MethodPost, "/api/assessment/submit", map[string]any{"choice": "later"}, http.StatusBadRequest)
}

func TestUnknownRouteReturnsJSONNotFound(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))
	body := client.doJSON(http.MethodGet, "/api/unknown", nil, http.StatusNotFound)
	if body["error"] != "not_found" {
		t.Fatalf("expected not_found, got %v", body["error"])
	}
}

func TestSavedStepRenewsSessionExpiry(t *testing.T) {
	handler := newAssessmentTestHandler(t, 20*time.Millisecond)
	client := newTestClient(t, newTestAppForHandler(handler))
	created := client.startAssessment()
	step, _ := created["step"].(map[string]any)
	sessionID, _ := step["session_id"].(string)

	issuedAt := time.Now().Add(-50 * time.Minute)
	staleToken, err := handler.buildSessionToken(sessionID, issuedAt)
	if err != nil {
		t.Fatalf("buildSessionToken() unexpected error: %v", err)
	}
	client.cookie = nil
	client.bearer = staleToken

	response, payload := client.do(http.MethodPost, "/api/assessment/step/next", map[string]any{
		"edits": completeSectionEdits()["personal"],
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("next step status = %d; body: %s", response.StatusCode, payload)
	}
	if testResponseCookie(response.Cookies(), sessionCookieName) != nil {
		t.Fatal("bearer client must not receive a session cookie")
	}

	renewed := response.Header.Get(sessionTokenHeader)
	claims := &sessionClaims{}
	if _, err := jwt.ParseWithClaims(renewed, claims, func(*jwt.Token) (interface{}, error) {
		return handler.signingKey, nil
	}); err != nil {
		t.Fatalf("parse renewed token: %v", err)
	}
	if claims.SessionID != sessionID {
		t.Fatalf("renewed token session = %q, want %q", claims.SessionID, sessionID)
	}
	if minimum := time.Now().Add(handler.sessionTTL - time.Minute); claims.ExpiresAt.Before(minimum) {
		t.Fatalf("renewed expiry = %s, want after %s", claims.ExpiresAt, minimum)
	}
	if _, err := time.Parse(time.RFC3339, response.Header.Get(sessionExpiresHeader)); err != nil {
		t.Fatalf("expires header %q: %v", response.Header.Get(sessionExpiresHeader), err)
	}
}

func TestReadsDoNotRenewSession(t *testing.T) {
	client := newTestClient(t, newAssessmentTestApp(t))
	client.startAssessment()

	response, _ := client.do(http.MethodGet, "/api/assessment/step", nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("get step status = %d", response.StatusCode)
	}
	if response.Header.Get(sessionTokenHeader) != "" {
		t.Fatal("read request must not renew the session token")
	}

	response, _ = client.do(http.MethodPost, "/api/assessment/reset", nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("reset status = %d", response.StatusCode)
	}
	renewedCookie := testResponseCookie(response.Cookies(), sessionCookieName)
	if renewedCookie == nil || !strings.HasPrefix(renewedCookie.Value, secureCookieVersion+".") {
		t.Fatalf("expected renewed sealed cookie after reset, got %v", renewedCookie)
	}
}
