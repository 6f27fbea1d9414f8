package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellness/internal/db"
	"github.com/terraincognita07/wellness/internal/i18n"
	"github.com/terraincognita07/wellness/internal/questionnaire"
	"github.com/terraincognita07/wellness/internal/services"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func newAssessmentTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newAssessmentTestAppWithLatency(t, 20*time.Millisecond)
}

func newAssessmentTestAppWithLatency(t *testing.T, latency time.Duration) *fiber.App {
	t.Helper()
	return newTestAppForHandler(newAssessmentTestHandler(t, latency))
}

func newAssessmentTestHandler(t *testing.T, latency time.Duration) *Handler {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := db.OpenSQLite(fmt.Sprintf("api_%s_%d", name, time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en", i18n.Locales())
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	runner := services.NewAnalysisRunner(services.NewFixedRecommender(), latency)
	assessments := services.NewAssessmentService(db.NewRepositories(database).Sessions, questionnaire.Default(), runner)

	handler, err := NewHandler(assessments, testSecretKey, i18nManager, false, time.Hour)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.streamInterval = 5 * time.Millisecond
	return handler
}

func newTestAppForHandler(handler *Handler) *fiber.App {
	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

type testClient struct {
	t       *testing.T
	app     *fiber.App
	cookie  *http.Cookie
	bearer  string
	headers map[string]string
}

func newTestClient(t *testing.T, app *fiber.App) *testClient {
	return &testClient{t: t, app: app, headers: map[string]string{}}
}

func (client *testClient) do(method string, path string, body any) (*http.Response, []byte) {
	client.t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			client.t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	for key, value := range client.headers {
		request.Header.Set(key, value)
	}
	if client.cookie != nil {
		request.AddCookie(client.cookie)
	}
	if client.bearer != "" {
		request.Header.Set("Authorization", "Bearer "+client.bearer)
	}

	response, err := client.app.Test(request, -1)
	if err != nil {
		client.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		client.t.Fatalf("read %s %s body: %v", method, path, err)
	}
	return response, payload
}

func (client *testClient) doJSON(method string, path string, body any, wantStatus int) map[string]any {
	client.t.Helper()

	response, payload := client.do(method, path, body)
	if response.StatusCode != wantStatus {
		client.t.Fatalf("%s %s status = %d, want %d; body: %s", method, path, response.StatusCode, wantStatus, payload)
	}

	decoded := map[string]any{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		client.t.Fatalf("decode %s %s body %q: %v", method, path, payload, err)
	}
	return decoded
}

// startAssessment creates a session and keeps its cookie for later calls.
func (client *testClient) startAssessment() map[string]any {
	client.t.Helper()

	response, payload := client.do(http.MethodPost, "/api/assessments", nil)
	if response.StatusCode != http.StatusCreated {
		client.t.Fatalf("create assessment status = %d; body: %s", response.StatusCode, payload)
	}
	client.cookie = testResponseCookie(response.Cookies(), sessionCookieName)
	if client.cookie == nil {
		client.t.Fatal("expected session cookie on create")
	}

	decoded := map[string]any{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		client.t.Fatalf("decode create body: %v", err)
	}
	return decoded
}

func testResponseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie != nil && cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func edit(field string, value string) map[string]any {
	return map[string]any{"field": field, "value": value}
}

func choices(field string, values ...string) map[string]any {
	return map[string]any{"field": field, "values": values}
}

func completeSectionEdits() map[questionnaire.SectionID][]map[string]any {
	return map[questionnaire.SectionID][]map[string]any{
		questionnaire.SectionPersonal: {
			edit("age", "22"),
			edit("biologicalSex", "female"),
			choices("primaryGoals", "improve_fitness"),
		},
		questionnaire.SectionFitness: {
			edit("activityLevel", "sedentary"),
			edit("hasCurrentRoutine", "yes"),
			edit("currentRoutine", "Walking twice a week"),
			choices("fitnessGoals", "general_health", "weight_loss"),
			edit("selfRatedFitness", "2"),
		},
		questionnaire.SectionNutrition: {
			edit("mealRegularity", "occasionally"),
			edit("snacking", "most_days"),
			edit("dietQuality", "3"),
			edit("fruitVeggieIntake", "1_2"),
		},
		questionnaire.SectionMentalHealth: {
			edit("interestInActivities", "several_days"),
			edit("feelingDepressed", "not_at_all"),
			edit("nervousAnxious", "more_than_half"),
			edit("uncontrollableWorry", "several_days"),
			choices("stressTriggers", "exams", "future"),
		},
		questionnaire.SectionSleep: {
			edit("weekdayBedtime", "12:30 AM"),
			edit("weekdayWakeTime", "7:30 AM"),
			edit("weekendBedtime", "1:00 AM"),
			edit("weekendWakeTime", "10:00 AM"),
			edit("sleepQuality", "fairly_bad"),
			edit("timeToFallAsleep", "30_60"),
			edit("nightAwakenings", "occasionally"),
			edit("electronicsBeforeBed", "every_night"),
		},
		questionnaire.SectionLifestyle: {
			edit("academicWorkload", "6_8"),
			edit("classSchedule", "Mon-Thu mornings"),
			edit("freeTimeWindows", "Friday afternoons"),
			edit("preferredActivityTime", "evening"),
		},
	}
}

// walkToConfirmation advances through every section and returns the last
// response, which carries the confirmation prompt.
func (client *testClient) walkToConfirmation() map[string]any {
	client.t.Helper()

	edits := completeSectionEdits()
	var last map[string]any
	for _, section := range questionnaire.Default().Flow().Sections() {
		last = client.doJSON(http.MethodPost, "/api/assessment/step/next", map[string]any{"edits": edits[section]}, http.StatusOK)
	}
	return last
}

func (client *testClient) waitForAnalysis() map[string]any {
	client.t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		status := client.doJSON(http.MethodGet, "/api/assessment/analysis", nil, http.StatusOK)
		if done, _ := status["done"].(bool); done {
			return status
		}
		time.Sleep(10 * time.Millisecond)
	}
	client.t.Fatal("analysis did not finish in time")
	return nil
}
