package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthtrack/internal/models"
	"github.com/terraincognita07/healthtrack/internal/services"
)

func TestUpsertRecordReplacesProvidedFields(t *testing.T) {
	app, _ := newTestApp(t)
	session := registerAndLogin(t, app, "amy", "pw1")

	first := doJSON(t, app, http.MethodPut, userPath(session, "/records/2024-01-01"), session.Token, fiber.Map{"water": 3, "sleep": 7.5, "mood": "calm"})
	expectStatus(t, first, http.StatusOK)

	second := doJSON(t, app, http.MethodPut, userPath(session, "/records/2024-01-01"), session.Token, fiber.Map{"water": 5})
	expectStatus(t, second, http.StatusOK)
	saved := struct {
		Message string             `json:"message"`
		Record  models.DailyRecord `json:"record"`
	}{}
	decodeJSON(t, second, &saved)
	if saved.Record.Water != 5 || saved.Record.Sleep != 7.5 || saved.Record.Mood != "calm" {
		t.Fatalf("expected water=5 with sleep and mood kept, got %+v", saved.Record)
	}

	list := doJSON(t, app, http.MethodGet, userPath(session, "/records"), session.Token, nil)
	expectStatus(t, list, http.StatusOK)
	var records []models.DailyRecord
	decodeJSON(t, list, &records)
	if len(records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(records))
	}
}

func TestListRecordsNewestFirstWithRange(t *testing.T) {
	app, _ := newTestApp(t)
	session := registerAndLogin(t, app, "amy", "pw1")

	for _, day := range []string{"2024-01-02", "2024-01-04", "2024-01-01", "2024-01-03"} {
		expectStatus(t, doJSON(t, app, http.MethodPut, userPath(session, "/records/"+day), session.Token, fiber.Map{"study": 10}), http.StatusOK)
	}

	response := doJSON(t, app, http.MethodGet, userPath(session, "/records"), session.Token, nil)
	expectStatus(t, response, http.StatusOK)
	var records []models.DailyRecord
	decodeJSON(t, response, &records)
	want := []string{"2024-01-04", "2024-01-03", "2024-01-02", "2024-01-01"}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for index, day := range want {
		if records[index].Date != day {
			t.Fatalf("expected record %d to be %s, got %s", index, day, records[index].Date)
		}
	}

	bounded := doJSON(t, app, http.MethodGet, userPath(session, "/records?from=2024-01-02&to=2024-01-03"), session.Token, nil)
	expectStatus(t, bounded, http.StatusOK)
	records = nil
	decodeJSON(t, bounded, &records)
	if len(records) != 2 {
		t.Fatalf("expected 2 records in range, got %d", len(records))
	}

	invalid := doJSON(t, app, http.MethodGet, userPath(session, "/records?from=yesterday"), session.Token, nil)
	expectStatus(t, invalid, http.StatusBadRequest)
}

func TestListRecordsEmptyReturnsArray(t *testing.T) {
	app, _ := newTestApp(t)
	session := registerAndLogin(t, app, "amy", "pw1")

	response := doJSON(t, app, http.MethodGet, userPath(session, "/records"), session.Token, nil)
	expectStatus(t, response, http.StatusOK)
	var records []models.DailyRecord
	decodeJSON(t, response, &records)
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty array, got %#v", records)
	}
}

func TestGetAndResetRecord(t *testing.T) {
	app, _ := newTestApp(t)
	session := registerAndLogin(t, app, "amy", "pw1")

	expectStatus(t, doJSON(t, app, http.MethodGet, userPath(session, "/records/2024-01-01"), session.Token, nil), http.StatusNotFound)
	expectStatus(t, doJSON(t, app, http.MethodPut, userPath(session, "/records/2024-01-01"), session.Token, fiber.Map{"meals": 3}), http.StatusOK)

	response := doJSON(t, app, http.MethodGet, userPath(session, "/records/2024-01-01"), session.Token, nil)
	expectStatus(t, response, http.StatusOK)
	var record models.DailyRecord
	decodeJSON(t, response, &record)
	if record.Meals != 3 {
		t.Fatalf("expected meals=3, got %d", record.Meals)
	}

	expectStatus(t, doJSON(t, app, http.MethodDelete, userPath(session, "/records/2024-01-01"), session.Token, nil), http.StatusOK)
	expectStatus(t, doJSON(t, app, http.MethodDelete, userPath(session, "/records/2024-01-01"), session.Token, nil), http.StatusOK)
	expectStatus(t, doJSON(t, app, http.MethodGet, userPath(session, "/records/2024-01-01"), session.Token, nil), http.StatusNotFound)
}

func TestDeleteRecordByID(t *testing.T) {
	app, _ := newTestApp(t)
	session := registerAndLogin(t, app, "amy", "pw1")

	response := doJSON(t, app, http.MethodPut, userPath(session, "/records/2024-01-01"), session.Token, fiber.Map{"calories": 2000})
	expectStatus(t, response, http.StatusOK)
	saved := struct {
		Record models.DailyRecord `json:"record"`
	}{}
	decodeJSON(t, response, &saved)

	path := userPath(session, "/records/id/"+strconv.FormatUint(uint64(saved.Record.ID), 10))
	expectStatus(t, doJSON(t, app, http.MethodDelete, path, session.Token, nil), http.StatusOK)
	expectStatus(t, doJSON(t, app, http.MethodGet, userPath(session, "/records/2024-01-01"), session.Token, nil), http.StatusNotFound)

	expectStatus(t, doJSON(t, app, http.MethodDelete, userPath(session, "/records/id/abc"), session.Token, nil), http.StatusBadRequest)
}

func TestUpsertRecordValidation(t *testing.T) {
	app, _ := newTestApp(t)
	session := registerAndLogin(t, app, "amy", "pw1")

	testCases := []struct {
		name    string
		path    string
		payload fiber.Map
	}{
		{name: "bad date", path: "/records/2024-13-40", payload: fiber.Map{"water": 1}},
		{name: "negative water", path: "/records/2024-01-01", payload: fiber.Map{"water": -1}},
		{name: "sleep over a day", path: "/records/2024-01-01", payload: fiber.Map{"sleep": 25}},
		{name: "wrong type", path: "/records/2024-01-01", payload: fiber.Map{"water": "lots"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			response := doJSON(t, app, http.MethodPut, userPath(session, testCase.path), session.Token, testCase.payload)
			expectStatus(t, response, http.StatusBadRequest)
			if _, code := readAPIError(t, response); code != codeValidationFailed {
				t.Fatalf("expected code %s, got %q", codeValidationFailed, code)
			}
		})
	}
}

func TestRecordCategoryPolicies(t *testing.T) {
	app, _ := newTestApp(t)
	session := registerAndLogin(t, app, "amy", "pw1")

	expectStatus(t, doJSON(t, app, http.MethodPost, userPath(session, "/categories/hydration/2024-01-01"), session.Token, fiber.Map{"value": 3}), http.StatusOK)
	response := doJSON(t, app, http.MethodPost, userPath(session, "/categories/hydration/2024-01-01"), session.Token, fiber.Map{"value": 5})
	expectStatus(t, response, http.StatusOK)
	saved := struct {
		Entry models.CategoryEntry `json:"entry"`
	}{}
	decodeJSON(t, response, &saved)
	if saved.Entry.Value != 8 {
		t.Fatalf("expected accumulated hydration 8, got %v", saved.Entry.Value)
	}
	if saved.Entry.Unit != "glasses" {
		t.Fatalf("expected unit glasses, got %q", saved.Entry.Unit)
	}

	expectStatus(t, doJSON(t, app, http.MethodPost, userPath(session, "/categories/sleep/2024-01-01"), session.Token, fiber.Map{"value": 3}), http.StatusOK)
	response = doJSON(t, app, http.MethodPost, userPath(session, "/categories/sleep/2024-01-01"), session.Token, fiber.Map{"value": 5, "notes": "late night"})
	expectStatus(t, response, http.StatusOK)
	decodeJSON(t, response, &saved)
	if saved.Entry.Value != 5 || saved.Entry.Notes != "late night" {
		t.Fatalf("expected replaced sleep entry, got %+v", saved.Entry)
	}

	list := doJSON(t, app, http.MethodGet, userPath(session, "/categories/hydration"), session.Token, nil)
	expectStatus(t, list, http.StatusOK)
	var entries []models.CategoryEntry
	decodeJSON(t, list, &entries)
	if len(entries) != 1 {
		t.Fatalf("expected one hydration entry, got %d", len(entries))
	}

	expectStatus(t, doJSON(t, app, http.MethodDelete, userPath(session, "/categories/hydration/2024-01-01"), session.Token, nil), http.StatusOK)
	expectStatus(t, doJSON(t, app, http.MethodDelete, userPath(session, "/categories/hydration/2024-01-01"), session.Token, nil), http.StatusOK)
}

func TestRecordCategoryValidation(t *testing.T) {
	app, _ := newTestApp(t)
	session := registerAndLogin(t, app, "amy", "pw1")

	expectStatus(t, doJSON(t, app, http.MethodPost, userPath(session, "/categories/steps/2024-01-01"), session.Token, fiber.Map{"value": 1}), http.StatusBadRequest)
	expectStatus(t, doJSON(t, app, http.MethodPost, userPath(session, "/categories/workout/2024-01-01"), session.Token, fiber.Map{}), http.StatusBadRequest)
	expectStatus(t, doJSON(t, app, http.MethodPost, userPath(session, "/categories/workout/2024-01-01"), session.Token, fiber.Map{"value": -5}), http.StatusBadRequest)
	expectStatus(t, doJSON(t, app, http.MethodGet, userPath(session, "/categories/steps"), session.Token, nil), http.StatusBadRequest)
}

func TestDashboardEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	session := registerAndLogin(t, app, "amy", "pw1")

	expectStatus(t, doJSON(t, app, http.MethodPut, userPath(session, "/records/2024-01-01"), session.Token, fiber.Map{"water": 2}), http.StatusOK)

	response := doJSON(t, app, http.MethodGet, userPath(session, "/dashboard"), session.Token, nil)
	expectStatus(t, response, http.StatusOK)
	var dashboard services.Dashboard
	decodeJSON(t, response, &dashboard)
	if dashboard.User.Handle != "amy" {
		t.Fatalf("expected dashboard for amy, got %q", dashboard.User.Handle)
	}
	if len(dashboard.Records) != 1 {
		t.Fatalf("expected one recent record, got %d", len(dashboard.Records))
	}
	if _, ok := dashboard.Totals[models.CategoryHydration]; !ok {
		t.Fatal("expected hydration total in dashboard")
	}
}
