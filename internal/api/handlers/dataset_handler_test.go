package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
)

const testDataset = `{
  "lastUpdated": "2025-08-15",
  "bills": [
    {
      "id": "hr2056",
      "billNumbers": ["H.R. 2056"],
      "title": "District of Columbia Home Rule Protection Act",
      "status": {"stage": "passed-house"}
    },
    {
      "id": "s1522",
      "billNumbers": ["S. 1522"],
      "title": "DC Council Reform Act"
    }
  ],
  "riders": [{"id": "rider1", "billNumbers": [], "title": "FY26 rider"}],
  "supportBills": []
}`

func newTestApp(t *testing.T, dataset string) *fiber.App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bills.json")
	if dataset != "" {
		if err := os.WriteFile(path, []byte(dataset), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	handler := NewDatasetHandler(path)
	app := fiber.New()
	app.Get("/api/v1/bills", handler.GetBills)
	app.Get("/api/v1/stats", handler.GetStats)
	return app
}

func TestGetBills(t *testing.T) {
	app := newTestApp(t, testDataset)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/bills", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if etag := resp.Header.Get("ETag"); etag == "" {
		t.Error("ETag header missing")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if doc["lastUpdated"] != "2025-08-15" {
		t.Errorf("lastUpdated = %v", doc["lastUpdated"])
	}
}

func TestGetBillsNotModified(t *testing.T) {
	app := newTestApp(t, testDataset)

	first, err := app.Test(httptest.NewRequest("GET", "/api/v1/bills", nil))
	if err != nil {
		t.Fatal(err)
	}
	first.Body.Close()
	etag := first.Header.Get("ETag")
	if etag == "" {
		t.Fatal("no ETag on first response")
	}

	req := httptest.NewRequest("GET", "/api/v1/bills", nil)
	req.Header.Set("If-None-Match", etag)
	second, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	second.Body.Close()

	if second.StatusCode != fiber.StatusNotModified {
		t.Errorf("status = %d, want 304", second.StatusCode)
	}
}

func TestGetBillsMissingDataset(t *testing.T) {
	app := newTestApp(t, "")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/bills", nil))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestGetStats(t *testing.T) {
	app := newTestApp(t, testDataset)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/stats", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		TotalBills   int `json:"totalBills"`
		PassedBills  int `json:"passedBills"`
		PendingBills int `json:"pendingBills"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.TotalBills != 3 {
		t.Errorf("totalBills = %d, want 3 (bills + riders)", got.TotalBills)
	}
	if got.PassedBills != 1 {
		t.Errorf("passedBills = %d, want 1", got.PassedBills)
	}
	if got.PendingBills != 2 {
		t.Errorf("pendingBills = %d, want 2", got.PendingBills)
	}
}
