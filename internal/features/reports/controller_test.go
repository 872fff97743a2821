package reports

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/common/models"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/report"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type stubDataAccess struct {
	collections map[string][]bson.M
}

func (s *stubDataAccess) FindMany(ctx context.Context, collection string, p report.Predicate) ([]bson.M, error) {
	var out []bson.M
	for _, doc := range s.collections[collection] {
		if p.Matches(doc) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *stubDataAccess) FindByID(ctx context.Context, collection string, id interface{}) (bson.M, error) {
	for _, doc := range s.collections[collection] {
		if doc["_id"] == id {
			return doc, nil
		}
	}
	return nil, nil
}

func newReportApp(collections map[string][]bson.M, cfg *report.Config) *fiber.App {
	assembler := report.NewAssembler(&stubDataAccess{collections: collections}, zap.NewNop())
	controller := NewReportController(assembler)

	app := fiber.New()
	app.Get("/v1/"+cfg.Name, controller.RetrieveAll(cfg))
	return app
}

func TestRetrieveAllResponseEnvelope(t *testing.T) {
	app := newReportApp(map[string][]bson.M{
		"inventoryReports": {
			{"_id": "1", "item": "item A", "createdAt": "2022-03-01"},
		},
	}, InventoryReports)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/inventoryReports", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var body struct {
		InventoryReports []map[string]interface{} `json:"inventoryReports"`
		Pagination       report.Pagination        `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if len(body.InventoryReports) != 1 {
		t.Fatalf("got %d rows, want 1", len(body.InventoryReports))
	}
	if body.InventoryReports[0]["item"] != "item A" {
		t.Errorf("unexpected row: %v", body.InventoryReports[0])
	}
	want := report.Pagination{Page: 1, PageSize: 10, PageCount: 1, TotalDocument: 1}
	if body.Pagination != want {
		t.Errorf("got pagination %+v, want %+v", body.Pagination, want)
	}
}

func TestRetrieveAllEmptyCollection(t *testing.T) {
	app := newReportApp(map[string][]bson.M{}, InventoryReports)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/inventoryReports", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	// Rows serialize as [] rather than null when nothing matches.
	if string(body["inventoryReports"]) != "[]" {
		t.Errorf("got rows %s, want []", body["inventoryReports"])
	}
}

func TestRetrieveAllRejectsMalformedPagination(t *testing.T) {
	app := newReportApp(map[string][]bson.M{}, InventoryReports)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/inventoryReports?page=zero", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Code != 400 || body.Status != "Bad Request" {
		t.Errorf("got body %+v", body)
	}
}

func TestDebtsAgingItemFilterAliasesCustomer(t *testing.T) {
	collections := map[string][]bson.M{
		"salesInvoices": {
			{"_id": "1", "customer": "customer A", "invoiceDate": "2021-06-01"},
			{"_id": "2", "customer": "customer A", "invoiceDate": "2022-03-01"},
			{"_id": "3", "customer": "customer B", "invoiceDate": "2022-06-01"},
		},
	}

	for _, cfg := range []*report.Config{DebtsAgingReports, DebtsAgingReportPerCustomers} {
		t.Run(cfg.Name, func(t *testing.T) {
			app := newReportApp(collections, cfg)

			target := "/v1/" + cfg.Name + "?filter[dateFrom]=2022-01-01&filter[item]=customer%20B"
			resp, err := app.Test(httptest.NewRequest("GET", target, nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("got status %d, want 200", resp.StatusCode)
			}

			var body map[string]json.RawMessage
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			var pagination report.Pagination
			if err := json.Unmarshal(body["pagination"], &pagination); err != nil {
				t.Fatalf("failed to decode pagination: %v", err)
			}

			if pagination.TotalDocument != 1 {
				t.Errorf("got totalDocument %d, want 1 (item key must filter the customer field)", pagination.TotalDocument)
			}
		})
	}
}

func TestDebtsAgingPerCustomerNameFromCustomerRecord(t *testing.T) {
	app := newReportApp(map[string][]bson.M{
		"salesInvoices": {
			{"_id": "1", "invoice": "INV-001", "name": "invoice name", "customerID": "c1"},
		},
		"customers": {
			{"_id": "c1", "customerID": "CUST-001", "name": "customer name A"},
		},
	}, DebtsAgingReportPerCustomers)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/debtsAgingReportPerCustomers", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var body struct {
		Rows []map[string]interface{} `json:"debtsAgingReportPerCustomers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(body.Rows))
	}

	row := body.Rows[0]
	if row["name"] != "customer name A" {
		t.Errorf("got name %v, want the linked customer's name", row["name"])
	}
	if row["customerID"] != "CUST-001" {
		t.Errorf("got customerID %v, want CUST-001", row["customerID"])
	}
}

func TestAllVariantsDeclared(t *testing.T) {
	want := map[string]string{
		"salesReports":                 "salesInvoices",
		"salesReportPerCustomers":      "salesInvoices",
		"purchaseReports":              "purchaseInvoices",
		"purchaseReportDetails":        "purchaseInvoices",
		"inventoryReports":             "inventoryReports",
		"debtsAgingReports":            "salesInvoices",
		"debtsAgingReportPerCustomers": "salesInvoices",
	}

	all := All()
	if len(all) != len(want) {
		t.Fatalf("got %d variants, want %d", len(all), len(want))
	}
	for _, cfg := range all {
		collection, ok := want[cfg.Name]
		if !ok {
			t.Errorf("unexpected variant %q", cfg.Name)
			continue
		}
		if cfg.Collection != collection {
			t.Errorf("%s: got collection %q, want %q", cfg.Name, cfg.Collection, collection)
		}
		if len(cfg.Roles) != 1 || cfg.Roles[0] != "admin" {
			t.Errorf("%s: got roles %v, want [admin]", cfg.Name, cfg.Roles)
		}
	}
}
