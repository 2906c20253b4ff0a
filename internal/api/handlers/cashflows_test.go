package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/testutil"
)

// TestCashflowHandler tests recording and editing quarterly cashflow records.
//
// WHY: A fund holds at most one record per quarter. A second record for the
// same quarter must be answered with 409 so the frontend can offer an edit.
func TestCashflowHandler(t *testing.T) {
	t.Run("creates and lists records", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := NewCashflowHandler(testutil.NewTestCashflowService(t, db))
		fund := testutil.NewFund().Build(t, db)
		body := `{"fundId":"` + fund.ID + `","year":2021,"quarter":2,"calls":250000}`

		// Execute
		w := httptest.NewRecorder()
		handler.CreateCashflow(w, testutil.NewRequestWithBody(http.MethodPost, "/api/cashflow", body, nil))

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		handler.FundCashflows(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/cashflow/fund/"+fund.ID,
			map[string]string{"uuid": fund.ID}))

		var records []model.CashflowRecord
		decodeBody(t, w, &records)
		if len(records) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(records))
		}
		if records[0].Calls != 250000 || records[0].Quarter != 2 {
			t.Errorf("Unexpected record: %+v", records[0])
		}
	})

	t.Run("returns 409 for a second record in the same quarter", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := NewCashflowHandler(testutil.NewTestCashflowService(t, db))
		fund := testutil.NewFund().Build(t, db)
		testutil.NewCashflow(fund.ID).WithPeriod(2021, 1).WithAmounts(100, 0, 0).Build(t, db)
		body := `{"fundId":"` + fund.ID + `","year":2021,"quarter":1,"nav":5}`
		w := httptest.NewRecorder()

		// Execute
		handler.CreateCashflow(w, testutil.NewRequestWithBody(http.MethodPost, "/api/cashflow", body, nil))

		// Assert
		if w.Code != http.StatusConflict {
			t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
		if resp := decodeError(t, w); resp.Error != apperrors.ErrDuplicateEntry.Error() {
			t.Errorf("Expected error '%s', got '%s'", apperrors.ErrDuplicateEntry, resp.Error)
		}
	})

	t.Run("rejects a record without any amount", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := NewCashflowHandler(testutil.NewTestCashflowService(t, db))
		fund := testutil.NewFund().Build(t, db)
		body := `{"fundId":"` + fund.ID + `","year":2021,"quarter":5}`
		w := httptest.NewRecorder()

		// Execute
		handler.CreateCashflow(w, testutil.NewRequestWithBody(http.MethodPost, "/api/cashflow", body, nil))

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "cashflow", 0)
	})

	t.Run("returns 404 for an unknown fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := NewCashflowHandler(testutil.NewTestCashflowService(t, db))
		body := `{"fundId":"` + testutil.MakeID() + `","year":2021,"quarter":1,"calls":1}`
		w := httptest.NewRecorder()

		// Execute
		handler.CreateCashflow(w, testutil.NewRequestWithBody(http.MethodPost, "/api/cashflow", body, nil))

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("updates and deletes a record", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := NewCashflowHandler(testutil.NewTestCashflowService(t, db))
		fund := testutil.NewFund().Build(t, db)
		record := testutil.NewCashflow(fund.ID).WithAmounts(100, 0, 90).Build(t, db)
		params := map[string]string{"uuid": record.ID}

		// Execute
		w := httptest.NewRecorder()
		handler.UpdateCashflow(w, testutil.NewRequestWithBody(http.MethodPut, "/api/cashflow/"+record.ID, `{"distributions":40}`, params))

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var updated model.CashflowRecord
		decodeBody(t, w, &updated)
		if updated.Distributions != 40 || updated.Calls != 100 {
			t.Errorf("Expected distributions 40 and calls 100, got %+v", updated)
		}

		w = httptest.NewRecorder()
		handler.DeleteCashflow(w, testutil.NewRequestWithURLParams(http.MethodDelete, "/api/cashflow/"+record.ID, params))
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		handler.DeleteCashflow(w, testutil.NewRequestWithURLParams(http.MethodDelete, "/api/cashflow/"+record.ID, params))
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404 on second delete, got %d", w.Code)
		}
	})
}
