package response

import (
	"encoding/json"
	"testing"

	"scmicro_tracker/internal/usecase"
)

func TestFromBatchReport(t *testing.T) {
	res := FromBatchReport(usecase.BatchReport{
		Processed:        5,
		Created:          3,
		Updated:          1,
		CustomersCreated: 2,
		Errors:           []usecase.RowError{{Row: 3, Message: "missing required field: customer name"}},
	})
	if res.Processed != 5 || res.Created != 3 || res.Updated != 1 || res.CustomersCreated != 2 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if len(res.Errors) != 1 || res.Errors[0].Row != 3 {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
}

func TestFromBatchReport_EmptyErrorsIsArray(t *testing.T) {
	body, err := json.Marshal(FromBatchReport(usecase.BatchReport{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"processed":0,"created":0,"updated":0,"customers_created":0,"errors":[]}`
	if string(body) != want {
		t.Fatalf("expected %s, got %s", want, body)
	}
}
