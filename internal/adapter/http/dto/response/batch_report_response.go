package response

import "scmicro_tracker/internal/usecase"

type RowErrorResponse struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BatchReportResponse is the body of a successful import.
type BatchReportResponse struct {
	Processed        int                `json:"processed"`
	Created          int                `json:"created"`
	Updated          int                `json:"updated"`
	CustomersCreated int                `json:"customers_created"`
	Errors           []RowErrorResponse `json:"errors"`
}

func FromBatchReport(r usecase.BatchReport) BatchReportResponse {
	errs := make([]RowErrorResponse, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, RowErrorResponse{Row: e.Row, Message: e.Message})
	}
	return BatchReportResponse{
		Processed:        r.Processed,
		Created:          r.Created,
		Updated:          r.Updated,
		CustomersCreated: r.CustomersCreated,
		Errors:           errs,
	}
}
