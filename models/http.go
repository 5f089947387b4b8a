package models

// CreateRecordRequest is the body of POST /api/zones/{zone}/records.
type CreateRecordRequest struct {
	Payload Payload `json:"payload"`
}

// ModifyRecordRequest is the body of PUT /api/zones/{zone}/records/{id}.
type ModifyRecordRequest struct {
	Record RemoteRecord `json:"record"`
}

// RecordResponse wraps a single remote record.
type RecordResponse struct {
	Record RemoteRecord `json:"record"`
}

// ModifyRecordResponse lists the records the backend saved for a modify
// request together with their identifiers.
type ModifyRecordResponse struct {
	Records []RemoteRecord `json:"records"`
	IDs     []string       `json:"ids"`
}

// PrincipalResponse is returned by GET /api/principal.
type PrincipalResponse struct {
	Identity string `json:"identity"`
}

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
