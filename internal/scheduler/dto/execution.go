package dto

import "github.com/brunotrento11/Teste-sub000/internal/entity"

// ListExecutionsRequest binds the execution log filters.
type ListExecutionsRequest struct {
	FunctionName string `query:"function_name"`
	Status       string `query:"status"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}

// ExecutionListResponse is one page of the execution log, newest first.
type ExecutionListResponse struct {
	Items []entity.ExecutionRecord `json:"items"`
	Total int64                    `json:"total"`
}
