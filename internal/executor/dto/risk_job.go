package dto

import "time"

// InvocationRequest is the body of a batch risk job invocation. Either Ticker selects one
// asset or the pending working set is processed in chunks.
type InvocationRequest struct {
	Ticker           *string `json:"ticker,omitempty"`
	ProcessAll       bool    `json:"processAll,omitempty"`
	ChunkIndex       *int    `json:"chunkIndex,omitempty"`
	ChunkSize        *int    `json:"chunkSize,omitempty"`
	PrioritizeLiquid bool    `json:"prioritizeLiquid,omitempty"`
	// AsOf pins the selection snapshot of a chunk cycle; chunk 0 starts a new one when empty.
	AsOf *time.Time `json:"asOf,omitempty"`
}

// InvocationResponse reports one chunk invocation. NextChunkIndex together with AsOf is the
// continuation token for the next call.
type InvocationResponse struct {
	Success        bool      `json:"success"`
	ExecutionID    uint      `json:"execution_id,omitempty"`
	Status         string    `json:"status,omitempty"`
	ChunkIndex     int       `json:"chunkIndex"`
	TotalChunks    int       `json:"totalChunks"`
	Processed      int       `json:"processed"`
	Skipped        int       `json:"skipped"`
	Errors         int       `json:"errors"`
	HasMoreChunks  bool      `json:"hasMoreChunks"`
	NextChunkIndex *int      `json:"nextChunkIndex"`
	TotalPending   int64     `json:"totalPending"`
	AsOf           time.Time `json:"asOf"`
	DurationMs     int64     `json:"duration_ms"`
	ErrorDetails   []string  `json:"error_details,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// StreamInvocation is the payload published on the invocation stream.
type StreamInvocation struct {
	FunctionName string `json:"function_name"`
	// JobID references the scheduled definition, zero for ad-hoc invocations.
	JobID      uint              `json:"job_id,omitempty"`
	Request    InvocationRequest `json:"request"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

// Next builds the invocation of the following chunk, or nil when there is none.
func (r InvocationResponse) Next(req InvocationRequest) *InvocationRequest {
	if !r.HasMoreChunks || r.NextChunkIndex == nil {
		return nil
	}
	next := req
	idx := *r.NextChunkIndex
	next.ChunkIndex = &idx
	asOf := r.AsOf
	next.AsOf = &asOf
	return &next
}
