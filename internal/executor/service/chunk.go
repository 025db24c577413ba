package service

// ChunkPlan is the slice of the pending set one invocation processes.
type ChunkPlan struct {
	TotalChunks int
	Offset      int
	Limit       int
	InRange     bool
	HasMore     bool
	NextIndex   *int
}

// PlanChunk slices total pending assets into chunks of size and locates chunk index.
// An index past the last chunk is reported as out of range.
func PlanChunk(total int64, index, size int) ChunkPlan {
	if size <= 0 {
		size = 1
	}
	totalChunks := int((total + int64(size) - 1) / int64(size))
	plan := ChunkPlan{
		TotalChunks: totalChunks,
		Offset:      index * size,
		Limit:       size,
		InRange:     index >= 0 && index < totalChunks,
	}
	if plan.InRange && index+1 < totalChunks {
		next := index + 1
		plan.HasMore = true
		plan.NextIndex = &next
	}
	return plan
}
