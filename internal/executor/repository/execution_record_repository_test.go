package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// historyDB answers every query in dry-run mode. Unchunked queries, and chunk-pinned queries when
// missing is set, report no rows; any other query yields a record with id 41 from chunk 0.
func historyDB(t *testing.T, missing bool) (*gorm.DB, *[]string) {
	t.Helper()
	db := dryRunDB(t)
	var queries []string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:history", func(tx *gorm.DB) {
		sql := tx.Statement.SQL.String()
		queries = append(queries, sql)
		if (missing && strings.Contains(sql, "chunk_index = ")) || strings.Contains(sql, "chunk_index IS NULL") {
			_ = tx.AddError(gorm.ErrRecordNotFound)
			return
		}
		if rec, ok := tx.Statement.Dest.(*entity.ExecutionRecord); ok {
			rec.ID = 41
			rec.ChunkIndex = utils.ToPointer(0)
		}
	}))
	return db, &queries
}

func chunkRecord(chunk *int) *entity.ExecutionRecord {
	return &entity.ExecutionRecord{
		ID:            57,
		FunctionName:  "calculate-brapi-risk",
		ExecutionType: entity.ExecutionTypeChunk,
		ChunkIndex:    chunk,
	}
}

func TestFindPreviousTerminal_SameChunk(t *testing.T) {
	db, queries := historyDB(t, false)
	repo := NewExecutionRecordRepository(db)

	prev, err := repo.FindPreviousTerminal(context.Background(), chunkRecord(utils.ToPointer(2)))
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, uint(41), prev.ID)

	require.Len(t, *queries, 1)
	sql := (*queries)[0]
	assert.Contains(t, sql, "function_name = $1 AND execution_type = $2 AND id < $3")
	assert.Contains(t, sql, "chunk_index = $4")
	assert.Contains(t, sql, "ORDER BY id DESC")
}

func TestFindPreviousTerminal_NewChunkFallsBackToFunction(t *testing.T) {
	db, queries := historyDB(t, true)
	repo := NewExecutionRecordRepository(db)

	prev, err := repo.FindPreviousTerminal(context.Background(), chunkRecord(utils.ToPointer(3)))
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, uint(41), prev.ID)

	require.Len(t, *queries, 2)
	assert.Contains(t, (*queries)[0], "chunk_index = $4")
	assert.Contains(t, (*queries)[1], "chunk_index IS NOT NULL")
	assert.Contains(t, (*queries)[1], "function_name = $1 AND execution_type = $2 AND id < $3")
}

func TestFindPreviousBaseline_NewChunkFallsBackToFunction(t *testing.T) {
	db, queries := historyDB(t, true)
	repo := NewExecutionRecordRepository(db)

	prev, err := repo.FindPreviousBaseline(context.Background(), chunkRecord(utils.ToPointer(3)))
	require.NoError(t, err)
	require.NotNil(t, prev)

	require.Len(t, *queries, 2)
	assert.Contains(t, (*queries)[1], "chunk_index IS NOT NULL")
}

func TestFindPreviousTerminal_UnchunkedRunHasNoFallback(t *testing.T) {
	db, queries := historyDB(t, true)
	repo := NewExecutionRecordRepository(db)

	current := chunkRecord(nil)
	current.ExecutionType = entity.ExecutionTypeSingle
	prev, err := repo.FindPreviousTerminal(context.Background(), current)
	require.NoError(t, err)
	assert.Nil(t, prev)

	require.Len(t, *queries, 1)
	assert.Contains(t, (*queries)[0], "chunk_index IS NULL")
}
