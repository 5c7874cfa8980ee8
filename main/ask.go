package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/apperr"
	"github.com/Alay2810/vercel-ai-sql-backend/internal/nlsql"
	"github.com/Alay2810/vercel-ai-sql-backend/internal/schema"
)

type AskRequest struct {
	Tables   []string `json:"tables" binding:"required"`
	Question string   `json:"question" binding:"required"`
}

type AskResponse struct {
	SQL          string                   `json:"sql"`
	Explanation  string                   `json:"explanation"`
	Warning      string                   `json:"warning,omitempty"`
	Rows         []map[string]interface{} `json:"rows"`
	AffectedRows int64                    `json:"affected_rows"`
}

// askHandler runs the full translation pipeline: schema reads, prompt,
// model call, destructive classification, execution.
func (app *App) askHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if len(req.Tables) == 0 {
		respondError(c, apperr.Validation("at least one table is required"))
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondError(c, apperr.Validation("question must not be empty"))
		return
	}

	schemas, err := app.readSchemas(ctx, req.Tables)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := app.Translator.Translate(ctx, schemas, req.Question)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.SQL == "" {
		respondError(c, apperr.UpstreamModel("model reply contained no SQL", nil))
		return
	}

	execution, err := app.Store.ExecuteSQL(ctx, result.SQL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AskResponse{
		SQL:          result.SQL,
		Explanation:  result.Explanation,
		Warning:      result.Warning,
		Rows:         execution.Rows,
		AffectedRows: execution.AffectedRows,
	})
}

// readSchemas fans out one catalog read per table and waits for all of
// them. Any missing table fails the whole request; answering against
// partial schema context is worse than failing.
func (app *App) readSchemas(ctx context.Context, tables []string) ([]schema.TableSchema, error) {
	type schemaResult struct {
		idx int
		ts  schema.TableSchema
		err error
	}

	results := make(chan schemaResult, len(tables))
	for i, table := range tables {
		go func(idx int, table string) {
			ts, err := schema.ReadSchema(ctx, app.Store, table)
			results <- schemaResult{idx: idx, ts: ts, err: err}
		}(i, table)
	}

	schemas := make([]schema.TableSchema, len(tables))
	for range tables {
		res := <-results
		if res.err != nil {
			return nil, apperr.Query("schema lookup failed", res.err)
		}
		if !res.ts.Found() {
			return nil, apperr.NotFound("table not found: %s", res.ts.Table)
		}
		schemas[res.idx] = res.ts
	}

	return schemas, nil
}

// schemaHandler exposes a single table's catalog metadata.
func (app *App) schemaHandler(c *gin.Context) {
	ctx := c.Request.Context()
	table := c.Param("table")

	ts, err := schema.ReadSchema(ctx, app.Store, table)
	if err != nil {
		respondError(c, apperr.Query("schema lookup failed", err))
		return
	}
	if !ts.Found() {
		respondError(c, apperr.NotFound("table not found: %s", table))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"table":     ts.Table,
		"columns":   ts.Columns,
		"formatted": schema.Format(ts),
	})
}

// annotate mirrors the translator-side classification for SQL that arrives
// without a model-provided warning.
func annotate(sqlText string) string {
	if nlsql.IsDestructive(sqlText) {
		return nlsql.DestructiveWarning
	}
	return ""
}
