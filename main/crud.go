package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/apperr"
	"github.com/Alay2810/vercel-ai-sql-backend/internal/crud"
)

type CrudResponse struct {
	SQL          string                   `json:"sql"`
	Rows         []map[string]interface{} `json:"rows"`
	AffectedRows int64                    `json:"affected_rows"`
}

// crudHandler builds and runs exactly one parameterized statement. A
// request that fails a builder precondition never reaches the store.
func (app *App) crudHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req crud.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.Operation = crud.Operation(strings.ToUpper(string(req.Operation)))

	stmt, err := crud.Build(req)
	if err != nil {
		respondError(c, err)
		return
	}

	execution, err := app.Store.ExecuteSQL(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CrudResponse{
		SQL:          stmt.SQL,
		Rows:         execution.Rows,
		AffectedRows: execution.AffectedRows,
	})
}

type ExecuteRequest struct {
	SQL string `json:"sql" binding:"required"`
	// RequireConfirmation is accepted for wire compatibility but not
	// enforced anywhere.
	RequireConfirmation bool `json:"requireConfirmation"`
}

// executeHandler runs caller-supplied SQL through the classifier and the
// gateway. Destructive statements are annotated, not blocked.
func (app *App) executeHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if strings.TrimSpace(req.SQL) == "" {
		respondError(c, apperr.Validation("sql must not be empty"))
		return
	}

	execution, err := app.Store.ExecuteSQL(ctx, req.SQL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sql":           req.SQL,
		"warning":       annotate(req.SQL),
		"rows":          execution.Rows,
		"affected_rows": execution.AffectedRows,
	})
}
