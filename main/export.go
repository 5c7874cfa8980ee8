package main

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/apperr"
	"github.com/Alay2810/vercel-ai-sql-backend/internal/crud"
)

// exportHandler streams a full table as a CSV attachment.
func (app *App) exportHandler(c *gin.Context) {
	ctx := c.Request.Context()
	table := c.Param("table")

	if !crud.ValidIdentifier(table) {
		respondError(c, apperr.Validation("invalid table name: %q", table))
		return
	}

	execution, err := app.Store.ExecuteSQL(ctx, fmt.Sprintf("SELECT * FROM `%s`", table))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(execution.Rows) == 0 {
		respondError(c, apperr.NotFound("table %s is empty or does not exist", table))
		return
	}

	// Row maps carry no column order; sort the header for a stable file.
	header := make([]string, 0, len(execution.Rows[0]))
	for col := range execution.Rows[0] {
		header = append(header, col)
	}
	sort.Strings(header)

	filename := fmt.Sprintf("%s-%s.csv", table, uuid.New().String()[:8])
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(header); err != nil {
		return
	}
	for _, row := range execution.Rows {
		record := make([]string, len(header))
		for i, col := range header {
			if val := row[col]; val != nil {
				record[i] = fmt.Sprintf("%v", val)
			}
		}
		if err := writer.Write(record); err != nil {
			return
		}
	}
	writer.Flush()
}
