package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/apperr"
	"github.com/Alay2810/vercel-ai-sql-backend/internal/ingest"
)

// uploadHandler ingests a CSV or JSON file into a new table. The resulting
// table is immediately visible to the ask and crud surfaces.
func (app *App) uploadHandler(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperr.Validation("missing upload file: %v", err))
		return
	}

	table := c.PostForm("table")
	if table == "" {
		table = fileHeader.Filename
	}
	table = ingest.SanitizeTableName(table)

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open upload: " + err.Error()})
		return
	}
	defer file.Close()

	var result *ingest.Result
	if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".json") {
		result, err = ingest.JSON(ctx, app.Store, table, file)
	} else {
		result, err = ingest.CSV(ctx, app.Store, table, file)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
