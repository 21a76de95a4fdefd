package main

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unibudget/unibudget_backend/models/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func exportTransactionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// build the whole workbook first so a failure can still answer
		// with a plain JSON error instead of a broken attachment
		var buf bytes.Buffer
		if err := reports.ExportTransactionsExcel(c.Request.Context(), sessionUserId(c), &buf); err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export, try again"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+reports.ExportFilename(time.Now()))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
