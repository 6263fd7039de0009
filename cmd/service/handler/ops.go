package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/postiq-ai/postiq-bot/app/store/sqlstore/migration"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type CacheFileRequest struct {
	Filename string `json:"filename" binding:"required"`
	FileID   string `json:"file_id" binding:"required"`
}

// CacheFile upserts a filename → Telegram file id mapping. Sibling
// services that upload media through the bot token use it to pre-warm
// the render cache.
func (s *HttpSrv) CacheFile(c *gin.Context) {
	var req CacheFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := s.Core.Store().CachedFileStore().Create(c.Request.Context(), types.CachedFile{
		Filename:  req.Filename,
		FileID:    req.FileID,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return
	}
	c.Status(http.StatusOK)
}

// CreateTables bootstraps the schema by running every registered
// migration.
func (s *HttpSrv) CreateTables(c *gin.Context) {
	ctx := c.Request.Context()
	runner := migration.NewRunner(s.Core.Store().GetMaster())

	if err := runner.Up(ctx, migration.TargetVersion); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DropTables removes every table this service owns.
func (s *HttpSrv) DropTables(c *gin.Context) {
	if err := migration.NewRunner(s.Core.Store().GetMaster()).DropAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
