package server

import (
	"context"
	"log"
	"net/http"
	"os/exec"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleSyncStatus(c *gin.Context) {
	s.sync.mu.Lock()
	last := s.sync.lastSync
	syncing := s.sync.isSyncing
	s.sync.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"lastSync":  last,
		"isSyncing": syncing,
		"timestamp": time.Now(),
	})
}

func (s *Server) handleTriggerSync(c *gin.Context) {
	s.sync.mu.Lock()
	if s.sync.isSyncing {
		s.sync.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "Sync already in progress"})
		return
	}
	s.sync.isSyncing = true
	s.sync.mu.Unlock()

	defer func() {
		s.sync.mu.Lock()
		now := time.Now()
		s.sync.lastSync = &now
		s.sync.isSyncing = false
		s.sync.mu.Unlock()
	}()

	// Waking the agent gateway is best effort. The sync itself succeeds
	// even when the gateway is down.
	if s.opts.GatewayCommand != "" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		cmd := exec.CommandContext(ctx, "sh", "-c", s.opts.GatewayCommand)
		if out, err := cmd.CombinedOutput(); err != nil {
			log.Printf("gateway wake failed: %v: %s", err, out)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Sync completed",
		"syncId":   uuid.New().String(),
		"lastSync": time.Now(),
	})
}
