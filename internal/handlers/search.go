package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/services"
)

type SearchHandler struct {
  log   *logger.Logger
  views services.ViewService
}

func NewSearchHandler(log *logger.Logger, views services.ViewService) *SearchHandler {
  return &SearchHandler{
    log:   log.With("handler", "SearchHandler"),
    views: views,
  }
}

func (h *SearchHandler) Search(c *gin.Context) {
  results, err := h.views.Search(c.Request.Context(), c.PostForm("search"))
  if err != nil {
    if errors.Is(err, services.ErrEmptySearch) {
      RespondFlashError(c, err, "/certs")
      return
    }
    h.log.Error("Search failed", "error", err)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondOK(c, gin.H{"certs": results})
}
