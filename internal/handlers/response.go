package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
)

// Flash is the envelope every workflow endpoint returns. Category is
// "message" for success and "error" for user-facing failures; Redirect
// names the page the client should navigate to next, empty when the
// current form should be re-rendered.
type Flash struct {
  Message  string `json:"message"`
  Category string `json:"category"`
  Redirect string `json:"redirect,omitempty"`
}

func RespondFlash(c *gin.Context, message, redirect string) {
  c.JSON(http.StatusOK, Flash{
    Message:  message,
    Category: "message",
    Redirect: redirect,
  })
}

func RespondFlashError(c *gin.Context, err error, redirect string) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(http.StatusOK, Flash{
    Message:  msg,
    Category: "error",
    Redirect: redirect,
  })
}

func RespondError(c *gin.Context, status int, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, gin.H{"error": msg})
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
