package main

import (
  "flag"
  "fmt"
  "os"
  "time"

  "github.com/joho/godotenv"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/mailer"
  "github.com/cwhitfield/cert-tracker/internal/reminders"
  "github.com/cwhitfield/cert-tracker/internal/utils"
)

// Standalone reminder sender: reads the same flat-file store the
// server writes and emails every entry due today. A single code can
// be forced with -code (due-gating is skipped for it).
func main() {
  var code string
  flag.StringVar(&code, "code", "", "send only the entry with this cert code, regardless of schedule")
  flag.Parse()

  godotenv.Load()

  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  reminderFile := utils.GetEnv("REMINDER_FILE", "email/data.json", log)
  store := reminders.NewStore(reminderFile, log)
  sender := mailer.NewMailer(log, mailer.LoadSMTPConfig(log))
  today := time.Now()

  if code != "" {
    entry, ok, err := store.Get(utils.NormalizeCode(code))
    if err != nil {
      log.Fatal("Failed to read reminder store", "error", err)
    }
    if !ok {
      log.Fatal("No reminder entry for code", "code", code)
    }
    if err := sender.Send(*entry, today); err != nil {
      log.Fatal("Failed to send reminder", "code", code, "error", err)
    }
    return
  }

  entries, err := store.All()
  if err != nil {
    log.Fatal("Failed to read reminder store", "error", err)
  }
  for key, entry := range entries {
    due, err := mailer.Due(entry, today)
    if err != nil {
      log.Warn("Skipping entry", "code", key, "error", err)
      continue
    }
    if !due {
      log.Debug("Entry not due today", "code", key, "frequency", entry.Frequency)
      continue
    }
    if err := sender.Send(entry, today); err != nil {
      log.Error("Failed to send reminder", "code", key, "error", err)
    }
  }
}
