package logger

import (
	"fmt"

	config "github.com/go-ozzo/ozzo-config"
	log "github.com/go-ozzo/ozzo-log"
)

// Logger is the root logger. Its targets come from the "Logger" section of
// the app config once Init has run; until then entries are dropped.
var Logger = log.NewLogger()

func Error(format string, a ...any)   { Logger.Error(format, a...) }
func Warning(format string, a ...any) { Logger.Warning(format, a...) }
func Info(format string, a ...any)    { Logger.Info(format, a...) }
func Debug(format string, a ...any)   { Logger.Debug(format, a...) }

// Category returns a logger that shares the root targets and tags entries
// with name.
func Category(name string) *log.Logger { return Logger.GetLogger(name) }

func Init(c *config.Config) error {
	c.Register("ConsoleTarget", log.NewConsoleTarget)
	c.Register("FileTarget", log.NewFileTarget)

	if err := c.Configure(Logger, "Logger"); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	if err := Logger.Open(); err != nil {
		return fmt.Errorf("failed to open log targets: %w", err)
	}

	Debug("Logger initialized")
	return nil
}

func Close() { Logger.Close() }
