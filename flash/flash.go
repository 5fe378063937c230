// Package flash is a one-shot message mailbox on top of the session:
// messages queued during one request are drained by the next rendered page.
package flash

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	successKey = "success"
	errorKey   = "error"
)

// Success queues a success message for the next rendered page.
func Success(c *gin.Context, msg string) {
	add(c, successKey, msg)
}

// Error queues an error message for the next rendered page.
func Error(c *gin.Context, msg string) {
	add(c, errorKey, msg)
}

// Consume drains and clears both queues.
func Consume(c *gin.Context) (successes, errors []string) {
	s := sessions.Default(c)
	successes = toStrings(s.Flashes(successKey))
	errors = toStrings(s.Flashes(errorKey))
	// Flashes only stages the removal; Save commits it.
	_ = s.Save()
	return successes, errors
}

func add(c *gin.Context, key, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg, key)
	_ = s.Save()
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if msg, ok := v.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
