package response

import (
	"github.com/gin-gonic/gin"
)

// OK writes a success body of the form {"message": ..., <extra fields>}.
// Extra fields are merged at the top level so handlers can attach ids,
// lists, or whole documents next to the message.
func OK(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// Data writes a raw body without a message envelope.
func Data(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// Error writes {"message": ...} plus an "error" field when err is non-nil.
func Error(c *gin.Context, status int, message string, err error) {
	body := gin.H{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// Flag writes {"success": ..., "message": ...}. Used by the OTP endpoints,
// which report outcome through the success flag rather than the status line
// alone.
func Flag(c *gin.Context, status int, success bool, message string) {
	c.JSON(status, gin.H{"success": success, "message": message})
}
