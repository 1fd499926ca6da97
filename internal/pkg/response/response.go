package response

import "github.com/gin-gonic/gin"

// Success writes the flat success envelope the clients expect:
// {"status":"success","message":...,<extra fields>}.
func Success(c *gin.Context, statusCode int, message string, fields gin.H) {
	body := gin.H{
		"status":  "success",
		"message": message,
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Data writes a success envelope around a list or object payload.
func Data(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"status": "success",
		"data":   data,
	})
}

// Error writes the failure envelope. The code is the machine-checkable
// contract; the message is for humans.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"status": "error",
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
