package http

import "github.com/gin-gonic/gin"

// Every API response is wrapped in the same envelope: {success, data} on
// the happy path, {success:false, error} otherwise.

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
