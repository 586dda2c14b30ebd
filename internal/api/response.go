package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// fail writes the {success:false, message} envelope
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// serverError logs err and writes the 500 envelope with the error text
func serverError(c *gin.Context, message string, err error) {
	logrus.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"error":  err.Error(),
	}).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message, "error": err.Error()})
}

// paramID reads a positive numeric path parameter, zero when absent or malformed
func paramID(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
