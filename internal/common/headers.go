package common

import (
	"github.com/gin-gonic/gin"
)

// Entity alert headers consumed by the web client to show toasts.
const (
	AlertHeader  = "X-healthpointsApp-alert"
	ParamsHeader = "X-healthpointsApp-params"

	// FailureHeader carries a human-readable reason on 400 responses
	FailureHeader = "Failure"
)

// SetCreationAlert marks a response as a successful entity creation
func SetCreationAlert(c *gin.Context, entity, id string) {
	c.Header(AlertHeader, "healthpointsApp."+entity+".created")
	c.Header(ParamsHeader, id)
}

// SetUpdateAlert marks a response as a successful entity update
func SetUpdateAlert(c *gin.Context, entity, id string) {
	c.Header(AlertHeader, "healthpointsApp."+entity+".updated")
	c.Header(ParamsHeader, id)
}

// SetDeletionAlert marks a response as a successful entity deletion
func SetDeletionAlert(c *gin.Context, entity, id string) {
	c.Header(AlertHeader, "healthpointsApp."+entity+".deleted")
	c.Header(ParamsHeader, id)
}

// SetFailure attaches the failure reason header to a 400 response
func SetFailure(c *gin.Context, reason string) {
	c.Header(FailureHeader, reason)
}
