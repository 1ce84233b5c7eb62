package health

import (
	"github.com/gin-gonic/gin"

	"github.com/godwincybertechsolutions-cmyk/webinar/pkg/sdk"
)

// getStatus reports that the service is up
func getStatus(c *gin.Context) {
	c.JSON(sdk.NewSuccess("ok").AsGinResponse())
}
