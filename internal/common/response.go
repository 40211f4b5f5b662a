package common

import "github.com/gin-gonic/gin"

// JSONError writes the {"error": ...} body shape used across the service.
func JSONError(c *gin.Context, err error) {
	c.JSON(HTTPStatus(err), gin.H{"error": Message(err)})
}
