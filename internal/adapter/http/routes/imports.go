package routes

import (
	"scmicro_tracker/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathImports = "/imports"
)

func addImportRoutes(rg *gin.RouterGroup, ingestionHandler *handlers.IngestionHandler) {
	imports := rg.Group(PathImports)
	{
		imports.POST("", ingestionHandler.Upload)
		imports.GET("/template", ingestionHandler.Template)
	}
}
