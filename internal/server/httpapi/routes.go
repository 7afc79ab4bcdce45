package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
)

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	v1 := r.Group("/v1")
	{
		v1.GET("/meta", s.meta)
		v1.POST("/auth/register", s.register)
		v1.POST("/auth/login", s.login)

		v1.GET("/recipes", s.listRecipes)
		v1.GET("/recipes/:id", s.getRecipe)
		v1.POST("/recipes/describe", s.describeRecipe)

		authed := v1.Group("")
		authed.Use(s.authRequired())
		{
			authed.POST("/recipes", s.createRecipe)
			authed.PATCH("/recipes/:id", s.updateRecipe)
			authed.DELETE("/recipes/:id", s.deleteRecipe)
			authed.POST("/images", s.presignImage)

			me := authed.Group("/users/me")
			me.GET("", s.getMe)
			me.PATCH("", s.updateMe)
			me.GET("/recipes", s.myRecipes)
			me.GET("/saved", s.savedRecipes)
			me.PUT("/saved/:recipeId", s.saveRecipe)
			me.DELETE("/saved/:recipeId", s.unsaveRecipe)
		}
	}
	return r
}

func (s *HTTPServer) meta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": models.Categories,
		"prepTimes":  query.BucketOptions,
	})
}
