package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
)

func (s *HTTPServer) register(c *gin.Context) {
	var in struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.users.Register(c.Request.Context(), in.Name, in.Email)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (s *HTTPServer) login(c *gin.Context) {
	var in struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.users.Login(c.Request.Context(), in.Email)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *HTTPServer) getMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *HTTPServer) updateMe(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	u, err := s.users.UpdateProfile(c.Request.Context(), currentUser(c).ID, patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *HTTPServer) saveRecipe(c *gin.Context) {
	u, err := s.users.SaveRecipe(c.Request.Context(), currentUser(c).ID, c.Param("recipeId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *HTTPServer) unsaveRecipe(c *gin.Context) {
	u, err := s.users.UnsaveRecipe(c.Request.Context(), currentUser(c).ID, c.Param("recipeId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *HTTPServer) myRecipes(c *gin.Context) {
	list, err := s.recipes.ByAuthor(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) savedRecipes(c *gin.Context) {
	list, err := s.recipes.SavedFor(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) listRecipes(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(c, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	list, err := s.recipes.List(c.Request.Context(), query.FromValues(c.Request.URL.Query()), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) getRecipe(c *gin.Context) {
	r, err := s.recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *HTTPServer) createRecipe(c *gin.Context) {
	var in models.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	r, err := s.recipes.Create(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *HTTPServer) updateRecipe(c *gin.Context) {
	var patch models.RecipePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	r, err := s.recipes.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *HTTPServer) deleteRecipe(c *gin.Context) {
	if err := s.recipes.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *HTTPServer) describeRecipe(c *gin.Context) {
	var in struct {
		Title       string   `json:"title"`
		Ingredients []string `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	text, err := s.recipes.Describe(c.Request.Context(), in.Title, in.Ingredients)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": text})
}

func (s *HTTPServer) presignImage(c *gin.Context) {
	up, err := s.uploads.PresignUpload(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, up)
}
