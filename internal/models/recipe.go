package models

import (
	"strings"
	"time"
)

// Author is the snapshot of the owning identity taken when a recipe is created.
type Author struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
}

func AuthorFrom(u User) Author {
	return Author{ID: u.ID, Name: u.Name, Email: u.Email, ProfilePhoto: u.ProfilePhoto}
}

type Recipe struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Category    string    `json:"category"`
	PrepTime    int       `json:"prepTime"`
	ImageURL    string    `json:"imageURL"`
	Author      Author    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a deep copy so callers cannot reach stored slices.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = cloneStrings(r.Ingredients)
	c.Steps = cloneStrings(r.Steps)
	return c
}

func cloneStrings(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}

// RecipeInput is the submitted recipe form.
type RecipeInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Category    string   `json:"category"`
	PrepTime    int      `json:"prepTime"`
	ImageURL    string   `json:"imageURL"`
}

// RecipePatch is a partial update. Nil fields are left untouched.
type RecipePatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Ingredients *[]string `json:"ingredients,omitempty"`
	Steps       *[]string `json:"steps,omitempty"`
	Category    *string   `json:"category,omitempty"`
	PrepTime    *int      `json:"prepTime,omitempty"`
	ImageURL    *string   `json:"imageURL,omitempty"`
}

// Apply merges the patch into r. ID, Author and CreatedAt are immutable.
func (p RecipePatch) Apply(r Recipe) Recipe {
	c := r.Clone()
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Ingredients != nil {
		c.Ingredients = cloneStrings(*p.Ingredients)
	}
	if p.Steps != nil {
		c.Steps = cloneStrings(*p.Steps)
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.PrepTime != nil {
		c.PrepTime = *p.PrepTime
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
	return c
}

// CompactLines drops blank entries and trims the rest.
func CompactLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			out = append(out, s)
		}
	}
	return out
}
