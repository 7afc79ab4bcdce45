// Package models holds the data types exchanged between the RecipeBox server,
// its repositories and the CLI client.
package models

import (
	"encoding/json"
	"slices"
)

// User is a registered identity. SavedRecipeIDs is never nil.
type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	ProfilePhoto   string   `json:"profilePhoto,omitempty"`
	SavedRecipeIDs []string `json:"savedRecipeIds"`
}

// UnmarshalJSON accepts snapshots where savedRecipeIds is missing or null.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*u = User(p)
	if u.SavedRecipeIDs == nil {
		u.SavedRecipeIDs = []string{}
	}
	return nil
}

// Clone returns a deep copy.
func (u User) Clone() User {
	c := u
	c.SavedRecipeIDs = cloneStrings(u.SavedRecipeIDs)
	return c
}

func (u User) HasSaved(recipeID string) bool {
	return slices.Contains(u.SavedRecipeIDs, recipeID)
}

// WithSaved returns a copy with recipeID appended unless it is already there.
func (u User) WithSaved(recipeID string) User {
	c := u.Clone()
	if !c.HasSaved(recipeID) {
		c.SavedRecipeIDs = append(c.SavedRecipeIDs, recipeID)
	}
	return c
}

// WithoutSaved returns a copy with every occurrence of recipeID removed.
func (u User) WithoutSaved(recipeID string) User {
	c := u.Clone()
	c.SavedRecipeIDs = slices.DeleteFunc(c.SavedRecipeIDs, func(id string) bool { return id == recipeID })
	return c
}

// ProfilePatch carries the editable profile fields. Nil means "leave as is".
type ProfilePatch struct {
	Name         *string `json:"name,omitempty"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
}

// Apply merges the patch into u. ID and Email are never touched.
func (p ProfilePatch) Apply(u User) User {
	c := u.Clone()
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ProfilePhoto != nil {
		c.ProfilePhoto = *p.ProfilePhoto
	}
	return c
}

func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.ProfilePhoto == nil
}
