// Package services contains the server-side business logic: registration,
// login and profile handling in UserService, recipe authoring, ownership
// and dashboard views in RecipeService.
package services
