package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/recipebox/internal/client/apiclient"
	"github.com/dmitrijs2005/recipebox/internal/models"
)

func printRecipeList(w io.Writer, list []models.Recipe) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No recipes found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tTIME\tAUTHOR")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d min\t%s\n", r.ID, r.Title, r.Category, r.PrepTime, r.Author.Name)
	}
	_ = tw.Flush()
}

func printRecipe(w io.Writer, r models.Recipe, saved bool) {
	title := r.Title
	if saved {
		title += " [saved]"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintf(w, "%s · %d min · by %s · %s\n", r.Category, r.PrepTime, r.Author.Name, r.CreatedAt.Format("2006-01-02"))
	if r.Description != "" {
		fmt.Fprintf(w, "\n%s\n", r.Description)
	}

	fmt.Fprintln(w, "\nIngredients:")
	for _, i := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", i)
	}

	fmt.Fprintln(w, "\nSteps:")
	for n, s := range r.Steps {
		fmt.Fprintf(w, "  %d. %s\n", n+1, s)
	}

	if r.ImageURL != "" {
		fmt.Fprintf(w, "\nImage: %s\n", r.ImageURL)
	}
	fmt.Fprintf(w, "ID: %s\n", r.ID)
}

func printUser(w io.Writer, u models.User) {
	fmt.Fprintf(w, "Name:   %s\n", u.Name)
	fmt.Fprintf(w, "Email:  %s\n", u.Email)
	if u.ProfilePhoto != "" {
		fmt.Fprintf(w, "Photo:  %s\n", u.ProfilePhoto)
	}
	fmt.Fprintf(w, "Saved:  %d recipe(s)\n", len(u.SavedRecipeIDs))
}

func printMeta(w io.Writer, m apiclient.Meta) {
	fmt.Fprintf(w, "Categories: %s\n", strings.Join(m.Categories, ", "))
	fmt.Fprintln(w, "Prep time:")
	for _, b := range m.PrepTimes {
		fmt.Fprintf(w, "  %-6s %s\n", b.Value, b.Label)
	}
}
