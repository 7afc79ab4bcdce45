package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
)

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

// resolveImage passes URLs through. Anything else is read as a local
// file, uploaded through a presigned URL and replaced by its public address.
func (a *App) resolveImage(ctx context.Context, v string) (string, error) {
	if v == "" || strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v, nil
	}
	data, err := os.ReadFile(v)
	if err != nil {
		return "", fmt.Errorf("%w: cannot read image: %v", common.ErrorValidation, err)
	}
	up, err := a.api.PresignImage(ctx, a.session.Token())
	if err != nil {
		return "", err
	}
	if err := uploadImage(ctx, up.UploadURL, data, http.DetectContentType(data)); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}
	fmt.Fprintln(a.out, "Image uploaded.")
	return up.ImageURL, nil
}

// requireLogin fails fast without a round trip when nobody is logged in.
func (a *App) requireLogin(ctx context.Context) error {
	if a.isLoggedIn() {
		return nil
	}
	return a.report(ctx, common.ErrorUnauthenticated)
}

func (a *App) Register(ctx context.Context) error {
	name, err := a.ask("Name")
	if err != nil {
		return err
	}
	email, err := a.ask("Email")
	if err != nil {
		return err
	}

	u, err := a.session.Register(ctx, name, email)
	if err != nil {
		return a.printError(err)
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := a.ask("Email")
	if err != nil {
		return err
	}

	u, err := a.session.Login(ctx, email)
	if err != nil {
		return a.printError(err)
	}
	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	u, err := a.session.Refresh(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	printUser(a.out, u)
	return nil
}

func (a *App) EditProfile(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	cur, _ := a.session.Current()

	var patch models.ProfilePatch
	name, err := a.ask(fmt.Sprintf("Name [%s] (blank to keep)", cur.Name))
	if err != nil {
		return err
	}
	if name != "" {
		patch.Name = &name
	}
	photo, err := a.ask("Profile photo URL (blank to keep, - to remove)")
	if err != nil {
		return err
	}
	switch photo {
	case "":
	case "-":
		empty := ""
		patch.ProfilePhoto = &empty
	default:
		patch.ProfilePhoto = &photo
	}

	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}
	u, err := a.session.UpdateProfile(ctx, patch)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Profile updated.")
	printUser(a.out, u)
	return nil
}

// parseListArgs reads "[text...] [-c category] [-t prep] [-n limit]" in any
// order. Words that are not flags form the free-text query.
func parseListArgs(args []string) (query.Filter, int, error) {
	var (
		f     query.Filter
		limit int
		text  []string
	)
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-c", "-t", "-n":
			if i+1 >= len(args) {
				return f, 0, fmt.Errorf("%w: flag %s needs a value", common.ErrorValidation, args[i])
			}
			v := args[i+1]
			switch args[i] {
			case "-c":
				f.Category = v
			case "-t":
				f.PrepTime = v
			case "-n":
				n, err := strconv.Atoi(v)
				if err != nil || n < 0 {
					return f, 0, fmt.Errorf("%w: limit must be a non-negative integer", common.ErrorValidation)
				}
				limit = n
			}
			i++
		default:
			text = append(text, args[i])
		}
	}
	f.Query = strings.Join(text, " ")
	return f, limit, nil
}

func (a *App) List(ctx context.Context, args []string) error {
	f, limit, err := parseListArgs(args)
	if err != nil {
		return a.report(ctx, err)
	}
	list, err := a.api.ListRecipes(ctx, f, limit)
	if err != nil {
		return a.report(ctx, err)
	}
	printRecipeList(a.out, list)
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	r, err := a.api.GetRecipe(ctx, id)
	if err != nil {
		return a.report(ctx, err)
	}
	u, _ := a.session.Current()
	printRecipe(a.out, r, u.HasSaved(r.ID))
	return nil
}

func (a *App) askPrepTime(prompt string) (*int, error) {
	s, err := a.ask(prompt)
	if err != nil || s == "" {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: prep time must be a whole number of minutes", common.ErrorValidation)
	}
	return &n, nil
}

// askDescription returns the typed description; "ai" asks the server to
// write one from the title and ingredients.
func (a *App) askDescription(ctx context.Context, prompt, title string, ingredients []string) (string, error) {
	d, err := a.ask(prompt)
	if err != nil || !strings.EqualFold(d, "ai") {
		return d, err
	}
	d, err = a.api.Describe(ctx, title, ingredients)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(a.out, "Generated: %s\n", d)
	return d, nil
}

func (a *App) Create(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	var in models.RecipeInput
	var err error
	if in.Title, err = a.ask("Title"); err != nil {
		return err
	}
	if in.Category, err = a.ask("Category (" + strings.Join(models.Categories, ", ") + ")"); err != nil {
		return err
	}
	prep, err := a.askPrepTime("Prep time, minutes")
	if err != nil {
		return a.report(ctx, err)
	}
	if prep != nil {
		in.PrepTime = *prep
	}
	if in.Ingredients, err = GetLines(a.reader, "Ingredients", a.out); err != nil {
		return err
	}
	if in.Steps, err = GetLines(a.reader, "Steps", a.out); err != nil {
		return err
	}
	if in.Description, err = a.askDescription(ctx, "Description (type 'ai' to generate one)", in.Title, in.Ingredients); err != nil {
		return a.report(ctx, err)
	}
	image, err := a.ask("Image URL or local file (blank for a placeholder)")
	if err != nil {
		return err
	}
	if in.ImageURL, err = a.resolveImage(ctx, image); err != nil {
		return a.report(ctx, err)
	}

	r, err := a.api.CreateRecipe(ctx, a.session.Token(), in)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Created recipe %s.\n", r.ID)
	return nil
}

func (a *App) Edit(ctx context.Context, id string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	r, err := a.api.GetRecipe(ctx, id)
	if err != nil {
		return a.report(ctx, err)
	}
	if u, _ := a.session.Current(); r.Author.ID != u.ID {
		return a.report(ctx, fmt.Errorf("%w: you can only edit your own recipes", common.ErrorForbidden))
	}

	var patch models.RecipePatch
	keep := func(field, current string) (*string, error) {
		v, err := a.ask(fmt.Sprintf("%s [%s] (blank to keep)", field, current))
		if err != nil || v == "" {
			return nil, err
		}
		return &v, nil
	}
	if patch.Title, err = keep("Title", r.Title); err != nil {
		return err
	}
	if patch.Category, err = keep("Category", r.Category); err != nil {
		return err
	}
	if patch.PrepTime, err = a.askPrepTime(fmt.Sprintf("Prep time [%d] (blank to keep)", r.PrepTime)); err != nil {
		return a.report(ctx, err)
	}
	for _, list := range []struct {
		name string
		dst  **[]string
	}{{"ingredients", &patch.Ingredients}, {"steps", &patch.Steps}} {
		replace, err := Confirm(a.reader, "Replace "+list.name+"?", a.out)
		if err != nil {
			return err
		}
		if replace {
			lines, err := GetLines(a.reader, strings.ToUpper(list.name[:1])+list.name[1:], a.out)
			if err != nil {
				return err
			}
			*list.dst = &lines
		}
	}
	if patch.Description, err = keep("Description", r.Description); err != nil {
		return err
	}
	if patch.ImageURL, err = keep("Image URL or local file", r.ImageURL); err != nil {
		return err
	}
	if patch.ImageURL != nil {
		image, err := a.resolveImage(ctx, *patch.ImageURL)
		if err != nil {
			return a.report(ctx, err)
		}
		patch.ImageURL = &image
	}

	if patch == (models.RecipePatch{}) {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}
	if _, err := a.api.UpdateRecipe(ctx, a.session.Token(), id, patch); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Recipe updated.")
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	ok, err := Confirm(a.reader, "Delete recipe "+id+"?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.api.DeleteRecipe(ctx, a.session.Token(), id); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) Save(ctx context.Context, id string) error {
	if _, err := a.session.SaveRecipe(ctx, id); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}

func (a *App) Unsave(ctx context.Context, id string) error {
	if _, err := a.session.UnsaveRecipe(ctx, id); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Removed from saved.")
	return nil
}

func (a *App) Mine(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	list, err := a.api.MyRecipes(ctx, a.session.Token())
	if err != nil {
		return a.report(ctx, err)
	}
	printRecipeList(a.out, list)
	return nil
}

func (a *App) Saved(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	list, err := a.api.SavedRecipes(ctx, a.session.Token())
	if err != nil {
		return a.report(ctx, err)
	}
	printRecipeList(a.out, list)
	return nil
}

func (a *App) Describe(ctx context.Context) error {
	title, err := a.ask("Title")
	if err != nil {
		return err
	}
	ingredients, err := GetLines(a.reader, "Ingredients", a.out)
	if err != nil {
		return err
	}
	d, err := a.api.Describe(ctx, title, ingredients)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, d)
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	m, err := a.api.Meta(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	printMeta(a.out, m)
	return nil
}
