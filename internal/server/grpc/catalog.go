package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
)

// RecipeService is the read side of the recipe service exposed over gRPC.
type RecipeService interface {
	List(ctx context.Context, f query.Filter, limit int) ([]models.Recipe, error)
	Get(ctx context.Context, id string) (models.Recipe, error)
}

type ListRecipesRequest struct {
	Filter query.Filter `json:"filter"`
	Limit  int          `json:"limit,omitempty"`
}

type ListRecipesResponse struct {
	Recipes []models.Recipe `json:"recipes"`
}

type GetRecipeRequest struct {
	ID string `json:"id"`
}

const (
	methodListRecipes = "/" + ServiceName + "/ListRecipes"
	methodGetRecipe   = "/" + ServiceName + "/GetRecipe"
)

// catalogServer is what the service descriptor dispatches to.
type catalogServer interface {
	ListRecipes(ctx context.Context, req *ListRecipesRequest) (*ListRecipesResponse, error)
	GetRecipe(ctx context.Context, req *GetRecipeRequest) (*models.Recipe, error)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*catalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListRecipes", Handler: listRecipesHandler},
		{MethodName: "GetRecipe", Handler: getRecipeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recipebox/v1/catalog",
}

func listRecipesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListRecipesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(catalogServer).ListRecipes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListRecipes}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(catalogServer).ListRecipes(ctx, req.(*ListRecipesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getRecipeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetRecipeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(catalogServer).GetRecipe(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetRecipe}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(catalogServer).GetRecipe(ctx, req.(*GetRecipeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

type catalog struct {
	recipes RecipeService
}

func (c *catalog) ListRecipes(ctx context.Context, req *ListRecipesRequest) (*ListRecipesResponse, error) {
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}
	list, err := c.recipes.List(ctx, req.Filter, req.Limit)
	if err != nil {
		return nil, statusFor(err)
	}
	if list == nil {
		list = []models.Recipe{}
	}
	return &ListRecipesResponse{Recipes: list}, nil
}

func (c *catalog) GetRecipe(ctx context.Context, req *GetRecipeRequest) (*models.Recipe, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	r, err := c.recipes.Get(ctx, req.ID)
	if err != nil {
		return nil, statusFor(err)
	}
	return &r, nil
}

// statusFor maps service sentinels to gRPC codes. Unknown errors are not
// echoed to the caller.
func statusFor(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

// CatalogClient calls the catalog service with the JSON codec.
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func (c *CatalogClient) ListRecipes(ctx context.Context, f query.Filter, limit int) ([]models.Recipe, error) {
	out := new(ListRecipesResponse)
	err := c.cc.Invoke(ctx, methodListRecipes, &ListRecipesRequest{Filter: f, Limit: limit}, out, grpc.CallContentSubtype(codecName))
	if err != nil {
		return nil, err
	}
	return out.Recipes, nil
}

func (c *CatalogClient) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	out := new(models.Recipe)
	err := c.cc.Invoke(ctx, methodGetRecipe, &GetRecipeRequest{ID: id}, out, grpc.CallContentSubtype(codecName))
	if err != nil {
		return models.Recipe{}, err
	}
	return *out, nil
}
