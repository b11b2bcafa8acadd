/*
Package catalog - catalog API controller.

Binding failures return 400 through response.HandleError; business errors go
through response.HandleAppError, which classifies them and maps the HTTP
status.
*/
package catalog

import (
	"net/http"
	"strconv"

	"commerce/api/response"
	catalogapp "commerce/application/catalog"
	"commerce/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller catalog HTTP controller.
type Controller struct {
	catalogService *catalogapp.ApplicationService
}

func NewController(catalogService *catalogapp.ApplicationService) *Controller {
	return &Controller{catalogService: catalogService}
}

// RegisterRoutes registers the catalog routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.POST("", c.CreateProduct)
		productGroup.GET("", c.ListProducts)
		productGroup.GET("/:id", c.GetProduct)
		productGroup.GET("/sku/:sku", c.GetProductBySKU)
		productGroup.PUT("/:id/price", c.UpdatePrice)
		productGroup.PUT("/:id/details", c.UpdateDetails)
		productGroup.POST("/:id/replenish", c.ReplenishStock)
		productGroup.POST("/:id/activate", c.ActivateProduct)
		productGroup.POST("/:id/deactivate", c.DeactivateProduct)
	}
}

// CreateProduct handles POST /api/v1/products.
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.CreateProduct(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, product, "product created successfully")
}

// GetProduct handles GET /api/v1/products/:id.
func (c *Controller) GetProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.GetProduct(ctx.Request.Context(), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product retrieved successfully")
}

// GetProductBySKU handles GET /api/v1/products/sku/:sku.
func (c *Controller) GetProductBySKU(ctx *gin.Context) {
	sku := ctx.Param("sku")
	if sku == "" {
		response.HandleError(ctx, errors.BadRequest("SKU is required"), "SKU is required", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.GetProductBySKU(ctx.Request.Context(), sku)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product retrieved successfully")
}

// ListProducts handles GET /api/v1/products?skip=0&limit=20.
func (c *Controller) ListProducts(ctx *gin.Context) {
	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	products, err := c.catalogService.ListProducts(ctx.Request.Context(), skip, limit)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	pagination := response.Pagination{
		Page:     skip/maxInt(limit, 1) + 1,
		PageSize: limit,
		Count:    len(products),
	}
	response.HandlePaginated(ctx, products, pagination, "products retrieved successfully")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// UpdatePrice handles PUT /api/v1/products/:id/price.
func (c *Controller) UpdatePrice(ctx *gin.Context) {
	productID := ctx.Param("id")

	var req catalogapp.UpdatePriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.UpdatePrice(ctx.Request.Context(), productID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "price updated successfully")
}

// UpdateDetails handles PUT /api/v1/products/:id/details.
func (c *Controller) UpdateDetails(ctx *gin.Context) {
	productID := ctx.Param("id")

	var req catalogapp.UpdateDetailsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.UpdateDetails(ctx.Request.Context(), productID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product updated successfully")
}

// ReplenishStock handles POST /api/v1/products/:id/replenish.
func (c *Controller) ReplenishStock(ctx *gin.Context) {
	productID := ctx.Param("id")

	var req catalogapp.ReplenishStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.ReplenishStock(ctx.Request.Context(), productID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "stock replenished successfully")
}

// ActivateProduct handles POST /api/v1/products/:id/activate.
func (c *Controller) ActivateProduct(ctx *gin.Context) {
	product, err := c.catalogService.ActivateProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product activated successfully")
}

// DeactivateProduct handles POST /api/v1/products/:id/deactivate.
func (c *Controller) DeactivateProduct(ctx *gin.Context) {
	product, err := c.catalogService.DeactivateProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product deactivated successfully")
}
