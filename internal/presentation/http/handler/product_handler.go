package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aydinlift/partsdesk-api/internal/application/service"
	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	"github.com/aydinlift/partsdesk-api/internal/domain/repository"
	"github.com/aydinlift/partsdesk-api/internal/presentation/http/dto/request"
	"github.com/aydinlift/partsdesk-api/internal/presentation/http/dto/response"
	"github.com/aydinlift/partsdesk-api/pkg/money"
	"github.com/aydinlift/partsdesk-api/pkg/pagination"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	catalogService *service.CatalogService
	exportService  *service.ExportService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *service.CatalogService, exportService *service.ExportService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, exportService: exportService}
}

// List handles listing products with search, filters and pagination
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	params := &repository.ProductFilterParams{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		Brand:     c.Query("brand"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Pagination: pagination.PaginationParams{
			Page:     page,
			PageSize: pageSize,
		},
	}

	products, total, err := h.catalogService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully",
		products, pagination.NewMeta(&params.Pagination, total))
}

// Suggest handles autocomplete lookups against code or name
func (h *ProductHandler) Suggest(c *gin.Context) {
	fragment := c.Query("q")
	products, err := h.catalogService.Search(c.Request.Context(), fragment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

// GetByCode handles exact-code lookup, as used when resolving a cart line
func (h *ProductHandler) GetByCode(c *gin.Context) {
	product, err := h.catalogService.FindByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	price, err := money.Parse(req.UnitPrice)
	if err != nil || price.IsNegative() {
		response.BadRequest(c, "Invalid unit price")
		return
	}

	product := &entity.Product{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   money.Round2(price),
		Category:    req.Category,
		Brand:       req.Brand,
	}
	if err := h.catalogService.Create(c.Request.Context(), product); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if req.Code != nil {
		product.Code = *req.Code
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.UnitPrice != nil {
		price, perr := money.Parse(*req.UnitPrice)
		if perr != nil || price.IsNegative() {
			response.BadRequest(c, "Invalid unit price")
			return
		}
		product.UnitPrice = money.Round2(price)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}

	if err := h.catalogService.Update(c.Request.Context(), product); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export streams the full catalog as an xlsx workbook
func (h *ProductHandler) Export(c *gin.Context) {
	buf, err := h.exportService.ExportProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("urunler_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Import reads an uploaded xlsx workbook and upserts catalog rows
func (h *ProductHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file upload")
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Could not open uploaded file")
		return
	}
	defer reader.Close()

	imported, skipped, err := h.exportService.ImportProducts(c.Request.Context(), reader)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product import finished", gin.H{
		"imported": imported,
		"skipped":  skipped,
	})
}
