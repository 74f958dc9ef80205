package handler

import (
	catalogapp "github.com/Darkingtail/mall4r/internal/application/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles /prod/category
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Tree handles GET /prod/category/listCategory
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.categoryService.Tree(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// ListEnabled handles GET /prod/category/listProdCategory
func (h *CategoryHandler) ListEnabled(c *gin.Context) {
	list, err := h.categoryService.ListEnabled(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetByID handles GET /prod/category/info/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	cat, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cat)
}

// Create handles POST /prod/category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalog.Category
	if !h.bindJSON(c, &req) {
		return
	}
	cat, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cat)
}

// Update handles PUT /prod/category
func (h *CategoryHandler) Update(c *gin.Context) {
	var req catalog.Category
	if !h.bindJSON(c, &req) {
		return
	}
	cat, err := h.categoryService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cat)
}

// Delete handles DELETE /prod/category/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// BrandHandler handles /admin/brand
type BrandHandler struct {
	BaseHandler
	brandService *catalogapp.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService *catalogapp.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// Page handles GET /admin/brand/page
func (h *BrandHandler) Page(c *gin.Context) {
	page, err := h.brandService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// List handles GET /admin/brand/list
func (h *BrandHandler) List(c *gin.Context) {
	list, err := h.brandService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetByID handles GET /admin/brand/info/:id
func (h *BrandHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.brandService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Create handles POST /admin/brand, JSON or form encoded
func (h *BrandHandler) Create(c *gin.Context) {
	var req catalog.Brand
	if !h.bind(c, &req) {
		return
	}
	b, err := h.brandService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, b)
}

// Update handles PUT /admin/brand, JSON or form encoded
func (h *BrandHandler) Update(c *gin.Context) {
	var req catalog.Brand
	if !h.bind(c, &req) {
		return
	}
	b, err := h.brandService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Delete handles DELETE /admin/brand/:id
func (h *BrandHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.brandService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// PropHandler handles /prod/spec and /admin/attribute. The service decides
// which rule the records carry.
type PropHandler struct {
	BaseHandler
	propService *catalogapp.PropService
}

// NewPropHandler creates a new PropHandler
func NewPropHandler(propService *catalogapp.PropService) *PropHandler {
	return &PropHandler{propService: propService}
}

// Page handles GET {base}/page
func (h *PropHandler) Page(c *gin.Context) {
	page, err := h.propService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// List handles GET {base}/list
func (h *PropHandler) List(c *gin.Context) {
	list, err := h.propService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetByID handles GET {base}/info/:id
func (h *PropHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.propService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Create handles POST {base}
func (h *PropHandler) Create(c *gin.Context) {
	var req catalog.ProdProp
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.propService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Update handles PUT {base}
func (h *PropHandler) Update(c *gin.Context) {
	var req catalog.ProdProp
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.propService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete handles DELETE {base}/:id
func (h *PropHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.propService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// ProdTagHandler handles /prod/prodTag
type ProdTagHandler struct {
	BaseHandler
	prodTagService *catalogapp.ProdTagService
}

// NewProdTagHandler creates a new ProdTagHandler
func NewProdTagHandler(prodTagService *catalogapp.ProdTagService) *ProdTagHandler {
	return &ProdTagHandler{prodTagService: prodTagService}
}

// Page handles GET /prod/prodTag/page
func (h *ProdTagHandler) Page(c *gin.Context) {
	page, err := h.prodTagService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// ListEnabled handles GET /prod/prodTag/listTagList
func (h *ProdTagHandler) ListEnabled(c *gin.Context) {
	list, err := h.prodTagService.ListEnabled(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetByID handles GET /prod/prodTag/info/:id
func (h *ProdTagHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.prodTagService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Create handles POST /prod/prodTag
func (h *ProdTagHandler) Create(c *gin.Context) {
	var req catalog.ProdTag
	if !h.bindJSON(c, &req) {
		return
	}
	t, err := h.prodTagService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// Update handles PUT /prod/prodTag
func (h *ProdTagHandler) Update(c *gin.Context) {
	var req catalog.ProdTag
	if !h.bindJSON(c, &req) {
		return
	}
	t, err := h.prodTagService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Delete handles DELETE /prod/prodTag/:id
func (h *ProdTagHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.prodTagService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// ProdCommHandler handles /prod/prodComm
type ProdCommHandler struct {
	BaseHandler
	prodCommService *catalogapp.ProdCommService
}

// NewProdCommHandler creates a new ProdCommHandler
func NewProdCommHandler(prodCommService *catalogapp.ProdCommService) *ProdCommHandler {
	return &ProdCommHandler{prodCommService: prodCommService}
}

// Page handles GET /prod/prodComm/page
func (h *ProdCommHandler) Page(c *gin.Context) {
	page, err := h.prodCommService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /prod/prodComm/info/:id
func (h *ProdCommHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	comm, err := h.prodCommService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comm)
}

// Reply handles PUT /prod/prodComm
func (h *ProdCommHandler) Reply(c *gin.Context) {
	var req catalogapp.ReplyInput
	if !h.bindJSON(c, &req) {
		return
	}
	comm, err := h.prodCommService.Reply(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comm)
}

// Delete handles DELETE /prod/prodComm/:id
func (h *ProdCommHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.prodCommService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// ProductHandler handles /prod/prod
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Page handles GET /prod/prod/page
func (h *ProductHandler) Page(c *gin.Context) {
	page, err := h.productService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /prod/prod/info/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Create handles POST /prod/prod
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.Product
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Update handles PUT /prod/prod
func (h *ProductHandler) Update(c *gin.Context) {
	var req catalog.Product
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.productService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// SetStatus handles PUT /prod/prod/prodStatus
func (h *ProductHandler) SetStatus(c *gin.Context) {
	var req catalogapp.StatusInput
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.productService.SetStatus(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// DeleteBatch handles DELETE /prod/prod
func (h *ProductHandler) DeleteBatch(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	if err := h.productService.DeleteBatch(c.Request.Context(), ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
