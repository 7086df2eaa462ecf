package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/application"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/pkg/response"
)

const maxProductImages = 10

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

// List GET /api/products?page&limit&name&category
func (h *ProductHandler) List(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), application.ProductQuery{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Page(c, page.Products, page.TotalCount, page.CurrentPage, page.TotalPages)
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

// Search GET /api/products/search?q=&size=
func (h *ProductHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	out, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "search results", map[string]any{"results": len(out)})
}

// Create POST /api/products (admin, multipart)
func (h *ProductHandler) Create(c *gin.Context) {
	in, images, err := parseProductForm(c)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	defer closeAll(images)
	p, err := h.Svc.Create(c.Request.Context(), in, uploads(images))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "product created", nil)
}

// Update PATCH /api/products/:id (admin, multipart)
func (h *ProductHandler) Update(c *gin.Context) {
	in, images, err := parseProductForm(c)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	defer closeAll(images)
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in, uploads(images))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product updated", nil)
}

// Delete DELETE /api/products/:id (admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")}, "product deleted", nil)
}

type openedImage struct {
	upload application.ImageUpload
	file   multipart.File
}

func uploads(images []openedImage) []application.ImageUpload {
	out := make([]application.ImageUpload, 0, len(images))
	for _, img := range images {
		out = append(out, img.upload)
	}
	return out
}

func closeAll(images []openedImage) {
	for _, img := range images {
		_ = img.file.Close()
	}
}

// parseProductForm reads the product fields from a multipart or urlencoded form.
// Absent fields stay nil. Files come from images[] with alt text in altText<i>.
func parseProductForm(c *gin.Context) (application.ProductInput, []openedImage, error) {
	var in application.ProductInput
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			return in, nil, apperror.NewValidation("invalid multipart form")
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return in, nil, apperror.NewValidation("invalid form")
	}

	str := func(key string) *string {
		if v, ok := c.GetPostForm(key); ok {
			return &v
		}
		return nil
	}
	in.Name = str("name")
	in.Description = str("description")
	in.Category = str("category")

	for key, dst := range map[string]**decimal.Decimal{"price": &in.Price, "discountedPrice": &in.DiscountedPrice} {
		if raw := str(key); raw != nil {
			d, err := application.ParsePrice(key, *raw)
			if err != nil {
				return in, nil, err
			}
			*dst = &d
		}
	}
	if raw := str("stock"); raw != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil || n < 0 {
			return in, nil, apperror.NewValidation("stock must be a non-negative integer")
		}
		in.Stock = &n
	}

	if c.Request.MultipartForm == nil {
		return in, nil, nil
	}
	files := c.Request.MultipartForm.File["images"]
	if len(files) == 0 {
		files = c.Request.MultipartForm.File["images[]"]
	}
	if len(files) > maxProductImages {
		return in, nil, apperror.NewValidation("at most %d images are allowed", maxProductImages)
	}
	images := make([]openedImage, 0, len(files))
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			closeAll(images)
			return in, nil, apperror.NewValidation("cannot read image %s", fh.Filename)
		}
		images = append(images, openedImage{
			file: f,
			upload: application.ImageUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				AltText:     c.PostForm(fmt.Sprintf("altText%d", i)),
				Body:        f,
			},
		})
	}
	return in, images, nil
}
