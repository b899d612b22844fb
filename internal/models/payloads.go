package models

// Creation payloads carry every required field. Patch payloads use pointer
// fields so an absent field leaves the stored value unchanged.

// SizeInput creates or fully replaces a size
type SizeInput struct {
	Size      string  `json:"size" binding:"required"`
	BasePrice float64 `json:"base_price"`
}

// SizePatch partially updates a size
type SizePatch struct {
	Size      *string  `json:"size,omitempty"`
	BasePrice *float64 `json:"base_price,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p SizePatch) IsEmpty() bool {
	return p.Size == nil && p.BasePrice == nil
}

// SauceInput creates or fully replaces a sauce
type SauceInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

// SaucePatch partially updates a sauce
type SaucePatch struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p SaucePatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil
}

// CrustInput creates or fully replaces a crust
type CrustInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

// CrustPatch partially updates a crust
type CrustPatch struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p CrustPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil
}

// ToppingCategoryInput creates or fully replaces a topping category
type ToppingCategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ToppingCategoryPatch partially updates a topping category
type ToppingCategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p ToppingCategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// ToppingInput creates or fully replaces a topping
type ToppingInput struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price"`
	CategoryIDs []int64 `json:"category_ids"`
}

// ToppingPatch partially updates a topping. A non-nil CategoryIDs replaces the whole set.
type ToppingPatch struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryIDs *[]int64 `json:"category_ids,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p ToppingPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.CategoryIDs == nil
}

// PizzaInput creates or fully replaces a pizza
type PizzaInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	IsAvailable bool    `json:"is_available"`
	SizeIDs     []int64 `json:"size_ids"`
	SauceID     int64   `json:"sauce_id" binding:"required"`
	CrustID     int64   `json:"crust_id" binding:"required"`
	ToppingIDs  []int64 `json:"topping_ids"`
}

// PizzaPatch partially updates a pizza. Non-nil id sets replace the whole association.
type PizzaPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
	SizeIDs     *[]int64 `json:"size_ids,omitempty"`
	SauceID     *int64   `json:"sauce_id,omitempty"`
	CrustID     *int64   `json:"crust_id,omitempty"`
	ToppingIDs  *[]int64 `json:"topping_ids,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p PizzaPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.ImageURL == nil && p.IsAvailable == nil &&
		p.SizeIDs == nil && p.SauceID == nil && p.CrustID == nil && p.ToppingIDs == nil
}

// UploadedImage is the server's answer to an image upload.
// Filename is the reference stored on a pizza, Path is the public URL path.
type UploadedImage struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}
