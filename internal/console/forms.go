package console

import (
	"context"
	"slices"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
)

// Resource is the subset of a resource client a manager drives
type Resource[E, C, P any] interface {
	List(ctx context.Context) ([]E, error)
	Create(ctx context.Context, input C) (E, error)
	Update(ctx context.Context, id int64, patch P) (E, error)
	Delete(ctx context.Context, id int64) error
}

// Patch is a partial update that can tell when it carries no change
type Patch interface {
	IsEmpty() bool
}

// SizeForm is the operator's input for a size
type SizeForm struct {
	Size      string  `form:"size" binding:"required"`
	BasePrice float64 `form:"base_price" binding:"gte=0"`
}

// SauceForm is the operator's input for a sauce
type SauceForm struct {
	Name  string  `form:"name" binding:"required"`
	Price float64 `form:"price" binding:"gte=0"`
}

// CrustForm is the operator's input for a crust
type CrustForm struct {
	Name  string  `form:"name" binding:"required"`
	Price float64 `form:"price" binding:"gte=0"`
}

// ToppingCategoryForm is the operator's input for a topping category
type ToppingCategoryForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
}

// ToppingForm is the operator's input for a topping
type ToppingForm struct {
	Name        string  `form:"name" binding:"required"`
	Price       float64 `form:"price" binding:"gte=0"`
	CategoryIDs []int64 `form:"category_ids"`
}

// HasCategory reports whether the form selects category id
func (f ToppingForm) HasCategory(id int64) bool {
	return slices.Contains(f.CategoryIDs, id)
}

// Diffs between the loaded entity and the submitted form. Only changed fields are set.

// DiffSize computes the partial update turning s into f
func DiffSize(s models.Size, f SizeForm) models.SizePatch {
	var p models.SizePatch
	if f.Size != s.Size {
		p.Size = &f.Size
	}
	if f.BasePrice != s.BasePrice {
		p.BasePrice = &f.BasePrice
	}
	return p
}

// DiffSauce computes the partial update turning s into f
func DiffSauce(s models.Sauce, f SauceForm) models.SaucePatch {
	var p models.SaucePatch
	if f.Name != s.Name {
		p.Name = &f.Name
	}
	if f.Price != s.Price {
		p.Price = &f.Price
	}
	return p
}

// DiffCrust computes the partial update turning c into f
func DiffCrust(c models.Crust, f CrustForm) models.CrustPatch {
	var p models.CrustPatch
	if f.Name != c.Name {
		p.Name = &f.Name
	}
	if f.Price != c.Price {
		p.Price = &f.Price
	}
	return p
}

// DiffToppingCategory computes the partial update turning c into f
func DiffToppingCategory(c models.ToppingCategory, f ToppingCategoryForm) models.ToppingCategoryPatch {
	var p models.ToppingCategoryPatch
	if f.Name != c.Name {
		p.Name = &f.Name
	}
	if f.Description != c.Description {
		p.Description = &f.Description
	}
	return p
}

// DiffTopping computes the partial update turning t into f
func DiffTopping(t models.Topping, f ToppingForm) models.ToppingPatch {
	var p models.ToppingPatch
	if f.Name != t.Name {
		p.Name = &f.Name
	}
	if f.Price != t.Price {
		p.Price = &f.Price
	}
	if !sameIDs(f.CategoryIDs, t.CategoryIDs()) {
		ids := normalizeIDs(f.CategoryIDs)
		p.CategoryIDs = &ids
	}
	return p
}

// sameIDs compares two id sets ignoring order and duplicates
func sameIDs(a, b []int64) bool {
	return slices.Equal(normalizeIDs(a), normalizeIDs(b))
}

// normalizeIDs sorts and deduplicates ids, never returning nil
func normalizeIDs(ids []int64) []int64 {
	out := append([]int64{}, ids...)
	slices.Sort(out)
	return slices.Compact(out)
}

// patchUpdate sends patch unless it is empty
func patchUpdate[E, C any, P Patch](ctx context.Context, r Resource[E, C, P], id int64, patch P) error {
	if patch.IsEmpty() {
		return nil
	}
	_, err := r.Update(ctx, id, patch)
	return err
}

// NewSizeManager manages sizes through r
func NewSizeManager(r Resource[models.Size, models.SizeInput, models.SizePatch]) *Manager[models.Size, SizeForm] {
	return NewManager(Binding[models.Size, SizeForm]{
		Noun: "size",
		ID:   func(s models.Size) int64 { return s.ID },
		Form: func(s models.Size) SizeForm { return SizeForm{Size: s.Size, BasePrice: s.BasePrice} },
		List: r.List,
		Create: func(ctx context.Context, f SizeForm) error {
			_, err := r.Create(ctx, models.SizeInput{Size: f.Size, BasePrice: f.BasePrice})
			return err
		},
		Update: func(ctx context.Context, s models.Size, f SizeForm) error {
			return patchUpdate(ctx, r, s.ID, DiffSize(s, f))
		},
		Delete: r.Delete,
	})
}

// NewSauceManager manages sauces through r
func NewSauceManager(r Resource[models.Sauce, models.SauceInput, models.SaucePatch]) *Manager[models.Sauce, SauceForm] {
	return NewManager(Binding[models.Sauce, SauceForm]{
		Noun: "sauce",
		ID:   func(s models.Sauce) int64 { return s.ID },
		Form: func(s models.Sauce) SauceForm { return SauceForm{Name: s.Name, Price: s.Price} },
		List: r.List,
		Create: func(ctx context.Context, f SauceForm) error {
			_, err := r.Create(ctx, models.SauceInput{Name: f.Name, Price: f.Price})
			return err
		},
		Update: func(ctx context.Context, s models.Sauce, f SauceForm) error {
			return patchUpdate(ctx, r, s.ID, DiffSauce(s, f))
		},
		Delete: r.Delete,
	})
}

// NewCrustManager manages crusts through r
func NewCrustManager(r Resource[models.Crust, models.CrustInput, models.CrustPatch]) *Manager[models.Crust, CrustForm] {
	return NewManager(Binding[models.Crust, CrustForm]{
		Noun: "crust",
		ID:   func(c models.Crust) int64 { return c.ID },
		Form: func(c models.Crust) CrustForm { return CrustForm{Name: c.Name, Price: c.Price} },
		List: r.List,
		Create: func(ctx context.Context, f CrustForm) error {
			_, err := r.Create(ctx, models.CrustInput{Name: f.Name, Price: f.Price})
			return err
		},
		Update: func(ctx context.Context, c models.Crust, f CrustForm) error {
			return patchUpdate(ctx, r, c.ID, DiffCrust(c, f))
		},
		Delete: r.Delete,
	})
}

// NewToppingCategoryManager manages topping categories through r
func NewToppingCategoryManager(r Resource[models.ToppingCategory, models.ToppingCategoryInput, models.ToppingCategoryPatch]) *Manager[models.ToppingCategory, ToppingCategoryForm] {
	return NewManager(Binding[models.ToppingCategory, ToppingCategoryForm]{
		Noun:   "topping category",
		Plural: "topping categories",
		ID:     func(c models.ToppingCategory) int64 { return c.ID },
		Form:   func(c models.ToppingCategory) ToppingCategoryForm {
			return ToppingCategoryForm{Name: c.Name, Description: c.Description}
		},
		List: r.List,
		Create: func(ctx context.Context, f ToppingCategoryForm) error {
			_, err := r.Create(ctx, models.ToppingCategoryInput{Name: f.Name, Description: f.Description})
			return err
		},
		Update: func(ctx context.Context, c models.ToppingCategory, f ToppingCategoryForm) error {
			return patchUpdate(ctx, r, c.ID, DiffToppingCategory(c, f))
		},
		Delete: r.Delete,
	})
}

// NewToppingManager manages toppings through r
func NewToppingManager(r Resource[models.Topping, models.ToppingInput, models.ToppingPatch]) *Manager[models.Topping, ToppingForm] {
	return NewManager(Binding[models.Topping, ToppingForm]{
		Noun: "topping",
		ID:   func(t models.Topping) int64 { return t.ID },
		Form: func(t models.Topping) ToppingForm {
			return ToppingForm{Name: t.Name, Price: t.Price, CategoryIDs: t.CategoryIDs()}
		},
		List: r.List,
		Create: func(ctx context.Context, f ToppingForm) error {
			_, err := r.Create(ctx, models.ToppingInput{Name: f.Name, Price: f.Price, CategoryIDs: normalizeIDs(f.CategoryIDs)})
			return err
		},
		Update: func(ctx context.Context, t models.Topping, f ToppingForm) error {
			return patchUpdate(ctx, r, t.ID, DiffTopping(t, f))
		},
		Delete: r.Delete,
	})
}
