package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"sync"

	"github.com/franciscosanchezn/gin-pizza-console/internal/images"
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	log "github.com/sirupsen/logrus"
)

// ErrSauceAndCrustRequired is returned when creating a pizza without a sauce or a crust
var ErrSauceAndCrustRequired = &ValidationError{Message: "Please select a sauce and crust."}

// Lister fetches every entity of one kind
type Lister[E any] interface {
	List(ctx context.Context) ([]E, error)
}

// ImageStore uploads and deletes pizza images
type ImageStore interface {
	ImageDeleter
	Upload(ctx context.Context, filename string, content io.Reader) (models.UploadedImage, error)
}

// StagedImage is a new image file chosen in the form but not uploaded yet
type StagedImage struct {
	Filename string
	Content  []byte
}

// PizzaForm is the operator's input for a pizza
type PizzaForm struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description"`
	IsAvailable bool    `form:"is_available"`
	SizeIDs     []int64 `form:"size_ids"`
	ToppingIDs  []int64 `form:"topping_ids"`
	SauceID     int64   `form:"sauce_id"`
	CrustID     int64   `form:"crust_id"`
	// ImageURL is the reference currently stored on the pizza being edited
	ImageURL string `form:"-"`
	// Image is the replacement staged by the operator, if any
	Image *StagedImage `form:"-"`
}

// HasSize reports whether the form selects size id
func (f PizzaForm) HasSize(id int64) bool {
	return slices.Contains(f.SizeIDs, id)
}

// HasTopping reports whether the form selects topping id
func (f PizzaForm) HasTopping(id int64) bool {
	return slices.Contains(f.ToppingIDs, id)
}

// Options are the catalog entities a pizza can be composed from
type Options struct {
	Sizes    []models.Size
	Sauces   []models.Sauce
	Crusts   []models.Crust
	Toppings []models.Topping
}

// ComposerDeps are the collaborators of a Composer
type ComposerDeps struct {
	Pizzas   Resource[models.Pizza, models.PizzaInput, models.PizzaPatch]
	Sizes    Lister[models.Size]
	Sauces   Lister[models.Sauce]
	Crusts   Lister[models.Crust]
	Toppings Lister[models.Topping]
	Images   ImageStore
	Orphans  *Orphans
}

// Composer builds and edits pizzas from the catalog, including their image
type Composer struct {
	*Manager[models.Pizza, PizzaForm]

	deps ComposerDeps

	mu      sync.Mutex
	options Options
}

// NewComposer wires a composer onto its collaborators
func NewComposer(deps ComposerDeps) *Composer {
	if deps.Orphans == nil {
		deps.Orphans = NewOrphans(deps.Images)
	}
	c := &Composer{deps: deps}
	c.Manager = NewManager(Binding[models.Pizza, PizzaForm]{
		Noun:           "pizza",
		ID:             func(p models.Pizza) int64 { return p.ID },
		Form:           pizzaForm,
		List:           deps.Pizzas.List,
		Create:         c.create,
		Update:         c.update,
		Delete:         deps.Pizzas.Delete,
		ValidateCreate: validatePizzaCreate,
	})
	return c
}

// Orphans returns the tracker of unreclaimed uploads
func (c *Composer) Orphans() *Orphans {
	return c.deps.Orphans
}

// Options returns the last loaded catalog options
func (c *Composer) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.options
}

// Load fetches the pizzas and every option list independently.
// Each list that arrives is kept even if another one fails.
func (c *Composer) Load(ctx context.Context) error {
	var wg sync.WaitGroup
	var errMu sync.Mutex
	var errs []error
	run := func(name string, load func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := load(ctx); err != nil {
				log.WithError(err).WithField("list", name).Error("Failed to load composer data")
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
			}
		}()
	}

	run("pizzas", c.Manager.Load)
	run("sizes", func(ctx context.Context) error {
		items, err := c.deps.Sizes.List(ctx)
		c.setOptions(func(o *Options) { o.Sizes = items }, err)
		return err
	})
	run("sauces", func(ctx context.Context) error {
		items, err := c.deps.Sauces.List(ctx)
		c.setOptions(func(o *Options) { o.Sauces = items }, err)
		return err
	})
	run("crusts", func(ctx context.Context) error {
		items, err := c.deps.Crusts.List(ctx)
		c.setOptions(func(o *Options) { o.Crusts = items }, err)
		return err
	})
	run("toppings", func(ctx context.Context) error {
		items, err := c.deps.Toppings.List(ctx)
		c.setOptions(func(o *Options) { o.Toppings = items }, err)
		return err
	})

	wg.Wait()
	return errors.Join(errs...)
}

func (c *Composer) setOptions(apply func(*Options), err error) {
	if err != nil {
		return
	}
	c.mu.Lock()
	apply(&c.options)
	c.mu.Unlock()
}

// create uploads the staged image, then stores the pizza. If the pizza
// cannot be stored the fresh upload is tracked as an orphan.
func (c *Composer) create(ctx context.Context, f PizzaForm) error {
	uploaded, err := c.stage(ctx, f.Image)
	if err != nil {
		return err
	}
	input := models.PizzaInput{
		Name:        f.Name,
		Description: f.Description,
		ImageURL:    uploaded,
		IsAvailable: f.IsAvailable,
		SizeIDs:     normalizeIDs(f.SizeIDs),
		SauceID:     f.SauceID,
		CrustID:     f.CrustID,
		ToppingIDs:  normalizeIDs(f.ToppingIDs),
	}
	if _, err := c.deps.Pizzas.Create(ctx, input); err != nil {
		c.deps.Orphans.Track(uploaded, "pizza create failed")
		return err
	}
	return nil
}

// update stages the new image, commits the pizza and only then reclaims the
// image it replaced. Without a staged image the stored reference is kept.
func (c *Composer) update(ctx context.Context, p models.Pizza, f PizzaForm) error {
	uploaded, err := c.stage(ctx, f.Image)
	if err != nil {
		return err
	}
	imageRef := p.ImageURL
	if uploaded != "" {
		imageRef = uploaded
	}

	patch := DiffPizza(p, f, imageRef)
	if !patch.IsEmpty() {
		if _, err := c.deps.Pizzas.Update(ctx, p.ID, patch); err != nil {
			c.deps.Orphans.Track(uploaded, "pizza update failed")
			return err
		}
	}

	if uploaded != "" && p.ImageURL != "" && p.ImageURL != uploaded {
		c.reclaim(ctx, p.ImageURL)
	}
	return nil
}

// stage uploads img and returns the reference to store, or "" when nothing is staged
func (c *Composer) stage(ctx context.Context, img *StagedImage) (string, error) {
	if img == nil || len(img.Content) == 0 {
		return "", nil
	}
	uploaded, err := c.deps.Images.Upload(ctx, img.Filename, bytes.NewReader(img.Content))
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"image": uploaded.Filename, "original": img.Filename}).Debug("Uploaded pizza image")
	return uploaded.Filename, nil
}

// reclaim deletes a replaced image best-effort. External URLs are not ours to delete.
func (c *Composer) reclaim(ctx context.Context, ref string) {
	if images.IsExternal(ref) {
		return
	}
	if err := c.deps.Images.Delete(ctx, ref); err != nil {
		log.WithError(err).WithField("image", ref).Error("Error deleting old image")
		c.deps.Orphans.Track(ref, "old image deletion failed")
	}
}

func validatePizzaCreate(f PizzaForm) error {
	if f.SauceID == 0 || f.CrustID == 0 {
		return ErrSauceAndCrustRequired
	}
	return nil
}

func pizzaForm(p models.Pizza) PizzaForm {
	return PizzaForm{
		Name:        p.Name,
		Description: p.Description,
		IsAvailable: p.IsAvailable,
		SizeIDs:     p.SizeIDs(),
		ToppingIDs:  p.ToppingIDs(),
		SauceID:     sauceID(p),
		CrustID:     crustID(p),
		ImageURL:    p.ImageURL,
	}
}

// DiffPizza computes the partial update turning p into f with imageRef as its image.
// A cleared sauce or crust is not sent since both are required.
func DiffPizza(p models.Pizza, f PizzaForm, imageRef string) models.PizzaPatch {
	var patch models.PizzaPatch
	if f.Name != p.Name {
		patch.Name = &f.Name
	}
	if f.Description != p.Description {
		patch.Description = &f.Description
	}
	if imageRef != p.ImageURL {
		patch.ImageURL = &imageRef
	}
	if f.IsAvailable != p.IsAvailable {
		patch.IsAvailable = &f.IsAvailable
	}
	if !sameIDs(f.SizeIDs, p.SizeIDs()) {
		ids := normalizeIDs(f.SizeIDs)
		patch.SizeIDs = &ids
	}
	if f.SauceID != 0 && f.SauceID != sauceID(p) {
		patch.SauceID = &f.SauceID
	}
	if f.CrustID != 0 && f.CrustID != crustID(p) {
		patch.CrustID = &f.CrustID
	}
	if !sameIDs(f.ToppingIDs, p.ToppingIDs()) {
		ids := normalizeIDs(f.ToppingIDs)
		patch.ToppingIDs = &ids
	}
	return patch
}

func sauceID(p models.Pizza) int64 {
	if p.Sauce.ID != 0 {
		return p.Sauce.ID
	}
	return p.SauceID
}

func crustID(p models.Pizza) int64 {
	if p.Crust.ID != 0 {
		return p.Crust.ID
	}
	return p.CrustID
}
