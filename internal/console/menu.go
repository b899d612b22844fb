package console

import (
	"context"
	"sync"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/franciscosanchezn/gin-pizza-console/internal/pricing"
	log "github.com/sirupsen/logrus"
)

// SectionKind names one independently loaded part of the menu
type SectionKind string

const (
	SectionPizzas   SectionKind = "pizzas"
	SectionSizes    SectionKind = "sizes"
	SectionSauces   SectionKind = "sauces"
	SectionCrusts   SectionKind = "crusts"
	SectionToppings SectionKind = "toppings"
)

// MenuPizza is an available pizza with one price per size
type MenuPizza struct {
	models.Pizza
	Units []pricing.Unit
}

// Section is one part of the menu as delivered by its own request.
// Only the field matching Kind is set, and Err reports that request's failure.
type Section struct {
	Kind     SectionKind
	Pizzas   []MenuPizza
	Sizes    []models.Size
	Sauces   []models.Sauce
	Crusts   []models.Crust
	Toppings []models.Topping
	Err      error
}

// MenuSources are the lists the menu reads from
type MenuSources struct {
	Pizzas   Lister[models.Pizza]
	Sizes    Lister[models.Size]
	Sauces   Lister[models.Sauce]
	Crusts   Lister[models.Crust]
	Toppings Lister[models.Topping]
}

// Menu is the read-only customer-facing view of the catalog
type Menu struct {
	src MenuSources
}

// NewMenu creates a menu over src
func NewMenu(src MenuSources) *Menu {
	return &Menu{src: src}
}

// Load fetches every section concurrently with no ordering between them and
// calls deliver as each one resolves. deliver may be called from several
// goroutines at once. Load returns once every section was delivered or ctx ended.
func (m *Menu) Load(ctx context.Context, deliver func(Section)) {
	loaders := map[SectionKind]func(context.Context) Section{
		SectionPizzas: func(ctx context.Context) Section {
			pizzas, err := m.src.Pizzas.List(ctx)
			return Section{Kind: SectionPizzas, Pizzas: MenuPizzas(pizzas), Err: err}
		},
		SectionSizes: func(ctx context.Context) Section {
			sizes, err := m.src.Sizes.List(ctx)
			return Section{Kind: SectionSizes, Sizes: sizes, Err: err}
		},
		SectionSauces: func(ctx context.Context) Section {
			sauces, err := m.src.Sauces.List(ctx)
			return Section{Kind: SectionSauces, Sauces: sauces, Err: err}
		},
		SectionCrusts: func(ctx context.Context) Section {
			crusts, err := m.src.Crusts.List(ctx)
			return Section{Kind: SectionCrusts, Crusts: crusts, Err: err}
		},
		SectionToppings: func(ctx context.Context) Section {
			toppings, err := m.src.Toppings.List(ctx)
			return Section{Kind: SectionToppings, Toppings: toppings, Err: err}
		},
	}

	var wg sync.WaitGroup
	for kind, load := range loaders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			section := load(ctx)
			if section.Err != nil {
				log.WithError(section.Err).WithField("section", kind).Error("Failed to load menu section")
			}
			if ctx.Err() != nil {
				return
			}
			deliver(section)
		}()
	}
	wg.Wait()
}

// MenuPizzas keeps only available pizzas and prices each of their sizes
func MenuPizzas(pizzas []models.Pizza) []MenuPizza {
	available := models.Available(pizzas)
	out := make([]MenuPizza, 0, len(available))
	for _, p := range available {
		out = append(out, MenuPizza{Pizza: p, Units: pricing.Units(p)})
	}
	return out
}

// MenuPage gathers delivered sections for rendering
type MenuPage struct {
	mu       sync.Mutex
	Pizzas   []MenuPizza
	Sizes    []models.Size
	Sauces   []models.Sauce
	Crusts   []models.Crust
	Toppings []models.Topping
	Errors   map[SectionKind]error
}

// Collect stores one delivered section. It is safe for concurrent use.
func (p *MenuPage) Collect(s Section) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s.Err != nil {
		if p.Errors == nil {
			p.Errors = make(map[SectionKind]error)
		}
		p.Errors[s.Kind] = s.Err
		return
	}
	switch s.Kind {
	case SectionPizzas:
		p.Pizzas = s.Pizzas
	case SectionSizes:
		p.Sizes = s.Sizes
	case SectionSauces:
		p.Sauces = s.Sauces
	case SectionCrusts:
		p.Crusts = s.Crusts
	case SectionToppings:
		p.Toppings = s.Toppings
	}
}

// Failed reports whether the section kind could not be loaded
func (p *MenuPage) Failed(kind string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.Errors[SectionKind(kind)]
	return ok
}
