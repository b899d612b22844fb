package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// CatalogService provides the persistence operations of one catalog entity.
// E is the entity, C its creation payload and P its partial update payload.
type CatalogService[E, C, P any] interface {
	// List retrieves every entity
	List(ctx context.Context) ([]E, error)
	// Get retrieves an entity by its ID
	Get(ctx context.Context, id int64) (E, error)
	// Create stores a new entity
	Create(ctx context.Context, input C) (E, error)
	// Update applies the fields set in patch
	Update(ctx context.Context, id int64, patch P) (E, error)
	// Replace overwrites every field with input
	Replace(ctx context.Context, id int64, input C) (E, error)
	// Delete removes an entity by its ID
	Delete(ctx context.Context, id int64) error
}

// catalog implements CatalogService through per-entity hooks
type catalog[E, C, P any] struct {
	db   *gorm.DB
	noun string
	id   func(E) int64
	// preload names the associations loaded with every read
	preload []string
	// omit names the associations skipped on create, their join rows are still written
	omit []string
	// build turns a creation payload into an entity, validating references
	build func(tx *gorm.DB, input C) (E, error)
	// apply writes patch onto the stored entity e
	apply func(tx *gorm.DB, e *E, patch P) error
	// full converts a creation payload into a patch setting every field
	full func(input C) P
	// detach runs before a delete, in the same transaction
	detach func(tx *gorm.DB, id int64) error
	// deleted runs after a delete was committed
	deleted func(e E)
	// order sorts listed entities, by id when nil
	order func([]E)
}

func (s *catalog[E, C, P]) query(ctx context.Context, tx *gorm.DB) *gorm.DB {
	q := tx.WithContext(ctx)
	for _, assoc := range s.preload {
		q = q.Preload(assoc)
	}
	return q
}

func (s *catalog[E, C, P]) find(ctx context.Context, tx *gorm.DB, id int64) (E, error) {
	var e E
	err := s.query(ctx, tx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return e, fmt.Errorf("%s %d: %w", s.noun, id, ErrNotFound)
	}
	if err != nil {
		return e, fmt.Errorf("loading %s %d: %w", s.noun, id, err)
	}
	return e, nil
}

func (s *catalog[E, C, P]) List(ctx context.Context) ([]E, error) {
	var items []E
	if err := s.query(ctx, s.db).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing %ss: %w", s.noun, err)
	}
	if s.order != nil {
		s.order(items)
	}
	return items, nil
}

func (s *catalog[E, C, P]) Get(ctx context.Context, id int64) (E, error) {
	return s.find(ctx, s.db, id)
}

func (s *catalog[E, C, P]) Create(ctx context.Context, input C) (E, error) {
	var created E
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := s.build(tx, input)
		if err != nil {
			return err
		}
		q := tx
		if len(s.omit) > 0 {
			q = q.Omit(s.omit...)
		}
		if err := q.Create(&e).Error; err != nil {
			return fmt.Errorf("creating %s: %w", s.noun, err)
		}
		created = e
		return nil
	})
	if err != nil {
		return created, err
	}
	return s.reload(ctx, created)
}

func (s *catalog[E, C, P]) Update(ctx context.Context, id int64, patch P) (E, error) {
	var updated E
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.apply(tx, &e, patch); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return updated, err
	}
	return s.reload(ctx, updated)
}

func (s *catalog[E, C, P]) Replace(ctx context.Context, id int64, input C) (E, error) {
	return s.Update(ctx, id, s.full(input))
}

func (s *catalog[E, C, P]) Delete(ctx context.Context, id int64) error {
	var removed E
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if s.detach != nil {
			if err := s.detach(tx, id); err != nil {
				return err
			}
		}
		if err := tx.Delete(&e).Error; err != nil {
			return fmt.Errorf("deleting %s %d: %w", s.noun, id, err)
		}
		removed = e
		return nil
	})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"resource": s.noun, "id": id}).Info("Deleted")
	if s.deleted != nil {
		s.deleted(removed)
	}
	return nil
}

// reload reads e back with its associations
func (s *catalog[E, C, P]) reload(ctx context.Context, e E) (E, error) {
	return s.find(ctx, s.db, s.id(e))
}

// findByIDs loads the entities with the given ids, failing with a
// ReferenceError naming every id that does not exist.
func findByIDs[E any](tx *gorm.DB, kind string, ids []int64) ([]E, error) {
	items := []E{}
	if len(ids) == 0 {
		return items, nil
	}
	var found []int64
	if err := tx.Model(new(E)).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("checking %s ids: %w", kind, err)
	}
	if missing := missingIDs(ids, found); len(missing) > 0 {
		return nil, &ReferenceError{Kind: kind, IDs: missing}
	}
	if err := tx.Where("id IN ?", ids).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("loading %ss: %w", kind, err)
	}
	return items, nil
}

// findOne loads a single referenced entity
func findOne[E any](tx *gorm.DB, kind string, id int64) (E, error) {
	items, err := findByIDs[E](tx, kind, []int64{id})
	if err != nil {
		var zero E
		return zero, err
	}
	return items[0], nil
}

// replaceAssociation swaps the whole association set of owner for items
func replaceAssociation[T any](tx *gorm.DB, owner any, name string, items []T) error {
	assoc := tx.Model(owner).Association(name)
	if len(items) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(items)
}

// updateColumns writes changed columns, allowing zero values
func updateColumns(tx *gorm.DB, model any, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	return tx.Model(model).Updates(columns).Error
}

// dedupe keeps the first occurrence of every id
func dedupe(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
