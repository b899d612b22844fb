package console

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/franciscosanchezn/gin-pizza-console/internal/client"
	log "github.com/sirupsen/logrus"
)

// ImageDeleter removes a stored image by reference
type ImageDeleter interface {
	Delete(ctx context.Context, ref string) error
}

// Orphan is an uploaded image no pizza record points to anymore
type Orphan struct {
	Ref     string
	Reason  string
	Tracked time.Time
}

// Orphans remembers uploads that could not be reclaimed inline so they can be
// garbage collected out of band.
type Orphans struct {
	images ImageDeleter

	mu    sync.Mutex
	items map[string]Orphan
}

// NewOrphans creates a tracker that reclaims through images
func NewOrphans(images ImageDeleter) *Orphans {
	return &Orphans{images: images, items: make(map[string]Orphan)}
}

// Track records ref for a later sweep
func (o *Orphans) Track(ref, reason string) {
	if ref == "" {
		return
	}
	o.mu.Lock()
	o.items[ref] = Orphan{Ref: ref, Reason: reason, Tracked: time.Now()}
	o.mu.Unlock()
	log.WithFields(log.Fields{"image": ref, "reason": reason}).Warn("Tracking orphaned image")
}

// Pending returns the tracked orphans ordered by reference
func (o *Orphans) Pending() []Orphan {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Orphan, 0, len(o.items))
	for _, item := range o.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref < out[j].Ref })
	return out
}

// Sweep tries to delete every tracked orphan. Images the backend no longer
// has count as reclaimed. It returns how many orphans were cleared.
func (o *Orphans) Sweep(ctx context.Context) int {
	reclaimed := 0
	for _, item := range o.Pending() {
		if ctx.Err() != nil {
			break
		}
		err := o.images.Delete(ctx, item.Ref)
		if err != nil && client.StatusCode(err) != http.StatusNotFound {
			log.WithError(err).WithField("image", item.Ref).Warn("Orphaned image still not reclaimed")
			continue
		}
		o.mu.Lock()
		delete(o.items, item.Ref)
		o.mu.Unlock()
		reclaimed++
	}
	if reclaimed > 0 {
		log.WithField("reclaimed", reclaimed).Info("Swept orphaned images")
	}
	return reclaimed
}

// Run sweeps every interval until ctx is done
func (o *Orphans) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.Sweep(ctx)
		}
	}
}
