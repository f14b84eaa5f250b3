// Package console holds the staff console state: the active tab, the
// collections it last loaded, the editor and the backend banner.
package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Almas2004/led/internal/catalog"
	"github.com/Almas2004/led/internal/contentapi"
	"github.com/Almas2004/led/internal/editor"
	"github.com/Almas2004/led/internal/health"
	"github.com/Almas2004/led/internal/lead"
	"github.com/Almas2004/led/internal/models"

	"github.com/rs/zerolog/log"
)

type Tab string

const (
	TabLeads     Tab = "leads"
	TabProducts  Tab = "products"
	TabSolutions Tab = "solutions"
	TabCases     Tab = "cases"
)

var ErrUnknownTab = errors.New("unknown tab")

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case TabLeads, TabProducts, TabSolutions, TabCases:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// LoadFailedMessage is shown when the active tab could not be loaded.
const LoadFailedMessage = "Ошибка загрузки данных. Проверьте соединение с бэкендом."

// Backend is the content repository as the console uses it.
type Backend interface {
	editor.ContentAPI
	lead.Store

	ListProducts(ctx context.Context) ([]models.Product, error)
	ListSolutions(ctx context.Context) ([]models.Solution, error)
	ListCases(ctx context.Context) ([]models.Case, error)
	DeleteProduct(ctx context.Context, id int64) error
	DeleteSolution(ctx context.Context, id int64) error
	DeleteCase(ctx context.Context, id int64) error
}

type Options struct {
	// Target names the backend in the offline banner.
	Target string
	Policy lead.Policy
}

// Console is safe for concurrent use, except for the Editor it hands out,
// which belongs to a single caller.
type Console struct {
	api     Backend
	monitor *health.Monitor
	leads   *lead.Service
	editor  *editor.Editor

	mu         sync.Mutex
	active     Tab
	generation uint64
	loadErr    error
	products   []models.Product
	solutions  []models.Solution
	cases      []models.Case
	leadList   []models.Lead
}

func New(api Backend, opts Options) *Console {
	c := &Console{
		api:     api,
		monitor: health.NewMonitor(api, opts.Target),
		leads:   lead.NewService(api, opts.Policy),
		active:  TabLeads,
	}
	c.editor = editor.NewEditor(editor.NewContentStore(api), func(ctx context.Context, k editor.Kind) error {
		return c.reload(ctx, Tab(k), c.currentGeneration())
	})
	return c
}

func (c *Console) Monitor() *health.Monitor { return c.monitor }

func (c *Console) Editor() *editor.Editor { return c.editor }

func (c *Console) Leads() *lead.Service { return c.leads }

func (c *Console) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Enter probes the backend and loads the active tab.
func (c *Console) Enter(ctx context.Context) error {
	c.monitor.Probe(ctx)
	return c.Reload(ctx)
}

// SwitchTab makes tab active, probes the backend and loads the tab. Loads
// still in flight for the previous tab are discarded when they complete.
func (c *Console) SwitchTab(ctx context.Context, tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}
	c.mu.Lock()
	c.active = tab
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.monitor.Probe(ctx)
	return c.reload(ctx, tab, gen)
}

// Reload fetches the active tab's collection in full.
func (c *Console) Reload(ctx context.Context) error {
	c.mu.Lock()
	tab, gen := c.active, c.generation
	c.mu.Unlock()
	return c.reload(ctx, tab, gen)
}

// Retry re-runs the probe and the active tab's load.
func (c *Console) Retry(ctx context.Context) (health.Status, error) {
	return c.monitor.Retry(ctx, c.Reload)
}

// Banner returns the offline banner, or the load failure message when the
// backend answered the probe but the tab failed to load.
func (c *Console) Banner() string {
	if b := c.monitor.Banner(); b != "" {
		return b
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loadErr != nil {
		return LoadFailedMessage
	}
	return ""
}

func (c *Console) LoadError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

func (c *Console) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Product(nil), c.products...)
}

func (c *Console) Solutions() []models.Solution {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Solution(nil), c.solutions...)
}

func (c *Console) Cases() []models.Case {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Case(nil), c.cases...)
}

func (c *Console) LeadList() []models.Lead {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Lead(nil), c.leadList...)
}

// CatalogView filters the last loaded products.
func (c *Console) CatalogView(f catalog.Filter) []models.Product {
	return catalog.Apply(c.Products(), f)
}

// DeleteItem removes a content item by id and reloads its collection.
func (c *Console) DeleteItem(ctx context.Context, kind editor.Kind, id int64) error {
	var err error
	switch kind {
	case editor.KindProducts:
		err = c.api.DeleteProduct(ctx, id)
	case editor.KindSolutions:
		err = c.api.DeleteSolution(ctx, id)
	case editor.KindCases:
		err = c.api.DeleteCase(ctx, id)
	default:
		return fmt.Errorf("%w: %q", editor.ErrUnknownKind, kind)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
	}
	log.Info().Str("kind", string(kind)).Int64("id", id).Msg("Content deleted")
	return c.reload(ctx, Tab(kind), c.currentGeneration())
}

// SetLeadStatus persists a status change and replaces the lead list with
// the backend's.
func (c *Console) SetLeadStatus(ctx context.Context, id int64, to models.LeadStatus) error {
	leads, err := c.leads.Transition(ctx, id, to)
	if err != nil {
		return err
	}
	c.storeLeads(leads)
	return nil
}

func (c *Console) SetLeadNote(ctx context.Context, id int64, note string) error {
	leads, err := c.leads.Annotate(ctx, id, note)
	if err != nil {
		return err
	}
	c.storeLeads(leads)
	return nil
}

// CaptureLead submits a visitor form on behalf of the public site.
func (c *Console) CaptureLead(ctx context.Context, sub lead.Submission) (*models.Lead, error) {
	return c.leads.Capture(ctx, sub)
}

func (c *Console) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Console) storeLeads(leads []models.Lead) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leadList = leads
	c.loadErr = nil
}

func (c *Console) reload(ctx context.Context, tab Tab, gen uint64) error {
	var (
		products  []models.Product
		solutions []models.Solution
		cases     []models.Case
		leads     []models.Lead
		err       error
	)
	switch tab {
	case TabProducts:
		products, err = c.api.ListProducts(ctx)
	case TabSolutions:
		solutions, err = c.api.ListSolutions(ctx)
	case TabCases:
		cases, err = c.api.ListCases(ctx)
	case TabLeads:
		leads, err = c.api.ListLeads(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	// A malformed body shows as an empty tab, not a failure.
	err = contentapi.Lenient(err)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		log.Debug().Str("tab", string(tab)).Msg("Discarding stale load")
		return nil
	}
	c.loadErr = err
	if err != nil {
		log.Warn().Err(err).Str("tab", string(tab)).Msg("Failed to load tab")
		return err
	}
	switch tab {
	case TabProducts:
		c.products = products
	case TabSolutions:
		c.solutions = solutions
	case TabCases:
		c.cases = cases
	case TabLeads:
		c.leadList = leads
	}
	return nil
}
