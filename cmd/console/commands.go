package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/Almas2004/led/internal/catalog"
	"github.com/Almas2004/led/internal/console"
	"github.com/Almas2004/led/internal/editor"
	"github.com/Almas2004/led/internal/health"
	"github.com/Almas2004/led/internal/lead"
	"github.com/Almas2004/led/internal/models"
)

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

func (a *app) status(ctx context.Context) error {
	st := a.con.Monitor().Probe(ctx)
	fmt.Fprintf(a.out, "backend: %s (%s)\n", st, a.cfg.APIBaseURL)
	if b := a.con.Banner(); b != "" {
		fmt.Fprintln(a.out, b)
	}
	return nil
}

func (a *app) leads(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	if err := a.con.SwitchTab(ctx, console.TabLeads); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		a.printLeads(a.con.LeadList())
		return nil
	case "status":
		if len(args) != 3 {
			return fmt.Errorf("usage: console leads status <id> <%s>", statusNames())
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		to, err := lead.ParseStatus(args[2])
		if err != nil {
			return err
		}
		if err := a.con.SetLeadStatus(ctx, id, to); err != nil {
			return err
		}
		a.printLeads(a.con.LeadList())
		return nil
	case "note":
		if len(args) < 3 {
			return fmt.Errorf("usage: console leads note <id> <text>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		return a.con.SetLeadNote(ctx, id, strings.Join(args[2:], " "))
	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		out := fs.String("out", "", "write CSV to file instead of stdout")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		w := a.out
		if *out != "" {
			f, err := os.Create(*out)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return lead.ExportCSV(w, a.con.LeadList())
	}
	return fmt.Errorf("unknown leads command %q", args[0])
}

func (a *app) printLeads(leads []models.Lead) {
	tw := a.table()
	fmt.Fprintln(tw, "ID\tCREATED\tNAME\tPHONE\tCITY\tSOURCE\tSTATUS\tNOTE")
	for _, l := range leads {
		note := ""
		if l.ManagerNote != nil {
			note = *l.ManagerNote
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID, l.CreatedAt.Format("2006-01-02 15:04"), l.Name, l.Phone, l.City, l.Source, lead.Label(l.Status), note)
	}
	tw.Flush()

	counts := lead.CountByStatus(leads)
	parts := make([]string, 0, len(counts))
	for _, o := range lead.Statuses() {
		parts = append(parts, fmt.Sprintf("%s: %d", o.Label, counts[o.Status]))
	}
	fmt.Fprintln(a.out, strings.Join(parts, "  "))
}

func (a *app) content(ctx context.Context, name string, args []string) error {
	kind, err := editor.ParseKind(name)
	if err != nil {
		return err
	}
	if err := a.con.SwitchTab(ctx, console.Tab(kind)); err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "list" {
		a.printContent(kind)
		return nil
	}
	if args[0] == "delete" && len(args) == 2 {
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.con.DeleteItem(ctx, kind, id); err != nil {
			return err
		}
		a.printContent(kind)
		return nil
	}
	return fmt.Errorf("usage: console %s list|delete <id>", name)
}

func (a *app) printContent(kind editor.Kind) {
	tw := a.table()
	switch kind {
	case editor.KindProducts:
		a.printProducts(a.con.Products())
		return
	case editor.KindSolutions:
		fmt.Fprintln(tw, "ID\tSLUG\tNAME\tTYPE\tSIZE\tPRICE\tFEATURED")
		for _, s := range a.con.Solutions() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%gx%g\t%s\t%t\n",
				s.ID, s.Slug, s.Name, s.Type, s.Width, s.Height, formatPrice(&s.PriceFrom), s.IsFeatured)
		}
	case editor.KindCases:
		fmt.Fprintln(tw, "ID\tSLUG\tTITLE\tCITY\tINDUSTRY\tFEATURED")
		for _, c := range a.con.Cases() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%t\n", c.ID, c.Slug, c.Title, c.City, c.Industry, c.IsFeatured)
		}
	}
	tw.Flush()
}

func (a *app) printProducts(products []models.Product) {
	tw := a.table()
	fmt.Fprintln(tw, "ID\tSLUG\tNAME\tTYPE\tPITCH\tPURPOSE\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Slug, p.Name, p.Type, p.PixelPitch, strings.Join(p.Purpose, ", "), formatPrice(p.PriceFrom))
	}
	tw.Flush()
}

func (a *app) catalog(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	typ := fs.String("type", string(models.ScreenIndoor), "screen type: indoor or outdoor")
	purposes := fs.String("purpose", "", "comma-separated purpose tags")
	pitches := fs.String("pitch", "", "comma-separated pixel pitches")
	maxPrice := fs.Float64("max-price", catalog.DefaultMaxPrice, "price ceiling; 0 shows only on-request items")
	anyPrice := fs.Bool("any-price", false, "disable the price ceiling")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *anyPrice {
		*maxPrice = catalog.NoPriceCeiling
	}

	if err := a.con.SwitchTab(ctx, console.TabProducts); err != nil {
		return err
	}

	st := catalog.NewState(catalog.ParseType(*typ))
	for _, p := range splitList(*purposes) {
		st.TogglePurpose(p)
	}
	for _, p := range splitList(*pitches) {
		if !st.TogglePitch(p) {
			fmt.Fprintf(a.out, "pitch %s is not offered for %s screens, ignored\n", p, st.Type())
		}
	}
	st.SetMaxPrice(*maxPrice)

	a.printProducts(a.con.CatalogView(st.Filter()))
	return nil
}

func (a *app) create(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: console create <kind> [--image=path] field=value...")
	}
	kind, err := editor.ParseKind(args[0])
	if err != nil {
		return err
	}
	ed := a.con.Editor()
	if err := ed.Open(kind); err != nil {
		return err
	}
	return a.fillAndSave(ctx, ed, args[1:])
}

func (a *app) edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: console edit <kind> <id> [--image=path] field=value...")
	}
	kind, err := editor.ParseKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	if err := a.con.SwitchTab(ctx, console.Tab(kind)); err != nil {
		return err
	}
	item := a.findItem(kind, id)
	if item == nil {
		return fmt.Errorf("%s %d not found", kind, id)
	}
	ed := a.con.Editor()
	if err := ed.Edit(kind, item); err != nil {
		return err
	}
	return a.fillAndSave(ctx, ed, args[2:])
}

func (a *app) findItem(kind editor.Kind, id int64) models.Content {
	switch kind {
	case editor.KindProducts:
		for _, p := range a.con.Products() {
			if p.ID == id {
				return &p
			}
		}
	case editor.KindSolutions:
		for _, s := range a.con.Solutions() {
			if s.ID == id {
				return &s
			}
		}
	case editor.KindCases:
		for _, c := range a.con.Cases() {
			if c.ID == id {
				return &c
			}
		}
	}
	return nil
}

func (a *app) fillAndSave(ctx context.Context, ed *editor.Editor, args []string) error {
	defer ed.Cancel()

	fs := flag.NewFlagSet("editor", flag.ContinueOnError)
	image := fs.String("image", "", "path of an image to attach as the first image")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, kv := range fs.Args() {
		field, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("expected field=value, got %q", kv)
		}
		if err := ed.Set(editor.Field(field), value); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}

	if *image != "" {
		f, err := os.Open(*image)
		if err != nil {
			return err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return err
		}
		if err := ed.AttachImage(info.Name(), info.Size(), f); err != nil {
			return err
		}
	}

	kind := ed.Draft().Kind()
	if err := ed.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved %s\n", kind)
	a.printContent(kind)
	return nil
}

func (a *app) submitLead(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "submit" {
		return fmt.Errorf("usage: console lead submit --name=... --phone=... --city=...")
	}
	var sub lead.Submission
	fs := flag.NewFlagSet("lead submit", flag.ContinueOnError)
	fs.StringVar(&sub.Name, "name", "", "contact name")
	fs.StringVar(&sub.Phone, "phone", "", "contact phone")
	fs.StringVar(&sub.City, "city", "", "city")
	fs.StringVar(&sub.Message, "message", "", "free-form message")
	fs.StringVar(&sub.PageURL, "page", "", "page the form was sent from")
	fs.StringVar(&sub.Source, "source", "", "form placement, e.g. home_bottom")
	fs.StringVar(&sub.ProductID, "product", "", "product slug the lead is about")
	fs.StringVar(&sub.SolutionID, "solution", "", "solution slug the lead is about")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	l, err := a.con.CaptureLead(ctx, sub)
	if err != nil {
		return err
	}
	if l.ID != 0 {
		fmt.Fprintf(a.out, "lead %d captured (%s)\n", l.ID, l.Source)
	} else {
		fmt.Fprintf(a.out, "lead captured (%s)\n", l.Source)
	}
	return nil
}

func (a *app) watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mon := a.con.Monitor()
	mon.Subscribe(func(st health.Status) {
		fmt.Fprintf(a.out, "backend is %s\n", st)
		if b := mon.Banner(); b != "" {
			fmt.Fprintln(a.out, b)
		}
	})
	if err := a.con.Enter(ctx); err != nil {
		fmt.Fprintln(a.out, a.con.Banner())
	}
	if err := mon.Schedule(a.cfg.ProbeSchedule, a.cfg.ProbeTimeout); err != nil {
		return err
	}
	defer mon.Stop()

	<-ctx.Done()
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formatPrice(p *float64) string {
	if p == nil || *p <= 0 {
		return "по запросу"
	}
	return strconv.FormatFloat(*p, 'f', 0, 64)
}

func statusNames() string {
	names := make([]string, 0, 3)
	for _, o := range lead.Statuses() {
		names = append(names, string(o.Status))
	}
	return strings.Join(names, "|")
}
