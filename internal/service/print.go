package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"order-desk/internal/metrics"
	"order-desk/internal/models"
)

// Surface is the insertion point the printable fragment is written into
// before the printer runs.
type Surface interface {
	Write(fragment string) error
	Content() string
	Clear()
}

// Printer hands the current surface content to the platform print mechanism
// and returns once the job has been accepted or refused.
type Printer interface {
	Print(document string) error
}

type MemorySurface struct {
	mu      sync.Mutex
	content string
}

func NewMemorySurface() *MemorySurface { return &MemorySurface{} }

func (s *MemorySurface) Write(fragment string) error {
	s.mu.Lock()
	s.content = fragment
	s.mu.Unlock()
	return nil
}

func (s *MemorySurface) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

func (s *MemorySurface) Clear() {
	s.mu.Lock()
	s.content = ""
	s.mu.Unlock()
}

var printableTmpl = template.Must(template.New("order").Parse(`<div style="padding: 20px; font-family: Arial, sans-serif; color: #333;">
  <h1 style="font-size: 24px; font-weight: bold; margin-bottom: 20px; color: #1a237e;">Dettaglio Ordine: {{.ID}}</h1>
  <div style="margin-bottom: 16px; border: 1px solid #ccc; padding: 10px; border-radius: 5px;">
    <p style="margin: 5px 0;"><strong>Nome:</strong> {{.FirstName}}</p>
    <p style="margin: 5px 0;"><strong>Cognome:</strong> {{.LastName}}</p>
    <p style="margin: 5px 0;"><strong>Codice Interno:</strong> {{.Code}}</p>
    <p style="margin: 5px 0;"><strong>Data Ritiro:</strong> {{.PickupDate}}</p>
    <p style="margin: 5px 0;"><strong>Data Creazione:</strong> {{.CreatedAt}}</p>
  </div>
  <h2 style="font-size: 20px; font-weight: bold; margin-top: 20px; margin-bottom: 10px; color: #1a237e;">Merce:</h2>
  {{- if .Items}}
  <ul style="list-style-type: disc; padding-left: 20px; margin: 0; border: 1px solid #eee; padding: 10px; border-radius: 5px;">
    {{- range .Items}}
    <li>{{.Code}}: {{.Name}}</li>
    {{- end}}
  </ul>
  {{- else}}
  <p style="font-style: italic;">Nessuna merce.</p>
  {{- end}}
</div>
`))

type printableItem struct {
	Code string
	Name string
}

type printableOrder struct {
	ID         string
	FirstName  string
	LastName   string
	Code       string
	PickupDate string
	CreatedAt  string
	Items      []printableItem
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// RenderPrintable produces the fixed-layout HTML fragment for o.
func RenderPrintable(o models.Order) (string, error) {
	view := printableOrder{
		ID:         o.ID,
		FirstName:  o.FirstName,
		LastName:   o.LastName,
		Code:       strconv.Itoa(o.Code),
		PickupDate: models.FormatDisplayDate(o.PickupDate),
		CreatedAt:  models.FormatDisplayDate(o.CreatedAt),
	}
	for _, it := range o.Merchandise {
		view.Items = append(view.Items, printableItem{Code: orNA(it.ItemCode), Name: orNA(it.ItemName)})
	}

	var buf bytes.Buffer
	if err := printableTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render order %s: %w", o.ID, err)
	}
	return buf.String(), nil
}

// PrintService is shared by all requests; mu holds one job's
// write, print and clear together.
type PrintService struct {
	mu      sync.Mutex
	surface Surface
	printer Printer
}

func NewPrintService(surface Surface, printer Printer) *PrintService {
	return &PrintService{surface: surface, printer: printer}
}

// Print writes o onto the surface, runs the printer and clears the surface
// again whatever happened. Render and printer failures (panics included) are
// logged and swallowed. Only a missing surface is reported, as ErrNoSurface,
// and in that case nothing is cleared.
func (p *PrintService) Print(o models.Order) error {
	log := logrus.WithField("order_id", o.ID)

	if p.surface == nil {
		log.Error("print surface not found")
		metrics.PrintJobs.WithLabelValues("no_surface").Inc()
		return ErrNoSurface
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("print failed")
			metrics.PrintJobs.WithLabelValues("failed").Inc()
		}
		p.surface.Clear()
	}()

	if err := p.print(o); err != nil {
		log.WithError(err).Error("print failed")
		metrics.PrintJobs.WithLabelValues("failed").Inc()
		return nil
	}
	log.Info("order printed")
	metrics.PrintJobs.WithLabelValues("ok").Inc()
	return nil
}

func (p *PrintService) print(o models.Order) error {
	fragment, err := RenderPrintable(o)
	if err != nil {
		return err
	}
	if err := p.surface.Write(fragment); err != nil {
		return fmt.Errorf("write surface: %w", err)
	}
	if p.printer == nil {
		return fmt.Errorf("no printer configured")
	}
	return p.printer.Print(p.surface.Content())
}
