// Package ui da formato a la salida de invoicectl. Sin TTY o con --no-color
// se imprime texto plano.
package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/invoice-dao/internal/domain/entity"
)

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#58A6FF"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008000", Dark: "#3FB950"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#F85149"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#8B949E"}
)

// UI escribe la salida formateada en Out.
type UI struct {
	Out    io.Writer
	Styled bool
}

// New crea la UI sobre stdout; el estilo se activa solo en terminal y si NO_COLOR no está definida.
func New(noColor bool) *UI {
	styled := term.IsTerminal(int(os.Stdout.Fd())) && !noColor && os.Getenv("NO_COLOR") == ""
	return &UI{Out: os.Stdout, Styled: styled}
}

// Header título de una sección.
func (u *UI) Header(title string) {
	if !u.Styled {
		fmt.Fprintf(u.Out, "=== %s ===\n", title)
		return
	}
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 2)
	fmt.Fprintln(u.Out, style.Render(title))
}

// KeyValue una línea clave: valor.
func (u *UI) KeyValue(key, value string) {
	if !u.Styled {
		fmt.Fprintf(u.Out, "%-12s %s\n", key+":", value)
		return
	}
	keyStyle := lipgloss.NewStyle().Foreground(ColorMuted).Width(14)
	valueStyle := lipgloss.NewStyle().Bold(true)
	fmt.Fprintln(u.Out, "  "+keyStyle.Render(key)+" "+valueStyle.Render(value))
}

var printer = message.NewPrinter(language.Spanish)

// Count una línea clave: valor para conteos, con separador de miles.
func (u *UI) Count(key string, n int) {
	u.KeyValue(key, printer.Sprintf("%d", n))
}

// Success mensaje de operación completada.
func (u *UI) Success(msg string) {
	if !u.Styled {
		fmt.Fprintln(u.Out, "[OK] "+msg)
		return
	}
	fmt.Fprintln(u.Out, lipgloss.NewStyle().Foreground(ColorSuccess).Render("✓ ")+msg)
}

// Muted texto secundario, p. ej. "sin resultados".
func (u *UI) Muted(msg string) {
	if !u.Styled {
		fmt.Fprintln(u.Out, msg)
		return
	}
	fmt.Fprintln(u.Out, lipgloss.NewStyle().Foreground(ColorMuted).Render(msg))
}

// Customer imprime la ficha de un cliente.
func (u *UI) Customer(c *entity.Customer) {
	u.Header(fmt.Sprintf("Cliente %d", c.ID))
	u.KeyValue("Nombre", c.FirstName)
	u.KeyValue("Apellido", c.LastName)
	u.KeyValue("Dirección", c.Street)
	u.KeyValue("Ciudad", c.City)
}

// Customers imprime una tabla de clientes.
func (u *UI) Customers(list []*entity.Customer) {
	if len(list) == 0 {
		u.Muted("sin clientes")
		return
	}
	t := table.New().Headers("ID", "Nombre", "Apellido", "Dirección", "Ciudad")
	if u.Styled {
		t = t.Border(lipgloss.RoundedBorder()).BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted))
	} else {
		t = t.Border(lipgloss.ASCIIBorder())
	}
	for _, c := range list {
		t.Row(strconv.Itoa(c.ID), c.FirstName, c.LastName, c.Street, c.City)
	}
	fmt.Fprintln(u.Out, t.Render())
}

// Invoice imprime la cabecera y las líneas de una factura.
func (u *UI) Invoice(inv *entity.Invoice, items []*entity.Item) {
	u.Header(fmt.Sprintf("Factura %d", inv.ID))
	u.KeyValue("Cliente", strconv.Itoa(inv.CustomerID))
	u.KeyValue("Total", inv.Total.StringFixed(2))
	if len(items) == 0 {
		u.Muted("sin líneas")
		return
	}
	t := table.New().Headers("#", "Producto", "Cantidad", "Precio", "Costo")
	if u.Styled {
		t = t.Border(lipgloss.RoundedBorder()).BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted))
	} else {
		t = t.Border(lipgloss.ASCIIBorder())
	}
	for _, it := range items {
		t.Row(
			strconv.Itoa(it.LineIndex),
			strconv.Itoa(it.ProductID),
			strconv.Itoa(it.Quantity),
			it.UnitPrice.StringFixed(2),
			it.Cost().StringFixed(2),
		)
	}
	fmt.Fprintln(u.Out, t.Render())
}
