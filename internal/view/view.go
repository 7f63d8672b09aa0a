// Package view renders the console screens of a session.
package view

import (
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/starford/carscout/internal/car"
)

// MenuItems are the menu lines, in choice order.
var MenuItems = []string{
	"1 - Show all cars",
	"2 - Search car by price",
	"3 - Add a new car",
	"4 - Save & Exit",
}

var columnTitles = map[car.Column]string{
	car.ColMake:         "Make",
	car.ColModel:        "Model",
	car.ColYear:         "Year",
	car.ColKilometers:   "Kilometers",
	car.ColTransmission: "Transmission",
	car.ColPrice:        "Price",
}

// View writes styled output for one session.
type View struct {
	out      io.Writer
	currency string

	title  lipgloss.Style
	errMsg lipgloss.Style
	notice lipgloss.Style
}

// New returns a View writing to out. Colors are only emitted when out
// is a terminal.
func New(out io.Writer, currency string) *View {
	r := lipgloss.NewRenderer(out)
	return &View{
		out:      out,
		currency: currency,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		errMsg:   r.NewStyle().Foreground(lipgloss.Color("9")),
		notice:   r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// Banner greets the user once at startup.
func (v *View) Banner() {
	fmt.Fprintln(v.out, v.title.Render("Welcome to CAR SCOUT!"))
}

// Menu prints the numbered menu.
func (v *View) Menu() {
	fmt.Fprintln(v.out)
	fmt.Fprintln(v.out, v.title.Render("=== CAR SCOUT MENU ==="))
	for _, item := range MenuItems {
		fmt.Fprintln(v.out, item)
	}
}

// Heading prints a section heading.
func (v *View) Heading(text string) {
	fmt.Fprintln(v.out)
	fmt.Fprintln(v.out, v.title.Render("--- "+text+" ---"))
}

// Prompt asks for one line of input.
func (v *View) Prompt(label string) {
	fmt.Fprint(v.out, label+": ")
}

// Info prints a plain message.
func (v *View) Info(msg string) {
	fmt.Fprintln(v.out, msg)
}

// Notice prints a highlighted message.
func (v *View) Notice(msg string) {
	fmt.Fprintln(v.out, v.notice.Render(msg))
}

// Error prints an error message.
func (v *View) Error(msg string) {
	fmt.Fprintln(v.out, v.errMsg.Render(msg))
}

// Cars renders records as a table with one column per layout entry and
// returns how many were shown. Nothing is printed for an empty sequence.
func (v *View) Cars(records iter.Seq[car.Record], layout car.Layout) int {
	var rows [][]string
	for r := range records {
		rows = append(rows, v.row(r, layout))
	}
	if len(rows) == 0 {
		return 0
	}

	headers := make([]string, len(layout))
	for i, c := range layout {
		headers[i] = Label(c)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(v.out, t.Render())
	return len(rows)
}

func (v *View) row(r car.Record, layout car.Layout) []string {
	out := make([]string, len(layout))
	for i, c := range layout {
		switch c {
		case car.ColPrice:
			out[i] = FormatPrice(r.Price, v.currency)
		case car.ColKilometers:
			out[i] = strconv.Itoa(r.Kilometers) + " km"
		default:
			out[i] = r.Field(c)
		}
	}
	return out
}

// Label is the human title of a column.
func Label(c car.Column) string {
	if s, ok := columnTitles[c]; ok {
		return s
	}
	return string(c)
}
