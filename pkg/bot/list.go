package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"taxiservice/pkg/models"
	"taxiservice/service"

	tele "gopkg.in/telebot.v3"
)

const (
	kindManufacturers = "manufacturers"
	kindCars          = "cars"
	kindDrivers       = "drivers"

	pageUnique = "page"

	// Telegram rejects callback data longer than this.
	maxCallbackData = 64
)

type listFormat[T any] struct {
	title string
	empty string
	line  func(T) string
}

var (
	manufacturerListFormat = listFormat[*models.Manufacturer]{
		title: "🏭 Manufacturers",
		empty: service.NoManufacturersMessage,
		line:  func(m *models.Manufacturer) string { return m.Name },
	}
	carListFormat = listFormat[*models.Car]{
		title: "🚗 Cars",
		empty: service.NoCarsMessage,
		line: func(c *models.Car) string {
			if c.Manufacturer != nil {
				return fmt.Sprintf("%s (%s)", c.Model, c.Manufacturer.Name)
			}
			return c.Model
		},
	}
	driverListFormat = listFormat[*models.Driver]{
		title: "👤 Drivers",
		empty: service.NoDriversMessage,
		line: func(d *models.Driver) string {
			line := d.Username
			if name := d.FullName(); name != "" {
				line += " | " + name
			}
			if d.LicenseNumber != "" {
				line += " | " + d.LicenseNumber
			}
			return line
		},
	}
)

// parseListArgs splits command arguments into a search query and a page
// number. A trailing positive integer is taken as the page.
func parseListArgs(args []string) (string, int) {
	page := 1
	if n := len(args); n > 0 {
		if p, err := strconv.Atoi(args[n-1]); err == nil && p > 0 {
			page = p
			args = args[:n-1]
		}
	}
	return strings.Join(args, " "), page
}

func renderList[T any](ctx context.Context, fetch func(context.Context, string, int) (*models.Page[T], error), query string, page int, f listFormat[T]) (string, int, error) {
	p, err := fetch(ctx, query, page)
	if err != nil {
		return "", 0, err
	}
	return formatPage(f, query, p), p.NumPages(), nil
}

func formatPage[T any](f listFormat[T], query string, p *models.Page[T]) string {
	if p.Total == 0 {
		return "📭 " + f.empty
	}

	var sb strings.Builder
	sb.WriteString(f.title)
	if query != "" {
		fmt.Fprintf(&sb, " matching %q", query)
	}
	fmt.Fprintf(&sb, "\nPage %d of %d, %d total\n", p.Number, p.NumPages(), p.Total)

	if len(p.Items) == 0 {
		sb.WriteString("\nNothing on this page.")
		return sb.String()
	}
	for i, item := range p.Items {
		fmt.Fprintf(&sb, "\n%d. %s", p.Offset()+i+1, f.line(item))
	}
	return sb.String()
}

// pageMarkup builds prev/next buttons, or returns nil when there is nowhere
// to go or the query is too long to fit in callback data.
func pageMarkup(kind, query string, page, pages int) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var row tele.Row
	if page > 1 {
		prev := page - 1
		if prev > pages {
			prev = pages
		}
		row = append(row, menu.Data("« Prev", pageUnique, pageData(kind, query, prev)...))
	}
	if page < pages {
		row = append(row, menu.Data("Next »", pageUnique, pageData(kind, query, page+1)...))
	}
	if len(row) == 0 {
		return nil
	}
	for _, btn := range row {
		if len("\f"+pageUnique+"|"+btn.Data) > maxCallbackData {
			return nil
		}
	}
	menu.Inline(row)
	return menu
}

func pageData(kind, query string, page int) []string {
	return []string{kind, strconv.Itoa(page), query}
}

func parsePageData(data string) (kind, query string, page int, ok bool) {
	parts := strings.SplitN(data, "|", 3)
	if len(parts) < 2 {
		return "", "", 0, false
	}
	switch parts[0] {
	case kindManufacturers, kindCars, kindDrivers:
	default:
		return "", "", 0, false
	}
	page, err := strconv.Atoi(parts[1])
	if err != nil || page < 1 {
		return "", "", 0, false
	}
	if len(parts) == 3 {
		query = parts[2]
	}
	return parts[0], query, page, true
}
