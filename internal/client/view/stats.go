package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wbdash/wbdash/internal/client/services"
)

const (
	LoadingPlaceholder = "Загрузка..."
	ErrorPlaceholder   = "Ошибка"
	noDelta            = "-"
)

// Card is one stat tile.
type Card struct {
	Title string
	Value string
	Delta Delta
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(24)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

func styleFor(class string) lipgloss.Style {
	switch class {
	case ClassPositive:
		return positiveStyle
	case ClassNegative:
		return negativeStyle
	default:
		return mutedStyle
	}
}

var cardTitles = [...]string{"Общие продажи", "Заказы", "Товары в наличии"}

func placeholderCards(value string) []Card {
	cards := make([]Card, len(cardTitles))
	for i, t := range cardTitles {
		cards[i] = Card{Title: t, Value: value, Delta: Delta{Text: noDelta}}
	}
	return cards
}

// PeriodCards maps the view state to cards. While loading every card shows
// the loading placeholder; after any failure every card shows the error
// placeholder.
func PeriodCards(st services.State[services.PeriodStats]) []Card {
	switch st.Status {
	case services.StatusReady:
	case services.StatusFailed:
		return placeholderCards(ErrorPlaceholder)
	default:
		return placeholderCards(LoadingPlaceholder)
	}

	s := st.Data
	return []Card{
		{Title: cardTitles[0], Value: FormatRUB(s.CurrentSales), Delta: SalesDelta(s.SalesChange())},
		{Title: cardTitles[1], Value: strconv.FormatInt(s.CurrentOrders, 10), Delta: OrdersDelta(s.OrdersChange())},
		{Title: cardTitles[2], Value: strconv.FormatInt(s.TotalStocks, 10), Delta: Delta{Text: noDelta}},
	}
}

func renderCard(c Card) string {
	body := titleStyle.Render(c.Title) + "\n" + c.Value + "\n" + styleFor(c.Delta.Class).Render(c.Delta.Text)
	return cardStyle.Render(body)
}

// RenderPeriodStats lays the cards out side by side.
func RenderPeriodStats(st services.State[services.PeriodStats]) string {
	cards := PeriodCards(st)
	blocks := make([]string, len(cards))
	for i, c := range cards {
		blocks[i] = renderCard(c)
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	if st.Status == services.StatusReady {
		out += "\n" + mutedStyle.Render(st.Data.Current.String()+" vs "+st.Data.Past.String())
	}
	return out
}

// RenderError is the dismissible one-line banner.
func RenderError(err error) string {
	return negativeStyle.Render("error: " + strings.TrimSpace(err.Error()))
}
