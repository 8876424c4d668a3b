package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/derby-xg/internal/domain/xgstats"
	"github.com/riskibarqy/derby-xg/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html.tmpl").ParseFS(templateFS, "templates/dashboard.html.tmpl"))

type pageView struct {
	Correlation         string
	PValue              string
	MeanPredictionError string
	GeneratedAt         string
	Figures             []Figure
	FiguresJSON         template.JS
	Overperformed       statBox
	Underperformed      statBox
}

type statBox struct {
	Text       string
	Background string
	Foreground string
	CSSClass   string
}

// WritePage renders the dashboard HTML. The page is built in a pooled buffer
// so a template failure never leaves a half-written response.
func WritePage(w io.Writer, data usecase.DashboardData) error {
	figures := BuildCharts(data)
	raw, err := sonic.ConfigStd.Marshal(figures)
	if err != nil {
		return fmt.Errorf("encode figures: %w", err)
	}

	view := pageView{
		Correlation:         fmt.Sprintf("%.6f", data.Correlation.Coefficient),
		PValue:              fmt.Sprintf("%.6f", data.Correlation.PValue),
		MeanPredictionError: fmt.Sprintf("%.6f", data.MeanPredictionError),
		GeneratedAt:         data.GeneratedAt.Format("2006-01-02 15:04 MST"),
		Figures:             figures,
		FiguresJSON:         template.JS(raw),
		Overperformed:       newStatBox(data.OverperformedLoser),
		Underperformed:      newStatBox(data.UnderperformedWinner),
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := pageTemplate.Execute(buf, view); err != nil {
		return fmt.Errorf("render dashboard page: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write dashboard page: %w", err)
	}
	return nil
}

func newStatBox(result xgstats.TeamOutcomeResult) statBox {
	box := statBox{
		Text:       result.Label,
		Background: ColorFor(result.TeamName()),
		Foreground: "#333333",
	}
	if result.Found() {
		box.Foreground = "#ffffff"
		box.CSSClass = strings.ToLower(result.TeamName())
	}
	return box
}
