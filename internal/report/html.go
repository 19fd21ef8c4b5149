package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"chromalint/internal/classify"
	"chromalint/internal/graph"
	"chromalint/internal/models"
)

const (
	topFunctionsLimit = 25
	graphRepulsion    = 140
)

// renderHTML writes a self-contained HTML report: a force-layout map of every
// function colored by its band, plus a bar chart of the most complex
// functions. Both charts are fed from the stored metrics only.
func (g *Generator) renderHTML(batch *models.BatchResult, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "Chromalint Report"
	page.AddCharts(
		g.functionMapChart(batch),
		g.topFunctionsChart(batch),
	)
	return page.Render(w)
}

// functionMapChart merges the per-file containment graphs into one force
// layout. Node size tracks complexity and color tracks band, so hotspots
// stand out before any numbers are read.
func (g *Generator) functionMapChart(batch *models.BatchResult) *charts.Graph {
	var nodes []opts.GraphNode
	var links []opts.GraphLink

	for _, result := range batch.Results {
		fg := graph.Build(result, g.cfg.Bands)
		for _, n := range fg.Nodes {
			nodes = append(nodes, opts.GraphNode{
				Name:       n.ID,
				Value:      float32(n.Complexity),
				SymbolSize: n.Size,
				ItemStyle:  &opts.ItemStyle{Color: n.Color},
			})
		}
		for _, e := range fg.Edges {
			links = append(links, opts.GraphLink{Source: e.From, Target: e.To})
		}
	}

	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Function Map",
			Subtitle: fmt.Sprintf("%d files, %d functions", batch.Summary.AnalyzedFiles, batch.Summary.TotalFunctions),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}: complexity {c}"}),
	)
	chart.AddSeries("functions", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout: "force",
			Force:  &opts.GraphForce{Repulsion: graphRepulsion},
			Roam:   opts.Bool(true),
		}),
	)
	return chart
}

// topFunctionsChart ranks the most complex functions across the whole batch.
func (g *Generator) topFunctionsChart(batch *models.BatchResult) *charts.Bar {
	type entry struct {
		label string
		fn    models.FunctionMetrics
	}

	var entries []entry
	for _, result := range batch.Results {
		for _, fn := range result.Functions {
			entries = append(entries, entry{
				label: fmt.Sprintf("%s (%s:%d)", fn.Name, result.File, fn.StartLine),
				fn:    fn,
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].fn.CyclomaticComplexity > entries[j].fn.CyclomaticComplexity
	})
	if len(entries) > topFunctionsLimit {
		entries = entries[:topFunctionsLimit]
	}

	labels := make([]string, len(entries))
	data := make([]opts.BarData, len(entries))
	for i, e := range entries {
		labels[i] = e.label
		band := g.cfg.Bands.Classify(e.fn.CyclomaticComplexity)
		data[i] = opts.BarData{
			Value:     e.fn.CyclomaticComplexity,
			ItemStyle: &opts.ItemStyle{Color: classify.Color(band)},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Most Complex Functions"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cyclomatic Complexity"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("complexity", data)
	return bar
}
