package render

// Figure is a Plotly figure: traces plus layout, serialised as-is for
// Plotly.newPlot.
type Figure struct {
	ID     string  `json:"id"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type          string      `json:"type"`
	Name          string      `json:"name,omitempty"`
	Mode          string      `json:"mode,omitempty"`
	X             any         `json:"x,omitempty"`
	Y             any         `json:"y,omitempty"`
	Z             [][]float64 `json:"z,omitempty"`
	Text          []string    `json:"text,omitempty"`
	TextPosition  string      `json:"textposition,omitempty"`
	CustomData    [][]string  `json:"customdata,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
	Marker        *Marker     `json:"marker,omitempty"`
	ColorScale    string      `json:"colorscale,omitempty"`
	ReverseScale  bool        `json:"reversescale,omitempty"`
	ZMin          *float64    `json:"zmin,omitempty"`
	ZMax          *float64    `json:"zmax,omitempty"`
	ColorBar      *ColorBar   `json:"colorbar,omitempty"`
	ShowLegend    *bool       `json:"showlegend,omitempty"`
}

type Marker struct {
	Color string      `json:"color,omitempty"`
	Size  int         `json:"size,omitempty"`
	Line  *MarkerLine `json:"line,omitempty"`
}

type MarkerLine struct {
	Color string `json:"color"`
	Width int    `json:"width"`
}

type ColorBar struct {
	Title Text `json:"title"`
}

type Text struct {
	Text string `json:"text"`
}

type Axis struct {
	Title Text   `json:"title"`
	Type  string `json:"type,omitempty"`
}

type Layout struct {
	Title        Text    `json:"title"`
	XAxis        Axis    `json:"xaxis"`
	YAxis        Axis    `json:"yaxis"`
	BarMode      string  `json:"barmode,omitempty"`
	PaperBGColor string  `json:"paper_bgcolor"`
	PlotBGColor  string  `json:"plot_bgcolor"`
	Legend       *Legend `json:"legend,omitempty"`
}

type Legend struct {
	Title Text `json:"title"`
}
