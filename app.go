package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	state   AppState
	width   int
	height  int
	options ParseOptions
	config  *Config

	readClipboard func() (string, error)
	exportPNG     func(panel ChartPanel, filename string) error
	exportTXT     func(panel ChartPanel, filename string) error
}

func initialModel(config *Config, path string) model {
	m := model{
		state: AppState{
			Mode:       ModeNormal,
			Kind:       config.Chart,
			PathBuffer: path,
			Running:    true,
		},
		width:         defaultWidth,
		height:        defaultHeight,
		options:       config.parseOptions(),
		config:        config,
		readClipboard: readClipboardText,
		exportPNG:     ExportPNG,
		exportTXT:     ExportText,
	}

	// A path given on the command line is loaded straight away. Failure
	// leaves the user editing it.
	if path != "" {
		m.state.Mode = ModeEditing
		m.submit()
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.state.Running {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) View() string {
	if !m.state.Running {
		return ""
	}
	return renderPlan(Plan(m.state, m.width, m.height))
}

// submit runs the load pipeline on the path buffer. The previous series
// survives a failed load.
func (m *model) submit() {
	series, err := LoadSeries(expandHome(m.state.PathBuffer), m.state.Kind, m.options)
	if err != nil {
		log.Printf("load failed: %v", err)
		m.state.LastError = "Error: " + err.Error()
		return
	}
	m.state.Series = series
	m.state.Source = m.state.PathBuffer
	m.state.LastError = ""
	m.state.Mode = ModeNormal
}

// exportChart saves the loaded chart as an image (ext ".png") or as the
// text currently on screen (ext ".txt").
func (m *model) exportChart(ext string) {
	if m.state.Series == nil {
		m.state.Notice = "Nothing to export yet, load a file first"
		return
	}

	filename, err := m.config.GetSavePath(exportName(m.state.Source, ext))
	if err == nil {
		if ext == ".txt" {
			err = m.exportTXT(Plan(m.state, m.width, m.height).Chart, filename)
		} else {
			panel := m.state.Series.Panel()
			panel.Title = panelTitle(m.state.Source)
			err = m.exportPNG(panel, filename)
		}
	}
	if err != nil {
		log.Printf("export failed: %v", err)
		m.state.Notice = "Export failed: " + err.Error()
		return
	}
	m.state.Notice = "Exported " + filename
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.state.Running = false
	return m, tea.Quit
}
