// Package app is the root bubbletea model. It owns the application state and
// wires the map, the side panels and the backend commands together.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"airmap/api"
	"airmap/config"
	"airmap/logger"
	"airmap/sched"
	"airmap/state"
	"airmap/ui/filter"
	"airmap/ui/footer"
	"airmap/ui/header"
	"airmap/ui/info"
	mapview "airmap/ui/map"
	"airmap/ui/routelist"
	"airmap/ui/search"
	"airmap/ui/spatial"
)

const (
	headerHeight = 1
	footerHeight = 1

	sidebarWidth    = 36
	minMapWidth     = 20
	routeListRows   = 6
	sidebarMinWidth = 24
)

type focusArea int

const (
	focusMap focusArea = iota
	focusSearch
	focusFilter
	focusRoutes
	focusSpatial
	focusCount
)

func (f focusArea) String() string {
	switch f {
	case focusSearch:
		return "search"
	case focusFilter:
		return "filter"
	case focusRoutes:
		return "routes"
	case focusSpatial:
		return "spatial"
	default:
		return "map"
	}
}

// Model holds the application's state
type Model struct {
	width  int // Terminal width
	height int // Terminal height

	view config.ViewConfig
	log  *logger.Logger
	cmds api.Commands
	st   *state.State

	headerModel  header.Model
	mapModel     mapview.Model
	searchModel  search.Model
	filterModel  filter.Model
	routesModel  routelist.Model
	spatialModel spatial.Model
	infoModel    info.Model
	footerModel  footer.Model

	focus    focusArea
	inflight int
	startup  tea.Cmd
}

// New creates the root model. A basemap that fails to load is logged and the
// map is drawn without it.
func New(cfg *config.Config, client *api.Client, log *logger.Logger) Model {
	if log == nil {
		log = logger.Discard()
	}
	v := cfg.ViewConfig

	mapMod, err := mapview.New(cfg.MapShapefile, v.HighlightFor)
	if err != nil {
		log.Warn("basemap not loaded", "path", cfg.MapShapefile, "error", err)
	}
	mapMod.SetView(v.DefaultLat, v.DefaultLon, v.DefaultZoom)

	m := Model{
		view: v,
		log:  log,
		cmds: api.Commands{Client: client, Timeout: cfg.RequestTimeout},
		st:   state.New(v.MaxRoutesDisplay),

		headerModel:  header.New(),
		mapModel:     mapMod,
		searchModel:  search.New(v.SearchDebounce, v.SearchLimit),
		filterModel:  filter.New(),
		routesModel:  routelist.New(routeListRows),
		spatialModel: spatial.New(v.DefaultRadiusKm),
		infoModel:    info.New(),
		footerModel:  footer.New(),
	}
	if err != nil {
		m.infoModel.Error("Basemap not loaded: %v", err)
	}
	m.startup = m.begin(m.cmds.LoadAirports())
	m.sync()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.startup
}

// State exposes the application state.
func (m Model) State() *state.State { return m.st }

// begin counts an outstanding request so the header can show it.
func (m *Model) begin(cmd tea.Cmd) tea.Cmd {
	m.inflight++
	return tea.Batch(cmd, m.headerModel.SetBusy(m.inflight))
}

func (m *Model) end() {
	if m.inflight > 0 {
		m.inflight--
	}
	m.headerModel.SetBusy(m.inflight)
}

// sync pushes derived values into the header and footer.
func (m *Model) sync() {
	m.footerModel.SetZoom(m.mapModel.Zoom())
	m.footerModel.SetCounts(len(m.st.Filtered()), len(m.st.Routes()))
	m.footerModel.SetFocus(m.focus.String())

	status := fmt.Sprintf("%d airports", len(m.st.All()))
	if a, ok := m.st.Selected(); ok {
		status = a.IATA + " | " + status
	}
	m.headerModel.SetStatus(status)
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.searchModel.Blur()
	m.filterModel.Blur()
	m.routesModel.Blur()
	m.spatialModel.Blur()

	m.focus = f
	switch f {
	case focusSearch:
		return m.searchModel.Focus()
	case focusFilter:
		m.filterModel.Focus()
	case focusRoutes:
		m.routesModel.Focus()
	case focusSpatial:
		return m.spatialModel.Focus()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case spinner.TickMsg:
		m.headerModel, cmd = m.headerModel.Update(msg)

	case sched.FiredMsg:
		// timers are tagged, so every owner can look at every firing
		var mapCmd, searchCmd tea.Cmd
		m.mapModel, mapCmd = m.mapModel.Update(msg)
		m.searchModel, searchCmd = m.searchModel.Update(msg)
		cmd = tea.Batch(mapCmd, searchCmd)

	case api.ErrorMsg:
		m.end()
		m.handleError(msg)
	case api.AirportsLoadedMsg:
		m.end()
		m.handleAirports(msg)
	case api.RoutesLoadedMsg:
		m.end()
		m.handleRoutes(msg)
	case api.NearbyLoadedMsg:
		m.end()
		m.handleNearby(msg)
	case api.NearestLoadedMsg:
		m.end()
		m.handleNearest(msg)
	case api.HubsLoadedMsg:
		m.end()
		m.handleHubs(msg)

	case mapview.MarkerActivatedMsg:
		cmd = m.loadRoutes(msg.IATA)
	case mapview.PointPickedMsg:
		m.setReference(msg.Lat, msg.Lon)

	case search.SelectedMsg:
		cmd = m.handleSearchSelected(msg)

	case filter.AppliedMsg:
		m.applyFilter(msg)
	case filter.ResetMsg:
		m.resetFilter()

	case routelist.HighlightMsg:
		cmd = m.highlightRoute(msg.Index)

	case spatial.NearbyMsg:
		m.infoModel.Set("Searching within %g km of (%.4f, %.4f)...", msg.RadiusKm, msg.Lat, msg.Lon)
		cmd = m.begin(m.cmds.FindNearby(msg.Lat, msg.Lon, msg.RadiusKm))
	case spatial.NearestMsg:
		m.infoModel.Set("Looking for the nearest airport to (%.4f, %.4f)...", msg.Lat, msg.Lon)
		cmd = m.begin(m.cmds.FindNearest(msg.Lat, msg.Lon))
	case spatial.PointMsg:
		m.setReference(msg.Lat, msg.Lon)
	case spatial.ClearMsg:
		m.clearSpatial()
		m.infoModel.Set("Spatial query cleared.")
	case spatial.ClearAllMsg:
		m.clearRoutes()
		m.clearSpatial()
		m.infoModel.Set("Map cleared. Select an airport to view its routes.")
	case spatial.HubsMsg:
		cmd = m.begin(m.cmds.LoadHubs(m.view.TopHubs))
	case spatial.InvalidMsg:
		m.log.Debug("input rejected", "error", msg.Err)
		m.infoModel.Error("Invalid input: %v", msg.Err)
	}

	m.sync()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	if m.focus != focusMap {
		if msg.String() == "esc" {
			// leaving the panel is the terminal's "click outside"
			return m.setFocus(focusMap)
		}
		return m.updateFocused(msg)
	}

	switch msg.String() {
	case "q", "esc":
		return tea.Quit
	case "/":
		return m.setFocus(focusSearch)
	case "f":
		return m.setFocus(focusFilter)
	case "c":
		m.clearRoutes()
		m.infoModel.Set("Routes cleared. Select an airport to view its routes.")
		return nil
	case "x":
		m.clearSpatial()
		m.infoModel.Set("Spatial query cleared.")
		return nil
	case "X":
		return m.dispatch(spatial.ClearAllMsg{})
	case "1":
		shown, routes := m.mapModel.LayerVisibility()
		m.mapModel.SetLayerVisibility(!shown, routes)
		return nil
	case "2":
		shown, routes := m.mapModel.LayerVisibility()
		m.mapModel.SetLayerVisibility(shown, !routes)
		return nil
	case "n":
		return m.dispatch(m.spatialModel.Nearby())
	case "N":
		return m.dispatch(m.spatialModel.Nearest())
	case "H":
		return m.dispatch(spatial.HubsMsg{})
	}

	var cmd tea.Cmd
	m.mapModel, cmd = m.mapModel.Update(msg)
	return cmd
}

// dispatch handles msg right away as if it had come back from a command.
func (m *Model) dispatch(msg tea.Msg) tea.Cmd {
	next, cmd := m.Update(msg)
	*m = next.(Model)
	return cmd
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.searchModel, cmd = m.searchModel.Update(msg)
	case focusFilter:
		m.filterModel, cmd = m.filterModel.Update(msg)
	case focusRoutes:
		m.routesModel, cmd = m.routesModel.Update(msg)
	case focusSpatial:
		m.spatialModel, cmd = m.spatialModel.Update(msg)
	}
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	mapWidth, bodyHeight := m.bodySize()
	y := msg.Y - headerHeight
	if y < 0 || y >= bodyHeight {
		return nil
	}

	if msg.X < mapWidth {
		var cmd tea.Cmd
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.focus != focusMap {
			cmd = m.setFocus(focusMap)
		}
		local := msg
		local.Y = y
		var mapCmd tea.Cmd
		m.mapModel, mapCmd = m.mapModel.Update(local)
		return tea.Batch(cmd, mapCmd)
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	// a click in the sidebar focuses the panel under it
	top := 0
	for _, p := range m.panels() {
		h := lipgloss.Height(p.view)
		if y >= top && y < top+h {
			return m.setFocus(p.focus)
		}
		top += h
	}
	return nil
}

type panel struct {
	focus focusArea
	view  string
}

func (m Model) panels() []panel {
	return []panel{
		{focusSearch, m.searchModel.View()},
		{focusFilter, m.filterModel.View()},
		{focusRoutes, m.routesModel.View()},
		{focusSpatial, m.spatialModel.View()},
	}
}

func (m Model) bodySize() (int, int) {
	side := m.sideWidth()
	mapWidth := m.width - side
	if mapWidth < 1 {
		mapWidth = 1
	}
	bodyHeight := m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return mapWidth, bodyHeight
}

func (m Model) sideWidth() int {
	if m.width-sidebarWidth < minMapWidth {
		if w := m.width - minMapWidth; w >= sidebarMinWidth {
			return w
		}
		return 0
	}
	return sidebarWidth
}

// layout resizes every child.
func (m *Model) layout() {
	mapWidth, bodyHeight := m.bodySize()
	side := m.sideWidth()

	m.headerModel, _ = m.headerModel.Update(tea.WindowSizeMsg{Width: m.width, Height: headerHeight})
	m.mapModel, _ = m.mapModel.Update(tea.WindowSizeMsg{Width: mapWidth, Height: bodyHeight})
	m.footerModel, _ = m.footerModel.Update(tea.WindowSizeMsg{Width: m.width, Height: footerHeight})

	m.searchModel.SetWidth(side)
	m.filterModel.SetWidth(side)
	m.routesModel.SetWidth(side)
	m.spatialModel.SetWidth(side)
}

func (m Model) View() string {
	headerView := m.headerModel.View()
	mapView := m.mapModel.View()
	footerView := m.footerModel.View()

	body := mapView
	if side := m.sideWidth(); side > 0 {
		_, bodyHeight := m.bodySize()

		views := []string{}
		used := 0
		for _, p := range m.panels() {
			views = append(views, p.view)
			used += lipgloss.Height(p.view)
		}
		inf := m.infoModel
		inf.SetSize(side, bodyHeight-used)
		views = append(views, inf.View())

		sidebar := lipgloss.NewStyle().MaxHeight(bodyHeight).Render(lipgloss.JoinVertical(lipgloss.Left, views...))
		body = lipgloss.JoinHorizontal(lipgloss.Top, mapView, sidebar)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerView,
		body,
		footerView,
	)
}
