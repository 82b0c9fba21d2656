package simulation

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"lifegrid/src/universe"
)

//Options represents the Simulation's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Fill            universe.FillMode
	Seed            int64                  //random source seed, time based if 0
	Logger          *log.Logger            //universe diagnostics
	Advanced        map[string]interface{} //advanced options, shown by viewers
}

//Status represents the status of the Simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Frame is the copied universe snapshot, safe to use from any goroutine
type Frame struct {
	Width  uint32
	Height uint32
	Cells  []uint64 //packed cells, see universe.Universe.Cells
	Text   string   //universe.Universe.Render output
}

//Alive returns the cell state at row, col of the frame
func (f Frame) Alive(row uint32, col uint32) bool {
	if row >= f.Height || col >= f.Width {
		return false
	}
	i := uint(row)*uint(f.Width) + uint(col)
	return f.Cells[i/64]&(1<<(i%64)) != 0
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(s *Simulation)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [row,col] coordinates
}

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = universe.DefWidth
	DefHeight             = universe.DefHeight
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

var DefaultOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
	Fill:            universe.DefFill,
}

//Simulation drives the universe: steps it by the timer, keeps the status and notifies viewers
//the universe is accessed under the lock only
type Simulation struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		u *universe.Universe
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan bool
}

//New creates the Simulation instance and starts its main loop
//stateCh receives every running state switch, nil disables notifications
func New(o *Options, stateCh chan Status) *Simulation {
	if o == nil {
		o = &DefaultOptions
	}
	opts := *o
	opts.Advanced = map[string]interface{}{"fill": opts.Fill.String()}
	for k, v := range o.Advanced {
		opts.Advanced[k] = v
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := Simulation{
		options:   opts,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	s.area.u = universe.New(&universe.Options{
		Width:  uint32(opts.Width),
		Height: uint32(opts.Height),
		Fill:   opts.Fill,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: opts.Logger,
	})
	s.options.Width = int(s.area.u.Width())
	s.options.Height = int(s.area.u.Height())
	s.state.LiveCells = s.area.u.LiveCells()
	go s.mainLoop()
	return &s
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (s *Simulation) AddTemplate(tmpl Template) {
	s.templates[tmpl.Name] = tmpl
}

//SettleTemplate populates the universe with the seeding template
func (s *Simulation) SettleTemplate(name string) {
	tmpl, ok := s.templates[name]
	if !ok {
		return
	}
	cells := make([]universe.Coord, 0, len(tmpl.Coordinates))
	for _, v := range tmpl.Coordinates {
		if len(v) < 2 || v[0] < 0 || v[1] < 0 {
			continue
		}
		cells = append(cells, universe.Coord{Row: uint32(v[0]), Col: uint32(v[1])})
	}
	s.mutate(func(u *universe.Universe) { u.Settle(cells) })
}

//Toggle inverses the cell state at row, col
func (s *Simulation) Toggle(row int, col int) {
	if row < 0 || col < 0 {
		return
	}
	s.mutate(func(u *universe.Universe) { u.ToggleCell(uint32(row), uint32(col)) })
}

//CreateObject stamps the named object with the top-left corner at row, col
func (s *Simulation) CreateObject(name string, row int, col int) {
	if row < 0 || col < 0 {
		return
	}
	s.mutate(func(u *universe.Universe) { u.CreateObject(name, uint32(row), uint32(col)) })
}

//Resize changes the universe dimensions, all cells are discarded
func (s *Simulation) Resize(width int, height int) {
	if width < 0 || height < 0 {
		return
	}
	s.state.Lock()
	s.options.Width = width
	s.options.Height = height
	s.state.Unlock()
	s.mutate(func(u *universe.Universe) { u.Resize(uint32(width), uint32(height)) })
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.views = append(s.views, v)
	v.Register(s)
}

//StateCh returns the channel with the simulation's status updates
func (s *Simulation) StateCh() chan Status {
	return s.stateCh
}

//Status returns current simulation status represented by Status struct
func (s *Simulation) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

//Options returns current simulation configuration represented by Options struct
func (s *Simulation) Options() Options {
	s.state.Lock()
	defer s.state.Unlock()
	return s.options
}

//Frame returns the copy of the current universe
func (s *Simulation) Frame() Frame {
	s.area.Lock()
	defer s.area.Unlock()
	u := s.area.u
	cells := u.Cells()
	f := Frame{
		Width:  u.Width(),
		Height: u.Height(),
		Cells:  make([]uint64, len(cells)),
		Text:   u.Render(),
	}
	copy(f.Cells, cells)
	return f
}

//Run starts the universe simulation, returns immediately
func (s *Simulation) Run() {
	s.controlCh <- s.run
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (s *Simulation) Stop() {
	s.controlCh <- s.stop
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (s *Simulation) Step() {
	s.controlCh <- s.step
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (s *Simulation) Clear() {
	s.controlCh <- s.clear
}

//Randomize clears the counters and refills the universe with random cells, returns immediately
//ignored while the simulation is running
//the Status struct will be written to the stateCh on finish
func (s *Simulation) Randomize() {
	s.controlCh <- s.randomize
}

//Close stops the main loop, returns immediately
func (s *Simulation) Close() {
	s.closeCh <- true
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (s *Simulation) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-s.controlCh:
			cmd()
		case c = <-s.closeCh:

		}
	}
}

//mutate runs f on the universe under the lock and refreshes the live cells counter and viewers
func (s *Simulation) mutate(f func(u *universe.Universe)) {
	s.area.Lock()
	f(s.area.u)
	live := s.area.u.LiveCells()
	s.area.Unlock()
	s.state.Lock()
	s.state.LiveCells = live
	s.state.Unlock()
	s.refreshView()
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (s *Simulation) switchRunningState(to RunningState) {
	s.state.Lock()
	s.state.RunningMode = to
	st := s.state.Status
	s.state.Unlock()
	if s.stateCh != nil {
		s.stateCh <- st
	}
}

func (s *Simulation) runningMode() RunningState {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.RunningMode
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (s *Simulation) run() {
	if s.runningMode() == RunningStateRun {
		return
	}
	s.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan bool)
		defer close(done)
		for {
			mode := s.runningMode()
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > s.options.MaxSkippedTicks {
				log.Printf("simulation finished: %v ticks skipped in a row", skipped)
				s.switchRunningState(RunningStateFinished)
				s.refreshView()
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				s.controlCh <- func() {
					s.step()
					done <- true
				}
				<-done
			} else {
				skipped++
			}
			if s.options.Interval > 0 {
				time.Sleep(s.options.Interval)
			}
		}
	}()
}

//stop stops the universe running cycle
func (s *Simulation) stop() {
	if s.runningMode() == RunningStateRun {
		s.switchRunningState(RunningStateManual)
	}
}

//step does the next generation for entire universe
//the simulation is finished when the steps limit is reached, all cells are dead or nothing is changed
func (s *Simulation) step() {
	rm := s.runningMode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	finished := false
	maxIter := s.options.MaxSteps

	s.state.Lock()
	s.state.IterationNum++
	iter := s.state.IterationNum
	s.state.Unlock()

	defer func() {
		if finished {
			s.switchRunningState(RunningStateFinished)
		} else {
			s.switchRunningState(rm)
		}
		s.refreshView()
	}()

	if maxIter != 0 && iter >= maxIter {
		finished = true
		return
	}
	s.switchRunningState(RunningStateStep)

	s.area.Lock()
	start := time.Now()
	prev := s.area.u.Clone()
	s.area.u.Tick()
	live := s.area.u.LiveCells()
	changed := !s.area.u.Equal(prev)
	elapsed := time.Since(start)
	s.area.Unlock()

	s.state.Lock()
	s.state.LiveCells = live
	s.state.IterationTime = elapsed
	s.state.Unlock()

	if live == 0 || !changed {
		finished = true
	}
}

//clear clears the universe data, reset all counters
func (s *Simulation) clear() {
	s.area.Lock()
	s.area.u.ClearCells()
	s.area.Unlock()
	s.resetStatus(0)
}

//randomize refills the universe with the random data, reset all counters
func (s *Simulation) randomize() {
	if mode := s.runningMode(); mode == RunningStateRun || mode == RunningStateStep {
		return
	}
	s.area.Lock()
	s.area.u.RandomizeCells()
	live := s.area.u.LiveCells()
	s.area.Unlock()
	s.resetStatus(live)
}

func (s *Simulation) resetStatus(liveCells int) {
	s.state.Lock()
	s.state.IterationNum = 0
	s.state.LiveCells = liveCells
	s.state.IterationTime = 0
	s.state.Unlock()
	s.switchRunningState(RunningStateManual)
	s.refreshView()
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView() {
	for _, v := range s.views {
		v.Refresh()
	}
}
