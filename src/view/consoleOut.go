package view

import (
	"fmt"
	"io"
	"lifegrid/src/simulation"
	"sort"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"
)

//ConsoleOut is the batch mode viewer: prints the configuration, the progress and the summary
type ConsoleOut struct {
	s         *simulation.Simulation
	w         io.Writer
	au        aurora.Aurora
	printGrid bool
	startTime time.Time
	finished  bool
	done      chan struct{}
	sync.Mutex
}

//NewConsoleOut creates the viewer writing to w
//printGrid enables the final grid output, colors enables ANSI colors
func NewConsoleOut(w io.Writer, printGrid bool, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, printGrid: printGrid, au: aurora.NewAurora(colors), done: make(chan struct{})}
}

//Done returns the channel which is closed when the summary is printed
func (c *ConsoleOut) Done() <-chan struct{} {
	return c.done
}

func (c *ConsoleOut) Refresh() {
	c.Lock()
	defer c.Unlock()
	st := c.s.Status()
	if st.RunningMode == simulation.RunningStateFinished {
		if c.finished {
			return
		}
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
		if c.printGrid {
			_, _ = fmt.Fprint(c.w, c.s.Frame().Text)
		}
		close(c.done)
	} else if st.RunningMode == simulation.RunningStateRun {
		if st.IterationNum%10 == 0 && st.IterationNum != 0 {
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(s *simulation.Simulation) {
	c.s = s
	o := c.s.Options()
	_, _ = fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.Lock()
	c.startTime = time.Now()
	c.Unlock()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
