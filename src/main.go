package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"lifegrid/src/simulation"
	"lifegrid/src/universe"
	"lifegrid/src/view"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/integrii/flaggy"
)

var (
	testSample = [][]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	printGrid   bool
	verbose     bool
	fill        string
	objects     []string
}

//objectSpec is the object placement from the command line
type objectSpec struct {
	name string
	row  int
	col  int
}

func main() {
	eo, so := initOptions()

	objects := make([]objectSpec, 0, len(eo.objects))
	for _, o := range eo.objects {
		spec, err := parseObject(o)
		if err != nil {
			flaggy.ShowHelpAndExit(err.Error())
		}
		objects = append(objects, spec)
	}

	var stateCh chan simulation.Status

	if !eo.interactive {
		stateCh = make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	}

	s := simulation.New(so, stateCh)

	s.AddTemplate(
		simulation.Template{
			Name:        "testSample1",
			Descr:       "the test sample with 3 stable patterns",
			Coordinates: testSample,
		})

	for _, o := range objects {
		s.CreateObject(o.name, o.row, o.col)
	}
	if eo.fill == "" && len(objects) == 0 {
		s.SettleTemplate("testSample1")
	}

	if eo.interactive {
		v := view.NewViewTerminal()
		s.RegisterViewer(v)
		v.Start()
		s.Close()
	} else {
		v := view.NewConsoleOut(os.Stdout, eo.printGrid, true)
		s.RegisterViewer(v)
		v.Start()
		s.Run()
		for {
			st := <-stateCh
			if st.RunningMode == simulation.RunningStateFinished {
				break
			}
		}
		<-v.Done() //wait for the summary
		s.Close()
	}

}

func initOptions() (eo *EnvOptions, so *simulation.Options) {

	o := simulation.DefaultOptions
	so = &o
	eo = &EnvOptions{}
	flaggy.SetName("lifegrid")
	flaggy.SetDescription("Conway's Game of Life on the toroidal grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&so.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&so.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&so.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&so.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.Int64(&so.Seed, "", "seed", "Seed of the random data, time based if 0")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data, the same as --fill random")
	flaggy.String(&eo.fill, "f", "fill", "Initial fill ["+strings.Join(universe.FillModeNames(), "|")+"]")
	flaggy.StringSlice(&eo.objects, "o", "object", "Object to create as kind:row:col, kind is glider, pulsar or spaceship, can be repeated")
	flaggy.Bool(&eo.printGrid, "p", "print", "Print the final grid")
	flaggy.Bool(&eo.verbose, "v", "verbose", "Log the universe diagnostics to stderr")

	flaggy.Parse()

	if eo.randomData {
		eo.fill = universe.FillRandom.String()
	}
	so.Fill = universe.FillEmpty
	if eo.fill != "" {
		mode, ok := universe.ParseFillMode(eo.fill)
		if !ok {
			flaggy.ShowHelpAndExit("unknown fill mode")
		}
		so.Fill = mode
	}
	if so.Width <= 0 || so.Height <= 0 {
		flaggy.ShowHelpAndExit("the field size must be positive")
	}

	so.Logger = log.New(ioutil.Discard, "", 0)
	if eo.verbose {
		so.Logger = log.New(os.Stderr, "universe: ", log.LstdFlags)
	}

	return
}

//parseObject parses the kind:row:col object placement
func parseObject(s string) (objectSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return objectSpec{}, fmt.Errorf("object %q: expected kind:row:col", s)
	}
	row, err := strconv.Atoi(parts[1])
	if err != nil || row < 0 {
		return objectSpec{}, fmt.Errorf("object %q: bad row: %w", s, errOrNegative(err))
	}
	col, err := strconv.Atoi(parts[2])
	if err != nil || col < 0 {
		return objectSpec{}, fmt.Errorf("object %q: bad column: %w", s, errOrNegative(err))
	}
	if universe.ParseObjectKind(parts[0]) == universe.ObjectNone {
		return objectSpec{}, fmt.Errorf("object %q: unknown kind %q", s, parts[0])
	}
	return objectSpec{name: parts[0], row: row, col: col}, nil
}

var errNegative = errors.New("negative value")

func errOrNegative(err error) error {
	if err != nil {
		return err
	}
	return errNegative
}
