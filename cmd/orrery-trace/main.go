// Command orrery-trace runs a scene without a window and prints where the
// camera is each frame.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/milk9111/orrery/logging"
	"github.com/milk9111/orrery/prefabs"
	"github.com/milk9111/orrery/sim"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("orrery-trace")
	}
}

type switchAt struct {
	frame  int
	target string
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("orrery-trace", flag.ContinueOnError)
	fs.SetOutput(out)
	frames := fs.Int("frames", 600, "number of frames to simulate")
	every := fs.Int("every", 60, "print every n-th frame")
	prefab := fs.String("prefab", "solar_system.yaml", "scene prefab under prefabs/")
	target := fs.String("target", "", "initial target name")
	mode := fs.String("mode", "", "follow mode override (camera or offset)")
	switches := fs.String("switch", "", "target switches as frame:name pairs, e.g. 100:Moon,300:Sun")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *frames < 0 {
		return fmt.Errorf("frames must not be negative")
	}
	if *every <= 0 {
		*every = 1
	}
	plan, err := parseSwitches(*switches)
	if err != nil {
		return err
	}

	spec, err := prefabs.LoadSceneSpec(*prefab)
	if err != nil {
		return err
	}
	s, err := sim.New(spec, sim.Options{FollowMode: *mode, InitialTarget: *target})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "frame\ttarget\tdistance\tcamera\tlook_at\t")
	for i := 1; i <= *frames; i++ {
		for _, sw := range plan {
			if sw.frame == i {
				if err := s.Select(sw.target); err != nil {
					return err
				}
			}
		}
		s.Step()
		if i%*every == 0 || i == *frames {
			st := s.Status()
			fmt.Fprintf(tw, "%d\t%s\t%.3f\t%s\t%s\t\n", st.Frame, st.Target, st.Camera.Sub(st.LookAt).Len(), formatVec(st.Camera), formatVec(st.LookAt))
		}
	}
	return tw.Flush()
}

func parseSwitches(raw string) ([]switchAt, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var plan []switchAt
	for _, part := range strings.Split(raw, ",") {
		frame, name, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("switch %q: want frame:name", part)
		}
		n, err := strconv.Atoi(frame)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("switch %q: bad frame", part)
		}
		plan = append(plan, switchAt{frame: n, target: name})
	}
	return plan, nil
}

func formatVec(v [3]float64) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
