// motionsim drives a MotionCore against a synthetic block stream on the
// host build, printing position as it steps. It is a bring-up harness,
// not a G-code interpreter or planner — blocks are generated directly.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"motioncore/block"
	"motioncore/core"
	"motioncore/endstop"
	"motioncore/hostlink"
	"motioncore/interval"
	"motioncore/motioncore"
	"motioncore/stepsink"
)

var (
	configPath  = flag.String("config", "", "path to a JSON machine configuration (defaults to a stock cartesian config)")
	steps       = flag.Uint64("steps", 3200, "number of X steps to trace in the demo move")
	nominalRate = flag.Uint64("rate", 4000, "nominal step rate in Hz for the demo move")
	device      = flag.String("device", "", "optional serial device for a hostlink status feed")
	baud        = flag.Int("baud", 115200, "baud rate for -device")
)

func main() {
	flag.Parse()

	cfg := motioncore.DefaultCartesianConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "motionsim: %v\n", err)
			os.Exit(1)
		}
		cfg, err = motioncore.LoadConfig(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "motionsim: %v\n", err)
			os.Exit(1)
		}
	}

	var link *hostlink.Link
	if *device != "" {
		port, err := hostlink.Open(hostlink.Config{Device: *device, Baud: *baud})
		if err != nil {
			fmt.Fprintf(os.Stderr, "motionsim: %v\n", err)
			os.Exit(1)
		}
		link = hostlink.NewLink(port)
		defer link.Close()
	}

	sim := newSimDriver()
	pins := [core.NumAxes]stepsink.AxisPins{
		core.AxisX: {StepPin: 0, DirPin: 1, Enabled: true},
		core.AxisY: {StepPin: 2, DirPin: 3, Enabled: true},
		core.AxisZ: {StepPin: 4, DirPin: 5, Enabled: true},
		core.AxisE: {StepPin: 6, DirPin: 7, Enabled: true},
	}
	sink, err := stepsink.NewGPIOSink(sim, pins)
	if err != nil {
		fmt.Fprintf(os.Stderr, "motionsim: %v\n", err)
		os.Exit(1)
	}

	table := interval.New(cfg.FCPU, cfg.MaxStepFrequency)
	queue := &block.Queue{}
	pos := &block.Position{}
	monitor := endstop.NewMonitor(nil)

	mc := motioncore.NewCore(queue, pos, sink, table, monitor, *cfg)

	n := uint32(*steps)
	b := block.Block{
		StepEventCount: n,
		Steps:          [core.NumAxes]uint32{core.AxisX: n},
		InitialRate:    uint32(*nominalRate) / 4,
		NominalRate:    uint32(*nominalRate),
		FinalRate:      uint32(*nominalRate) / 4,
		AccelerationRate: 1 << 22,
		AccelerateUntil: n / 4,
		DecelerateAfter: n - n/4,
	}
	if !queue.Push(b) {
		fmt.Fprintln(os.Stderr, "motionsim: queue full")
		os.Exit(1)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		motioncore.RunTickLoop(mc, stop)
		close(done)
	}()
	mc.Wake()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for queue.BlocksQueued() {
		<-ticker.C
		p := mc.GetPosition()
		fmt.Printf("position: X=%d Y=%d Z=%d E=%d\n", p[core.AxisX], p[core.AxisY], p[core.AxisZ], p[core.AxisE])
		if link != nil {
			_ = link.Status("POS X=%d Y=%d Z=%d E=%d", p[core.AxisX], p[core.AxisY], p[core.AxisZ], p[core.AxisE])
		}
	}
	// Let the final partial tick land before tearing down.
	time.Sleep(5 * time.Millisecond)
	close(stop)
	<-done

	p := mc.GetPosition()
	fmt.Printf("final position: X=%d Y=%d Z=%d E=%d\n", p[core.AxisX], p[core.AxisY], p[core.AxisZ], p[core.AxisE])
	fmt.Printf("uptime: %dus\n", core.TimerToUS(uint32(core.GetUptime())))
	core.DumpTimingRing()
}
