// Package benchmark computes average/best throughput and speedups
// across runs of the pipeline runtime at different worker counts, and
// charts the result. Adapted from the teacher's standalone
// benchmark.go analysis tool: the JSON-lines parsing, average/best
// aggregation, and speedup computation are kept verbatim in structure;
// fields are renamed from image-editing terms (Mode, Threads,
// TimeElapsed) to pipeline-throughput terms (PolicyMix, Workers,
// FramesPerSecond), since this module measures frames/second at a
// given worker count rather than wall-clock seconds to process a batch
// of images.
package benchmark

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Sample is one recorded run of the pipeline: a policy-mix label (e.g.
// "ordered+unordered+parallel"), a worker count, and the measured
// frames-per-second throughput. Adapted from the teacher's Data struct
// (Mode/Threads/TimeElapsed/DataDir).
type Sample struct {
	PolicyMix       string  `json:"policyMix"`
	Workers         int     `json:"workers"`
	FramesPerSecond float64 `json:"framesPerSecond"`
	Scenario        string  `json:"scenario"`
}

// ParseResults decodes a JSON-lines file of Samples into a map keyed by
// policy-mix label.
func ParseResults(pathToResultsFile string) map[string][]Sample {
	file, err := os.Open(pathToResultsFile)
	if err != nil {
		return map[string][]Sample{}
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	dataSets := make(map[string][]Sample)

	for {
		var sample Sample
		if err := decoder.Decode(&sample); err != nil {
			break
		}
		dataSets[sample.PolicyMix] = append(dataSets[sample.PolicyMix], sample)
	}
	return dataSets
}

// ComputeAverageFPS computes the average frames/second for each policy
// mix, scenario, and worker count, and writes the result to
// averagesPath as JSON lines.
func ComputeAverageFPS(dataSets map[string][]Sample, averagesPath string) map[string]map[string]map[int]float64 {
	averages := make(map[string]map[string]map[int]float64)
	counters := make(map[string]map[string]map[int]int)

	for mix, samples := range dataSets {
		averages[mix] = make(map[string]map[int]float64)
		counters[mix] = make(map[string]map[int]int)

		for _, s := range samples {
			if averages[mix][s.Scenario] == nil {
				averages[mix][s.Scenario] = make(map[int]float64)
				counters[mix][s.Scenario] = make(map[int]int)
			}
			averages[mix][s.Scenario][s.Workers] += s.FramesPerSecond
			counters[mix][s.Scenario][s.Workers]++
		}

		for scenario, byWorkers := range averages[mix] {
			for workers, fps := range byWorkers {
				averages[mix][scenario][workers] = fps / float64(counters[mix][scenario][workers])
			}
		}
	}
	saveToFile(averages, averagesPath)
	return averages
}

// ComputeBestFPS computes the best observed frames/second for each
// policy mix, scenario, and worker count, writing the result to
// bestPath as JSON lines.
func ComputeBestFPS(dataSets map[string][]Sample, bestPath string) map[string]map[string]map[int]float64 {
	best := make(map[string]map[string]map[int]float64)

	for mix, samples := range dataSets {
		for _, s := range samples {
			if best[mix] == nil {
				best[mix] = make(map[string]map[int]float64)
			}
			if best[mix][s.Scenario] == nil {
				best[mix][s.Scenario] = make(map[int]float64)
			}
			if s.FramesPerSecond > best[mix][s.Scenario][s.Workers] {
				best[mix][s.Scenario][s.Workers] = s.FramesPerSecond
			}
		}
	}
	saveToFile(best, bestPath)
	return best
}

// ComputeSpeedups computes, for each policy mix and scenario, the
// speedup of each worker count relative to the single-worker run.
func ComputeSpeedups(fps map[string]map[string]map[int]float64, speedupsPath string) map[string]map[string]map[int]float64 {
	speedups := make(map[string]map[string]map[int]float64)

	for mix, byScenario := range fps {
		speedups[mix] = make(map[string]map[int]float64)
		for scenario, byWorkers := range byScenario {
			speedups[mix][scenario] = make(map[int]float64)
			base := byWorkers[1]
			if base == 0 {
				continue
			}
			for workers, value := range byWorkers {
				if workers != 1 {
					speedups[mix][scenario][workers] = value / base
				}
			}
		}
	}

	file, err := os.Create(speedupsPath)
	if err != nil {
		return speedups
	}
	defer file.Close()
	json.NewEncoder(file).Encode(speedups)
	return speedups
}

// CustomYTicks forces the plot to label every generated Y tick,
// unchanged from the teacher's CustomYTicks.
type CustomYTicks struct{}

func (CustomYTicks) Ticks(min, max float64) []plot.Tick {
	var newTicks []plot.Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(min, max) {
		t.Label = fmt.Sprintf("%.2f", t.Value)
		newTicks = append(newTicks, t)
	}
	return newTicks
}

// CustomXTicks forces the plot to show a tick for every worker count
// that has data, unchanged in mechanism from the teacher's
// CustomXTicks (renamed Threads -> Workers).
type CustomXTicks struct {
	Workers []int
}

func (t CustomXTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for _, w := range t.Workers {
		if float64(w) >= min && float64(w) <= max {
			ticks = append(ticks, plot.Tick{Value: float64(w), Label: fmt.Sprintf("%d", w)})
		}
	}
	return ticks
}

func saveToFile(data map[string]map[string]map[int]float64, path string) {
	file, err := os.Create(path)
	if err != nil {
		return
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	for key, val := range data {
		encoder.Encode(map[string]map[string]map[int]float64{key: val})
	}
}

// scenarioColors assigns a plot color to each scenario name, mirroring
// the teacher's dataDirColors map. Unlisted scenarios fall back to
// black.
var scenarioColors = map[string]color.RGBA{
	"small":   {R: 0, G: 200, B: 0, A: 255},
	"mixture": {R: 0, G: 0, B: 220, A: 255},
	"large":   {R: 220, G: 0, B: 0, A: 255},
}

// PlotSpeedups renders one speedup-vs-worker-count PNG per policy mix
// into outDir, unchanged in structure from the teacher's plotting loop
// in benchmark.go's main.
func PlotSpeedups(speedups map[string]map[string]map[int]float64, outDir string) error {
	for mix, byScenario := range speedups {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("\nframepipe speedup (%s)", mix)
		p.X.Label.Text = "Workers \n "
		p.Y.Label.Text = "\nSpeedup"
		p.Title.Padding = vg.Points(20)
		p.Title.TextStyle.Font.Size = vg.Points(15)
		p.X.Label.Padding = vg.Points(5)
		p.Y.Label.Padding = vg.Points(5)
		p.Add(plotter.NewGrid())
		p.Y.Tick.Marker = CustomYTicks{}

		for scenario, byWorkers := range byScenario {
			keys := make([]int, 0, len(byWorkers))
			for k := range byWorkers {
				keys = append(keys, k)
			}
			sort.Ints(keys)

			pts := make(plotter.XYs, len(keys))
			for i, k := range keys {
				pts[i].X = float64(k)
				pts[i].Y = byWorkers[k]
			}

			col, ok := scenarioColors[scenario]
			if !ok {
				col = color.RGBA{A: 255}
			}

			line, err := plotter.NewLine(pts)
			if err != nil {
				return err
			}
			line.LineStyle.Width = vg.Points(1)
			line.LineStyle.Color = col

			scatter, err := plotter.NewScatter(pts)
			if err != nil {
				return err
			}
			scatter.GlyphStyle.Color = col
			scatter.GlyphStyle.Radius = vg.Points(2)

			p.Add(line, scatter)
			p.Legend.Top = true
			p.Legend.Left = true
			p.Legend.Add(scenario, line)

			p.X.Tick.Marker = CustomXTicks{Workers: keys}
		}

		if err := p.Save(6*vg.Inch, 6*vg.Inch, fmt.Sprintf("%s/speedup-%s.png", outDir, mix)); err != nil {
			return err
		}
	}
	return nil
}
