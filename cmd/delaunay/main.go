package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/delaunay"
	"github.com/osuushi/delaunay/internal"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

// Triangulate a point set and print the triangles. Input on stdin should be
// newline separated points in the form "x y". Blank lines are ignored.
var (
	app = kingpin.New("delaunay", "Delaunay triangulation of a planar point set.")

	svgPath   = app.Flag("svg", "Read points from the polygons, polylines and circles of an svg file instead of stdin.").ExistingFile()
	seed      = app.Flag("seed", "Seed for the insertion order.").Default("0").Int64()
	random    = app.Flag("random", "Seed the insertion order from the clock.").Bool()
	format    = app.Flag("format", "Output format.").Default("text").Enum("text", "yaml")
	pngPath   = app.Flag("png", "Also draw the triangulation to a png file.").String()
	circles   = app.Flag("circles", "Outline the circumcircles in the png.").Bool()
	scale     = app.Flag("scale", "Scale factor for drawing.").Default("1").Float64()
	showImage = app.Flag("imgcat", "Draw the triangulation to the terminal (iTerm only).").Bool()
	verbose   = app.Flag("verbose", "Log progress to stderr.").Short('v').Bool()
	debug     = app.Flag("debug", "Validate the mesh after every insertion.").Bool()
)

type outputTriangle [3][2]float64

type output struct {
	Stats     internal.Stats   `yaml:"stats"`
	Triangles []outputTriangle `yaml:"triangles"`
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		app.FatalIfError(err, "failed to create logger")
	}
	defer logger.Sync()

	points, err := readInput()
	app.FatalIfError(err, "")

	result, err := delaunay.TriangulateWithOptions(points, delaunay.Options{
		Seed:             *seed,
		Nondeterministic: *random,
		Logger:           logger,
		Debug:            *debug,
	})
	app.FatalIfError(err, "triangulation failed")

	app.FatalIfError(writeResult(os.Stdout, result), "")
	fmt.Fprintf(os.Stderr, "%s %d points, %d triangles, %d flips\n",
		aurora.Green("done:"),
		result.Stats.Points,
		len(result.Triangles),
		result.Stats.Flips,
	)

	if *pngPath != "" {
		f, err := os.Create(*pngPath)
		app.FatalIfError(err, "")
		if *circles {
			err = result.Triangles.WriteCircumcirclesPNG(f, *scale)
		} else {
			err = result.Triangles.WritePNG(f, *scale)
		}
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		app.FatalIfError(err, "")
	}
	if *showImage {
		app.FatalIfError(result.Triangles.Cat(*scale), "")
	}
}

func readInput() ([]*internal.Point, error) {
	if *svgPath != "" {
		f, err := os.Open(*svgPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return internal.ReadSVGPoints(f)
	}
	return readPoints(os.Stdin)
}

func readPoints(in io.Reader) ([]*internal.Point, error) {
	points := []*internal.Point{}
	scanner := bufio.NewScanner(in)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	return points, errors.Wrap(scanner.Err(), "failed to read input")
}

func parsePoint(line string) (*internal.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return nil, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, err
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, err
	}
	return &internal.Point{X: x, Y: y}, nil
}

func writeResult(w io.Writer, result *internal.Result) error {
	if *format == "yaml" {
		out := output{Stats: result.Stats}
		for _, t := range result.Triangles {
			out.Triangles = append(out.Triangles, outputTriangle{
				{t.A.X, t.A.Y},
				{t.B.X, t.B.Y},
				{t.C.X, t.C.Y},
			})
		}
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return errors.Wrap(encoder.Encode(out), "failed to encode yaml")
	}

	for _, t := range result.Triangles {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}
