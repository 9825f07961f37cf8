package main

import (
	"fmt"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/wxview/go-wsr88d/level2"
	"github.com/wxview/go-wsr88d/sweep"
)

var cli struct {
	Args struct {
		Filename string
	} `positional-args:"yes" required:"yes"`
	LogLevel  string `short:"l" long:"log-level" description:"logging level" choice:"error" choice:"info" choice:"debug" choice:"trace" default:"info"`
	Remote    bool   `short:"r" long:"remote" description:"treat the filename as an archive name and fetch it from the NOAA S3 bucket"`
	Product   string `short:"p" long:"product" description:"data moment product to tessellate" default:"ref"`
	Elevation int    `short:"e" long:"elevation" description:"elevation scan to tessellate" default:"1"`
	Profile   bool   `long:"profile" description:"write a CPU profile to out.prof"`
}

func main() {
	if _, err := flags.Parse(&cli); err != nil {
		os.Exit(1)
	}

	errorLevels := map[string]logrus.Level{
		"error": logrus.ErrorLevel,
		"info":  logrus.InfoLevel,
		"debug": logrus.DebugLevel,
		"trace": logrus.TraceLevel,
	}
	logrus.SetLevel(errorLevels[cli.LogLevel])

	product, err := level2.ParseProduct(cli.Product)
	if err != nil {
		logrus.Fatal(err)
	}

	if cli.Profile {
		f, _ := os.Create("out.prof")
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	logrus.Info(color.CyanString("decoding %s", cli.Args.Filename))

	var archive *level2.Archive
	if cli.Remote {
		archive, err = fetchArchive(cli.Args.Filename)
	} else {
		archive, err = level2.ExtractFromFile(cli.Args.Filename)
	}
	if err != nil {
		logrus.Fatal(err)
	}

	elevations := make([]int, 0, len(archive.ElevationScans))
	for elv := range archive.ElevationScans {
		elevations = append(elevations, elv)
	}
	sort.Ints(elevations)

	for _, elv := range elevations {
		radials := archive.ElevationScans[elv]
		logrus.Infof("  elevation %2d: %s radials @ %.2f deg",
			elv, color.CyanString("%d", len(radials)), radials[0].Header.ElevationAngle)
	}

	radials, ok := archive.ElevationScans[cli.Elevation]
	if !ok {
		logrus.Fatalf("no elevation scan %d in this volume", cli.Elevation)
	}

	site := radials[0].Volume
	coords := sweep.NewCoordinateTable(float64(site.Lat), float64(site.Long), sweep.RadialSizeFor(len(radials)))

	start := time.Now()
	geom := sweep.Tessellate(radials, product, coords)
	elapsed := time.Since(start)

	samples := len(geom.Samples8)
	wordSize := 8
	if samples == 0 {
		samples = len(geom.Samples16)
		wordSize = 16
	}

	logrus.Infof("tessellated %s in %s", color.CyanString("%s/%d", cli.Product, cli.Elevation), elapsed)
	logrus.Infof("  %s triangles (%s vertices, %d-bit samples)",
		color.CyanString("%d", len(geom.Vertices)/6),
		color.CyanString("%d", samples),
		wordSize)
}

// fetchArchive downloads an archive by name (eg KOKX20210902_000428_V06) from
// the public NOAA Level II bucket, with a progress bar on stderr.
func fetchArchive(fn string) (*level2.Archive, error) {
	if len(fn) < 19 {
		return nil, fmt.Errorf("archive name %q is too short", fn)
	}
	site := fn[:4]
	date, err := time.Parse("20060102_150405", fn[4:19])
	if err != nil {
		return nil, err
	}

	url := "https://noaa-nexrad-level2.s3.amazonaws.com/" + date.Format("2006/01/02/") + site + "/" + fn
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("bad status code fetching file: %d", resp.StatusCode)
	}

	bar := pb.Full.Start64(resp.ContentLength)
	defer bar.Finish()

	return level2.Extract(bar.NewProxyReader(resp.Body))
}
