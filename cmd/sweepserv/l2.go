package main

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"

	"github.com/wxview/go-wsr88d/colormap"
	"github.com/wxview/go-wsr88d/level2"
	"github.com/wxview/go-wsr88d/sweep"
)

const l2Bucket = "noaa-nexrad-level2"

func l2S3() *s3.S3 {
	sess, _ := session.NewSession(&aws.Config{
		Credentials: credentials.AnonymousCredentials,
		Region:      aws.String("us-east-1"),
	})
	return s3.New(sess)
}

func l2ListSitesHandler(c *gin.Context) {
	svc := l2S3()

	// check yesterday to get a list of all radars
	t := time.Now().UTC().AddDate(0, 0, -1)
	resp, err := svc.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket:    aws.String(l2Bucket),
		Prefix:    aws.String(t.Format("2006/01/02/")),
		Delimiter: aws.String("/"),
	})
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	sites := make([]string, 0, len(resp.CommonPrefixes))
	for _, d := range resp.CommonPrefixes {
		sites = append(sites, filepath.Base(*d.Prefix))
	}

	c.JSON(200, sites)
}

func l2ListFilesHandler(c *gin.Context) {
	site := c.Param("site")
	svc := l2S3()

	now := time.Now().UTC()
	resp, err := svc.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket: aws.String(l2Bucket),
		Prefix: aws.String(now.Format("2006/01/02/") + site),
	})
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	files := make([]string, 0, len(resp.Contents))
	for _, d := range resp.Contents {
		files = append(files, filepath.Base(*d.Key))
	}

	c.JSON(200, files)
}

func loadArchive(fn string) (*level2.Archive, error) {
	// fn is like KOKX20210902_000428_V06
	if len(fn) < 19 {
		return nil, errors.New("bad archive name")
	}
	site := fn[:4]
	date, err := time.Parse("20060102_150405", fn[4:19])
	if err != nil {
		return nil, err
	}

	resp, err := http.Get("https://" + l2Bucket + ".s3.amazonaws.com/" + date.Format("2006/01/02/") + site + "/" + fn)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("bad status code fetching file: %d", resp.StatusCode)
	}

	return level2.Extract(resp.Body)
}

func l2FileMetaHandler(c *gin.Context) {
	archive, err := loadArchive(c.Param("fn"))
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	elevations := make([]int, 0, len(archive.ElevationScans))
	for elv := range archive.ElevationScans {
		elevations = append(elevations, elv)
	}
	sort.Ints(elevations)

	headers := make([]*level2.RadialHeader, 0, len(elevations))
	for _, elv := range elevations {
		headers = append(headers, &archive.ElevationScans[elv][0].Header)
	}
	c.JSON(200, headers)
}

func sweepForRequest(c *gin.Context) (*sweep.ProductView, bool) {
	product, err := level2.ParseProduct(c.Param("product"))
	if err != nil {
		c.AbortWithError(http.StatusBadRequest, err)
		return nil, false
	}

	elv, err := strconv.Atoi(c.Param("elv"))
	if err != nil {
		c.AbortWithError(http.StatusBadRequest, errors.New("invalid elv"))
		return nil, false
	}

	archive, err := loadArchive(c.Param("fn"))
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return nil, false
	}

	radials, ok := archive.ElevationScans[elv]
	if !ok {
		c.AbortWithError(http.StatusNotFound, fmt.Errorf("no elevation scan %d", elv))
		return nil, false
	}

	site := radials[0].Volume
	coords := sweep.NewCoordinateTable(float64(site.Lat), float64(site.Long), sweep.RadialSizeFor(len(radials)))

	view := sweep.NewProductView(product)
	view.ComputeSweep(radials, coords)
	view.LoadColorTable(colormap.DefaultTable(product))
	return view, true
}

func l2GeometryHandler(c *gin.Context) {
	view, ok := sweepForRequest(c)
	if !ok {
		return
	}
	geom := view.Geometry()
	c.JSON(200, gin.H{
		"lat":       geom.Latitude,
		"lon":       geom.Longitude,
		"sweepTime": geom.SweepTime,
		"vertices":  geom.Vertices,
		"samples8":  geom.Samples8,
		"samples16": geom.Samples16,
	})
}

func l2RenderHandler(c *gin.Context) {
	view, ok := sweepForRequest(c)
	if !ok {
		return
	}

	png, err := renderPNG(view, 1000)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
