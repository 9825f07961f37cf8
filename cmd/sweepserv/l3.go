package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/wxview/go-wsr88d/rpg"
)

const l3Bucket = "gcp-public-data-nexrad-l3-realtime"

func l3Client(ctx context.Context) (*storage.Client, error) {
	return storage.NewClient(ctx, option.WithoutAuthentication())
}

func listGCS(ctx context.Context, bucket *storage.BucketHandle, prefix string) ([]string, []string) {
	blobs := []string{}
	dirs := []string{}

	it := bucket.Objects(ctx, &storage.Query{
		Prefix:    prefix,
		Delimiter: "/",
	})

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logrus.Errorf("Bucket.Objects: %v", err)
			break
		}
		if attrs.Prefix != "" {
			dirs = append(dirs, filepath.Base(attrs.Prefix))
		} else {
			blobs = append(blobs, filepath.Base(attrs.Name))
		}
	}

	return blobs, dirs
}

func l3ListSitesHandler(c *gin.Context) {
	client, err := l3Client(c.Request.Context())
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	defer client.Close()

	_, sites := listGCS(c.Request.Context(), client.Bucket(l3Bucket), "NIDS/")
	c.JSON(200, sites)
}

func l3ListFilesHandler(c *gin.Context) {
	client, err := l3Client(c.Request.Context())
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	defer client.Close()

	prefix := fmt.Sprintf("NIDS/%s/%s/", c.Param("site"), c.Param("product"))
	files, _ := listGCS(c.Request.Context(), client.Bucket(l3Bucket), prefix)
	c.JSON(200, files)
}

// l3PacketsHandler decodes a Level III product's symbology layers through the
// packet registry and returns a JSON summary of what was found.
func l3PacketsHandler(c *gin.Context) {
	client, err := l3Client(c.Request.Context())
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	defer client.Close()

	key := fmt.Sprintf("NIDS/%s/%s/%s", c.Param("site"), c.Param("product"), c.Param("fn"))
	rdr, err := client.Bucket(l3Bucket).Object(key).NewReader(c.Request.Context())
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	defer rdr.Close()

	gpf, err := rpg.NewGraphicProductFile(rdr)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	counts := map[string]int{}
	for _, p := range gpf.Packets {
		counts[fmt.Sprintf("0x%04X", p.Code())]++
	}

	c.JSON(200, gin.H{
		"radar":         string(gpf.TextHeader.RadarIdentifier[:]),
		"productCode":   gpf.MessageHeader.Code,
		"elevation":     gpf.ProductDescription.ElevationNumber,
		"packetCount":   len(gpf.Packets),
		"packetsByType": counts,
	})
}
