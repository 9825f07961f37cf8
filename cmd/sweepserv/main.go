package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	addr    string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sweepserv",
	Short: "Serve tessellated WSR-88D sweep geometry over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}

		r := gin.Default()
		store := persistence.NewInMemoryStore(time.Minute)

		r.GET("/l2", cachePageWithClientHeaders(store, 24*time.Hour, l2ListSitesHandler))
		r.GET("/l2/:site", cachePageWithClientHeaders(store, 1*time.Minute, l2ListFilesHandler))
		r.GET("/l2/:site/:fn", cachePageWithClientHeaders(store, 1*time.Hour, l2FileMetaHandler))
		r.GET("/l2/:site/:fn/:product/:elv/geometry", cachePageWithClientHeaders(store, 1*time.Hour, l2GeometryHandler))
		r.GET("/l2/:site/:fn/:product/:elv/render", cachePageWithClientHeaders(store, 1*time.Hour, l2RenderHandler))

		r.GET("/l3", cachePageWithClientHeaders(store, 24*time.Hour, l3ListSitesHandler))
		r.GET("/l3/:site/:product", cachePageWithClientHeaders(store, 1*time.Minute, l3ListFilesHandler))
		r.GET("/l3/:site/:product/:fn/packets", cachePageWithClientHeaders(store, 1*time.Hour, l3PacketsHandler))

		return r.Run(addr)
	},
}

// Wrap cache.CachePage and also emit client-side Cache-Control/Expires headers
func cachePageWithClientHeaders(store persistence.CacheStore, expiration time.Duration, h gin.HandlerFunc) gin.HandlerFunc {
	ch := cache.CachePage(store, expiration, h)
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(expiration.Seconds())))
		c.Header("Expires", time.Now().UTC().Add(expiration).Format(http.TimeFormat))
		ch(c)
	}
}

func main() {
	rootCmd.Flags().StringVar(&addr, "addr", ":8081", "listen address")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
