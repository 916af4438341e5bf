package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MartinBloedorn/pmu/planner"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner over HTTP",
	Long: `Starts an HTTP API for grid planning and leveling. Published results
are pushed on /events/result (SSE) and /ws/result (websocket), and run
metrics are exposed on /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		dir, _ := cmd.Flags().GetString("dir")

		p, err := loadParams(cmd)
		if err != nil {
			return err
		}
		pl, err := planner.New(p)
		if err != nil {
			return err
		}
		api := newAPI(pl, dir)

		srv := &http.Server{
			Addr: addr,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "*")
				log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
				api.ServeHTTP(w, req)
			}),
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Printf("Listening on %s, data in %s", addr, dir)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return err
		case sig := <-shutdown:
			log.Printf("Shutting down: %v", sig)
		}

		api.sse.Shutdown()
		api.feed.close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = srv.Shutdown(ctx)
		if err != nil {
			log.Printf("ERROR: shutdown: %+v", err)
			return srv.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":9091", "Address to bind the server to.")
	serveCmd.Flags().String("dir", "./data", "Data directory for uploaded files.")
}
