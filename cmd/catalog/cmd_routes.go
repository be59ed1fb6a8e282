package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/modacart/catalog/app/controllers"
	"github.com/modacart/catalog/app/routes"
	"github.com/modacart/catalog/pkg/router"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List registered route names and paths",
	Run: func(cmd *cobra.Command, args []string) {
		// Controllers are only consulted when a request arrives, so nil
		// dependencies are fine for printing the route table.
		r := router.New()
		routes.RegisterAPI(r,
			controllers.NewProductController(nil),
			controllers.NewAttributeController(nil),
		)

		names := r.Names()
		keys := make([]string, 0, len(names))
		for k := range names {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Printf("%-24s %s\n", k, names[k])
		}
	},
}
