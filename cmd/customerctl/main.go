package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/edvin/customer-api/internal/customerctl"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		fs := flag.NewFlagSet("seed", flag.ExitOnError)
		file := fs.String("f", "", "Path to seed definition YAML file (required)")
		apiURL := fs.String("api", "", "Customer API base URL (overrides api_url in the file)")
		fs.Parse(os.Args[2:])

		if *file == "" {
			fmt.Fprintln(os.Stderr, "Error: -f flag is required")
			fs.Usage()
			os.Exit(1)
		}

		cfg, err := customerctl.LoadSeedConfig(*file)
		if err != nil {
			fail(err)
		}
		if *apiURL != "" {
			cfg.APIURL = *apiURL
		}
		if err := customerctl.Seed(customerctl.NewClient(cfg.APIURL), cfg, os.Stdout); err != nil {
			fail(err)
		}

	case "get":
		fs := flag.NewFlagSet("get", flag.ExitOnError)
		apiURL := fs.String("api", "http://localhost:8080", "Customer API base URL")
		fs.Parse(os.Args[2:])

		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "Usage: customerctl get [-api URL] <customer-id>")
			os.Exit(1)
		}
		view, err := customerctl.NewClient(*apiURL).GetCustomer(fs.Arg(0))
		if err != nil {
			fail(err)
		}
		printJSON(view)

	case "find":
		fs := flag.NewFlagSet("find", flag.ExitOnError)
		apiURL := fs.String("api", "http://localhost:8080", "Customer API base URL")
		name := fs.String("name", "", "Customer name")
		email := fs.String("email", "", "Customer email")
		fs.Parse(os.Args[2:])

		if *name == "" && *email == "" {
			fmt.Fprintln(os.Stderr, "Usage: customerctl find [-api URL] [-name NAME] [-email EMAIL]")
			os.Exit(1)
		}
		view, err := customerctl.NewClient(*apiURL).FindCustomer(*name, *email)
		if err != nil {
			fail(err)
		}
		if view == nil {
			fmt.Fprintln(os.Stderr, "No matching customer")
			os.Exit(2)
		}
		printJSON(view)

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		apiURL := fs.String("api", "http://localhost:8080", "Customer API base URL")
		fs.Parse(os.Args[2:])

		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "Usage: customerctl delete [-api URL] <customer-id>")
			os.Exit(1)
		}
		if err := customerctl.NewClient(*apiURL).DeleteCustomer(fs.Arg(0)); err != nil {
			fail(err)
		}
		fmt.Printf("Customer %s deleted\n", fs.Arg(0))

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
  customerctl seed -f <customers.yaml> [-api URL]
  customerctl get [-api URL] <customer-id>
  customerctl find [-api URL] [-name NAME] [-email EMAIL]
  customerctl delete [-api URL] <customer-id>

Commands:
  seed     Create or replace the customers listed in a YAML file
  get      Print a customer and its tier
  find     Look a customer up by name, email, or both
  delete   Delete a customer

Flags:
  -f string    Path to YAML seed file (required for seed)
  -api string  Customer API base URL (default: http://localhost:8080)`)
}
