package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "full":
		fullCmd(apiURL, args)
	case "replay":
		replayCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Workforce Simulator - Development tool for populating monitoring data

USAGE:
  simulator <command> [options]

COMMANDS:
  full      Create a company, add employees, and replay a workday of captures
  replay    Upload a workday of captures for an existing employee token
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Create a company with 3 employees and a full day of captures each
  simulator full

  # Create a company with 5 employees
  simulator full --employees=5

  # Replay yesterday's captures for a known employee token
  simulator replay --token=eyJ... --date=2024-03-15`)
}

func fullCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("full", flag.ExitOnError)
	employees := fs.Int("employees", 3, "Number of employees to create")
	date := fs.String("date", time.Now().UTC().Format("2006-01-02"), "Workday to replay (YYYY-MM-DD)")
	fs.Parse(args)

	if *employees < 1 || *employees > 50 {
		fmt.Println("Error: --employees must be between 1 and 50")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Workforce Simulator: Full Flow ===")
	fmt.Println()

	// 1. Create the company
	fmt.Print("Creating company account... ")
	company, err := client.SignupCompany("SimCo")
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (%s)\n", company.Company.CompanyName)

	// 2. Add employees and replay a workday for each
	fmt.Println()
	fmt.Printf("Adding %d employees with captures for %s:\n", *employees, *date)

	var firstEmployeeID string
	for i := 0; i < *employees; i++ {
		name := fmt.Sprintf("Employee %d", i+1)
		worker, err := client.AddEmployee(company.Token, name, i)
		if err != nil {
			fmt.Printf("  [%d/%d] FAILED to add employee: %v\n", i+1, *employees, err)
			os.Exit(1)
		}
		if firstEmployeeID == "" {
			firstEmployeeID = worker.Employee.ID
		}

		uploaded, err := replayWorkday(client, worker.Token, *date)
		if err != nil {
			fmt.Printf("  [%d/%d] FAILED to upload captures: %v\n", i+1, *employees, err)
			os.Exit(1)
		}

		fmt.Printf("  [%d/%d] %s: %d captures uploaded\n", i+1, *employees, worker.Employee.Name, uploaded)
	}

	// 3. Sanity check the dashboard
	fmt.Println()
	fmt.Print("Fetching dashboard for the first employee... ")
	if _, err := client.GetDashboard(company.Token, firstEmployeeID, *date); err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")

	fmt.Println()
	fmt.Println("=========================================")
	fmt.Println("  COMPANY READY")
	fmt.Println("=========================================")
	fmt.Println()
	fmt.Printf("  Owner email: %s\n", company.Company.OwnerEmail)
	fmt.Println("  Password:    testpassword123")
	fmt.Printf("  Admin token: %s\n", company.Token)
	fmt.Println()
}

func replayCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	token := fs.String("token", "", "Employee token (required)")
	date := fs.String("date", time.Now().UTC().Format("2006-01-02"), "Workday to replay (YYYY-MM-DD)")
	fs.Parse(args)

	if *token == "" {
		fmt.Println("Error: --token is required")
		fmt.Println("\nUsage: simulator replay --token=eyJ... [--date=2024-03-15]")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Printf("Replaying captures for %s...\n", *date)
	uploaded, err := replayWorkday(client, *token, *date)
	if err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Done, %d captures uploaded.\n", uploaded)
}

// replayWorkday uploads captures across a 9-to-17 workday, a few per hour at
// random minutes, skipping some slots so the dashboard shows gaps.
func replayWorkday(client *APIClient, employeeToken, date string) (int, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}

	uploaded := 0
	for hour := 9; hour < 17; hour++ {
		// Roughly one capture per 10-minute slot, with random dropouts
		for slot := 0; slot < 6; slot++ {
			if rand.Intn(4) == 0 {
				continue
			}

			minute := slot*10 + rand.Intn(10)
			capturedAt := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, rand.Intn(60), 0, time.UTC)
			if err := client.UploadScreenshot(employeeToken, capturedAt); err != nil {
				return uploaded, err
			}
			uploaded++
		}
	}

	return uploaded, nil
}
