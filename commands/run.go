package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Runs the daily income jobs in sequence",
		Long:  "Executes the sales invoices job, the payments job and the payment reconciliation in order. The run succeeds when at least one job succeeds.",
		RunE:  runAll,
	}
}

func runAll(cmd *cobra.Command, args []string) error {
	id := uuid.New().String()

	jobs := []struct {
		name string
		job  func(*cobra.Command, []string) error
	}{
		{"invoices", runInvoices},
		{"payments", runPayments},
		{"sync", runSync},
	}

	fmt.Printf("run %v\n", id)

	succeeded := 0
	failed := 0

	for _, j := range jobs {
		fmt.Printf("--- %v\n", j.name)

		if err := j.job(cmd, args); err != nil {
			fmt.Printf("--- %v failed: %v\n", j.name, err)
			failed++
		} else {
			fmt.Printf("--- %v ok\n", j.name)
			succeeded++
		}
	}

	fmt.Printf("run %v: %v succeeded, %v failed\n", id, succeeded, failed)

	if succeeded == 0 {
		return fmt.Errorf("all jobs failed")
	}

	return nil
}
