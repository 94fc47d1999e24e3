package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/armourconstruction/site/internal/config"
	"github.com/armourconstruction/site/internal/contact"
)

var (
	inquiryLimit int
	inquiryJSON  bool
)

var inquiriesCmd = &cobra.Command{
	Use:   "inquiries",
	Short: "Work with inquiries sent through the contact form",
}

var inquiriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored inquiries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.Contact.Store != config.StoreSQLite {
			return fmt.Errorf("contact.store is %q: inquiries are only kept by the %q store", appConfig.Contact.Store, config.StoreSQLite)
		}
		store, err := contact.Open(cmd.Context(), appConfig.Contact.Store, appConfig.Contact.DSN)
		if err != nil {
			return err
		}
		defer store.Close()

		recs, err := store.List(cmd.Context(), inquiryLimit)
		if err != nil {
			return err
		}
		if inquiryJSON {
			return writeInquiriesJSON(cmd.OutOrStdout(), recs)
		}
		return writeInquiries(cmd.OutOrStdout(), recs)
	},
}

func init() {
	inquiriesListCmd.Flags().IntVarP(&inquiryLimit, "limit", "n", 20, "maximum number of inquiries to print, 0 for all")
	inquiriesListCmd.Flags().BoolVar(&inquiryJSON, "json", false, "print as JSON")
	inquiriesCmd.AddCommand(inquiriesListCmd)
	rootCmd.AddCommand(inquiriesCmd)
}

func writeInquiries(w io.Writer, recs []contact.Record) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No inquiries.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RECEIVED\tNAME\tEMAIL\tPHONE\tPROJECT\tMESSAGE")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ReceivedAt.Local().Format(time.DateTime),
			r.Name,
			r.Email,
			orDash(r.Phone),
			projectLabel(r.ProjectType),
			truncate(r.Message, 60),
		)
	}
	return tw.Flush()
}

type inquiryJSONRecord struct {
	ID          string    `json:"id"`
	ReceivedAt  time.Time `json:"receivedAt"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	ProjectType string    `json:"projectType,omitempty"`
	Message     string    `json:"message"`
}

func writeInquiriesJSON(w io.Writer, recs []contact.Record) error {
	out := make([]inquiryJSONRecord, 0, len(recs))
	for _, r := range recs {
		out = append(out, inquiryJSONRecord{
			ID:          r.ID.String(),
			ReceivedAt:  r.ReceivedAt,
			Name:        r.Name,
			Email:       r.Email,
			Phone:       r.Phone,
			ProjectType: string(r.ProjectType),
			Message:     r.Message,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func projectLabel(t contact.ProjectType) string {
	if t == contact.ProjectUnspecified {
		return "-"
	}
	return t.Label()
}

// truncate shortens s to at most n runes on a single line.
func truncate(s string, n int) string {
	r := []rune(s)
	for i, c := range r {
		if c == '\n' || c == '\r' {
			r[i] = ' '
		}
	}
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
