package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/profilecard/internal/profile"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print random profiles without starting the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		format, _ := cmd.Flags().GetString("format")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1, got %d", count)
		}
		switch format {
		case "text", "json", "yaml":
		default:
			return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
		}

		sets, _ := cmd.Flags().GetStringArray("set")
		overrides, err := parseOverrides(sets)
		if err != nil {
			return err
		}

		variant, err := resolveVariant(cmd)
		if err != nil {
			return err
		}

		logger, closer, err := newLogger(cmd, false)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer closer.Close()

		deps, err := buildGenerator(cmd.Context(), cmd, variant, logger)
		if err != nil {
			return err
		}
		defer deps.Close()

		records, err := generateRecords(cmd, profile.NewStore(deps.Generator, profile.WithLogger(logger)), count, overrides)
		if err != nil {
			return err
		}
		return writeRecords(cmd.OutOrStdout(), records, format)
	},
}

func init() {
	generateCmd.Flags().IntP("count", "n", 1, "Number of profiles to generate")
	generateCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
	generateCmd.Flags().StringArray("set", nil, "Pin a field on every profile, e.g. --set nickname=ada (repeatable)")
}

// parseOverrides turns field=value pairs into edit intents.
func parseOverrides(pairs []string) ([]profile.SetFieldIntent, error) {
	var out []profile.SetFieldIntent
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: want field=value", pair)
		}
		field, err := profile.ParseField(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("--set %q: %w", pair, err)
		}
		out = append(out, profile.SetFieldIntent{Field: field, Value: value})
	}
	return out, nil
}

// generateRecords runs the store through initialize and count-1 randomizes
// so every record passes the same checks as in the TUI. Overrides are
// applied as field edits after each install.
func generateRecords(cmd *cobra.Command, st *profile.Store, count int, overrides []profile.SetFieldIntent) ([]profile.Record, error) {
	ctx := cmd.Context()
	if _, err := st.Initialize(ctx); err != nil {
		return nil, err
	}

	var records []profile.Record
	for {
		for _, in := range overrides {
			if err := st.Dispatch(ctx, in); err != nil {
				return nil, err
			}
		}
		records = append(records, st.Snapshot().Record)
		if len(records) == count {
			return records, nil
		}
		if err := st.Randomize(ctx); err != nil {
			return nil, err
		}
	}
}

func writeRecords(w io.Writer, records []profile.Record, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	for i, rec := range records {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeText(w, rec)
	}
	return nil
}

func writeText(w io.Writer, rec profile.Record) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%s (@%s)\n", rec.FullName, rec.Nickname)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "ID:         %s\n", rec.ID)
	fmt.Fprintf(w, "Avatar:     %s\n", rec.AvatarURL)
	fmt.Fprintf(w, "Email:      %s\n", rec.Email)
	fmt.Fprintf(w, "Phone:      %s\n", rec.Phone)
	fmt.Fprintf(w, "Interests:  %s\n", strings.Join(rec.Interests.Strings(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, rec.About)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Achievements:")
	for _, a := range rec.Achievements {
		fmt.Fprintf(w, "  • %s\n", a)
	}
}
