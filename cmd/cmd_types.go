package cmd

import (
	"fmt"
	"slices"
	"sort"
	"text/tabwriter"

	"github.com/duke-git/lancet/v2/maputil"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zbiljic/semrel/pkg/commit"
	"github.com/zbiljic/semrel/pkg/release"
)

var typesCmd = &cobra.Command{
	Use: "types",
	Aliases: []string{
		"t",
	},
	Short: "List commit types and how they are released",
	Long:  `Lists the known commit types with the release level they trigger and the changelog section they appear in, as resolved from the configuration.`,
	Args:  cobra.NoArgs,
	RunE:  runTypesE,
}

var typesFlags = typesOptions{
	Format: TextFormat,
}

func init() {
	addFormatFlag(typesCmd, &typesFlags.Format, "Output format (text, json)")

	rootCmd.AddCommand(typesCmd)
}

type typesOptions struct {
	Format OutputFormat
}

type typeInfo struct {
	Type        string        `json:"type"`
	Release     release.Level `json:"release"`
	Section     string        `json:"section,omitempty"`
	Hidden      bool          `json:"hidden"`
	Description string        `json:"description,omitempty"`
}

func runTypesE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sectionRules := cfg.SectionRuleList()
	if len(sectionRules) == 0 {
		sectionRules = release.DefaultSectionRules
	}

	infos := describeTypes(cfg.ReleaseRuleSet(), cfg.SectionRuleSet(), configuredTypes(cfg.ReleaseRuleList(), sectionRules))

	if typesFlags.Format == JSONFormat {
		return writeJSON(cmd.OutOrStdout(), infos)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tRELEASE\tSECTION\tDESCRIPTION")
	for _, ti := range infos {
		section := ti.Section
		if ti.Hidden {
			section = "(hidden)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ti.Type, ti.Release, lo.Ternary(section == "", "-", section), ti.Description)
	}
	return tw.Flush()
}

// configuredTypes returns the types named by the default release rules and
// the given rules.
func configuredTypes(releaseRules []release.ReleaseRule, sectionRules []release.SectionRule) []string {
	return slices.Concat(
		lo.Map(release.DefaultReleaseRules, func(r release.ReleaseRule, _ int) string { return r.Type }),
		lo.Map(releaseRules, func(r release.ReleaseRule, _ int) string { return r.Type }),
		lo.Map(sectionRules, func(r release.SectionRule, _ int) string { return r.Type }),
	)
}

// describeTypes resolves the conventional types and the extra configured
// ones, sorted by name.
func describeTypes(releaseRules release.ReleaseRules, sectionRules release.SectionRules, extra []string) []typeInfo {
	names := append(maputil.Keys(commit.ConventionalCommitTypes), extra...)
	names = lo.Uniq(lo.Map(names, func(n string, _ int) string {
		return commit.Record{Type: n}.NormalizedType()
	}))
	names = lo.Compact(names)
	sort.Strings(names)

	return lo.Map(names, func(name string, _ int) typeInfo {
		ti := typeInfo{
			Type:        name,
			Release:     releaseRules.LevelFor(commit.Record{Type: name}),
			Description: commit.ConventionalCommitTypes[name],
		}
		if rule, ok := sectionRules.Lookup(name); ok {
			ti.Section = rule.Section
			ti.Hidden = rule.Hidden
		}
		return ti
	})
}
