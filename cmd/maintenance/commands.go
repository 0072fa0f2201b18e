package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

var (
	flagFrom   string
	flagTo     string
	flagDict   string
	flagRemote bool
	flagHosts  string
	flagDryRun bool
)

var resyncCmd = &cobra.Command{
	Use:   "resync-counters",
	Short: "Recompute outlet total_articles and tag usage_count",
	RunE: runWith(func(ctx context.Context, cmd *cobra.Command, e *env) error {
		n, err := services.NewMaintenanceService(e.db).ResyncCounters(ctx)
		if err != nil {
			return fmt.Errorf("resync counters: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Fixed %d counter(s).\n", n)
		return nil
	}),
}

var rollupCmd = &cobra.Command{
	Use:   "rollup",
	Short: "Recompute daily statistics for a date range",
	Long: `Rebuild daily_statistics for every day from --from to --to inclusive.

Days without published articles lose their stored row. A failing day is logged
and the rest of the range still runs.`,
	RunE: runWith(func(ctx context.Context, cmd *cobra.Command, e *env) error {
		from, err := utils.ParseDate(flagFrom)
		if err != nil {
			return fmt.Errorf("invalid --from value: %w", err)
		}
		to := from
		if flagTo != "" {
			if to, err = utils.ParseDate(flagTo); err != nil {
				return fmt.Errorf("invalid --to value: %w", err)
			}
		}
		n, err := services.NewStatisticsService(e.db).RollupRange(ctx, from, to)
		fmt.Fprintf(cmd.OutOrStdout(), "Rolled up %d day(s).\n", n)
		return err
	}),
}

var translateTagsCmd = &cobra.Command{
	Use:   "translate-tags",
	Short: "Fill blank Kyrgyz and English tag names",
	RunE: runWith(func(ctx context.Context, cmd *cobra.Command, e *env) error {
		dict := services.TagDictionary{}
		if flagDict != "" {
			d, err := services.LoadTagDictionary(flagDict)
			if err != nil {
				return fmt.Errorf("loading dictionary: %w", err)
			}
			dict = d
		}
		var remote services.Translator
		if flagRemote {
			remote = e.translator(ctx)
		}
		n, err := services.NewMaintenanceService(e.db).TranslateTags(ctx, dict, remote)
		if err != nil {
			return fmt.Errorf("translate tags: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d tag(s).\n", n)
		return nil
	}),
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup-orphans",
	Short: "Delete view records and tag links of deleted content",
	RunE: runWith(func(ctx context.Context, cmd *cobra.Command, e *env) error {
		n, err := services.NewMaintenanceService(e.db).CleanupOrphans(ctx)
		if err != nil {
			return fmt.Errorf("cleanup orphans: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d orphaned row(s).\n", n)
		return nil
	}),
}

var purgeStockCmd = &cobra.Command{
	Use:   "purge-stock-images",
	Short: "Clear external image URLs that point at stock-photo hosts",
	RunE: runWith(func(ctx context.Context, cmd *cobra.Command, e *env) error {
		hosts, err := services.LoadStockHosts(flagHosts)
		if err != nil {
			return fmt.Errorf("loading hosts: %w", err)
		}
		n, err := services.NewMaintenanceService(e.db).PurgeStockImages(ctx, hosts, flagDryRun)
		if err != nil {
			return fmt.Errorf("purge stock images: %w", err)
		}
		if flagDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "Would clear %d image URL(s).\n", n)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d image URL(s).\n", n)
		}
		return nil
	}),
}

func init() {
	rollupCmd.Flags().StringVar(&flagFrom, "from", "", "first day, YYYY-MM-DD")
	rollupCmd.Flags().StringVar(&flagTo, "to", "", "last day, YYYY-MM-DD (default: same as --from)")
	_ = rollupCmd.MarkFlagRequired("from")

	translateTagsCmd.Flags().StringVar(&flagDict, "dict", "", "YAML dictionary of tag names")
	translateTagsCmd.Flags().BoolVar(&flagRemote, "remote", false, "use the translation API for names missing from the dictionary")

	purgeStockCmd.Flags().StringVar(&flagHosts, "hosts", "", "YAML file listing stock-photo hosts")
	purgeStockCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "only report what would be cleared")
	_ = purgeStockCmd.MarkFlagRequired("hosts")
}
