package cmd

import (
	"fmt"

	"sharefm/config"
	"sharefm/core/library"
	"sharefm/db"
	"sharefm/logger"
	"sharefm/repository"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one library reconciliation pass and exit",
	Long:  `Walk the library root, reconcile the catalog against it, print the add/update/delete counts, and exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		logger.InitLogger(logger.Config{
			Level:      logger.LogLevel(cfg.LogLevel),
			OutputPath: cfg.LogPath,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		})

		var entries repository.EntryRepository
		if cfg.StoreDriver == config.StoreMemory {
			// A one-shot scan against a memory store indexes into nothing
			// durable; still useful as a dry run of the walk and tag pass.
			entries = repository.NewMemoryEntryRepository()
		} else {
			if err := db.ConnectDB(cfg); err != nil {
				return err
			}
			defer db.DB.Close()
			if err := db.InitDB(); err != nil {
				return err
			}
			entries = repository.NewMySQLEntryRepository(db.DB)
		}

		splitter := library.NewSplitter(cfg.ArtistDelimiters, cfg.ArtistExclusions, cfg.ExclusionIgnoreCase)
		meta := library.NewMetadataReader(splitter)
		reconciler := library.NewReconciler(entries, meta, library.NewGate(), cfg.LibraryRoot)

		res, err := reconciler.Reconcile()
		if err != nil {
			return err
		}
		fmt.Printf("added %d, updated %d, deleted %d\n", res.Added, res.Updated, res.Deleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
