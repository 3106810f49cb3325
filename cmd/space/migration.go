package space

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"contentful-cli/internal/events"
	"contentful-cli/internal/migration"
	"contentful-cli/internal/utils"
)

var migrationYes bool

var migrationCmd = &cobra.Command{
	Use:   "migration <file>",
	Short: "Apply a content model migration",
	Long: `Apply a migration file to the active environment of the active space.

A migration file is YAML with an ordered list of content type steps:

  steps:
    - action: create
      contentType: blogPost
      name: Blog Post
      displayField: title
      fields:
        - {id: title, name: Title, type: Symbol, required: true}
        - {id: author, name: Author, type: Link, linkType: Entry}
    - action: update
      contentType: author
      fields:
        - {id: bio, name: Bio, type: Text}
      deleteFields: [legacyBio]
    - action: delete
      contentType: legacyPage

The plan is shown and confirmed before anything is changed.

Examples:
  contentful space migration ./migrations/01-blog.yaml
  contentful space migration --environment-id staging --yes ./migrations/01-blog.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd.Context(), args[0], migrationYes)
	},
}

func init() {
	migrationCmd.Flags().BoolVarP(&migrationYes, "yes", "y", false, "Apply without asking for confirmation")
}

func runMigration(ctx context.Context, file string, yes bool) error {
	if err := validateSession(); err != nil {
		return err
	}

	opts := migration.OptionsFromContext(sess.Context, file, yes)
	if err := sess.Migrator.Run(ctx, opts); err != nil {
		if errors.Is(err, migration.ErrAborted) {
			utils.PrintWarning("Migration aborted. Nothing was changed.")
			return nil
		}
		return err
	}

	sess.Emit(ctx, events.Event{
		Type:          events.MigrationApplied,
		ResourceID:    filepath.Base(file),
		SpaceID:       opts.SpaceID,
		EnvironmentID: opts.EnvironmentID,
		Attributes:    map[string]string{"file": file},
	})
	return nil
}
