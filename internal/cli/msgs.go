package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Declarative symlinks for project data"
	MsgLinkShort       = "Create the symlinks a links document declares"
	MsgInstallShort    = "Install the Nickel scaffolding into a project"
	MsgDocsShort       = "Show the full documentation"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgInstallDone      = "Done. Next steps:"
	MsgInstallStepEdit  = "  1. Edit %s to define your links"
	MsgInstallStepNckl  = "  2. Export: nickel export --format json %s > links.json"
	MsgInstallStepLink  = "  3. Link:   relink link links.json"
	MsgInstalledFormat  = "  ✓ %s\n"
	MsgSkippedFormat    = "  - %s (already exists)\n"
	MsgRunFailed        = "run completed with failures"
	MsgNoCommand        = "no command specified"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagNoColor = "Disable colored output"
	MsgFlagDest    = "Subdirectory for tools inside the project"
	MsgFlagForce   = "Overwrite scaffolding files that already exist"
)

// Long messages
const (
	MsgRootLong = `relink materializes the symbolic links a project declares in a
JSON or TOML document: single files, lists of files, or whole
directories, each with a source (where the data lives) and a target
(where the link goes).

Sources that do not exist are skipped, existing targets are replaced,
and --dry-run previews every link without touching the disk.`

	MsgLinkLong = `Read a links document and create every declared symlink.

Each entry names a kind (file, files, or directory), a source, and a
target. Entries whose source is missing are reported and skipped;
failures on one target never stop the rest of the run.`

	MsgLinkExample = `  # Create the links declared in links.json
  relink link links.json

  # Preview without touching the disk
  relink link --dry-run links.json`

	MsgInstallLong = `Copy the Nickel link contracts and a starter template into a
project, under the tools subdirectory (default ` + "`_tools`" + `).

Existing files are left untouched unless --force is given.`

	MsgInstallExample = `  # Install into the current directory
  relink install

  # Install into a project, tools under utils/
  relink install /path/to/project --dest utils`
)
