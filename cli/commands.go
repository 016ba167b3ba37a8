package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Run   RunCmd   `cmd:"" help:"Replay a transaction log, skipping malformed records."`
	Batch BatchCmd `cmd:"" help:"Replay a transaction log, aborting on the first malformed record."`
	Watch WatchCmd `cmd:"" help:"Replay a transaction log again whenever it changes."`
}
