package migrate

// Resource kinds as they appear in per-item status lines.
const (
	KindImage     = "image"
	KindVolume    = "volume"
	KindNetwork   = "network"
	KindContainer = "container"
)

// Result records the outcome of migrating one resource. A skip is not a
// failure: the resource either already exists on the target or has no
// meaningful equivalent there.
type Result struct {
	Kind    string
	Name    string
	Skipped bool
	Reason  string // populated for skips
	Err     error
}

func ok(kind, name string) Result {
	return Result{Kind: kind, Name: name}
}

func skip(kind, name, reason string) Result {
	return Result{Kind: kind, Name: name, Skipped: true, Reason: reason}
}

func failed(kind, name string, err error) Result {
	return Result{Kind: kind, Name: name, Err: err}
}
