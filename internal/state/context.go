package state

// RunContext is the CI provenance attached to every event as meta.
type RunContext struct {
	Repo       string `env:"GITHUB_REPOSITORY"`
	Workflow   string `env:"GITHUB_WORKFLOW"`
	RunID      string `env:"GITHUB_RUN_ID"`
	RunAttempt string `env:"GITHUB_RUN_ATTEMPT"`
	Job        string `env:"GITHUB_JOB"`
	Actor      string `env:"GITHUB_ACTOR"`
	Ref        string `env:"GITHUB_REF"`
	RefName    string `env:"GITHUB_REF_NAME"`
	SHA        string `env:"GITHUB_SHA"`
}

// Meta renders the context with unset values as null.
func (c RunContext) Meta() map[string]any {
	meta := map[string]any{}
	for k, v := range map[string]string{
		"repo":        c.Repo,
		"workflow":    c.Workflow,
		"run_id":      c.RunID,
		"run_attempt": c.RunAttempt,
		"job":         c.Job,
		"actor":       c.Actor,
		"ref":         c.Ref,
		"ref_name":    c.RefName,
		"sha":         c.SHA,
	} {
		if v == "" {
			meta[k] = nil
			continue
		}
		meta[k] = v
	}
	return meta
}
