package generator

// State is a stage of the generation state machine.
type State int

const (
	StateIdle State = iota
	StateNameValidated
	StateToolChecked
	StateToolInstalling
	StateScaffolded
	StateDependenciesInstalled
	StateTemplatesCopied
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:                  "Idle",
	StateNameValidated:         "NameValidated",
	StateToolChecked:           "ToolChecked",
	StateToolInstalling:        "ToolInstalling",
	StateScaffolded:            "Scaffolded",
	StateDependenciesInstalled: "DependenciesInstalled",
	StateTemplatesCopied:       "TemplatesCopied",
	StateDone:                  "Done",
	StateFailed:                "Failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Reporter observes a generation run. Implementations must not block.
type Reporter interface {
	// StateChanged is called each time the generator enters a new state.
	StateChanged(s State)
	// DependencyAdded is called once per attempted dependency.
	DependencyAdded(res DependencyResult)
	// TemplatesMerged is called once after the template merge with its
	// report and the directory-level error, if any.
	TemplatesMerged(report *MergeReport, err error)
	// Warning is called for every non-fatal failure.
	Warning(err error)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) StateChanged(State)                  {}
func (NopReporter) DependencyAdded(DependencyResult)    {}
func (NopReporter) TemplatesMerged(*MergeReport, error) {}
func (NopReporter) Warning(error)                       {}
